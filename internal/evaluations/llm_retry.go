package evaluations

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"relevance-backend/internal/llm"
	"relevance-backend/internal/shared/telemetry"
)

const llmRetryBaseDelay = 300 * time.Millisecond

type retryingLLM struct {
	base         llm.Client
	requestID    string
	evaluationID string
}

// newRetryingLLM wraps a client with a single retry for transient failures.
func newRetryingLLM(base llm.Client, evaluationID, requestID string) llm.Client {
	if base == nil {
		return nil
	}
	return retryingLLM{
		base:         base,
		requestID:    requestID,
		evaluationID: evaluationID,
	}
}

func (r retryingLLM) Generate(ctx context.Context, prompt string, maxTokens int, temperature float32) (string, error) {
	resp, err := r.base.Generate(ctx, prompt, maxTokens, temperature)
	if err == nil || !shouldRetryLLM(err) {
		return resp, err
	}

	telemetry.Warn("llm.retry", map[string]any{
		"attempt":       1,
		"request_id":    r.requestID,
		"evaluation_id": r.evaluationID,
		"error":         sanitizeError(err),
	})
	select {
	case <-time.After(llmRetryBaseDelay):
	case <-ctx.Done():
		return "", ctx.Err()
	}

	return r.base.Generate(ctx, prompt, maxTokens, temperature)
}

func shouldRetryLLM(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "http status 5") || strings.Contains(msg, "server_error") {
		return true
	}
	if strings.Contains(msg, "timeout") && (strings.Contains(msg, "openai") || strings.Contains(msg, "gemini") || strings.Contains(msg, "llm") || strings.Contains(msg, "client.timeout")) {
		return true
	}
	if strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection closed") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "tls handshake timeout") ||
		strings.Contains(msg, "eof") {
		return true
	}

	return false
}

package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"relevance-backend/internal/embedding"
)

const defaultModel = "text-embedding-004"

// Embedder generates embeddings through the Gemini API.
type Embedder struct {
	client *genai.Client
	model  string
}

// NewEmbedder constructs a Gemini-backed embedder.
func NewEmbedder(ctx context.Context, apiKey, model string) (*Embedder, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("GOOGLE_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		model = defaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Embedder{client: client, model: model}, nil
}

// Embed returns one vector per input text, in input order.
func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	contents := make([]*genai.Content, 0, len(texts))
	for _, text := range texts {
		contents = append(contents, genai.NewContentFromText(text, genai.RoleUser))
	}

	result, err := e.client.Models.EmbedContent(ctx, e.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("gemini embed content: %w", err)
	}
	if result == nil || len(result.Embeddings) != len(texts) {
		got := 0
		if result != nil {
			got = len(result.Embeddings)
		}
		return nil, fmt.Errorf("gemini embeddings: got %d vectors for %d inputs", got, len(texts))
	}

	vectors := make([][]float32, len(texts))
	for i, emb := range result.Embeddings {
		if emb == nil {
			return nil, fmt.Errorf("gemini embeddings: missing vector at index %d", i)
		}
		vectors[i] = emb.Values
	}
	return vectors, nil
}

var _ embedding.Embedder = (*Embedder)(nil)

package evaluations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"relevance-backend/internal/embedding"
	"relevance-backend/internal/jobs"
	"relevance-backend/internal/llm"
	"relevance-backend/internal/match"
	"relevance-backend/internal/parser"
	"relevance-backend/internal/queue"
	"relevance-backend/internal/resumes"
	"relevance-backend/internal/scoring"
	"relevance-backend/internal/shared/metrics"
	"relevance-backend/internal/shared/telemetry"
)

const (
	StatusQueued     = "queued"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

var (
	ErrResumeNotFound = errors.New("resume not found")
	ErrJobNotFound    = errors.New("job description not found")
)

// Service contains business logic for evaluations. The scoring pipeline
// runs asynchronously: in-process when no queue is configured, otherwise
// through the queue and a separate worker.
type Service struct {
	Repo              Repo
	Resumes           resumes.Repo
	Jobs              jobs.Repo
	Hard              *match.HardMatcher
	Embedder          embedding.Embedder
	LLM               llm.Client
	SemanticThreshold float64
	Engine            *scoring.Engine
	Queue             queue.Client
}

// Create enqueues a new evaluation and kicks off asynchronous completion.
func (s *Service) Create(ctx context.Context, resumeID, jobID string) (Evaluation, error) {
	if resumeID == "" || jobID == "" {
		return Evaluation{}, fmt.Errorf("%w: resumeId and jobId are required", ErrInvalidInput)
	}

	if _, err := s.Resumes.GetByID(ctx, resumeID); err != nil {
		if errors.Is(err, resumes.ErrNotFound) {
			return Evaluation{}, ErrResumeNotFound
		}
		return Evaluation{}, err
	}
	if _, err := s.Jobs.GetByID(ctx, jobID); err != nil {
		if errors.Is(err, jobs.ErrNotFound) {
			return Evaluation{}, ErrJobNotFound
		}
		return Evaluation{}, err
	}

	ev := Evaluation{
		ID:        uuid.NewString(),
		ResumeID:  resumeID,
		JobID:     jobID,
		Status:    StatusQueued,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, ev); err != nil {
		return Evaluation{}, err
	}

	if s.Queue != nil {
		msg := queue.Message{
			EvaluationID: ev.ID,
			RequestID:    requestIDFromContext(ctx),
			EnqueuedAt:   ev.CreatedAt.Format(time.RFC3339Nano),
			Version:      1,
		}
		if err := s.Queue.Send(ctx, msg); err != nil {
			s.failEvaluation(ctx, ev.ID, fmt.Errorf("enqueue evaluation: %w", err), nil)
			return Evaluation{}, err
		}
		telemetry.Info("evaluation.enqueued", map[string]any{
			"request_id":    msg.RequestID,
			"evaluation_id": ev.ID,
		})
		return ev, nil
	}

	go s.completeAsync(backgroundWithRequestID(ctx), ev.ID)

	return ev, nil
}

// EvaluateAll creates one evaluation per stored resume against the job.
// Individual failures are logged and skipped so one bad resume does not
// abort the batch.
func (s *Service) EvaluateAll(ctx context.Context, jobID string) ([]Evaluation, error) {
	if jobID == "" {
		return nil, fmt.Errorf("%w: job id is required", ErrInvalidInput)
	}
	if _, err := s.Jobs.GetByID(ctx, jobID); err != nil {
		if errors.Is(err, jobs.ErrNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}

	const pageSize = 100
	var created []Evaluation
	for offset := 0; ; offset += pageSize {
		page, err := s.Resumes.List(ctx, pageSize, offset)
		if err != nil {
			return created, fmt.Errorf("resume page lookup: %w", err)
		}
		if len(page) == 0 {
			break
		}
		for _, cand := range page {
			ev, err := s.Create(ctx, cand.ID, jobID)
			if err != nil {
				telemetry.Warn("evaluation.batch_skip", map[string]any{
					"request_id": requestIDFromContext(ctx),
					"job_id":     jobID,
					"resume_id":  cand.ID,
					"error":      sanitizeError(err),
				})
				continue
			}
			created = append(created, ev)
		}
		if len(page) < pageSize {
			break
		}
	}

	telemetry.Info("evaluation.batch_created", map[string]any{
		"request_id": requestIDFromContext(ctx),
		"job_id":     jobID,
		"count":      len(created),
	})
	return created, nil
}

// Get returns an evaluation by ID.
func (s *Service) Get(ctx context.Context, evaluationID string) (Evaluation, error) {
	if evaluationID == "" {
		return Evaluation{}, fmt.Errorf("%w: evaluation id is required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, evaluationID)
}

// ResultsForJob returns completed evaluations for a job ranked by score.
func (s *Service) ResultsForJob(ctx context.Context, jobID string, filter ResultFilter) ([]Evaluation, error) {
	if jobID == "" {
		return nil, fmt.Errorf("%w: job id is required", ErrInvalidInput)
	}
	return s.Repo.ListByJob(ctx, jobID, filter)
}

// ResultsForResume returns evaluations for a resume, newest-first.
func (s *Service) ResultsForResume(ctx context.Context, resumeID string, limit, offset int) ([]Evaluation, error) {
	if resumeID == "" {
		return nil, fmt.Errorf("%w: resume id is required", ErrInvalidInput)
	}
	return s.Repo.ListByResume(ctx, resumeID, limit, offset)
}

// Stats summarizes stored evaluations.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	return s.Repo.Stats(ctx)
}

// ProcessEvaluation runs the scoring pipeline for one evaluation. Worker
// entry point; the returned error decides queue redelivery.
func (s *Service) ProcessEvaluation(ctx context.Context, evaluationID string) error {
	return s.process(ctx, evaluationID)
}

func (s *Service) completeAsync(ctx context.Context, evaluationID string) {
	defer func() {
		if r := recover(); r != nil {
			s.failEvaluation(ctx, evaluationID, fmt.Errorf("panic: %v", r), nil)
		}
	}()
	_ = s.process(ctx, evaluationID)
}

func (s *Service) process(ctx context.Context, evaluationID string) error {
	startedAt := time.Now().UTC()
	if err := s.Repo.MarkProcessing(ctx, evaluationID, startedAt); err != nil {
		err = fmt.Errorf("set processing failed: %w", err)
		s.failEvaluation(ctx, evaluationID, err, &startedAt)
		return err
	}

	ev, err := s.Repo.GetByID(ctx, evaluationID)
	if err != nil {
		err = fmt.Errorf("evaluation lookup: %w", err)
		s.failEvaluation(ctx, evaluationID, err, &startedAt)
		return err
	}
	metrics.IncEvaluationStarted()
	telemetry.Info("evaluation.status", map[string]any{
		"request_id":        requestIDFromContext(ctx),
		"evaluation_id":     ev.ID,
		"resume_id":         ev.ResumeID,
		"job_id":            ev.JobID,
		"status":            StatusProcessing,
		"status_transition": "queued->processing",
	})

	cand, err := s.Resumes.GetByID(ctx, ev.ResumeID)
	if err != nil {
		err = fmt.Errorf("resume lookup id=%s: %w", ev.ResumeID, err)
		s.failEvaluation(ctx, evaluationID, err, &startedAt)
		return err
	}
	job, err := s.Jobs.GetByID(ctx, ev.JobID)
	if err != nil {
		err = fmt.Errorf("job lookup id=%s: %w", ev.JobID, err)
		s.failEvaluation(ctx, evaluationID, err, &startedAt)
		return err
	}

	resumeDoc := cand.Parsed
	if resumeDoc.CleanedText == "" {
		resumeDoc = parser.ParseResume(cand.RawText)
	}
	jobDoc := job.Parsed
	if jobDoc.CleanedText == "" {
		jobDoc = parser.ParseJobDescription(job.RawText)
	}

	hard := s.Hard.Calculate(resumeDoc, jobDoc)

	generator := newRetryingLLM(s.LLM, evaluationID, requestIDFromContext(ctx))
	semanticMatcher := match.NewSemanticMatcher(s.Embedder, generator, s.SemanticThreshold)
	semantic := semanticMatcher.Calculate(ctx, resumeDoc, jobDoc)

	analysis := s.Engine.Analyze(hard, semantic)

	completedAt := time.Now().UTC()
	ev.FinalScore = analysis.FinalScore
	ev.PercentageScore = analysis.PercentageScore
	ev.Verdict = analysis.Verdict
	ev.HardMatchScore = hard.Score
	ev.SemanticScore = semantic.Score
	ev.ConfidenceScore = analysis.ConfidenceScore
	ev.Missing = analysis.Missing
	ev.Suggestions = analysis.Suggestions
	ev.Strengths = analysis.Strengths
	ev.Details = map[string]any{
		"hardMatch":            hard,
		"semanticMatch":        semantic,
		"scoreBreakdown":       analysis.Breakdown,
		"experienceAssessment": analysis.ExperienceAssessment,
		"summary":              scoring.Summary(analysis),
		"analysisTimestamp":    analysis.Timestamp,
	}
	ev.CompletedAt = &completedAt

	if err := s.Repo.SaveResult(ctx, ev); err != nil {
		err = fmt.Errorf("set evaluation result failed: %w", err)
		s.failEvaluation(ctx, evaluationID, err, &startedAt)
		return err
	}

	metrics.IncEvaluationCompleted()
	metrics.ObserveEvaluationDurationMs(durationMs(&startedAt, &completedAt))
	telemetry.Info("evaluation.status", map[string]any{
		"request_id":        requestIDFromContext(ctx),
		"evaluation_id":     ev.ID,
		"resume_id":         ev.ResumeID,
		"job_id":            ev.JobID,
		"status":            StatusCompleted,
		"status_transition": "processing->completed",
		"verdict":           ev.Verdict,
		"relevance_score":   ev.PercentageScore,
		"duration_ms":       durationMs(&startedAt, &completedAt),
	})
	return nil
}

func (s *Service) failEvaluation(ctx context.Context, evaluationID string, err error, startedAt *time.Time) {
	code, retryable := classifyFailure(err)
	msg := sanitizeError(err)
	completedAt := time.Now().UTC()
	if updateErr := s.Repo.MarkFailed(context.Background(), evaluationID, code, msg, retryable, completedAt); updateErr != nil {
		telemetry.Error("evaluation.fail_update", map[string]any{
			"evaluation_id": evaluationID,
			"error":         updateErr.Error(),
			"original":      msg,
		})
	}
	metrics.IncEvaluationFailed()
	if startedAt != nil {
		metrics.ObserveEvaluationDurationMs(durationMs(startedAt, &completedAt))
	}
	telemetry.Info("evaluation.status", map[string]any{
		"request_id":        requestIDFromContext(ctx),
		"evaluation_id":     evaluationID,
		"status":            StatusFailed,
		"status_transition": "processing->failed",
		"error_code":        code,
		"retryable":         retryable,
		"duration_ms":       durationMs(startedAt, &completedAt),
	})
}

func durationMs(startedAt, completedAt *time.Time) float64 {
	if startedAt == nil || completedAt == nil {
		return 0
	}
	return float64(completedAt.Sub(*startedAt).Microseconds()) / 1000.0
}

func classifyFailure(err error) (string, bool) {
	if err == nil {
		return ErrorCodeInternal, false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorCodeLLMTimeout, true
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "timeout") && strings.Contains(msg, "llm") {
		return ErrorCodeLLMTimeout, true
	}
	if strings.Contains(msg, "parse") || strings.Contains(msg, "extract") || strings.Contains(msg, "unsupported mime") {
		return ErrorCodeParse, false
	}
	if strings.Contains(msg, "validation") {
		return ErrorCodeValidation, false
	}
	if strings.Contains(msg, "lookup") || strings.Contains(msg, "enqueue") ||
		strings.Contains(msg, "set processing") || strings.Contains(msg, "evaluation result") {
		return ErrorCodeStorage, true
	}
	return ErrorCodeInternal, false
}

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.ReplaceAll(err.Error(), "\n", " ")
	msg = strings.ReplaceAll(msg, "\r", " ")
	msg = strings.TrimSpace(msg)
	const maxLen = 500
	if len(msg) > maxLen {
		msg = msg[:maxLen]
	}
	return msg
}

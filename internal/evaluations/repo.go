package evaluations

import (
	"context"
	"time"
)

// ResultFilter narrows ranked-result listings.
type ResultFilter struct {
	MinScore float64
	Verdict  string
	Limit    int
	Offset   int
}

// Repo defines persistence operations for evaluations.
type Repo interface {
	Create(ctx context.Context, ev Evaluation) error
	GetByID(ctx context.Context, evaluationID string) (Evaluation, error)
	MarkProcessing(ctx context.Context, evaluationID string, startedAt time.Time) error
	SaveResult(ctx context.Context, ev Evaluation) error
	MarkFailed(ctx context.Context, evaluationID, code, message string, retryable bool, completedAt time.Time) error
	ListByJob(ctx context.Context, jobID string, filter ResultFilter) ([]Evaluation, error)
	ListByResume(ctx context.Context, resumeID string, limit, offset int) ([]Evaluation, error)
	Stats(ctx context.Context) (Stats, error)
}

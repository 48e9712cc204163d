package evaluations

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Evaluation
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Evaluation)}
}

// Create stores a new evaluation.
func (r *MemoryRepo) Create(ctx context.Context, ev Evaluation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[ev.ID] = ev
	return nil
}

// GetByID returns an evaluation by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, evaluationID string) (Evaluation, error) {
	if err := ctx.Err(); err != nil {
		return Evaluation{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	ev, ok := r.data[evaluationID]
	if !ok {
		return Evaluation{}, ErrNotFound
	}
	return ev, nil
}

// MarkProcessing transitions an evaluation to processing.
func (r *MemoryRepo) MarkProcessing(ctx context.Context, evaluationID string, startedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	ev, ok := r.data[evaluationID]
	if !ok {
		return ErrNotFound
	}
	ev.Status = StatusProcessing
	ev.StartedAt = &startedAt
	r.data[evaluationID] = ev
	return nil
}

// SaveResult stores a completed evaluation.
func (r *MemoryRepo) SaveResult(ctx context.Context, ev Evaluation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.data[ev.ID]
	if !ok {
		return ErrNotFound
	}
	ev.Status = StatusCompleted
	ev.ErrorCode = ""
	ev.ErrorMessage = ""
	ev.Retryable = false
	ev.CreatedAt = stored.CreatedAt
	ev.StartedAt = stored.StartedAt
	r.data[ev.ID] = ev
	return nil
}

// MarkFailed transitions an evaluation to failed.
func (r *MemoryRepo) MarkFailed(ctx context.Context, evaluationID, code, message string, retryable bool, completedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	ev, ok := r.data[evaluationID]
	if !ok {
		return ErrNotFound
	}
	ev.Status = StatusFailed
	ev.ErrorCode = code
	ev.ErrorMessage = message
	ev.Retryable = retryable
	ev.CompletedAt = &completedAt
	r.data[evaluationID] = ev
	return nil
}

// ListByJob returns completed evaluations for a job ranked by score.
func (r *MemoryRepo) ListByJob(ctx context.Context, jobID string, filter ResultFilter) ([]Evaluation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	var out []Evaluation
	for _, ev := range r.data {
		if ev.JobID != jobID || ev.Status != StatusCompleted {
			continue
		}
		if ev.FinalScore < filter.MinScore {
			continue
		}
		if filter.Verdict != "" && ev.Verdict != filter.Verdict {
			continue
		}
		out = append(out, ev)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].FinalScore == out[j].FinalScore {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].FinalScore > out[j].FinalScore
	})

	return paginate(out, filter.Limit, filter.Offset), nil
}

// ListByResume returns evaluations for a resume, newest-first.
func (r *MemoryRepo) ListByResume(ctx context.Context, resumeID string, limit, offset int) ([]Evaluation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	var out []Evaluation
	for _, ev := range r.data {
		if ev.ResumeID == resumeID {
			out = append(out, ev)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return paginate(out, limit, offset), nil
}

// Stats aggregates evaluation counts and the average completed score.
func (r *MemoryRepo) Stats(ctx context.Context) (Stats, error) {
	if err := ctx.Err(); err != nil {
		return Stats{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var s Stats
	var scoreSum float64
	for _, ev := range r.data {
		s.Total++
		switch ev.Status {
		case StatusQueued:
			s.Queued++
		case StatusProcessing:
			s.Processing++
		case StatusCompleted:
			s.Completed++
			scoreSum += ev.FinalScore
		case StatusFailed:
			s.Failed++
		}
		switch ev.Verdict {
		case "High":
			s.HighVerdicts++
		case "Medium":
			s.MediumVerdicts++
		case "Low":
			s.LowVerdicts++
		}
	}
	if s.Completed > 0 {
		s.AverageScore = scoreSum / float64(s.Completed)
	}
	return s, nil
}

func paginate(evals []Evaluation, limit, offset int) []Evaluation {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = 20
	}
	if offset >= len(evals) {
		return []Evaluation{}
	}
	end := len(evals)
	if offset+limit < end {
		end = offset + limit
	}
	return evals[offset:end]
}

var _ Repo = (*MemoryRepo)(nil)

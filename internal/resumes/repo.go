package resumes

import "context"

// Repo defines persistence operations for resumes.
type Repo interface {
	Create(ctx context.Context, cand Candidate) error
	GetByID(ctx context.Context, resumeID string) (Candidate, error)
	List(ctx context.Context, limit, offset int) ([]Candidate, error)
}

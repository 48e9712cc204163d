package resumes

import (
	"time"

	"relevance-backend/internal/parser"
)

// Candidate is a stored resume together with its parsed structure.
type Candidate struct {
	ID             string
	FileName       string
	CandidateName  string
	CandidateEmail string
	StorageKey     string
	RawText        string
	Parsed         parser.Resume
	CreatedAt      time.Time
}

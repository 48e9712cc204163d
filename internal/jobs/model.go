package jobs

import (
	"time"

	"relevance-backend/internal/parser"
)

// Job is a stored job description together with its parsed structure.
type Job struct {
	ID        string
	Title     string
	Company   string
	Location  string
	RawText   string
	Parsed    parser.JobDescription
	CreatedAt time.Time
}

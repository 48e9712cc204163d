package jobs

import (
	"time"

	"relevance-backend/internal/parser"
)

// JobResponse is the API shape for a job description.
type JobResponse struct {
	ID        string                `json:"id"`
	Title     string                `json:"title"`
	Company   string                `json:"company,omitempty"`
	Location  string                `json:"location,omitempty"`
	Parsed    parser.JobDescription `json:"parsed"`
	CreatedAt time.Time             `json:"createdAt"`
}

func toResponse(job Job) JobResponse {
	return JobResponse{
		ID:        job.ID,
		Title:     job.Title,
		Company:   job.Company,
		Location:  job.Location,
		Parsed:    job.Parsed,
		CreatedAt: job.CreatedAt,
	}
}

package resumes

import (
	"time"

	"relevance-backend/internal/parser"
)

// CandidateResponse is the API shape for a stored resume.
type CandidateResponse struct {
	ID             string        `json:"id"`
	FileName       string        `json:"fileName"`
	CandidateName  string        `json:"candidateName,omitempty"`
	CandidateEmail string        `json:"candidateEmail,omitempty"`
	Parsed         parser.Resume `json:"parsed"`
	CreatedAt      time.Time     `json:"createdAt"`
}

func toResponse(cand Candidate) CandidateResponse {
	return CandidateResponse{
		ID:             cand.ID,
		FileName:       cand.FileName,
		CandidateName:  cand.CandidateName,
		CandidateEmail: cand.CandidateEmail,
		Parsed:         cand.Parsed,
		CreatedAt:      cand.CreatedAt,
	}
}

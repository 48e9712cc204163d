package evaluations

import (
	"time"

	"relevance-backend/internal/scoring"
)

// EvaluationResponse is the API shape for an evaluation.
type EvaluationResponse struct {
	ID              string                   `json:"id"`
	ResumeID        string                   `json:"resumeId"`
	JobID           string                   `json:"jobId"`
	Status          string                   `json:"status"`
	FinalScore      *float64                 `json:"finalScore,omitempty"`
	RelevanceScore  *int                     `json:"relevanceScore,omitempty"`
	Verdict         string                   `json:"verdict,omitempty"`
	HardMatchScore  *float64                 `json:"hardMatchScore,omitempty"`
	SemanticScore   *float64                 `json:"semanticScore,omitempty"`
	ConfidenceScore *float64                 `json:"confidenceScore,omitempty"`
	Missing         *scoring.MissingElements `json:"missingElements,omitempty"`
	Suggestions     []string                 `json:"improvementSuggestions,omitempty"`
	Strengths       []string                 `json:"strengths,omitempty"`
	Details         map[string]any           `json:"details,omitempty"`
	ErrorCode       string                   `json:"errorCode,omitempty"`
	ErrorMessage    string                   `json:"errorMessage,omitempty"`
	Retryable       *bool                    `json:"retryable,omitempty"`
	CreatedAt       time.Time                `json:"createdAt"`
	CompletedAt     *time.Time               `json:"completedAt,omitempty"`
}

func toResponse(ev Evaluation) EvaluationResponse {
	resp := EvaluationResponse{
		ID:        ev.ID,
		ResumeID:  ev.ResumeID,
		JobID:     ev.JobID,
		Status:    ev.Status,
		CreatedAt: ev.CreatedAt,
	}

	switch ev.Status {
	case StatusCompleted:
		missing := ev.Missing
		resp.FinalScore = &ev.FinalScore
		resp.RelevanceScore = &ev.PercentageScore
		resp.Verdict = ev.Verdict
		resp.HardMatchScore = &ev.HardMatchScore
		resp.SemanticScore = &ev.SemanticScore
		resp.ConfidenceScore = &ev.ConfidenceScore
		resp.Missing = &missing
		resp.Suggestions = ev.Suggestions
		resp.Strengths = ev.Strengths
		resp.Details = ev.Details
		resp.CompletedAt = ev.CompletedAt
	case StatusFailed:
		retryable := ev.Retryable
		resp.ErrorCode = ev.ErrorCode
		resp.ErrorMessage = ev.ErrorMessage
		resp.Retryable = &retryable
		resp.CompletedAt = ev.CompletedAt
	}

	return resp
}

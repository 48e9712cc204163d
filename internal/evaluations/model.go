package evaluations

import (
	"time"

	"relevance-backend/internal/scoring"
)

// Evaluation represents one resume scored against one job description.
type Evaluation struct {
	ID              string
	ResumeID        string
	JobID           string
	Status          string
	FinalScore      float64
	PercentageScore int
	Verdict         string
	HardMatchScore  float64
	SemanticScore   float64
	ConfidenceScore float64
	Missing         scoring.MissingElements
	Suggestions     []string
	Strengths       []string
	Details         map[string]any
	ErrorCode       string
	ErrorMessage    string
	Retryable       bool
	CreatedAt       time.Time
	StartedAt       *time.Time
	CompletedAt     *time.Time
}

// Stats summarizes stored evaluations for the dashboard endpoint.
type Stats struct {
	Total          int     `json:"total"`
	Queued         int     `json:"queued"`
	Processing     int     `json:"processing"`
	Completed      int     `json:"completed"`
	Failed         int     `json:"failed"`
	AverageScore   float64 `json:"averageScore"`
	HighVerdicts   int     `json:"highVerdicts"`
	MediumVerdicts int     `json:"mediumVerdicts"`
	LowVerdicts    int     `json:"lowVerdicts"`
}

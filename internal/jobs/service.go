package jobs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"relevance-backend/internal/extract"
	"relevance-backend/internal/parser"
	"relevance-backend/internal/shared/storage/object"
	"relevance-backend/internal/shared/telemetry"
)

// Service contains business logic for job descriptions.
type Service struct {
	Store object.ObjectStore
	Repo  Repo
}

// CreateFromText parses a raw job description and persists it.
func (s *Service) CreateFromText(ctx context.Context, rawText string) (Job, error) {
	if strings.TrimSpace(rawText) == "" {
		return Job{}, fmt.Errorf("%w: job description text is required", ErrInvalidInput)
	}

	parsed := parser.ParseJobDescription(rawText)
	job := Job{
		ID:        uuid.NewString(),
		Title:     parsed.JobTitle,
		Company:   parsed.Company.Name,
		Location:  parsed.Company.Location,
		RawText:   rawText,
		Parsed:    parsed,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.Repo.Create(ctx, job); err != nil {
		return Job{}, err
	}

	telemetry.Info("job.created", map[string]any{
		"job_id":          job.ID,
		"title":           job.Title,
		"required_skills": len(parsed.RequiredSkills),
	})
	return job, nil
}

// Upload stores an uploaded job description file, extracts its text and
// persists the parsed result.
func (s *Service) Upload(ctx context.Context, fileName string, r io.Reader) (Job, error) {
	if fileName == "" {
		return Job{}, fmt.Errorf("%w: file name is required", ErrInvalidInput)
	}
	if r == nil {
		return Job{}, fmt.Errorf("%w: file content is required", ErrInvalidInput)
	}
	if s.Store == nil {
		return Job{}, errors.New("object store not configured")
	}

	storageKey, _, mimeType, err := s.Store.Save(ctx, "jobs", fileName, r)
	if err != nil {
		return Job{}, err
	}

	rawText, err := extract.ExtractText(ctx, s.Store, storageKey, mimeType, fileName)
	if err != nil {
		return Job{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return s.CreateFromText(ctx, rawText)
}

// Get returns a job description by ID.
func (s *Service) Get(ctx context.Context, jobID string) (Job, error) {
	if jobID == "" {
		return Job{}, fmt.Errorf("%w: job id is required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, jobID)
}

// List returns job descriptions newest-first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]Job, error) {
	return s.Repo.List(ctx, limit, offset)
}

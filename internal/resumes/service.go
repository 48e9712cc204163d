package resumes

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

// Service contains business logic for resumes.
type Service struct {
	Store object.ObjectStore
	Repo  Repo
}

// Upload stores an uploaded resume file, extracts its text and persists the
// parsed result.
func (s *Service) Upload(ctx context.Context, fileName string, r io.Reader) (Candidate, error) {
	if fileName == "" {
		return Candidate{}, fmt.Errorf("%w: file name is required", ErrInvalidInput)
	}
	if r == nil {
		return Candidate{}, fmt.Errorf("%w: file content is required", ErrInvalidInput)
	}
	if s.Store == nil {
		return Candidate{}, errors.New("object store not configured")
	}

	storageKey, _, mimeType, err := s.Store.Save(ctx, "resumes", fileName, r)
	if err != nil {
		return Candidate{}, err
	}

	rawText, err := extract.ExtractText(ctx, s.Store, storageKey, mimeType, fileName)
	if err != nil {
		return Candidate{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return s.createFromText(ctx, fileName, storageKey, rawText)
}

// CreateFromText parses raw resume text and persists it. Used when the text
// is already available, such as paste-in flows.
func (s *Service) CreateFromText(ctx context.Context, fileName, rawText string) (Candidate, error) {
	if strings.TrimSpace(rawText) == "" {
		return Candidate{}, fmt.Errorf("%w: resume text is required", ErrInvalidInput)
	}
	if fileName == "" {
		fileName = "resume.txt"
	}
	return s.createFromText(ctx, fileName, "", rawText)
}

func (s *Service) createFromText(ctx context.Context, fileName, storageKey, rawText string) (Candidate, error) {
	parsed := parser.ParseResume(rawText)

	cand := Candidate{
		ID:             uuid.NewString(),
		FileName:       fileName,
		CandidateName:  parsed.Contact.Name,
		CandidateEmail: parsed.Contact.Email,
		StorageKey:     storageKey,
		RawText:        rawText,
		Parsed:         parsed,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.Repo.Create(ctx, cand); err != nil {
		return Candidate{}, err
	}

	telemetry.Info("resume.created", map[string]any{
		"resume_id": cand.ID,
		"file_name": cand.FileName,
		"skills":    len(parsed.Skills),
	})
	return cand, nil
}

// Get returns a resume by ID.
func (s *Service) Get(ctx context.Context, resumeID string) (Candidate, error) {
	if resumeID == "" {
		return Candidate{}, fmt.Errorf("%w: resume id is required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, resumeID)
}

// List returns resumes newest-first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]Candidate, error) {
	return s.Repo.List(ctx, limit, offset)
}

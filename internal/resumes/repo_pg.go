package resumes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"relevance-backend/internal/parser"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new resume.
func (r *PGRepo) Create(ctx context.Context, cand Candidate) error {
	const query = `
INSERT INTO resumes (id, file_name, candidate_name, candidate_email, storage_key, raw_text, parsed, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	parsed, err := json.Marshal(cand.Parsed)
	if err != nil {
		return err
	}

	var name sql.NullString
	if cand.CandidateName != "" {
		name = sql.NullString{String: cand.CandidateName, Valid: true}
	}
	var email sql.NullString
	if cand.CandidateEmail != "" {
		email = sql.NullString{String: cand.CandidateEmail, Valid: true}
	}
	var storageKey sql.NullString
	if cand.StorageKey != "" {
		storageKey = sql.NullString{String: cand.StorageKey, Valid: true}
	}

	_, err = r.DB.ExecContext(ctx, query,
		cand.ID,
		cand.FileName,
		name,
		email,
		storageKey,
		cand.RawText,
		parsed,
		cand.CreatedAt,
	)
	return err
}

// GetByID returns a resume by ID.
func (r *PGRepo) GetByID(ctx context.Context, resumeID string) (Candidate, error) {
	const query = `
SELECT id, file_name, candidate_name, candidate_email, storage_key, raw_text, parsed, created_at
FROM resumes
WHERE id = $1
LIMIT 1`

	var cand Candidate
	var name sql.NullString
	var email sql.NullString
	var storageKey sql.NullString
	var parsed sql.NullString
	err := r.DB.QueryRowContext(ctx, query, resumeID).Scan(
		&cand.ID,
		&cand.FileName,
		&name,
		&email,
		&storageKey,
		&cand.RawText,
		&parsed,
		&cand.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Candidate{}, ErrNotFound
		}
		return Candidate{}, err
	}
	if name.Valid {
		cand.CandidateName = name.String
	}
	if email.Valid {
		cand.CandidateEmail = email.String
	}
	if storageKey.Valid {
		cand.StorageKey = storageKey.String
	}
	if parsed.Valid {
		if err := json.Unmarshal([]byte(parsed.String), &cand.Parsed); err != nil {
			cand.Parsed = parser.Resume{}
		}
	}
	return cand, nil
}

// List returns resumes ordered newest-first.
func (r *PGRepo) List(ctx context.Context, limit, offset int) ([]Candidate, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
SELECT id, file_name, candidate_name, candidate_email, storage_key, raw_text, parsed, created_at
FROM resumes
ORDER BY created_at DESC
LIMIT $1 OFFSET $2`

	rows, err := r.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Candidate
	for rows.Next() {
		var cand Candidate
		var name sql.NullString
		var email sql.NullString
		var storageKey sql.NullString
		var parsed sql.NullString
		if err := rows.Scan(
			&cand.ID,
			&cand.FileName,
			&name,
			&email,
			&storageKey,
			&cand.RawText,
			&parsed,
			&cand.CreatedAt,
		); err != nil {
			return nil, err
		}
		if name.Valid {
			cand.CandidateName = name.String
		}
		if email.Valid {
			cand.CandidateEmail = email.String
		}
		if storageKey.Valid {
			cand.StorageKey = storageKey.String
		}
		if parsed.Valid {
			if err := json.Unmarshal([]byte(parsed.String), &cand.Parsed); err != nil {
				cand.Parsed = parser.Resume{}
			}
		}
		out = append(out, cand)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)

package jobs

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

// Create inserts a new job description.
func (r *PGRepo) Create(ctx context.Context, job Job) error {
	const query = `
INSERT INTO job_descriptions (id, title, company, location, raw_text, parsed, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	parsed, err := json.Marshal(job.Parsed)
	if err != nil {
		return err
	}

	var company sql.NullString
	if job.Company != "" {
		company = sql.NullString{String: job.Company, Valid: true}
	}
	var location sql.NullString
	if job.Location != "" {
		location = sql.NullString{String: job.Location, Valid: true}
	}

	_, err = r.DB.ExecContext(ctx, query,
		job.ID,
		job.Title,
		company,
		location,
		job.RawText,
		parsed,
		job.CreatedAt,
	)
	return err
}

// GetByID returns a job description by ID.
func (r *PGRepo) GetByID(ctx context.Context, jobID string) (Job, error) {
	const query = `
SELECT id, title, company, location, raw_text, parsed, created_at
FROM job_descriptions
WHERE id = $1
LIMIT 1`

	var job Job
	var company sql.NullString
	var location sql.NullString
	var parsed sql.NullString
	err := r.DB.QueryRowContext(ctx, query, jobID).Scan(
		&job.ID,
		&job.Title,
		&company,
		&location,
		&job.RawText,
		&parsed,
		&job.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Job{}, ErrNotFound
		}
		return Job{}, err
	}
	if company.Valid {
		job.Company = company.String
	}
	if location.Valid {
		job.Location = location.String
	}
	if parsed.Valid {
		if err := json.Unmarshal([]byte(parsed.String), &job.Parsed); err != nil {
			job.Parsed = parser.JobDescription{}
		}
	}
	return job, nil
}

// List returns job descriptions ordered newest-first.
func (r *PGRepo) List(ctx context.Context, limit, offset int) ([]Job, error) {
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
SELECT id, title, company, location, raw_text, parsed, created_at
FROM job_descriptions
ORDER BY created_at DESC
LIMIT $1 OFFSET $2`

	rows, err := r.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Job
	for rows.Next() {
		var job Job
		var company sql.NullString
		var location sql.NullString
		var parsed sql.NullString
		if err := rows.Scan(
			&job.ID,
			&job.Title,
			&company,
			&location,
			&job.RawText,
			&parsed,
			&job.CreatedAt,
		); err != nil {
			return nil, err
		}
		if company.Valid {
			job.Company = company.String
		}
		if location.Valid {
			job.Location = location.String
		}
		if parsed.Valid {
			if err := json.Unmarshal([]byte(parsed.String), &job.Parsed); err != nil {
				job.Parsed = parser.JobDescription{}
			}
		}
		out = append(out, job)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)

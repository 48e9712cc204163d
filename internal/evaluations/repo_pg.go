package evaluations

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new evaluation in queued state.
func (r *PGRepo) Create(ctx context.Context, ev Evaluation) error {
	const query = `
INSERT INTO evaluations (id, resume_id, job_description_id, status, created_at)
VALUES ($1, $2, $3, $4, $5)`
	_, err := r.DB.ExecContext(ctx, query,
		ev.ID,
		ev.ResumeID,
		ev.JobID,
		ev.Status,
		ev.CreatedAt,
	)
	return err
}

const selectColumns = `
id, resume_id, job_description_id, status,
final_score, percentage_score, verdict,
hard_match_score, semantic_score, confidence_score,
missing_elements, suggestions, strengths, details,
error_code, error_message, retryable,
created_at, started_at, completed_at`

// GetByID returns an evaluation by ID.
func (r *PGRepo) GetByID(ctx context.Context, evaluationID string) (Evaluation, error) {
	query := `SELECT ` + selectColumns + `
FROM evaluations
WHERE id = $1
LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, evaluationID)
	ev, err := scanEvaluation(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Evaluation{}, ErrNotFound
		}
		return Evaluation{}, err
	}
	return ev, nil
}

// MarkProcessing transitions a queued evaluation to processing.
func (r *PGRepo) MarkProcessing(ctx context.Context, evaluationID string, startedAt time.Time) error {
	const query = `
UPDATE evaluations
SET status = $1, started_at = $2
WHERE id = $3`
	res, err := r.DB.ExecContext(ctx, query, StatusProcessing, startedAt, evaluationID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// SaveResult stores a completed evaluation.
func (r *PGRepo) SaveResult(ctx context.Context, ev Evaluation) error {
	const query = `
UPDATE evaluations
SET status = $1,
    final_score = $2,
    percentage_score = $3,
    verdict = $4,
    hard_match_score = $5,
    semantic_score = $6,
    confidence_score = $7,
    missing_elements = $8,
    suggestions = $9,
    strengths = $10,
    details = $11,
    error_code = NULL,
    error_message = NULL,
    retryable = NULL,
    completed_at = $12
WHERE id = $13`

	missing, err := json.Marshal(ev.Missing)
	if err != nil {
		return err
	}
	suggestions, err := json.Marshal(ev.Suggestions)
	if err != nil {
		return err
	}
	strengths, err := json.Marshal(ev.Strengths)
	if err != nil {
		return err
	}
	details, err := json.Marshal(ev.Details)
	if err != nil {
		return err
	}

	res, err := r.DB.ExecContext(ctx, query,
		StatusCompleted,
		ev.FinalScore,
		ev.PercentageScore,
		ev.Verdict,
		ev.HardMatchScore,
		ev.SemanticScore,
		ev.ConfidenceScore,
		missing,
		suggestions,
		strengths,
		details,
		ev.CompletedAt,
		ev.ID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkFailed transitions an evaluation to failed with the classified error.
func (r *PGRepo) MarkFailed(ctx context.Context, evaluationID, code, message string, retryable bool, completedAt time.Time) error {
	const query = `
UPDATE evaluations
SET status = $1, error_code = $2, error_message = $3, retryable = $4, completed_at = $5
WHERE id = $6`
	_, err := r.DB.ExecContext(ctx, query, StatusFailed, code, message, retryable, completedAt, evaluationID)
	return err
}

// ListByJob returns completed evaluations for a job ranked by score.
func (r *PGRepo) ListByJob(ctx context.Context, jobID string, filter ResultFilter) ([]Evaluation, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + selectColumns + `
FROM evaluations
WHERE job_description_id = $1 AND status = $2 AND COALESCE(final_score, 0) >= $3`
	args := []any{jobID, StatusCompleted, filter.MinScore}
	if filter.Verdict != "" {
		query += ` AND verdict = $4`
		args = append(args, filter.Verdict)
	}
	query += `
ORDER BY final_score DESC, created_at ASC
LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Evaluation
	for rows.Next() {
		ev, err := scanEvaluation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

// ListByResume returns evaluations for a resume, newest-first.
func (r *PGRepo) ListByResume(ctx context.Context, resumeID string, limit, offset int) ([]Evaluation, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	query := `SELECT ` + selectColumns + `
FROM evaluations
WHERE resume_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, resumeID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Evaluation
	for rows.Next() {
		ev, err := scanEvaluation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

// Stats aggregates evaluation counts and the average completed score.
func (r *PGRepo) Stats(ctx context.Context) (Stats, error) {
	const query = `
SELECT
    COUNT(*),
    COUNT(*) FILTER (WHERE status = 'queued'),
    COUNT(*) FILTER (WHERE status = 'processing'),
    COUNT(*) FILTER (WHERE status = 'completed'),
    COUNT(*) FILTER (WHERE status = 'failed'),
    COALESCE(AVG(final_score) FILTER (WHERE status = 'completed'), 0),
    COUNT(*) FILTER (WHERE verdict = 'High'),
    COUNT(*) FILTER (WHERE verdict = 'Medium'),
    COUNT(*) FILTER (WHERE verdict = 'Low')
FROM evaluations`

	var s Stats
	err := r.DB.QueryRowContext(ctx, query).Scan(
		&s.Total,
		&s.Queued,
		&s.Processing,
		&s.Completed,
		&s.Failed,
		&s.AverageScore,
		&s.HighVerdicts,
		&s.MediumVerdicts,
		&s.LowVerdicts,
	)
	return s, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvaluation(row rowScanner) (Evaluation, error) {
	var ev Evaluation
	var finalScore sql.NullFloat64
	var percentage sql.NullInt64
	var verdict sql.NullString
	var hardScore sql.NullFloat64
	var semanticScore sql.NullFloat64
	var confidence sql.NullFloat64
	var missing sql.NullString
	var suggestions sql.NullString
	var strengths sql.NullString
	var details sql.NullString
	var errorCode sql.NullString
	var errorMessage sql.NullString
	var retryable sql.NullBool
	var startedAt sql.NullTime
	var completedAt sql.NullTime

	err := row.Scan(
		&ev.ID,
		&ev.ResumeID,
		&ev.JobID,
		&ev.Status,
		&finalScore,
		&percentage,
		&verdict,
		&hardScore,
		&semanticScore,
		&confidence,
		&missing,
		&suggestions,
		&strengths,
		&details,
		&errorCode,
		&errorMessage,
		&retryable,
		&ev.CreatedAt,
		&startedAt,
		&completedAt,
	)
	if err != nil {
		return Evaluation{}, err
	}

	if finalScore.Valid {
		ev.FinalScore = finalScore.Float64
	}
	if percentage.Valid {
		ev.PercentageScore = int(percentage.Int64)
	}
	if verdict.Valid {
		ev.Verdict = verdict.String
	}
	if hardScore.Valid {
		ev.HardMatchScore = hardScore.Float64
	}
	if semanticScore.Valid {
		ev.SemanticScore = semanticScore.Float64
	}
	if confidence.Valid {
		ev.ConfidenceScore = confidence.Float64
	}
	if missing.Valid {
		_ = json.Unmarshal([]byte(missing.String), &ev.Missing)
	}
	if suggestions.Valid {
		_ = json.Unmarshal([]byte(suggestions.String), &ev.Suggestions)
	}
	if strengths.Valid {
		_ = json.Unmarshal([]byte(strengths.String), &ev.Strengths)
	}
	if details.Valid {
		_ = json.Unmarshal([]byte(details.String), &ev.Details)
	}
	if errorCode.Valid {
		ev.ErrorCode = errorCode.String
	}
	if errorMessage.Valid {
		ev.ErrorMessage = errorMessage.String
	}
	if retryable.Valid {
		ev.Retryable = retryable.Bool
	}
	if startedAt.Valid {
		ev.StartedAt = &startedAt.Time
	}
	if completedAt.Valid {
		ev.CompletedAt = &completedAt.Time
	}
	return ev, nil
}

var _ Repo = (*PGRepo)(nil)

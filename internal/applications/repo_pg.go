package applications

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"jobmatch-backend/internal/matching"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const applicationColumns = `
id, job_id, applicant_id, applicant_name, applicant_email, job_title, company_name,
resume_data, status, notes, match_score, analysis, rejection_feedback,
acceptance_feedback, analyzed_at, reanalyzed_at, created_at, updated_at`

// Create inserts a new application.
func (r *PGRepo) Create(ctx context.Context, app Application) error {
	const query = `
INSERT INTO applications (
	id, job_id, applicant_id, applicant_name, applicant_email, job_title,
	company_name, resume_data, status, notes, created_at, updated_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.DB.ExecContext(ctx, query,
		app.ID,
		app.JobID,
		app.ApplicantID,
		app.ApplicantName,
		app.ApplicantEmail,
		app.JobTitle,
		app.CompanyName,
		app.ResumeData,
		app.Status,
		app.Notes,
		app.CreatedAt,
		app.UpdatedAt,
	)
	return err
}

// GetByID returns an application by ID.
func (r *PGRepo) GetByID(ctx context.Context, applicationID string) (Application, error) {
	query := `SELECT ` + applicationColumns + `
FROM applications
WHERE id = $1
LIMIT 1`

	row := r.DB.QueryRowContext(ctx, query, applicationID)
	app, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Application{}, ErrNotFound
		}
		return Application{}, err
	}
	return app, nil
}

// ListByJob returns all applications for a job, oldest first.
func (r *PGRepo) ListByJob(ctx context.Context, jobID string) ([]Application, error) {
	query := `SELECT ` + applicationColumns + `
FROM applications
WHERE job_id = $1
ORDER BY created_at ASC`

	rows, err := r.DB.QueryContext(ctx, query, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, app)
	}
	return out, rows.Err()
}

// SaveAnalysis overwrites the stored analysis JSONB and denormalized score.
func (r *PGRepo) SaveAnalysis(ctx context.Context, applicationID string, result matching.AnalysisResult, analyzedAt time.Time, reanalysis bool) error {
	const query = `
UPDATE applications
SET analysis = $1::jsonb,
    match_score = $2,
    analyzed_at = CASE WHEN $3 THEN analyzed_at ELSE $4 END,
    reanalyzed_at = CASE WHEN $3 THEN $4 ELSE reanalyzed_at END,
    updated_at = now()
WHERE id = $5`

	payload, err := json.Marshal(result)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx, query, payload, result.OverallMatchScore, reanalysis, analyzedAt, applicationID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateStatus sets status and recruiter notes.
func (r *PGRepo) UpdateStatus(ctx context.Context, applicationID, status, notes string) error {
	const query = `
UPDATE applications
SET status = $1,
    notes = $2,
    updated_at = now()
WHERE id = $3`

	res, err := r.DB.ExecContext(ctx, query, status, notes, applicationID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// SaveRejectionFeedback stores drafted rejection feedback.
func (r *PGRepo) SaveRejectionFeedback(ctx context.Context, applicationID, feedback string) error {
	const query = `
UPDATE applications
SET rejection_feedback = $1,
    updated_at = now()
WHERE id = $2`
	return r.execFeedback(ctx, query, applicationID, feedback)
}

// SaveAcceptanceFeedback stores drafted acceptance feedback.
func (r *PGRepo) SaveAcceptanceFeedback(ctx context.Context, applicationID, feedback string) error {
	const query = `
UPDATE applications
SET acceptance_feedback = $1,
    updated_at = now()
WHERE id = $2`
	return r.execFeedback(ctx, query, applicationID, feedback)
}

func (r *PGRepo) execFeedback(ctx context.Context, query, applicationID, feedback string) error {
	res, err := r.DB.ExecContext(ctx, query, feedback, applicationID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

var _ Repo = (*PGRepo)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanApplication(row rowScanner) (Application, error) {
	var app Application
	var matchScore sql.NullInt64
	var analysis sql.NullString
	var rejectionFeedback sql.NullString
	var acceptanceFeedback sql.NullString
	var analyzedAt sql.NullTime
	var reanalyzedAt sql.NullTime

	err := row.Scan(
		&app.ID,
		&app.JobID,
		&app.ApplicantID,
		&app.ApplicantName,
		&app.ApplicantEmail,
		&app.JobTitle,
		&app.CompanyName,
		&app.ResumeData,
		&app.Status,
		&app.Notes,
		&matchScore,
		&analysis,
		&rejectionFeedback,
		&acceptanceFeedback,
		&analyzedAt,
		&reanalyzedAt,
		&app.CreatedAt,
		&app.UpdatedAt,
	)
	if err != nil {
		return Application{}, err
	}

	if matchScore.Valid {
		score := int(matchScore.Int64)
		app.MatchScore = &score
	}
	if analysis.Valid {
		var parsed matching.AnalysisResult
		if err := json.Unmarshal([]byte(analysis.String), &parsed); err == nil {
			app.Analysis = &parsed
		}
	}
	if rejectionFeedback.Valid {
		app.RejectionFeedback = &rejectionFeedback.String
	}
	if acceptanceFeedback.Valid {
		app.AcceptanceFeedback = &acceptanceFeedback.String
	}
	if analyzedAt.Valid {
		app.AnalyzedAt = &analyzedAt.Time
	}
	if reanalyzedAt.Valid {
		app.ReanalyzedAt = &reanalyzedAt.Time
	}
	return app, nil
}

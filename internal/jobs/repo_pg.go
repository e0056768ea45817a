package jobs

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"jobmatch-backend/internal/matching"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new job. Skills are stored as a JSONB array.
func (r *PGRepo) Create(ctx context.Context, job Job) error {
	const query = `
INSERT INTO jobs (id, title, company, description, skills, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	skills, err := marshalSkills(job.Skills)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query,
		job.ID,
		job.Title,
		job.Company,
		job.Description,
		skills,
		job.CreatedAt,
	)
	return err
}

// GetByID returns a job by ID.
func (r *PGRepo) GetByID(ctx context.Context, jobID string) (Job, error) {
	const query = `
SELECT id, title, company, description, skills, created_at
FROM jobs
WHERE id = $1
LIMIT 1`

	var job Job
	var skills sql.NullString
	err := r.DB.QueryRowContext(ctx, query, jobID).Scan(
		&job.ID,
		&job.Title,
		&job.Company,
		&job.Description,
		&skills,
		&job.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Job{}, ErrNotFound
		}
		return Job{}, err
	}
	if skills.Valid {
		if err := json.Unmarshal([]byte(skills.String), &job.Skills); err != nil {
			job.Skills = nil
		}
	}
	return job, nil
}

// List returns jobs ordered newest-first.
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
SELECT id, title, company, description, skills, created_at
FROM jobs
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
		var skills sql.NullString
		if err := rows.Scan(
			&job.ID,
			&job.Title,
			&job.Company,
			&job.Description,
			&skills,
			&job.CreatedAt,
		); err != nil {
			return nil, err
		}
		if skills.Valid {
			if err := json.Unmarshal([]byte(skills.String), &job.Skills); err != nil {
				job.Skills = nil
			}
		}
		out = append(out, job)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)

func marshalSkills(skills []matching.Skill) ([]byte, error) {
	if skills == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(skills)
}

package notifications

import (
	"context"
	"database/sql"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new notification.
func (r *PGRepo) Create(ctx context.Context, n Notification) error {
	const query = `
INSERT INTO notifications (id, user_id, type, job_id, job_title, company, status, read, timestamp)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.DB.ExecContext(ctx, query,
		n.ID,
		n.UserID,
		n.Type,
		n.JobID,
		n.JobTitle,
		n.Company,
		n.Status,
		n.Read,
		n.Timestamp,
	)
	return err
}

// ListByUser returns a user's notifications ordered newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Notification, error) {
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
SELECT id, user_id, type, job_id, job_title, company, status, read, timestamp
FROM notifications
WHERE user_id = $1
ORDER BY timestamp DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Notification
	for rows.Next() {
		var n Notification
		if err := rows.Scan(
			&n.ID,
			&n.UserID,
			&n.Type,
			&n.JobID,
			&n.JobTitle,
			&n.Company,
			&n.Status,
			&n.Read,
			&n.Timestamp,
		); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// MarkRead flags a notification as seen.
func (r *PGRepo) MarkRead(ctx context.Context, notificationID string) error {
	const query = `UPDATE notifications SET read = TRUE WHERE id = $1`

	res, err := r.DB.ExecContext(ctx, query, notificationID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

var _ Repo = (*PGRepo)(nil)

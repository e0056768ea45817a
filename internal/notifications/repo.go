package notifications

import "context"

// Repo defines persistence operations for notifications.
type Repo interface {
	Create(ctx context.Context, n Notification) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Notification, error)
	MarkRead(ctx context.Context, notificationID string) error
}

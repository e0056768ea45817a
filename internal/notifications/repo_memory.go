package notifications

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo stores notifications in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu     sync.RWMutex
	byID   map[string]Notification
	byUser map[string][]string
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byID:   make(map[string]Notification),
		byUser: make(map[string][]string),
	}
}

// Create stores the notification.
func (r *MemoryRepo) Create(ctx context.Context, n Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[n.ID] = n
	r.byUser[n.UserID] = append(r.byUser[n.UserID], n.ID)
	return nil
}

// ListByUser returns a user's notifications, newest first.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Notification, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}

	r.mu.RLock()
	ids := r.byUser[userID]
	out := make([]Notification, 0, len(ids))
	for _, id := range ids {
		if n, ok := r.byID[id]; ok {
			out = append(out, n)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})

	if offset >= len(out) {
		return []Notification{}, nil
	}
	end := len(out)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return out[offset:end], nil
}

// MarkRead flags a notification as seen.
func (r *MemoryRepo) MarkRead(ctx context.Context, notificationID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.byID[notificationID]
	if !ok {
		return ErrNotFound
	}
	n.Read = true
	r.byID[notificationID] = n
	return nil
}

var _ Repo = (*MemoryRepo)(nil)

package notifications

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryRepoListNewestFirst(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	base := time.Now().UTC()

	for i, id := range []string{"n1", "n2", "n3"} {
		err := repo.Create(ctx, Notification{
			ID:        id,
			UserID:    "user-1",
			Type:      TypeStatus,
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("Create %s: %v", id, err)
		}
	}

	out, err := repo.ListByUser(ctx, "user-1", 0, 0)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(out) != 3 || out[0].ID != "n3" || out[2].ID != "n1" {
		t.Errorf("unexpected order: %+v", out)
	}
}

func TestMemoryRepoMarkRead(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	if err := repo.Create(ctx, Notification{ID: "n1", UserID: "user-1"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.MarkRead(ctx, "n1"); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	out, err := repo.ListByUser(ctx, "user-1", 0, 0)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(out) != 1 || !out[0].Read {
		t.Errorf("expected read notification, got %+v", out)
	}

	if err := repo.MarkRead(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

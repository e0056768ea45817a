package object

import (
	"context"
	"io"
)

// ObjectStore defines the contract for saving and retrieving derived artifacts
// (extracted resume text copies) under caller-chosen keys.
type ObjectStore interface {
	Save(ctx context.Context, storageKey string, contentType string, r io.Reader) (int64, error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
}

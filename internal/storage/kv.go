// Package storage persists saved weeks and the calculator form state in a key-value store.
package storage

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a key or record does not exist
	ErrNotFound = errors.New("not found")
	// ErrDuplicatePayday is returned when saving a week whose payday is already stored
	ErrDuplicatePayday = errors.New("a week with this payday is already saved")
)

// Keys used by the week store
const (
	KeyWeeks     = "paygo.weeks"
	KeyFormState = "paygo.form_state"
)

// KV is a minimal key-value store holding JSON documents. Writes are last-write-wins.
type KV interface {
	// Get returns the value for key, or ErrNotFound
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value under key, replacing any previous value
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// Backend names accepted by Open
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Open creates a store for the named backend. path is ignored for the memory backend.
func Open(ctx context.Context, backend, path string) (KV, error) {
	switch backend {
	case BackendMemory:
		return NewMemoryKV(), nil
	case BackendFile:
		return NewFileKV(path)
	case BackendSQLite, "":
		return NewSQLiteKV(ctx, path)
	default:
		return nil, fmt.Errorf("unknown storage backend %q (expected memory, file or sqlite)", backend)
	}
}

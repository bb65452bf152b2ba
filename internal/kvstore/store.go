// Package kvstore provides the durable local key-value storage used for user
// preferences. Values are opaque strings; callers choose the encoding.
package kvstore

import (
	"context"
	"fmt"
)

// Driver names accepted by Open.
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// Store is a small string key-value store. Implementations must be safe for
// concurrent use.
type Store interface {
	// Get returns the value stored under key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
	// Close releases resources held by the store.
	Close() error
}

// Open constructs the store for driver rooted at path.
func Open(driver, path string) (Store, error) {
	switch driver {
	case DriverFile, "":
		return NewFileStore(path)
	case DriverSQLite:
		return NewSQLiteStore(path)
	case DriverMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}

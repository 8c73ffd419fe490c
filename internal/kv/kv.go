package kv

import (
	"context"
	"errors"
	"fmt"
)

// Storage is the durable key-value facility behind the book store.
type Storage interface {
	// Get returns the value stored under key. ok is false when the key has
	// never been written.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set overwrites the value stored under key.
	Set(ctx context.Context, key, value string) error

	// Close releases the backend's resources.
	Close() error
}

// ErrClosed is returned by operations on a closed Storage.
var ErrClosed = errors.New("kv: storage closed")

// Backend names accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

// Backends lists the valid backend names.
var Backends = []string{BackendSQLite, BackendFile, BackendMemory}

// Open opens the named backend at path. For the file backend path is a
// directory; for memory it is ignored.
func Open(backend, path string) (Storage, error) {
	switch backend {
	case BackendSQLite:
		return OpenSQLite(path)
	case BackendFile:
		return OpenFile(path)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q: must be one of %v", backend, Backends)
	}
}

func validateKey(key string) error {
	if key == "" {
		return errors.New("kv: empty key")
	}
	return nil
}

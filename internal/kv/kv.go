// Package kv provides durable key/value slots for a single client.
package kv

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned by Get when the key has never been written.
	ErrNotFound = errors.New("kv: key not found")

	// ErrInvalidKey is returned for empty keys or keys containing path
	// separators.
	ErrInvalidKey = errors.New("kv: invalid key")
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Store is a durable key/value store. Values are opaque bytes; Put replaces
// the whole value.
type Store interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Delete(key string) error
	Close() error
}

// Backends lists the supported backend names.
func Backends() []string {
	return []string{BackendFile, BackendSQLite}
}

// Open opens the named backend rooted at dir.
func Open(backend, dir string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendFile:
		return NewFileStore(dir)
	case BackendSQLite:
		return NewSQLiteStore(SQLitePath(dir))
	default:
		return nil, fmt.Errorf("unknown storage backend %q (expected %s)", backend, strings.Join(Backends(), "|"))
	}
}

func validateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("%w: empty", ErrInvalidKey)
	}
	if strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

package store

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrNotFound is returned by repositories when a key does not exist.
var ErrNotFound = errors.New("key not found")

// Repository persists entries for the emulator.
type Repository interface {
	// Get returns the entry for key in namespace or ErrNotFound.
	Get(ctx context.Context, namespace, key string) (*Entry, error)
	// Put creates or replaces the value, keeping CreatedAt of an existing entry.
	Put(ctx context.Context, namespace, key string, value json.RawMessage) error
	// Delete removes the entry. Deleting a missing key is not an error.
	Delete(ctx context.Context, namespace, key string) error
	// List returns the entries of namespace whose key starts with prefix, ordered by key.
	List(ctx context.Context, namespace, prefix string) ([]Entry, error)
	// Namespaces returns every namespace holding at least one key, ordered by name.
	Namespaces(ctx context.Context) ([]Namespace, error)
}

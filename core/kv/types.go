package kv

import (
	"context"
	"encoding/json"
	"errors"
)

// Store is the set of key-value operations offered by the API.
type Store interface {
	// Get retrieves the value stored under key in namespace.
	Get(ctx context.Context, namespace, key string) (*GetResult, error)
	// Put stores value under key in namespace, replacing any previous value.
	Put(ctx context.Context, namespace, key string, value any) (*PutResult, error)
	// Delete removes key from namespace.
	Delete(ctx context.Context, namespace, key string) error
	// List returns the keys of namespace, filtered by prefix when it is not empty.
	List(ctx context.Context, namespace, prefix string) (*ListResult, error)
}

// GetResult is the decoded body of a successful Get.
type GetResult struct {
	// Value is the stored JSON document, exactly as returned by the server.
	Value json.RawMessage `json:"value"`
}

// Decode unmarshals the stored value into v.
func (r *GetResult) Decode(v any) error {
	if err := json.Unmarshal(r.Value, v); err != nil {
		return errors.Join(ErrDeserialization, err)
	}
	return nil
}

// PutResult is the decoded body of a successful Put.
type PutResult struct {
	// Message is the server confirmation, empty when the server sent none.
	Message string `json:"message"`
}

// KeyEntry describes one listed key. Timestamps are only set when the server reports them.
type KeyEntry struct {
	Key       string `json:"key"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// UnmarshalJSON accepts either a bare key string or an object with a "key" field.
func (e *KeyEntry) UnmarshalJSON(data []byte) error {
	var key string
	if err := json.Unmarshal(data, &key); err == nil {
		*e = KeyEntry{Key: key}
		return nil
	}

	type entry KeyEntry
	var obj struct {
		entry
		Key *string `json:"key"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	if obj.Key == nil {
		return errors.New("list entry has no key")
	}

	*e = KeyEntry(obj.entry)
	e.Key = *obj.Key
	return nil
}

// ListResult is the decoded body of a successful List.
type ListResult struct {
	// Keys holds the key names in the order the server returned them.
	Keys []string
	// Entries holds the same keys with any metadata the server attached.
	Entries []KeyEntry
}

// NamespaceInfo describes a namespace owned by the API key's account.
type NamespaceInfo struct {
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt,omitempty"`
}

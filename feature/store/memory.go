package store

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryRepository keeps entries in process memory.
type MemoryRepository struct {
	mu   sync.RWMutex
	data map[string]map[string]Entry
	now  func() time.Time
}

var _ Repository = (*MemoryRepository)(nil)

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		data: make(map[string]map[string]Entry),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (r *MemoryRepository) Get(ctx context.Context, namespace, key string) (*Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.data[namespace][key]
	if !ok {
		return nil, ErrNotFound
	}
	e.Value = append(json.RawMessage(nil), e.Value...)
	return &e, nil
}

func (r *MemoryRepository) Put(ctx context.Context, namespace, key string, value json.RawMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	ns := r.data[namespace]
	if ns == nil {
		ns = make(map[string]Entry)
		r.data[namespace] = ns
	}

	created := now
	if prev, ok := ns[key]; ok {
		created = prev.CreatedAt
	}

	ns[key] = Entry{
		Namespace: namespace,
		Key:       key,
		Value:     append(json.RawMessage(nil), value...),
		CreatedAt: created,
		UpdatedAt: now,
	}
	return nil
}

func (r *MemoryRepository) Delete(ctx context.Context, namespace, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ns, ok := r.data[namespace]; ok {
		delete(ns, key)
		if len(ns) == 0 {
			delete(r.data, namespace)
		}
	}
	return nil
}

func (r *MemoryRepository) List(ctx context.Context, namespace, prefix string) ([]Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]Entry, 0, len(r.data[namespace]))
	for k, e := range r.data[namespace] {
		if strings.HasPrefix(k, prefix) {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries, nil
}

func (r *MemoryRepository) Namespaces(ctx context.Context) ([]Namespace, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Namespace, 0, len(r.data))
	for name, entries := range r.data {
		ns := Namespace{Name: name}
		for _, e := range entries {
			if ns.CreatedAt.IsZero() || e.CreatedAt.Before(ns.CreatedAt) {
				ns.CreatedAt = e.CreatedAt
			}
		}
		out = append(out, ns)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

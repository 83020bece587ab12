package store

import (
	"context"
	"encoding/json"
	"errors"

	"kv-storage/core/kv"
)

// Local exposes a Service through the kv.Store contract without going over HTTP.
// Errors carry the same *kv.HTTPError the wire protocol would produce.
type Local struct {
	service *Service
}

var _ kv.Store = (*Local)(nil)

// NewLocal creates an in-process kv.Store backed by service.
func NewLocal(service *Service) *Local {
	return &Local{service: service}
}

func (l *Local) Get(ctx context.Context, namespace, key string) (*kv.GetResult, error) {
	entry, err := l.service.Get(ctx, namespace, key)
	if err != nil {
		return nil, toClientError(err)
	}
	return &kv.GetResult{Value: entry.Value}, nil
}

func (l *Local) Put(ctx context.Context, namespace, key string, value any) (*kv.PutResult, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, errors.Join(kv.ErrSerialization, err)
	}
	if err := l.service.Put(ctx, namespace, key, raw); err != nil {
		return nil, toClientError(err)
	}
	return &kv.PutResult{Message: "Value stored successfully"}, nil
}

func (l *Local) Delete(ctx context.Context, namespace, key string) error {
	return toClientError(l.service.Delete(ctx, namespace, key))
}

func (l *Local) List(ctx context.Context, namespace, prefix string) (*kv.ListResult, error) {
	entries, err := l.service.List(ctx, namespace, prefix)
	if err != nil {
		return nil, toClientError(err)
	}

	result := &kv.ListResult{
		Keys:    make([]string, 0, len(entries)),
		Entries: make([]kv.KeyEntry, 0, len(entries)),
	}
	for _, e := range entries {
		result.Keys = append(result.Keys, e.Key)
		result.Entries = append(result.Entries, kv.KeyEntry{
			Key:       e.Key,
			CreatedAt: e.CreatedAt.UTC().Format(TimestampFormat),
			UpdatedAt: e.UpdatedAt.UTC().Format(TimestampFormat),
		})
	}
	return result, nil
}

func toClientError(err error) error {
	if err == nil {
		return nil
	}
	status, message, ok := statusFor(err)
	if !ok {
		return err
	}
	body, _ := json.Marshal(map[string]any{"error": message, "statusCode": status})
	return &kv.HTTPError{StatusCode: status, Body: body, Message: message}
}

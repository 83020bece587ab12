package mocks

import (
	"context"

	"kv-storage/core/kv"

	"github.com/stretchr/testify/mock"
)

// Store is a mock implementation of kv.Store
type Store struct {
	mock.Mock
}

func (m *Store) Get(ctx context.Context, namespace, key string) (*kv.GetResult, error) {
	args := m.Called(ctx, namespace, key)
	if res, ok := args.Get(0).(*kv.GetResult); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Store) Put(ctx context.Context, namespace, key string, value any) (*kv.PutResult, error) {
	args := m.Called(ctx, namespace, key, value)
	if res, ok := args.Get(0).(*kv.PutResult); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Store) Delete(ctx context.Context, namespace, key string) error {
	args := m.Called(ctx, namespace, key)
	return args.Error(0)
}

func (m *Store) List(ctx context.Context, namespace, prefix string) (*kv.ListResult, error) {
	args := m.Called(ctx, namespace, prefix)
	if res, ok := args.Get(0).(*kv.ListResult); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

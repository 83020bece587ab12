package store

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"

	"go.uber.org/zap"
)

// MaxValueBytes is the largest encoded value accepted by Put.
const MaxValueBytes = 400 * 1024

// ReservedNamespace is routed to the namespace listing and cannot hold keys.
const ReservedNamespace = "namespaces"

var (
	namespacePattern = regexp.MustCompile(`^[a-z0-9-]{1,50}$`)
	keyPattern       = regexp.MustCompile(`^[a-zA-Z0-9:_.-]{1,255}$`)
)

var (
	// ErrInvalidNamespace is returned for namespaces outside [a-z0-9-]{1,50} and for ReservedNamespace.
	ErrInvalidNamespace = errors.New("invalid namespace")
	// ErrInvalidKey is returned for keys outside [a-zA-Z0-9:_.-]{1,255} and for dot segments.
	ErrInvalidKey = errors.New("invalid key")
	// ErrValueTooLarge is returned for values above MaxValueBytes.
	ErrValueTooLarge = errors.New("value too large")
	// ErrInvalidValue is returned when the value is not a JSON document.
	ErrInvalidValue = errors.New("value is not valid JSON")
)

// Service implements the key-value operations on top of a Repository.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new store service.
func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Get returns the entry stored under key.
func (s *Service) Get(ctx context.Context, namespace, key string) (*Entry, error) {
	if err := validate(namespace, key); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, namespace, key)
}

// Put validates and stores value under key.
func (s *Service) Put(ctx context.Context, namespace, key string, value json.RawMessage) error {
	if err := validate(namespace, key); err != nil {
		return err
	}
	if len(value) > MaxValueBytes {
		return ErrValueTooLarge
	}
	if !json.Valid(value) {
		return ErrInvalidValue
	}
	if err := s.repo.Put(ctx, namespace, key, value); err != nil {
		return err
	}

	s.logger.Debug("Value stored", zap.String("namespace", namespace), zap.String("key", key), zap.Int("bytes", len(value)))
	return nil
}

// Delete removes key from namespace.
func (s *Service) Delete(ctx context.Context, namespace, key string) error {
	if err := validate(namespace, key); err != nil {
		return err
	}
	return s.repo.Delete(ctx, namespace, key)
}

// List returns the entries of namespace whose key starts with prefix.
func (s *Service) List(ctx context.Context, namespace, prefix string) ([]Entry, error) {
	if !validNamespace(namespace) {
		return nil, ErrInvalidNamespace
	}
	return s.repo.List(ctx, namespace, prefix)
}

// Namespaces returns all namespaces holding keys.
func (s *Service) Namespaces(ctx context.Context) ([]Namespace, error) {
	return s.repo.Namespaces(ctx)
}

func validate(namespace, key string) error {
	if !validNamespace(namespace) {
		return ErrInvalidNamespace
	}
	if !keyPattern.MatchString(key) || key == "." || key == ".." {
		return ErrInvalidKey
	}
	return nil
}

func validNamespace(namespace string) bool {
	return namespace != ReservedNamespace && namespacePattern.MatchString(namespace)
}

package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"kv-storage/core/kv"
	"kv-storage/core/reconcile"
	"kv-storage/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrNoSnapshots is returned when a namespace has no snapshot to pick.
var ErrNoSnapshots = errors.New("no snapshots found")

// ErrForeignObject is returned when an object is not a snapshot of the namespace.
var ErrForeignObject = errors.New("object is not a snapshot of this namespace")

// Service exports namespaces to object storage and restores them.
type Service struct {
	store       kv.Store
	client      storage.Client
	bucket      string
	region      string
	prefix      string
	concurrency int
	logger      *zap.Logger
	now         func() time.Time
}

// NewService creates a new backup service.
func NewService(store kv.Store, client storage.Client, cfg storage.Config, logger *zap.Logger) *Service {
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	return &Service{
		store:       store,
		client:      client,
		bucket:      cfg.Bucket,
		region:      cfg.Region,
		prefix:      strings.Trim(cfg.Prefix, "/"),
		concurrency: concurrency,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Export reads every key of namespace and writes a snapshot object.
func (s *Service) Export(ctx context.Context, namespace string) (*Info, error) {
	if err := checkNamespace(namespace); err != nil {
		return nil, err
	}
	started := s.now()

	entries, err := s.fetchIndex(ctx, namespace)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(Snapshot{Namespace: namespace, CreatedAt: started, Entries: entries})
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}

	if err := storage.EnsureBucket(ctx, s.client, s.bucket, s.region); err != nil {
		return nil, err
	}

	object := s.objectName(namespace, started)
	_, err = s.client.PutObject(ctx, s.bucket, object, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload snapshot %s: %w", object, err)
	}

	s.logger.Info("Snapshot exported",
		zap.String("namespace", namespace),
		zap.String("object", object),
		zap.Int("keys", len(entries)),
		zap.Int("bytes", len(data)),
	)

	return &Info{
		Object:    object,
		Namespace: namespace,
		Keys:      len(entries),
		Size:      int64(len(data)),
		CreatedAt: started,
	}, nil
}

// List returns the snapshots of namespace, newest first.
func (s *Service) List(ctx context.Context, namespace string) ([]Info, error) {
	if err := checkNamespace(namespace); err != nil {
		return nil, err
	}
	opts := minio.ListObjectsOptions{
		Prefix:    s.namespacePrefix(namespace),
		Recursive: true,
	}

	var infos []Info
	for obj := range s.client.ListObjects(ctx, s.bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list snapshots: %w", obj.Err)
		}
		if !strings.HasSuffix(obj.Key, ".json") {
			continue
		}

		created := obj.LastModified.UTC()
		if ms, err := strconv.ParseInt(strings.TrimSuffix(path.Base(obj.Key), ".json"), 10, 64); err == nil {
			created = time.UnixMilli(ms).UTC()
		}
		infos = append(infos, Info{
			Object:    obj.Key,
			Namespace: namespace,
			Size:      obj.Size,
			CreatedAt: created,
		})
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].CreatedAt.After(infos[j].CreatedAt)
	})
	return infos, nil
}

// Latest returns the object name of the newest snapshot of namespace.
func (s *Service) Latest(ctx context.Context, namespace string) (string, error) {
	infos, err := s.List(ctx, namespace)
	if err != nil {
		return "", err
	}
	if len(infos) == 0 {
		return "", fmt.Errorf("%w for namespace %s", ErrNoSnapshots, namespace)
	}
	return infos[0].Object, nil
}

// Load downloads and decodes a snapshot object.
func (s *Service) Load(ctx context.Context, object string) (*Snapshot, error) {
	rc, err := s.client.GetObject(ctx, s.bucket, object, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot %s: %w", object, err)
	}
	defer rc.Close()

	var snap Snapshot
	if err := json.NewDecoder(rc).Decode(&snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", object, err)
	}
	if snap.Entries == nil {
		snap.Entries = map[string]json.RawMessage{}
	}
	return &snap, nil
}

// Restore writes the entries of a snapshot back into namespace. Keys already
// holding the snapshot value are skipped; with opts.Prune keys absent from the
// snapshot are deleted. An empty object selects the newest snapshot.
func (s *Service) Restore(ctx context.Context, namespace, object string, opts reconcile.Options) (*RestoreResult, error) {
	object, err := s.resolve(ctx, namespace, object)
	if err != nil {
		return nil, err
	}

	snap, err := s.Load(ctx, object)
	if err != nil {
		return nil, err
	}
	live, err := s.fetchIndex(ctx, namespace)
	if err != nil {
		return nil, err
	}

	plan := reconcile.BuildPlan(snap.Entries, live, opts)
	executed, err := reconcile.ApplyPlan(ctx, &namespaceMutator{service: s, namespace: namespace}, plan, opts)
	result := &RestoreResult{
		Object:   object,
		Summary:  plan.Summary,
		Actions:  plan.Actions,
		Executed: executed,
	}
	if err != nil {
		return result, err
	}

	s.logger.Info("Snapshot restored",
		zap.String("namespace", namespace),
		zap.String("object", object),
		zap.Int("planned", len(plan.Actions)),
		zap.Int("executed", executed),
		zap.Bool("dry_run", opts.DryRun),
	)
	return result, nil
}

// Verify compares a snapshot with the live namespace. An empty object selects
// the newest snapshot.
func (s *Service) Verify(ctx context.Context, namespace, object string) (*VerifyResult, error) {
	object, err := s.resolve(ctx, namespace, object)
	if err != nil {
		return nil, err
	}

	report, err := reconcile.Reconcile(ctx,
		func(ctx context.Context) (reconcile.Index, error) {
			snap, err := s.Load(ctx, object)
			if err != nil {
				return nil, err
			}
			return snap.Entries, nil
		},
		func(ctx context.Context) (reconcile.Index, error) {
			return s.fetchIndex(ctx, namespace)
		},
	)
	if err != nil {
		return nil, err
	}

	return &VerifyResult{Object: object, Report: *report}, nil
}

// Remove deletes a snapshot object of namespace.
func (s *Service) Remove(ctx context.Context, namespace, object string) error {
	if err := checkNamespace(namespace); err != nil {
		return err
	}
	if !strings.HasPrefix(object, s.namespacePrefix(namespace)) {
		return ErrForeignObject
	}
	if err := s.client.RemoveObject(ctx, s.bucket, object, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove snapshot %s: %w", object, err)
	}
	return nil
}

// fetchIndex reads every key of namespace with bounded concurrency. Keys removed
// between listing and reading are skipped.
func (s *Service) fetchIndex(ctx context.Context, namespace string) (reconcile.Index, error) {
	list, err := s.store.List(ctx, namespace, "")
	if err != nil {
		return nil, fmt.Errorf("failed to list namespace %s: %w", namespace, err)
	}

	var mu sync.Mutex
	index := make(reconcile.Index, len(list.Keys))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for _, key := range list.Keys {
		g.Go(func() error {
			res, err := s.store.Get(gctx, namespace, key)
			if kv.IsNotFound(err) {
				s.logger.Debug("Key vanished during read", zap.String("namespace", namespace), zap.String("key", key))
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to read %s/%s: %w", namespace, key, err)
			}

			mu.Lock()
			index[key] = res.Value
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return index, nil
}

func (s *Service) resolve(ctx context.Context, namespace, object string) (string, error) {
	if err := checkNamespace(namespace); err != nil {
		return "", err
	}
	if object == "" {
		return s.Latest(ctx, namespace)
	}
	if !strings.HasPrefix(object, s.namespacePrefix(namespace)) {
		return "", ErrForeignObject
	}
	return object, nil
}

// checkNamespace rejects names that would escape the namespace's object prefix.
func checkNamespace(namespace string) error {
	if namespace == "" || strings.ContainsAny(namespace, "/\\") || namespace == "." || namespace == ".." {
		return fmt.Errorf("%w: namespace %q cannot name a snapshot folder", kv.ErrValidation, namespace)
	}
	return nil
}

func (s *Service) namespacePrefix(namespace string) string {
	if s.prefix == "" {
		return namespace + "/"
	}
	return s.prefix + "/" + namespace + "/"
}

func (s *Service) objectName(namespace string, t time.Time) string {
	return s.namespacePrefix(namespace) + strconv.FormatInt(t.UnixMilli(), 10) + ".json"
}

// namespaceMutator applies restore actions to one namespace through the store.
type namespaceMutator struct {
	service   *Service
	namespace string
}

func (m *namespaceMutator) Put(ctx context.Context, key string, value json.RawMessage) error {
	_, err := m.service.store.Put(ctx, m.namespace, key, value)
	return err
}

func (m *namespaceMutator) Delete(ctx context.Context, key string) error {
	return m.service.store.Delete(ctx, m.namespace, key)
}

// ApplyBatch runs actions with the service's concurrency limit and stops at the first error.
func (m *namespaceMutator) ApplyBatch(ctx context.Context, actions []reconcile.Action) (int, error) {
	var (
		mu       sync.Mutex
		executed int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.service.concurrency)
	for _, action := range actions {
		g.Go(func() error {
			var err error
			switch action.Type {
			case reconcile.ActionPut:
				err = m.Put(gctx, action.Key, action.Value)
			case reconcile.ActionDelete:
				err = m.Delete(gctx, action.Key)
			default:
				err = fmt.Errorf("unknown action type %q", action.Type)
			}
			if err != nil {
				return fmt.Errorf("failed to %s key %s: %w", action.Type, action.Key, err)
			}

			mu.Lock()
			executed++
			mu.Unlock()
			return nil
		})
	}

	err := g.Wait()
	return executed, err
}

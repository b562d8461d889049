package rankings

import (
	"context"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// StorageKey is the durable key holding the last built table.
const StorageKey = "tp_npdl_rankings"

// Storage is the durable single-key store the table is persisted to.
// Get reports false when the key has never been written.
type Storage interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
}

// Store owns the process-lifetime ranking table. It starts empty and is
// populated by the first successful EnsureLoaded; there is no expiry.
type Store struct {
	source     Source
	storage    Storage
	normalizer *Normalizer
	logger     *zap.Logger

	mu     sync.RWMutex
	table  Table
	loaded bool
	// gen counts refreshes. A load adopts its table only if no refresh
	// started after it.
	gen uint64

	group singleflight.Group
}

// NewStore wires a store. A nil logger disables logging.
func NewStore(source Source, storage Storage, n *Normalizer, logger *zap.Logger) *Store {
	if n == nil {
		n = &Normalizer{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		source:     source,
		storage:    storage,
		normalizer: n,
		logger:     logger,
	}
}

// Normalizer returns the normalizer used to build and query the table.
func (s *Store) Normalizer() *Normalizer {
	return s.normalizer
}

// EnsureLoaded returns the cached table, loading it on first use from durable
// storage or, when storage is empty, from the CSV source. Concurrent callers
// share one in-flight load. Failures are not cached.
func (s *Store) EnsureLoaded(ctx context.Context) (Table, error) {
	if t, ok := s.cached(); ok {
		return t, nil
	}

	// The shared load must not fail for every waiter because the first
	// caller's context was cancelled.
	loadCtx := context.WithoutCancel(ctx)
	v, err, _ := s.group.Do(StorageKey, func() (any, error) {
		s.mu.RLock()
		t, ok, gen := s.table, s.loaded, s.gen
		s.mu.RUnlock()
		if ok {
			return t, nil
		}
		return s.load(loadCtx, gen)
	})
	if err != nil {
		return nil, err
	}
	return v.(Table), nil
}

// Refresh drops the in-memory and persisted tables and loads again. A load
// already in flight is not joined and its result is not adopted.
func (s *Store) Refresh(ctx context.Context) (Table, error) {
	s.mu.Lock()
	s.table = nil
	s.loaded = false
	s.gen++
	s.mu.Unlock()

	if err := s.storage.Delete(ctx, StorageKey); err != nil {
		return nil, eris.Wrap(err, "rankings: clear stored table")
	}
	s.group.Forget(StorageKey)
	return s.EnsureLoaded(ctx)
}

func (s *Store) cached() (Table, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table, s.loaded
}

func (s *Store) load(ctx context.Context, gen uint64) (Table, error) {
	var stored Table
	found, err := s.storage.Get(ctx, StorageKey, &stored)
	if err != nil {
		return nil, eris.Wrap(err, "rankings: read stored table")
	}
	if found && len(stored) > 0 {
		s.logger.Info("rankings loaded from storage", zap.Int("teams", stored.Len()))
		s.adopt(stored, gen)
		return stored, nil
	}

	s.logger.Info("fetching rankings csv")
	csv, err := s.source.FetchCSV(ctx)
	if err != nil {
		s.logger.Warn("rankings fetch failed", zap.Error(err))
		return nil, err
	}

	table := BuildTable(csv, s.normalizer)
	s.logger.Info("rankings parsed", zap.Int("teams", table.Len()))

	if err := s.storage.Set(ctx, StorageKey, table); err != nil {
		return nil, eris.Wrap(err, "rankings: persist table")
	}
	s.adopt(table, gen)
	return table, nil
}

func (s *Store) adopt(t Table, gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		s.logger.Info("rankings load superseded by refresh")
		return
	}
	s.table = t
	s.loaded = true
}

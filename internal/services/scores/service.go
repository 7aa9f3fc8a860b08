// Package scores owns the in-memory score snapshot, the single source
// of truth for player records. Every mutation is immediately persisted
// through the configured storage backend.
package scores

import (
	"context"
	"log/slog"
	"sync"

	"github.com/tictacmatch/tictacmatch-go/internal/model"
	"github.com/tictacmatch/tictacmatch-go/internal/storage"
)

// Service serializes access to the snapshot and persists it after
// every mutation.
type Service struct {
	store  storage.Store
	logger *slog.Logger

	mu   sync.RWMutex
	snap *model.Snapshot
}

// New creates a scores Service, loading the persisted snapshot. A load
// failure is recovered locally by starting from an empty snapshot.
func New(ctx context.Context, store storage.Store, logger *slog.Logger) *Service {
	snap, err := store.Load(ctx)
	if err != nil {
		logger.Warn("failed to load score snapshot, starting empty",
			slog.String("error", err.Error()))
		snap = model.NewSnapshot()
	}

	return &Service{
		store:  store,
		logger: logger.With(slog.String("component", "scores")),
		snap:   snap,
	}
}

// Get returns a copy of the record for the identity.
func (s *Service) Get(id model.Identity) (model.PlayerRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.snap.Players[id]
	if !ok {
		return model.PlayerRecord{}, false
	}
	return *rec, true
}

// View runs fn with read access to the snapshot. fn must not retain or
// mutate it.
func (s *Service) View(fn func(snap *model.Snapshot)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.snap)
}

// Update runs fn with exclusive access to the snapshot, then persists
// the full snapshot. A failed save loses only that save attempt; the
// in-memory state keeps the mutation.
func (s *Service) Update(ctx context.Context, fn func(snap *model.Snapshot)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(s.snap)

	if err := s.store.Save(ctx, s.snap); err != nil {
		s.logger.Error("failed to persist score snapshot",
			slog.String("error", err.Error()))
		return err
	}
	return nil
}

package memory

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/tictacmatch/tictacmatch-go/internal/model"
	"github.com/tictacmatch/tictacmatch-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface,
// used in tests and as the no-persistence fallback.
type Storage struct {
	mu   sync.RWMutex
	data []byte
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{}
}

// Ensure Storage implements the interface
var _ storage.Store = (*Storage)(nil)

// Load returns the last saved snapshot, or an empty one.
func (s *Storage) Load(ctx context.Context) (*model.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.data == nil {
		return model.NewSnapshot(), nil
	}

	snap := model.NewSnapshot()
	if err := json.Unmarshal(s.data, snap); err != nil {
		return model.NewSnapshot(), nil
	}
	return snap, nil
}

// Save stores a serialized copy so later mutations of the live snapshot
// do not leak into loaded state.
func (s *Storage) Save(ctx context.Context, snap *model.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
	return nil
}

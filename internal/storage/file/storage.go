// Package file implements snapshot persistence as a single JSON file,
// the same layout the score file has always used.
package file

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/tictacmatch/tictacmatch-go/internal/model"
	"github.com/tictacmatch/tictacmatch-go/internal/storage"
)

// Storage is a JSON-file implementation of the storage interface.
type Storage struct {
	path string
}

// New creates a file storage writing to the given path.
func New(path string) *Storage {
	return &Storage{path: path}
}

// Ensure Storage implements the interface
var _ storage.Store = (*Storage)(nil)

// Load reads the snapshot file. A missing, unreadable, or unparseable
// file yields an empty snapshot, never an error.
func (s *Storage) Load(ctx context.Context) (*model.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return model.NewSnapshot(), nil
	}

	snap := model.NewSnapshot()
	if err := json.Unmarshal(data, snap); err != nil {
		return model.NewSnapshot(), nil
	}
	if snap.Players == nil {
		snap.Players = make(map[model.Identity]*model.PlayerRecord)
	}
	return snap, nil
}

// Save writes the full snapshot to a temp file in the same directory
// and renames it into place, so a reader never observes a partial
// write.
func (s *Storage) Save(ctx context.Context, snap *model.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}

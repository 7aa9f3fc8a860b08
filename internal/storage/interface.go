package storage

import (
	"context"

	"github.com/tictacmatch/tictacmatch-go/internal/model"
)

// Store persists the complete score snapshot. Load substitutes an empty
// snapshot for absent or corrupt backing state rather than returning an
// error; only backend-level failures (for example a lost Redis
// connection) surface as errors.
type Store interface {
	Load(ctx context.Context) (*model.Snapshot, error)
	Save(ctx context.Context, snap *model.Snapshot) error
}

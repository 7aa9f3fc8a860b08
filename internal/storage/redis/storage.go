package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tictacmatch/tictacmatch-go/internal/model"
	"github.com/tictacmatch/tictacmatch-go/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// The whole snapshot lives under a single key and is replaced on every
// save, which gives readers the same all-or-nothing view as the file
// backend.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Store = (*Storage)(nil)

func (s *Storage) snapshotKey() string {
	return fmt.Sprintf("%s:snapshot", s.cfg.KeyPrefix)
}

// Load fetches the snapshot. A missing key or unparseable value yields
// an empty snapshot; connection failures surface as errors.
func (s *Storage) Load(ctx context.Context) (*model.Snapshot, error) {
	data, err := s.client.Get(ctx, s.snapshotKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.NewSnapshot(), nil
		}
		return nil, err
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

// Save replaces the stored snapshot.
func (s *Storage) Save(ctx context.Context, snap *model.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.snapshotKey(), data, 0).Err()
}

package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/avtomaktab/avtotest-backend/internal/config"
	"github.com/avtomaktab/avtotest-backend/internal/exam"
	"github.com/redis/go-redis/v9"
)

// Snapshots outlive a server restart but not an abandoned attempt.
const snapshotTTL = 24 * time.Hour

// SnapshotRepository stores in-progress test state in Redis so an
// interrupted attempt can be resumed. Implements exam.SnapshotStore.
type SnapshotRepository struct {
	rdb *redis.Client
}

// NewSnapshotRepository creates a new SnapshotRepository.
func NewSnapshotRepository(rdb *redis.Client) *SnapshotRepository {
	return &SnapshotRepository{rdb: rdb}
}

// Load returns the stored snapshot for a user, or (nil, nil) when none exists.
func (r *SnapshotRepository) Load(ctx context.Context, userID int) (*exam.Snapshot, error) {
	raw, err := r.rdb.Get(ctx, config.CacheKey.TestSnapshotKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var snap exam.Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Save overwrites the user's snapshot.
func (r *SnapshotRepository) Save(ctx context.Context, userID int, snap *exam.Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, config.CacheKey.TestSnapshotKey(userID), raw, snapshotTTL).Err()
}

// Clear removes the user's snapshot.
func (r *SnapshotRepository) Clear(ctx context.Context, userID int) error {
	return r.rdb.Del(ctx, config.CacheKey.TestSnapshotKey(userID)).Err()
}

package sqlite

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Somethings1/fintrack-sub000/internal/model"
	"github.com/Somethings1/fintrack-sub000/internal/repo"
)

// SyncState is one row per collection recording the last successfully
// synchronized point of its ingestion stream.
type SyncState struct {
	Collection   string `gorm:"primaryKey"`
	LastSyncedAt time.Time
}

func (SyncState) TableName() string { return "sync_state" }

// CheckpointStore persists checkpoints in the cache database so they survive
// process restart alongside the data they describe.
type CheckpointStore struct {
	store *Store
}

var _ repo.CheckpointStore = (*CheckpointStore)(nil)

func NewCheckpointStore(s *Store) *CheckpointStore {
	return &CheckpointStore{store: s}
}

// Load returns the saved checkpoint, or the Unix epoch when none exists yet
// (a first sync pulls the full collection).
func (c *CheckpointStore) Load(ctx context.Context, col model.Collection) (time.Time, error) {
	var st SyncState
	err := c.store.db.WithContext(ctx).First(&st, "collection = ?", string(col)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return time.Unix(0, 0).UTC(), nil
	}
	if err != nil {
		return time.Time{}, &repo.CacheError{Op: "loadCheckpoint", Collection: col, Err: err}
	}
	return st.LastSyncedAt.UTC(), nil
}

// Save persists the checkpoint for col.
func (c *CheckpointStore) Save(ctx context.Context, col model.Collection, at time.Time) error {
	st := SyncState{Collection: string(col), LastSyncedAt: at.UTC()}
	err := c.store.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&st).Error
	if err != nil {
		return &repo.CacheError{Op: "saveCheckpoint", Collection: col, Err: err}
	}
	return nil
}

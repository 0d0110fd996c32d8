package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Somethings1/fintrack-sub000/internal/model"
)

// ErrNotFound is returned by GetByID when no record exists for the id.
var ErrNotFound = errors.New("record not found")

// Collection is the port every typed cache repository implements. GetAll does
// NOT filter soft-deleted records; that is the caller's job. GetByID returns
// the record regardless of its isDeleted flag.
type Collection[D model.Doc] interface {
	GetAll(ctx context.Context) ([]D, error)
	GetByID(ctx context.Context, id string) (D, error)

	// Put inserts or replaces the record keyed by its id. Idempotent: a
	// later Put for the same id always replaces the earlier record.
	Put(ctx context.Context, doc D) error

	// SoftDelete marks the record deleted and refreshes lastUpdate. A
	// missing id is a warning, not an error.
	SoftDelete(ctx context.Context, id string) error
}

// CheckpointStore persists the per-collection sync checkpoint. Load returns
// the Unix epoch when no checkpoint has been saved yet.
type CheckpointStore interface {
	Load(ctx context.Context, col model.Collection) (time.Time, error)
	Save(ctx context.Context, col model.Collection, at time.Time) error
}

// CacheError wraps a storage engine failure. Storage errors are the one class
// allowed to abort an in-progress operation: silently losing cached data is
// worse than surfacing the failure.
type CacheError struct {
	Op         string
	Collection model.Collection
	Err        error
}

func (e *CacheError) Error() string {
	return fmt.Sprintf("cache %s %s: %v", e.Op, e.Collection, e.Err)
}

func (e *CacheError) Unwrap() error { return e.Err }

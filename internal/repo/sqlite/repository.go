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

// doc constrains P to a pointer to T that satisfies model.Doc, so the
// repository can allocate fresh records for scanning.
type doc[T any] interface {
	*T
	model.Doc
}

// Repository is the typed cache repository for one collection. Instantiated
// once per collection below; the set is closed on purpose so every call site
// gets compile-time checking instead of dispatch over collection-name strings.
type Repository[T any, P doc[T]] struct {
	store *Store
	name  model.Collection
}

// Closed set of typed repositories, one per collection.
type (
	TransactionRepository  = Repository[model.Transaction, *model.Transaction]
	AccountRepository      = Repository[model.Account, *model.Account]
	SavingRepository       = Repository[model.Saving, *model.Saving]
	CategoryRepository     = Repository[model.Category, *model.Category]
	SubscriptionRepository = Repository[model.Subscription, *model.Subscription]
	NotificationRepository = Repository[model.Notification, *model.Notification]
)

func NewTransactionRepository(s *Store) *TransactionRepository {
	return &TransactionRepository{store: s, name: model.Transactions}
}

func NewAccountRepository(s *Store) *AccountRepository {
	return &AccountRepository{store: s, name: model.Accounts}
}

func NewSavingRepository(s *Store) *SavingRepository {
	return &SavingRepository{store: s, name: model.Savings}
}

func NewCategoryRepository(s *Store) *CategoryRepository {
	return &CategoryRepository{store: s, name: model.Categories}
}

func NewSubscriptionRepository(s *Store) *SubscriptionRepository {
	return &SubscriptionRepository{store: s, name: model.Subscriptions}
}

func NewNotificationRepository(s *Store) *NotificationRepository {
	return &NotificationRepository{store: s, name: model.Notifications}
}

// GetAll returns every record in the collection, soft-deleted ones included.
func (r *Repository[T, P]) GetAll(ctx context.Context) ([]P, error) {
	var rows []P
	if err := r.store.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, &repo.CacheError{Op: "getAll", Collection: r.name, Err: err}
	}
	return rows, nil
}

// GetByID returns the record for id, or repo.ErrNotFound. The isDeleted flag
// is not checked here; callers that care must look at it themselves.
func (r *Repository[T, P]) GetByID(ctx context.Context, id string) (P, error) {
	p := P(new(T))
	err := r.store.db.WithContext(ctx).First(p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		var zero P
		return zero, repo.ErrNotFound
	}
	if err != nil {
		var zero P
		return zero, &repo.CacheError{Op: "getById", Collection: r.name, Err: err}
	}
	return p, nil
}

// Put inserts or replaces the record keyed by its id.
func (r *Repository[T, P]) Put(ctx context.Context, rec P) error {
	err := r.store.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(rec).Error
	if err != nil {
		return &repo.CacheError{Op: "put", Collection: r.name, Err: err}
	}
	return nil
}

// SoftDelete marks the record deleted and refreshes lastUpdate, writing back
// through the Put path. A missing id logs a warning and no-ops.
func (r *Repository[T, P]) SoftDelete(ctx context.Context, id string) error {
	rec, err := r.GetByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		r.store.log.Warnw("soft-delete of unknown record", "collection", r.name, "id", id)
		return nil
	}
	if err != nil {
		return err
	}
	rec.MarkDeleted(time.Now().UTC())
	return r.Put(ctx, rec)
}

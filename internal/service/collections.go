package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Somethings1/fintrack-sub000/internal/api"
	"github.com/Somethings1/fintrack-sub000/internal/model"
	"github.com/Somethings1/fintrack-sub000/internal/repo"
	"github.com/Somethings1/fintrack-sub000/internal/repo/sqlite"
)

// Collections bundles the typed cache repositories, one per collection. The
// set is closed; adding a collection means adding a model, a repository and a
// field here, all checked at compile time.
type Collections struct {
	Transactions  repo.Collection[*model.Transaction]
	Accounts      repo.Collection[*model.Account]
	Savings       repo.Collection[*model.Saving]
	Categories    repo.Collection[*model.Category]
	Subscriptions repo.Collection[*model.Subscription]
	Notifications repo.Collection[*model.Notification]
}

// OpenCollections wires the typed repositories over one cache store.
func OpenCollections(s *sqlite.Store) *Collections {
	return &Collections{
		Transactions:  sqlite.NewTransactionRepository(s),
		Accounts:      sqlite.NewAccountRepository(s),
		Savings:       sqlite.NewSavingRepository(s),
		Categories:    sqlite.NewCategoryRepository(s),
		Subscriptions: sqlite.NewSubscriptionRepository(s),
		Notifications: sqlite.NewNotificationRepository(s),
	}
}

// SyncFunc fetches one collection's changes since a checkpoint and returns
// how many records were committed.
type SyncFunc func(ctx context.Context, since time.Time) (int, error)

// SyncFuncs builds the per-collection ingestion closures the poller drives.
func SyncFuncs(client *api.Client, c *Collections, log *zap.SugaredLogger) map[model.Collection]SyncFunc {
	return map[model.Collection]SyncFunc{
		model.Transactions: func(ctx context.Context, since time.Time) (int, error) {
			return FetchSince(ctx, client, model.Transactions, since, c.Transactions, log)
		},
		model.Accounts: func(ctx context.Context, since time.Time) (int, error) {
			return FetchSince(ctx, client, model.Accounts, since, c.Accounts, log)
		},
		model.Savings: func(ctx context.Context, since time.Time) (int, error) {
			return FetchSince(ctx, client, model.Savings, since, c.Savings, log)
		},
		model.Categories: func(ctx context.Context, since time.Time) (int, error) {
			return FetchSince(ctx, client, model.Categories, since, c.Categories, log)
		},
		model.Subscriptions: func(ctx context.Context, since time.Time) (int, error) {
			return FetchSince(ctx, client, model.Subscriptions, since, c.Subscriptions, log)
		},
		model.Notifications: func(ctx context.Context, since time.Time) (int, error) {
			return FetchSince(ctx, client, model.Notifications, since, c.Notifications, log)
		},
	}
}

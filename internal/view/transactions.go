package view

import (
	"context"
	"sort"
	"sync"

	"github.com/Somethings1/fintrack-sub000/internal/bus"
	"github.com/Somethings1/fintrack-sub000/internal/model"
	"github.com/Somethings1/fintrack-sub000/internal/repo"
)

// ResolvedTransaction is a transaction with its account/category references
// replaced by display names.
type ResolvedTransaction struct {
	model.Transaction
	SourceAccountName      string
	DestinationAccountName string
	CategoryName           string
}

// TransactionView serves the resolved, newest-first transaction list. The
// result is memoized and invalidated by the refresh bus; the next read after
// an invalidation re-derives from the cache. It depends on three topics:
// transactions (the rows), accounts and categories (the names).
type TransactionView struct {
	transactions repo.Collection[*model.Transaction]
	resolver     *Resolver

	mu     sync.Mutex
	cached []ResolvedTransaction
	valid  bool
}

func NewTransactionView(transactions repo.Collection[*model.Transaction], resolver *Resolver, b *bus.RefreshBus) *TransactionView {
	v := &TransactionView{transactions: transactions, resolver: resolver}
	for _, topic := range []model.Collection{model.Transactions, model.Accounts, model.Categories} {
		b.Register(bus.Topic(topic), "view.transactions", v.invalidate)
	}
	return v
}

// Transactions returns the resolved list, soft-deleted rows excluded, sorted
// by dateTime descending.
func (v *TransactionView) Transactions(ctx context.Context) ([]ResolvedTransaction, error) {
	v.mu.Lock()
	if v.valid {
		out := v.cached
		v.mu.Unlock()
		return out, nil
	}
	v.mu.Unlock()

	all, err := v.transactions.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	live := make([]*model.Transaction, 0, len(all))
	for _, tx := range all {
		if !tx.Deleted() {
			live = append(live, tx)
		}
	}
	sort.Slice(live, func(i, j int) bool { return live[i].DateTime.After(live[j].DateTime) })

	resolved := make([]ResolvedTransaction, 0, len(live))
	for _, tx := range live {
		resolved = append(resolved, ResolvedTransaction{
			Transaction:            *tx,
			SourceAccountName:      v.resolver.AccountName(ctx, tx.SourceAccount),
			DestinationAccountName: v.resolver.AccountName(ctx, tx.DestinationAccount),
			CategoryName:           v.resolver.CategoryName(ctx, tx.Category),
		})
	}

	v.mu.Lock()
	v.cached = resolved
	v.valid = true
	v.mu.Unlock()
	return resolved, nil
}

func (v *TransactionView) invalidate() {
	v.mu.Lock()
	v.valid = false
	v.mu.Unlock()
}

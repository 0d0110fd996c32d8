// Package view builds UI-facing projections of the raw cache: cross-collection
// references replaced by display names, memoized and invalidated through the
// refresh bus.
package view

import (
	"context"
	"sync"

	"github.com/Somethings1/fintrack-sub000/internal/bus"
	"github.com/Somethings1/fintrack-sub000/internal/model"
	"github.com/Somethings1/fintrack-sub000/internal/repo"
)

// ExternalName is the sentinel shown for references that point at unknown
// entities (an account at another bank, a deleted category, a typo'd id).
// Resolution never fails; it falls back here.
const ExternalName = "External"

// Resolver resolves account and category ids to display names, with
// in-memory caches dropped whenever the underlying collections refresh.
type Resolver struct {
	accounts   repo.Collection[*model.Account]
	categories repo.Collection[*model.Category]

	mu            sync.Mutex
	accountNames  map[string]string
	categoryNames map[string]string
}

func NewResolver(accounts repo.Collection[*model.Account], categories repo.Collection[*model.Category], b *bus.RefreshBus) *Resolver {
	r := &Resolver{
		accounts:      accounts,
		categories:    categories,
		accountNames:  make(map[string]string),
		categoryNames: make(map[string]string),
	}
	b.Register(bus.Topic(model.Accounts), "view.resolver", r.dropAccounts)
	b.Register(bus.Topic(model.Categories), "view.resolver", r.dropCategories)
	return r
}

// AccountName resolves an account id. Soft-deleted accounts still resolve to
// their last known name; only unknown or empty ids become External.
func (r *Resolver) AccountName(ctx context.Context, id string) string {
	if id == "" {
		return ExternalName
	}
	r.mu.Lock()
	if name, ok := r.accountNames[id]; ok {
		r.mu.Unlock()
		return name
	}
	r.mu.Unlock()

	name := ExternalName
	if acc, err := r.accounts.GetByID(ctx, id); err == nil && acc.Name != "" {
		name = acc.Name
	}
	r.mu.Lock()
	r.accountNames[id] = name
	r.mu.Unlock()
	return name
}

// CategoryName resolves a category id, with the same External fallback.
func (r *Resolver) CategoryName(ctx context.Context, id string) string {
	if id == "" {
		return ExternalName
	}
	r.mu.Lock()
	if name, ok := r.categoryNames[id]; ok {
		r.mu.Unlock()
		return name
	}
	r.mu.Unlock()

	name := ExternalName
	if cat, err := r.categories.GetByID(ctx, id); err == nil && cat.Name != "" {
		name = cat.Name
	}
	r.mu.Lock()
	r.categoryNames[id] = name
	r.mu.Unlock()
	return name
}

func (r *Resolver) dropAccounts() {
	r.mu.Lock()
	r.accountNames = make(map[string]string)
	r.mu.Unlock()
}

func (r *Resolver) dropCategories() {
	r.mu.Lock()
	r.categoryNames = make(map[string]string)
	r.mu.Unlock()
}

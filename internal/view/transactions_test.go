package view

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Somethings1/fintrack-sub000/internal/bus"
	"github.com/Somethings1/fintrack-sub000/internal/model"
)

func TestTransactionView_ResolvesSortsAndFilters(t *testing.T) {
	day := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	older := transaction("t1", 10, model.TypeExpense, "a1", "", "c1", day)
	newer := transaction("t2", 20, model.TypeTransfer, "a1", "a2", "", day.Add(time.Hour))
	ghost := transaction("t3", 30, model.TypeExpense, "", "", "", day.Add(2*time.Hour))
	ghost.MarkDeleted(time.Now().UTC())

	txs := newMemCollection(older, newer, ghost)
	accounts := newMemCollection(account("a1", "Checking"), account("a2", "Savings"))
	categories := newMemCollection(category("c1", "Food", 0))

	b := bus.New()
	resolver := NewResolver(accounts, categories, b)
	v := NewTransactionView(txs, resolver, b)

	got, err := v.Transactions(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2, "soft-deleted rows are filtered out")

	// newest first
	assert.Equal(t, "t2", got[0].ID)
	assert.Equal(t, "t1", got[1].ID)

	assert.Equal(t, "Checking", got[0].SourceAccountName)
	assert.Equal(t, "Savings", got[0].DestinationAccountName)
	assert.Equal(t, ExternalName, got[0].CategoryName, "transfers have no category")

	assert.Equal(t, "Food", got[1].CategoryName)
	assert.Equal(t, ExternalName, got[1].DestinationAccountName)
}

func TestTransactionView_MemoizesUntilInvalidated(t *testing.T) {
	txs := newMemCollection(transaction("t1", 10, model.TypeExpense, "", "", "", time.Now()))
	b := bus.New()
	resolver := NewResolver(newMemCollection[model.Account, *model.Account](), newMemCollection[model.Category, *model.Category](), b)
	v := NewTransactionView(txs, resolver, b)
	ctx := context.Background()

	_, err := v.Transactions(ctx)
	require.NoError(t, err)
	_, err = v.Transactions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, txs.allCalls, "second read must come from the memo")

	// a refresh on any dependency topic invalidates
	b.Publish(bus.Topic(model.Accounts))
	_, err = v.Transactions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, txs.allCalls)

	b.Publish(bus.Topic(model.Transactions))
	_, err = v.Transactions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, txs.allCalls)
}

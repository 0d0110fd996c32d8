package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Somethings1/fintrack-sub000/internal/bus"
	"github.com/Somethings1/fintrack-sub000/internal/model"
)

func TestSyncOnce_AdvancesCheckpointOnlyWhenRecordsArrived(t *testing.T) {
	cps := newMemCheckpoints()
	b := bus.New()
	published := 0
	b.Register(bus.Topic(model.Accounts), "test", func() { published++ })

	calls := 0
	funcs := map[model.Collection]SyncFunc{
		model.Accounts: func(ctx context.Context, since time.Time) (int, error) {
			calls++
			if calls == 1 {
				return 3, nil // first cycle finds records
			}
			return 0, nil // second cycle is empty
		},
	}
	p := NewPoller(funcs, cps, b, time.Minute, zap.NewNop().Sugar())

	before := time.Now().UTC()
	n, err := p.SyncOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, 1, published, "committed records must publish the topic")

	first, err := cps.Load(context.Background(), model.Accounts)
	require.NoError(t, err)
	assert.False(t, first.Before(before), "checkpoint should be the fetch start, not the epoch")

	// empty cycle: checkpoint stays, no publish
	n, err = p.SyncOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, 1, published)
	second, _ := cps.Load(context.Background(), model.Accounts)
	assert.True(t, second.Equal(first), "empty cycle must not move the checkpoint")
}

func TestSyncOnce_FailedCycleKeepsCheckpoint(t *testing.T) {
	cps := newMemCheckpoints()
	b := bus.New()
	published := 0
	b.Register(bus.Topic(model.Transactions), "test", func() { published++ })

	funcs := map[model.Collection]SyncFunc{
		model.Transactions: func(ctx context.Context, since time.Time) (int, error) {
			// two records landed before the stream broke
			return 2, errors.New("stream cut")
		},
	}
	p := NewPoller(funcs, cps, b, time.Minute, zap.NewNop().Sugar())

	n, err := p.SyncOnce(context.Background())
	assert.Equal(t, 2, n, "partial commits are still reported")
	assert.Error(t, err)
	assert.Equal(t, 0, published, "a failed cycle must not publish")

	got, _ := cps.Load(context.Background(), model.Transactions)
	assert.Equal(t, int64(0), got.Unix(), "a failed cycle must not advance the checkpoint")
}

func TestSyncOnce_CollectionsFailIndependently(t *testing.T) {
	cps := newMemCheckpoints()
	funcs := map[model.Collection]SyncFunc{
		model.Accounts: func(ctx context.Context, since time.Time) (int, error) {
			return 0, errors.New("accounts down")
		},
		model.Categories: func(ctx context.Context, since time.Time) (int, error) {
			return 5, nil
		},
	}
	p := NewPoller(funcs, cps, bus.New(), time.Minute, zap.NewNop().Sugar())

	n, err := p.SyncOnce(context.Background())
	assert.Equal(t, 5, n, "healthy collections still sync")
	assert.EqualError(t, err, "accounts down")

	cat, _ := cps.Load(context.Background(), model.Categories)
	assert.NotEqual(t, int64(0), cat.Unix())
}

func TestSyncCollection_UnknownCollectionIsNoOp(t *testing.T) {
	p := NewPoller(map[model.Collection]SyncFunc{}, newMemCheckpoints(), bus.New(), time.Minute, zap.NewNop().Sugar())
	n, err := p.SyncCollection(context.Background(), model.Savings)
	assert.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestRun_PollsImmediatelyThenOnTicks(t *testing.T) {
	cps := newMemCheckpoints()
	calls := make(chan time.Time, 16)
	funcs := map[model.Collection]SyncFunc{
		model.Accounts: func(ctx context.Context, since time.Time) (int, error) {
			calls <- since
			return 1, nil
		},
	}
	p := NewPoller(funcs, cps, bus.New(), 20*time.Millisecond, zap.NewNop().Sugar())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	// startup cycle fires without waiting for the first tick
	first := <-calls
	assert.Equal(t, int64(0), first.Unix())

	// the next cycle sees the advanced checkpoint
	second := <-calls
	assert.NotEqual(t, int64(0), second.Unix())

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop on cancel")
	}
}

func TestLastSync_FallsBackToStoredCheckpoint(t *testing.T) {
	cps := newMemCheckpoints()
	at := time.Date(2025, 7, 2, 8, 0, 0, 0, time.UTC)
	require.NoError(t, cps.Save(context.Background(), model.Savings, at))

	p := NewPoller(map[model.Collection]SyncFunc{}, cps, bus.New(), time.Minute, zap.NewNop().Sugar())
	got := p.LastSync(context.Background(), model.Savings)
	assert.True(t, got.Equal(at))
}

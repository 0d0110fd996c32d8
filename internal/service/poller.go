package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Somethings1/fintrack-sub000/internal/bus"
	"github.com/Somethings1/fintrack-sub000/internal/model"
	"github.com/Somethings1/fintrack-sub000/internal/repo"
)

// DefaultPollInterval is the sync cadence when config leaves it unset.
const DefaultPollInterval = 60 * time.Second

// Poller drives periodic and startup synchronization, one loop per
// collection. Each cycle is independent: failures are logged and the next
// tick retries at the fixed cadence, no backoff. Overlapping cycles for the
// same collection never happen within one Poller (each collection has a
// single loop), but a concurrent one-shot sync is safe anyway — upserts are
// idempotent and the checkpoint never moves backward.
type Poller struct {
	funcs       map[model.Collection]SyncFunc
	checkpoints repo.CheckpointStore
	bus         *bus.RefreshBus
	interval    time.Duration
	log         *zap.SugaredLogger

	mu   sync.Mutex
	last map[model.Collection]time.Time
}

func NewPoller(
	funcs map[model.Collection]SyncFunc,
	checkpoints repo.CheckpointStore,
	b *bus.RefreshBus,
	interval time.Duration,
	log *zap.SugaredLogger,
) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{
		funcs:       funcs,
		checkpoints: checkpoints,
		bus:         b,
		interval:    interval,
		last:        make(map[model.Collection]time.Time),
		log:         log,
	}
}

// Run polls every collection once immediately, then on the fixed interval,
// until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for col, fn := range p.funcs {
		wg.Add(1)
		go func(col model.Collection, fn SyncFunc) {
			defer wg.Done()
			p.loop(ctx, col, fn)
		}(col, fn)
	}
	wg.Wait()
}

// SyncOnce runs a single cycle for every collection, sequentially. Used by
// the one-shot sync command. Returns the total number of committed records.
func (p *Poller) SyncOnce(ctx context.Context) (int, error) {
	total := 0
	var firstErr error
	for _, col := range model.AllCollections() {
		fn, ok := p.funcs[col]
		if !ok {
			continue
		}
		n, err := p.cycle(ctx, col, fn)
		total += n
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return total, firstErr
}

// SyncCollection runs one cycle for a single collection. The socket wiring
// calls it when a push notification arrives.
func (p *Poller) SyncCollection(ctx context.Context, col model.Collection) (int, error) {
	fn, ok := p.funcs[col]
	if !ok {
		return 0, nil
	}
	return p.cycle(ctx, col, fn)
}

// LastSync reports the current checkpoint for col, so callers can display
// "last synced at".
func (p *Poller) LastSync(ctx context.Context, col model.Collection) time.Time {
	p.mu.Lock()
	if t, ok := p.last[col]; ok {
		p.mu.Unlock()
		return t
	}
	p.mu.Unlock()
	t, err := p.checkpoints.Load(ctx, col)
	if err != nil {
		return time.Time{}
	}
	return t
}

func (p *Poller) loop(ctx context.Context, col model.Collection, fn SyncFunc) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	if _, err := p.cycle(ctx, col, fn); err != nil {
		p.log.Warnw("startup sync failed", "collection", col, "error", err)
	}
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := p.cycle(ctx, col, fn); err != nil {
				p.log.Warnw("poll cycle failed", "collection", col, "error", err)
			}
		}
	}
}

// cycle runs one fetch for col. The checkpoint advances — and is persisted —
// only after a cycle that committed at least one record, and only forward.
// The new checkpoint is the time the fetch STARTED, so records the server
// commits while the stream is in flight fall after it and are picked up next
// cycle instead of being skipped.
func (p *Poller) cycle(ctx context.Context, col model.Collection, fn SyncFunc) (int, error) {
	since, err := p.checkpoints.Load(ctx, col)
	if err != nil {
		return 0, err
	}
	startedAt := time.Now().UTC()
	n, err := fn(ctx, since)
	if err != nil {
		return n, err
	}
	if n > 0 && startedAt.After(since) {
		if err := p.checkpoints.Save(ctx, col, startedAt); err != nil {
			return n, err
		}
		p.mu.Lock()
		p.last[col] = startedAt
		p.mu.Unlock()
		p.bus.Publish(bus.Topic(col))
	}
	return n, nil
}

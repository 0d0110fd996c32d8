package service

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Somethings1/fintrack-sub000/internal/api"
	"github.com/Somethings1/fintrack-sub000/internal/bus"
	"github.com/Somethings1/fintrack-sub000/internal/model"
	"github.com/Somethings1/fintrack-sub000/internal/notice"
	"github.com/Somethings1/fintrack-sub000/internal/repo"
)

// PartialDeleteError reports a batch delete where some backend calls failed.
// The failed ids were NOT soft-deleted locally; the cache stays consistent
// with what the server actually did.
type PartialDeleteError struct {
	Collection model.Collection
	Failed     []string
}

func (e *PartialDeleteError) Error() string {
	return fmt.Sprintf("delete from %s failed for ids: %s", e.Collection, strings.Join(e.Failed, ", "))
}

// Entities is the per-collection CRUD façade. Every mutation calls the REST
// endpoint first and applies the local cache mutation only on success, so the
// cache never runs ahead of the server. Each successful mutation publishes
// the collection's topic on the refresh bus.
type Entities[T any, P record[T]] struct {
	client *api.Client
	repo   repo.Collection[P]
	col    model.Collection
	label  string
	bus    *bus.RefreshBus
	notify notice.Notifier
	log    *zap.SugaredLogger
}

func newEntities[T any, P record[T]](
	client *api.Client,
	r repo.Collection[P],
	col model.Collection,
	label string,
	b *bus.RefreshBus,
	n notice.Notifier,
	log *zap.SugaredLogger,
) *Entities[T, P] {
	return &Entities[T, P]{client: client, repo: r, col: col, label: label, bus: b, notify: n, log: log}
}

// Stored returns the cached records minus soft-deleted ones. This is the read
// every listing goes through.
func (e *Entities[T, P]) Stored(ctx context.Context) ([]P, error) {
	all, err := e.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	live := all[:0]
	for _, rec := range all {
		if !rec.Deleted() {
			live = append(live, rec)
		}
	}
	return live, nil
}

// Get returns the cached record for id without filtering the soft-delete
// flag; callers that care must check Deleted themselves.
func (e *Entities[T, P]) Get(ctx context.Context, id string) (P, error) {
	return e.repo.GetByID(ctx, id)
}

// Add creates the entity on the backend, merges the returned id into the
// record and upserts it into the cache.
func (e *Entities[T, P]) Add(ctx context.Context, rec P) error {
	var res struct {
		ID string `json:"id"`
	}
	err := e.client.Do(ctx, http.MethodPost, fmt.Sprintf("/api/%s/add", e.col), rec, &res)
	if err != nil {
		e.notify.Error(notice.ForTransportError("adding "+e.label, err))
		return err
	}
	rec.SetEntityID(res.ID)
	rec.Touch(time.Now().UTC())
	if err := e.repo.Put(ctx, rec); err != nil {
		return err
	}
	e.notify.Success(e.label + " added")
	e.bus.Publish(bus.Topic(e.col))
	return nil
}

// Update replaces the entity on the backend, then in the cache. If the REST
// call rejects, the cached record stays at its pre-call value.
func (e *Entities[T, P]) Update(ctx context.Context, id string, rec P) error {
	err := e.client.Do(ctx, http.MethodPut, fmt.Sprintf("/api/%s/update/%s", e.col, id), rec, nil)
	if err != nil {
		e.notify.Error(notice.ForTransportError("updating "+e.label, err))
		return err
	}
	rec.SetEntityID(id)
	rec.Touch(time.Now().UTC())
	if err := e.repo.Put(ctx, rec); err != nil {
		return err
	}
	e.notify.Success(e.label + " updated")
	e.bus.Publish(bus.Topic(e.col))
	return nil
}

// Delete issues one backend DELETE per id, concurrently, then soft-deletes
// locally only the ids whose backend call succeeded. Partial failure comes
// back as *PartialDeleteError listing the ids still live on both sides.
func (e *Entities[T, P]) Delete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	var (
		mu     sync.Mutex
		failed []string
		wg     sync.WaitGroup
	)
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			err := e.client.Do(ctx, http.MethodDelete, fmt.Sprintf("/api/%s/delete/%s", e.col, id), nil, nil)
			if err != nil {
				e.log.Warnw("backend delete failed", "collection", e.col, "id", id, "error", err)
				mu.Lock()
				failed = append(failed, id)
				mu.Unlock()
			}
		}(id)
	}
	wg.Wait()

	failedSet := make(map[string]bool, len(failed))
	for _, id := range failed {
		failedSet[id] = true
	}
	deleted := 0
	for _, id := range ids {
		if failedSet[id] {
			continue
		}
		if err := e.repo.SoftDelete(ctx, id); err != nil {
			return err
		}
		deleted++
	}
	if deleted > 0 {
		e.bus.Publish(bus.Topic(e.col))
	}
	if len(failed) > 0 {
		sort.Strings(failed)
		err := &PartialDeleteError{Collection: e.col, Failed: failed}
		e.notify.Error(err.Error())
		return err
	}
	e.notify.Success(fmt.Sprintf("%d %s(s) deleted", deleted, e.label))
	return nil
}

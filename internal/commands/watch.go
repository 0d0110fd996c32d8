package commands

import (
	"context"
	"fmt"
	"sync"

	"github.com/Somethings1/fintrack-sub000/internal/bootstrap"
	"github.com/Somethings1/fintrack-sub000/internal/config"
	"github.com/Somethings1/fintrack-sub000/internal/model"
)

type watchCmd struct{}

func (watchCmd) Name() string { return "watch" }
func (watchCmd) Description() string {
	return "Keep the cache live: poll on an interval and react to server pushes"
}
func (watchCmd) Usage() string { return "watch" }

func (watchCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	app, cleanup, err := bootstrap.Open(cfg, log, Out)
	if err != nil {
		return err
	}
	defer cleanup()

	// A push only names the collection that changed; re-sync it so the cache
	// holds the actual records before anyone reads them.
	app.Socket.SetOnEvent(func(collection string) {
		if _, err := app.Poller.SyncCollection(ctx, model.Collection(collection)); err != nil {
			log.Warnw("push-triggered sync failed", "collection", collection, "error", err)
		}
	})

	fmt.Fprintf(Out, "Watching as %s (poll every %s, Ctrl-C to stop)\n", app.Username, cfg.PollInterval())

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		app.Poller.Run(ctx)
	}()
	go func() {
		defer wg.Done()
		app.Socket.Run(ctx)
	}()
	wg.Wait()
	fmt.Fprintln(Out, "Stopped")
	return nil
}

func init() { RegisterCmd(watchCmd{}) }

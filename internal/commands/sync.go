package commands

import (
	"context"
	"fmt"

	"github.com/Somethings1/fintrack-sub000/internal/bootstrap"
	"github.com/Somethings1/fintrack-sub000/internal/config"
)

type syncCmd struct{}

func (syncCmd) Name() string        { return "sync" }
func (syncCmd) Description() string { return "Pull server changes into the local cache once" }
func (syncCmd) Usage() string       { return "sync" }

func (syncCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	app, cleanup, err := bootstrap.Open(cfg, log, Out)
	if err != nil {
		return err
	}
	defer cleanup()

	n, err := app.Poller.SyncOnce(ctx)
	if err != nil {
		return fmt.Errorf("sync: %w", err)
	}
	fmt.Fprintf(Out, "Synced %d record(s)\n", n)
	return nil
}

func init() { RegisterCmd(syncCmd{}) }

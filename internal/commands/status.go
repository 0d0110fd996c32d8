package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/Somethings1/fintrack-sub000/internal/bootstrap"
	"github.com/Somethings1/fintrack-sub000/internal/config"
	"github.com/Somethings1/fintrack-sub000/internal/model"
	"github.com/Somethings1/fintrack-sub000/internal/service"
)

type statusCmd struct{}

func (statusCmd) Name() string        { return "status" }
func (statusCmd) Description() string { return "Show the active session and per-collection sync state" }
func (statusCmd) Usage() string       { return "status" }

func (statusCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	app, cleanup, err := bootstrap.Open(cfg, log, Out)
	if err != nil {
		if errors.Is(err, service.ErrSessionExpired) {
			fmt.Fprintln(Out, "Session expired, please log in again")
			return nil
		}
		return err
	}
	defer cleanup()

	fmt.Fprintf(Out, "Logged in as %s\n", app.Username)
	fmt.Fprintf(Out, "Server: %s\n", cfg.ServerURL)
	for _, col := range model.AllCollections() {
		t := app.Poller.LastSync(ctx, col)
		when := "never"
		if !t.IsZero() && t.Unix() != 0 {
			when = t.Local().Format("2006-01-02 15:04:05")
		}
		fmt.Fprintf(Out, "  %-14s last synced %s\n", col, when)
	}
	return nil
}

func init() { RegisterCmd(statusCmd{}) }

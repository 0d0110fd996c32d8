package commands

import (
	"context"

	"github.com/Somethings1/fintrack-sub000/internal/bootstrap"
	"github.com/Somethings1/fintrack-sub000/internal/config"
)

type readCmd struct{}

func (readCmd) Name() string        { return "read" }
func (readCmd) Description() string { return "Mark notifications as read" }
func (readCmd) Usage() string       { return "read <notification-id>..." }

func (readCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return ErrUsage
	}
	app, cleanup, err := bootstrap.Open(cfg, log, Out)
	if err != nil {
		return err
	}
	defer cleanup()

	return app.Services.Notifications.MarkRead(ctx, args)
}

func init() { RegisterCmd(readCmd{}) }

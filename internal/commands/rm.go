package commands

import (
	"context"
	"fmt"

	"github.com/Somethings1/fintrack-sub000/internal/bootstrap"
	"github.com/Somethings1/fintrack-sub000/internal/config"
	"github.com/Somethings1/fintrack-sub000/internal/model"
)

type rmCmd struct{}

func (rmCmd) Name() string        { return "rm" }
func (rmCmd) Description() string { return "Delete entities on the server and soft-delete them locally" }
func (rmCmd) Usage() string {
	return "rm <transactions|accounts|savings|categories|subscriptions|notifications> <id>..."
}

func (rmCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return ErrUsage
	}
	app, cleanup, err := bootstrap.Open(cfg, log, Out)
	if err != nil {
		return err
	}
	defer cleanup()

	ids := args[1:]
	switch model.Collection(args[0]) {
	case model.Transactions:
		return app.Services.Transactions.Delete(ctx, ids)
	case model.Accounts:
		return app.Services.Accounts.Delete(ctx, ids)
	case model.Savings:
		return app.Services.Savings.Delete(ctx, ids)
	case model.Categories:
		return app.Services.Categories.Delete(ctx, ids)
	case model.Subscriptions:
		return app.Services.Subscriptions.Delete(ctx, ids)
	case model.Notifications:
		return app.Services.Notifications.Delete(ctx, ids)
	default:
		return fmt.Errorf("unknown collection %q", args[0])
	}
}

func init() { RegisterCmd(rmCmd{}) }

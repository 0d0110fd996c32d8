package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Somethings1/fintrack-sub000/internal/bootstrap"
	"github.com/Somethings1/fintrack-sub000/internal/config"
	"github.com/Somethings1/fintrack-sub000/internal/model"
)

type addCmd struct{}

func (addCmd) Name() string        { return "add" }
func (addCmd) Description() string { return "Create an entity on the server and cache it" }
func (addCmd) Usage() string {
	return "add <transactions|accounts|savings|categories|subscriptions> <json>"
}

func (addCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	app, cleanup, err := bootstrap.Open(cfg, log, Out)
	if err != nil {
		return err
	}
	defer cleanup()

	raw := []byte(args[1])
	switch model.Collection(args[0]) {
	case model.Transactions:
		var tx model.Transaction
		if err := json.Unmarshal(raw, &tx); err != nil {
			return fmt.Errorf("parse transaction json: %w", err)
		}
		if tx.Creator == "" {
			tx.Creator = app.Username
		}
		return app.Services.Transactions.Add(ctx, &tx)
	case model.Accounts:
		var a model.Account
		if err := json.Unmarshal(raw, &a); err != nil {
			return fmt.Errorf("parse account json: %w", err)
		}
		if a.Owner == "" {
			a.Owner = app.Username
		}
		return app.Services.Accounts.Add(ctx, &a)
	case model.Savings:
		var s model.Saving
		if err := json.Unmarshal(raw, &s); err != nil {
			return fmt.Errorf("parse saving json: %w", err)
		}
		if s.Owner == "" {
			s.Owner = app.Username
		}
		return app.Services.Savings.Add(ctx, &s)
	case model.Categories:
		var c model.Category
		if err := json.Unmarshal(raw, &c); err != nil {
			return fmt.Errorf("parse category json: %w", err)
		}
		if c.Owner == "" {
			c.Owner = app.Username
		}
		return app.Services.Categories.Add(ctx, &c)
	case model.Subscriptions:
		var s model.Subscription
		if err := json.Unmarshal(raw, &s); err != nil {
			return fmt.Errorf("parse subscription json: %w", err)
		}
		if s.Creator == "" {
			s.Creator = app.Username
		}
		return app.Services.Subscriptions.Add(ctx, &s)
	default:
		return fmt.Errorf("cannot add to collection %q", args[0])
	}
}

func init() { RegisterCmd(addCmd{}) }

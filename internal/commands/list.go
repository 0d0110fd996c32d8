package commands

import (
	"context"
	"fmt"

	"github.com/Somethings1/fintrack-sub000/internal/bootstrap"
	"github.com/Somethings1/fintrack-sub000/internal/config"
	"github.com/Somethings1/fintrack-sub000/internal/model"
)

type listCmd struct{}

func (listCmd) Name() string        { return "list" }
func (listCmd) Description() string { return "List cached records of a collection" }
func (listCmd) Usage() string {
	return "list <transactions|accounts|savings|categories|subscriptions|notifications>"
}

func (listCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	app, cleanup, err := bootstrap.Open(cfg, log, Out)
	if err != nil {
		return err
	}
	defer cleanup()

	switch model.Collection(args[0]) {
	case model.Transactions:
		rows, err := app.Transactions.Transactions(ctx)
		if err != nil {
			return err
		}
		for _, tx := range rows {
			from, to := tx.SourceAccountName, tx.DestinationAccountName
			fmt.Fprintf(Out, "%s  %s  %10s  %-8s  %s -> %s  [%s]  %s\n",
				tx.ID,
				tx.DateTime.Local().Format("2006-01-02 15:04"),
				app.Summary.FormatFloat(tx.Amount),
				tx.Type, from, to, tx.CategoryName, tx.Note)
		}
		fmt.Fprintf(Out, "%d transaction(s)\n", len(rows))
	case model.Accounts:
		rows, err := app.Services.Accounts.Stored(ctx)
		if err != nil {
			return err
		}
		for _, a := range rows {
			fmt.Fprintf(Out, "%s  %-20s  %s\n", a.ID, a.Name, app.Summary.FormatFloat(a.Balance))
		}
		fmt.Fprintf(Out, "%d account(s)\n", len(rows))
	case model.Savings:
		rows, err := app.Services.Savings.Stored(ctx)
		if err != nil {
			return err
		}
		for _, s := range rows {
			fmt.Fprintf(Out, "%s  %-20s  %s of %s by %s\n",
				s.ID, s.Name, app.Summary.FormatFloat(s.Balance), app.Summary.FormatFloat(s.Goal),
				s.GoalDate.Local().Format("2006-01-02"))
		}
		fmt.Fprintf(Out, "%d saving(s)\n", len(rows))
	case model.Categories:
		rows, err := app.Services.Categories.Stored(ctx)
		if err != nil {
			return err
		}
		for _, c := range rows {
			budget := "no budget"
			if c.Budget > 0 {
				budget = "budget " + app.Summary.FormatFloat(c.Budget)
			}
			fmt.Fprintf(Out, "%s  %-20s  %-8s  %s\n", c.ID, c.Name, c.Type, budget)
		}
		fmt.Fprintf(Out, "%d categor(y/ies)\n", len(rows))
	case model.Subscriptions:
		rows, err := app.Services.Subscriptions.Stored(ctx)
		if err != nil {
			return err
		}
		for _, s := range rows {
			fmt.Fprintf(Out, "%s  %-20s  %s every %d %s(s), next %s\n",
				s.ID, s.Name, app.Summary.FormatFloat(s.Amount), s.MaxInterval, s.Interval,
				s.NextActive.Local().Format("2006-01-02"))
		}
		fmt.Fprintf(Out, "%d subscription(s)\n", len(rows))
	case model.Notifications:
		rows, err := app.Services.Notifications.Stored(ctx)
		if err != nil {
			return err
		}
		for _, n := range rows {
			mark := " "
			if !n.Read {
				mark = "*"
			}
			fmt.Fprintf(Out, "%s %s  %-12s  %s: %s\n", mark, n.ID, n.Type, n.Title, n.Message)
		}
		fmt.Fprintf(Out, "%d notification(s)\n", len(rows))
	default:
		return fmt.Errorf("unknown collection %q", args[0])
	}
	return nil
}

func init() { RegisterCmd(listCmd{}) }

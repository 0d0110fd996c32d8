package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/Somethings1/fintrack-sub000/internal/bootstrap"
	"github.com/Somethings1/fintrack-sub000/internal/config"
)

type summaryCmd struct{}

func (summaryCmd) Name() string        { return "summary" }
func (summaryCmd) Description() string { return "Show monthly spend per category and account balances" }
func (summaryCmd) Usage() string       { return "summary [YYYY-MM]" }

func (summaryCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) > 1 {
		return ErrUsage
	}
	month := time.Now()
	if len(args) == 1 {
		parsed, err := time.Parse("2006-01", args[0])
		if err != nil {
			return fmt.Errorf("month must look like 2025-07: %w", err)
		}
		month = parsed
	}

	app, cleanup, err := bootstrap.Open(cfg, log, Out)
	if err != nil {
		return err
	}
	defer cleanup()

	rows, err := app.Summary.MonthlySpend(ctx, month.Year(), month.Month())
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "Spending for %s\n", month.Format("January 2006"))
	for _, row := range rows {
		line := fmt.Sprintf("  %-20s  %12s", row.Name, app.Summary.FormatAmount(row.Spent))
		if row.Budget.IsPositive() {
			line += fmt.Sprintf(" of %s", app.Summary.FormatAmount(row.Budget))
		}
		if row.OverBudget {
			line += "  OVER BUDGET"
		}
		fmt.Fprintln(Out, line)
	}

	balances, err := app.Summary.AccountBalances(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(Out, "Accounts")
	for _, b := range balances {
		fmt.Fprintf(Out, "  %-20s  %12s\n", b.Name, app.Summary.FormatAmount(b.Balance))
	}
	return nil
}

func init() { RegisterCmd(summaryCmd{}) }

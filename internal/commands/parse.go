package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Somethings1/fintrack-sub000/internal/bootstrap"
	"github.com/Somethings1/fintrack-sub000/internal/chatbot"
	"github.com/Somethings1/fintrack-sub000/internal/config"
)

type parseCmd struct{}

func (parseCmd) Name() string { return "parse" }
func (parseCmd) Description() string {
	return "Turn a sentence into a transaction draft and create it"
}
func (parseCmd) Usage() string { return "parse <sentence>" }

func (parseCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return ErrUsage
	}
	if cfg.ChatbotDisabled {
		return errors.New("the chatbot parser is disabled (remove --no-chatbot or CHATBOT_DISABLED)")
	}
	sentence := strings.Join(args, " ")

	app, cleanup, err := bootstrap.Open(cfg, log, Out)
	if err != nil {
		return err
	}
	defer cleanup()

	parser, err := chatbot.NewGeminiParser(ctx)
	if err != nil {
		return fmt.Errorf("chatbot: %w", err)
	}

	accounts, err := app.Services.Accounts.Stored(ctx)
	if err != nil {
		return err
	}
	categories, err := app.Services.Categories.Stored(ctx)
	if err != nil {
		return err
	}
	accOpts := make([]chatbot.Option, 0, len(accounts))
	for _, a := range accounts {
		accOpts = append(accOpts, chatbot.Option{ID: a.ID, Name: a.Name})
	}
	catOpts := make([]chatbot.Option, 0, len(categories))
	for _, c := range categories {
		catOpts = append(catOpts, chatbot.Option{ID: c.ID, Name: c.Name})
	}

	draft, err := parser.Parse(ctx, sentence, accOpts, catOpts)
	if err != nil {
		return err
	}
	if draft.Problem != nil {
		fmt.Fprintf(Out, "Could not map %s %q: %s\n", draft.Problem.Type, draft.Problem.Name, draft.Problem.Message)
		return nil
	}

	tx := draft.Transaction
	tx.Creator = app.Username
	fmt.Fprintf(Out, "Draft: %s %s  %s -> %s  [%s]  %s\n",
		tx.Type, app.Summary.FormatFloat(tx.Amount),
		app.Resolver.AccountName(ctx, tx.SourceAccount),
		app.Resolver.AccountName(ctx, tx.DestinationAccount),
		app.Resolver.CategoryName(ctx, tx.Category),
		tx.Note)
	return app.Services.Transactions.Add(ctx, &tx)
}

func init() { RegisterCmd(parseCmd{}) }

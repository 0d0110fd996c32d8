package commands

import (
	"context"
	"fmt"

	"github.com/Somethings1/fintrack-sub000/internal/bootstrap"
	"github.com/Somethings1/fintrack-sub000/internal/config"
)

type registerCmd struct{}

func (registerCmd) Name() string        { return "register" }
func (registerCmd) Description() string { return "Create an account and sign in" }
func (registerCmd) Usage() string       { return "register <username> <password>" }

func (registerCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return ErrUsage
	}
	_, auth := bootstrap.NewAuth(cfg)
	if err := auth.Register(ctx, args[0], args[1]); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Registered and logged in as %s\n", args[0])
	return nil
}

func init() { RegisterCmd(registerCmd{}) }

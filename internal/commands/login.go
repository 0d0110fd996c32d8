package commands

import (
	"context"
	"fmt"

	"github.com/Somethings1/fintrack-sub000/internal/bootstrap"
	"github.com/Somethings1/fintrack-sub000/internal/config"
)

type loginCmd struct{}

func (loginCmd) Name() string        { return "login" }
func (loginCmd) Description() string { return "Sign in and store the auth cookie" }
func (loginCmd) Usage() string       { return "login <username> <password>" }

func (loginCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return ErrUsage
	}
	_, auth := bootstrap.NewAuth(cfg)
	if err := auth.Login(ctx, args[0], args[1]); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Logged in as %s\n", args[0])
	return nil
}

func init() { RegisterCmd(loginCmd{}) }

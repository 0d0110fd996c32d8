package commands

import (
	"context"
	"fmt"

	"github.com/Somethings1/fintrack-sub000/internal/bootstrap"
	"github.com/Somethings1/fintrack-sub000/internal/config"
)

type logoutCmd struct{}

func (logoutCmd) Name() string        { return "logout" }
func (logoutCmd) Description() string { return "Sign out and clear the local session" }
func (logoutCmd) Usage() string       { return "logout" }

func (logoutCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	_, auth := bootstrap.NewAuth(cfg)
	if err := auth.Logout(ctx); err != nil {
		// The local session is gone either way.
		fmt.Fprintf(Out, "Logged out locally (server call failed: %v)\n", err)
		return nil
	}
	fmt.Fprintln(Out, "Logged out")
	return nil
}

func init() { RegisterCmd(logoutCmd{}) }

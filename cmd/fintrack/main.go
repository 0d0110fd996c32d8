package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Somethings1/fintrack-sub000/internal/commands"
	"github.com/Somethings1/fintrack-sub000/internal/config"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	cfg := config.NewConfig()

	if cfg.Version {
		printVersion()
		return
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	commands.SetLogger(logger.Sugar())

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	exitCode := commands.Dispatch(ctx, cfg, flag.Args())
	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

func printVersion() {
	fmt.Printf("fintrack CLI\nVersion: %s\nBuild date: %s\n", version, buildDate)
}

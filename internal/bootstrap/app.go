// Package bootstrap builds the application graph: session, cache store,
// typed repositories, services, poller, socket and views, constructed once
// per process and torn down with the returned cleanup.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/Somethings1/fintrack-sub000/internal/api"
	"github.com/Somethings1/fintrack-sub000/internal/bus"
	"github.com/Somethings1/fintrack-sub000/internal/config"
	"github.com/Somethings1/fintrack-sub000/internal/notice"
	"github.com/Somethings1/fintrack-sub000/internal/repo/fs"
	"github.com/Somethings1/fintrack-sub000/internal/repo/sqlite"
	"github.com/Somethings1/fintrack-sub000/internal/service"
	"github.com/Somethings1/fintrack-sub000/internal/view"
)

// App bundles everything a logged-in command needs.
type App struct {
	Username string

	Client   *api.Client
	Auth     *service.AuthService
	Session  fs.SessionStore
	Bus      *bus.RefreshBus
	Services *service.Registry
	Poller   *service.Poller
	Socket   *service.SocketClient

	Resolver     *view.Resolver
	Transactions *view.TransactionView
	Summary      *view.Summary
}

// NewAuth builds just the pieces login/register/logout need; no cache store
// is opened because nobody is necessarily logged in yet.
func NewAuth(cfg *config.Config) (*api.Client, *service.AuthService) {
	client := api.New(cfg.ServerURL, fs.SessionStore{})
	return client, service.NewAuthService(client)
}

// Open builds the full app for the active user. It fails when nobody is
// logged in or the session has expired. The cleanup closes the cache store
// and must be called when the command finishes.
func Open(cfg *config.Config, log *zap.SugaredLogger, out io.Writer) (*App, func() error, error) {
	client, auth := NewAuth(cfg)
	username, err := auth.ActiveUser()
	if errors.Is(err, service.ErrSessionExpired) {
		// One refresh attempt before giving up on the session.
		if rerr := auth.Refresh(context.Background()); rerr == nil {
			username, err = auth.ActiveUser()
		}
	}
	if err != nil {
		return nil, nil, err
	}
	if _, err := (fs.SessionStore{}).EnsureClientID(); err != nil {
		return nil, nil, fmt.Errorf("client id: %w", err)
	}

	store, _, err := sqlite.OpenForUser(username, log)
	if err != nil {
		return nil, nil, fmt.Errorf("open user cache: %w", err)
	}
	if err := store.Migrate(); err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("migrate user cache: %w", err)
	}

	b := bus.New()
	collections := service.OpenCollections(store)
	notifier := &notice.Writer{Out: out}
	services := service.NewRegistry(client, collections, b, notifier, log)
	poller := service.NewPoller(
		service.SyncFuncs(client, collections, log),
		sqlite.NewCheckpointStore(store),
		b,
		cfg.PollInterval(),
		log,
	)
	socket := service.NewSocketClient(cfg.SocketURL, fs.SessionStore{}, b, log)
	socket.SetCadence(cfg.Heartbeat(), cfg.ReconnectDelay())

	resolver := view.NewResolver(collections.Accounts, collections.Categories, b)
	app := &App{
		Username:     username,
		Client:       client,
		Auth:         auth,
		Bus:          b,
		Services:     services,
		Poller:       poller,
		Socket:       socket,
		Resolver:     resolver,
		Transactions: view.NewTransactionView(collections.Transactions, resolver, b),
		Summary:      view.NewSummary(collections.Transactions, collections.Accounts, collections.Categories, cfg.Currency),
	}
	return app, store.Close, nil
}

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"banking-client/internal/api"
	"banking-client/internal/config"
	"banking-client/internal/observer"
	"banking-client/internal/services/exchange"
	"banking-client/internal/services/places"
	"banking-client/internal/session"
	"banking-client/internal/store"
	"banking-client/internal/store/memory"
	"banking-client/internal/store/redisstore"
	"banking-client/internal/store/sqlstore"
)

var errUnknownCommand = errors.New("unknown command")

type command func(ctx context.Context, args []string) error

type app struct {
	params    config.Params
	store     store.Store
	sess      *session.Session
	backend   *api.Client
	exchanger *exchange.Service
	finder    *places.Service
	server    *http.Server
	observer  *observer.Observer
	out       io.Writer
	logger    *slog.Logger
}

func newApp(params config.Params, s store.Store, out io.Writer, logger *slog.Logger) *app {
	instance := &app{
		params:    params,
		store:     s,
		sess:      session.New(s, params.DefaultCurrency, logger),
		backend:   api.NewClient(params.BackendAddr, params.RequestTimeout, logger),
		exchanger: exchange.NewService(params.ExchangeAddr, params.ExchangeAPIKey, params.RequestTimeout, logger),
		finder:    places.NewService(params.PlacesAddr, params.PlacesAPIKey, params.RequestTimeout, logger),
		out:       out,
		logger:    logger,
	}

	return instance
}

// openStore picks the Store implementation by the DSN scheme.
func openStore(ctx context.Context, dsn string) (store.Store, error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid session store %q: %w", dsn, err)
	}

	switch u.Scheme {
	case "memory":
		return memory.NewStore(), nil
	case "sqlite", "sqlite3", "file":
		path := strings.TrimPrefix(dsn, u.Scheme+"://")
		if path == "" {
			return nil, fmt.Errorf("sqlite session store needs a path")
		}
		return sqlstore.Open(ctx, sqlstore.SQLite, path)
	case "postgres", "postgresql":
		return sqlstore.Open(ctx, sqlstore.Postgres, dsn)
	case "redis", "rediss":
		client, err := redisstore.NewClient(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return redisstore.NewStore(client, ""), nil
	default:
		return nil, fmt.Errorf("unsupported session store scheme %q", u.Scheme)
	}
}

func (a *app) commands() map[string]command {
	return map[string]command{
		"login":       a.login,
		"signup":      a.signup,
		"forgot":      a.forgot,
		"logout":      a.logout,
		"balance":     a.balance,
		"users":       a.users,
		"transfer":    a.transfer,
		"deposit":     a.deposit,
		"bill":        a.bill,
		"topup":       a.topUp,
		"history":     a.history,
		"beneficiary": a.beneficiary,
		"exchange":    a.exchange,
		"branches":    a.branches,
		"profile":     a.profile,
		"watch":       a.watch,
		"fakebank":    a.serveFakebank,
	}
}

func (a *app) Run(ctx context.Context, args []string) error {
	cmds := a.commands()

	if len(args) == 0 {
		return fmt.Errorf("%w, expected one of: %s", errUnknownCommand, strings.Join(commandNames(cmds), ", "))
	}

	cmd, ok := cmds[args[0]]
	if !ok {
		return fmt.Errorf("%w %q, expected one of: %s", errUnknownCommand, args[0], strings.Join(commandNames(cmds), ", "))
	}

	return cmd(ctx, args[1:])
}

func (a *app) Close() error {
	if a.server != nil {
		if err := a.shutdownServer(); err != nil {
			return fmt.Errorf("error by Server shutdown: %w", err)
		}
	}

	if a.observer != nil {
		a.observer.Close()
	}

	if err := a.store.Close(); err != nil {
		return fmt.Errorf("error by closing Store: %w", err)
	}

	return nil
}

func (a *app) shutdownServer() error {
	timeout := a.params.RequestTimeout
	if timeout <= 0 {
		timeout = api.DefaultTimeout
	}

	shutdownCtx, shutdownRelease := context.WithTimeout(context.Background(), timeout)
	defer shutdownRelease()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP shutdown error: %w", err)
	}

	a.logger.Info("HTTP graceful shutdown complete")

	return nil
}

// catchTerminateSignal blocks until SIGINT, SIGTERM or ctx is done and then
// calls stop.
func (a *app) catchTerminateSignal(ctx context.Context, stop func()) {
	terminateSignals := make(chan os.Signal, 1)

	signal.Notify(terminateSignals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(terminateSignals)

	select {
	case <-terminateSignals:
		a.logger.Info("Terminate signal received")
	case <-ctx.Done():
	}

	stop()
}

func (a *app) printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("error by encoding output - %w", err)
	}

	_, err = fmt.Fprintln(a.out, string(data))

	return err
}

func (a *app) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func commandNames(cmds map[string]command) []string {
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

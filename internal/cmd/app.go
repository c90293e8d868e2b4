package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/sh-bo/dms-cli/internal/api"
	"github.com/sh-bo/dms-cli/internal/config"
	"github.com/sh-bo/dms-cli/internal/session"
)

// appDeps wires config, session store and API client together. The
// container is built lazily on first use so `dms version` and friends
// never touch the filesystem.
type appDeps struct {
	once   sync.Once
	err    error
	cfg    *config.Config
	store  *session.Store
	client *api.Client
	logger *slog.Logger
}

var app = &appDeps{}

func (a *appDeps) ensure() error {
	a.once.Do(func() {
		cfg, err := config.Load()
		if err != nil {
			a.err = err
			return
		}
		a.cfg = cfg
		a.logger = newLogger(cfg.Log.Level)
		applyColorMode(cfg.UI.ColorMode)

		store, err := session.Open(config.DefaultPaths().SessionDB())
		if err != nil {
			a.err = err
			return
		}
		a.store = store

		client, err := api.NewClient(cfg.API.BaseURL, cfg.Timeout(),
			api.WithTokens(store),
			api.WithLogger(a.logger))
		if err != nil {
			a.err = err
			return
		}
		a.client = client
	})
	return a.err
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

// requireSession loads the persisted session or tells the user to log in.
func (a *appDeps) requireSession(ctx context.Context) (session.Session, error) {
	if err := a.ensure(); err != nil {
		return session.Session{}, err
	}
	sess, err := a.store.Load(ctx)
	if errors.Is(err, session.ErrNoSession) {
		return session.Session{}, api.ErrNoToken
	}
	return sess, err
}

// requireAdmin additionally enforces the ADMIN role; the CLI analog of
// redirecting an unauthorized role back to the home screen.
func (a *appDeps) requireAdmin(ctx context.Context) (session.Session, error) {
	sess, err := a.requireSession(ctx)
	if err != nil {
		return sess, err
	}
	if !sess.IsAdmin() {
		return sess, fmt.Errorf("role %s is not allowed to manage this resource", sess.Role)
	}
	return sess, nil
}

// Typed resource accessors handed to the generic admin commands.

func (a *appDeps) branches() (*api.Resource[api.NamedEntity], error) {
	if err := a.ensure(); err != nil {
		return nil, err
	}
	return a.client.Branches(), nil
}

func (a *appDeps) departments() (*api.Resource[api.NamedEntity], error) {
	if err := a.ensure(); err != nil {
		return nil, err
	}
	return a.client.Departments(), nil
}

func (a *appDeps) roles() (*api.Resource[api.NamedEntity], error) {
	if err := a.ensure(); err != nil {
		return nil, err
	}
	return a.client.Roles(), nil
}

func (a *appDeps) categories() (*api.Resource[api.NamedEntity], error) {
	if err := a.ensure(); err != nil {
		return nil, err
	}
	return a.client.Categories(), nil
}

func (a *appDeps) docTypes() (*api.Resource[api.NamedEntity], error) {
	if err := a.ensure(); err != nil {
		return nil, err
	}
	return a.client.DocTypes(), nil
}

func (a *appDeps) years() (*api.Resource[api.NamedEntity], error) {
	if err := a.ensure(); err != nil {
		return nil, err
	}
	return a.client.Years(), nil
}

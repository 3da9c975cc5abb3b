// Package app wires the client together: configuration, the persisted
// session, and the API transport, plus the multi-read page loads the
// dashboard and history views need.
package app

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"agrigest/internal/api"
	"agrigest/internal/config"
	"agrigest/internal/session"
	"agrigest/internal/types"
)

// App is the shared state behind every command and TUI page.
type App struct {
	Config  *config.Config
	Log     *zap.Logger
	Session *session.Store
	API     *api.Client

	// onExpired runs after a 401 has torn the session down. The CLI
	// prints a message and exits; the TUI routes back to login.
	onExpired func()
}

// New builds the app. The session expiry hook may be set later with
// SetSessionExpiredHook; the 401 teardown itself is unconditional.
func New(cfg *config.Config, logger *zap.Logger, store *session.Store) (*App, error) {
	timeout, err := cfg.RequestTimeout()
	if err != nil {
		return nil, err
	}

	a := &App{Config: cfg, Log: logger, Session: store}
	a.API = api.NewClient(cfg.API.BaseURL,
		api.WithToken(store.Token),
		api.WithLogger(logger),
		api.WithHTTPClient(&http.Client{Timeout: timeout}),
		api.WithSessionExpiredHook(a.sessionExpired),
	)
	return a, nil
}

// SetSessionExpiredHook installs the post-teardown callback.
func (a *App) SetSessionExpiredHook(fn func()) { a.onExpired = fn }

func (a *App) sessionExpired() {
	a.Log.Warn("session expired, clearing credentials")
	if err := a.Session.Clear(); err != nil {
		a.Log.Error("clear session", zap.Error(err))
	}
	if a.onExpired != nil {
		a.onExpired()
	}
}

// Login exchanges credentials for a token, persists the session, and
// returns the profile.
func (a *App) Login(ctx context.Context, username, password string) (*types.User, error) {
	resp, err := a.API.Auth().Login(ctx, api.Credentials{Username: username, Password: password})
	if err != nil {
		return nil, err
	}
	if err := a.Session.Login(resp.Token, resp.User); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	a.Log.Info("logged in", zap.String("username", resp.User.Username))
	return &resp.User, nil
}

// Register creates the account, then logs in with the same credentials.
func (a *App) Register(ctx context.Context, reg api.Registration) (*types.User, error) {
	if _, err := a.API.Auth().Register(ctx, reg); err != nil {
		return nil, err
	}
	return a.Login(ctx, reg.Username, reg.Password)
}

// Logout invalidates the remote token best-effort and always clears
// local state. A remote failure is logged, never blocking.
func (a *App) Logout(ctx context.Context) error {
	if a.Session.Authenticated() {
		if err := a.API.Auth().Logout(ctx); err != nil {
			a.Log.Warn("remote logout failed", zap.Error(err))
		}
	}
	return a.Session.Clear()
}

// UpdateProfile patches the profile and refreshes the persisted
// snapshot so memory and disk cannot drift.
func (a *App) UpdateProfile(ctx context.Context, fields map[string]any) (*types.User, error) {
	user, err := a.API.Auth().UpdateProfile(ctx, fields)
	if err != nil {
		return nil, err
	}
	if err := a.Session.UpdateUser(*user); err != nil {
		return nil, fmt.Errorf("persist profile: %w", err)
	}
	return user, nil
}

// DashboardView is everything the dashboard renders in one shot.
type DashboardView struct {
	Stats    *types.DashboardStats
	Charts   *types.ChartData
	Conseils []types.Conseil
}

// LoadDashboard issues the three dashboard reads concurrently and
// fails the whole view if any one fails.
func (a *App) LoadDashboard(ctx context.Context, period string) (*DashboardView, error) {
	view := &DashboardView{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		stats, err := a.API.Dashboard().Stats(gctx)
		if err != nil {
			return err
		}
		view.Stats = stats
		return nil
	})
	g.Go(func() error {
		charts, err := a.API.Dashboard().Charts(gctx, period)
		if err != nil {
			return err
		}
		view.Charts = charts
		return nil
	})
	g.Go(func() error {
		conseils, err := a.API.Conseils().GetAll(gctx, api.Filters{"lu": "false"})
		if err != nil {
			return err
		}
		view.Conseils = conseils
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return view, nil
}

// HistoryData holds the three collections the activity feed merges.
type HistoryData struct {
	Cultures []types.Culture
	Recoltes []types.Recolte
	Depenses []types.Depense
}

// LoadHistory fetches all three collections in parallel.
func (a *App) LoadHistory(ctx context.Context) (*HistoryData, error) {
	data := &HistoryData{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		data.Cultures, err = a.API.Cultures().GetAll(gctx, nil)
		return err
	})
	g.Go(func() error {
		var err error
		data.Recoltes, err = a.API.Recoltes().GetAll(gctx, nil)
		return err
	})
	g.Go(func() error {
		var err error
		data.Depenses, err = a.API.Depenses().GetAll(gctx, nil)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return data, nil
}

// Package app assembles the store, API client and domain services from config.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/rpggio/clubboard/internal/apiclient"
	"github.com/rpggio/clubboard/internal/config"
	"github.com/rpggio/clubboard/internal/domain/activity"
	"github.com/rpggio/clubboard/internal/domain/event"
	"github.com/rpggio/clubboard/internal/domain/query"
	"github.com/rpggio/clubboard/internal/domain/session"
	"github.com/rpggio/clubboard/internal/domain/stats"
	"github.com/rpggio/clubboard/internal/domain/user"
	"github.com/rpggio/clubboard/internal/mcp"
	"github.com/rpggio/clubboard/internal/repository"
	"github.com/rpggio/clubboard/internal/sqlite"
	"github.com/rpggio/clubboard/internal/store"
)

// App holds every long-lived component of a clubboard process.
type App struct {
	DB       *sqlite.DB
	API      *apiclient.Client
	Store    *store.Store
	Session  *session.Service
	Events   *event.Service
	Stats    *stats.Service
	Users    *user.Service
	Queries  *query.Service
	Activity *activity.Service

	logger *slog.Logger
}

// New wires the components. An empty cache path keeps snapshots in memory only.
func New(cfg config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	dsn := cfg.Cache.Path
	persist := dsn != "" && dsn != ":memory:"
	if !persist {
		dsn = ":memory:"
	} else if err := ensureDir(dsn); err != nil {
		return nil, fmt.Errorf("prepare cache path: %w", err)
	}

	db, err := sqlite.New(dsn)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	if err := db.RunMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate cache: %w", err)
	}

	a := &App{DB: db, logger: logger}

	var snapshots repository.SnapshotRepository
	if persist {
		snapshots = sqlite.NewSnapshotRepository(db)
	}

	httpClient := &http.Client{Timeout: cfg.API.Timeout}
	a.API = apiclient.New(cfg.API.BaseURL, httpClient, apiclient.IdentityFunc(a.caller), logger)
	a.Store = store.New(a.API, snapshots, logger)

	// Services log through activity.Service, which assigns entry IDs.
	a.Activity = activity.NewService(sqlite.NewActivityRepository(db), logger)
	a.Session = session.NewService(a.API, a.Store, identityFromConfig(cfg.Identity), logger)
	a.Events = event.NewService(a.API, a.Store, a.Activity, logger)
	a.Stats = stats.NewService(a.API, a.Store, a.Activity, logger)
	a.Users = user.NewService(a.API, a.Store, a.Activity, logger)
	a.Queries = query.NewService(a.API, a.Activity, logger)

	return a, nil
}

// Start restores persisted snapshots then loads every resource. Load failures
// are returned joined; the app stays usable with stale data.
func (a *App) Start(ctx context.Context) error {
	if err := a.Store.Hydrate(ctx); err != nil {
		a.logger.Warn("snapshot restore failed", "error", err)
	}
	return a.Store.Bootstrap(ctx)
}

// MCPServices exposes the services to the MCP layer.
func (a *App) MCPServices() mcp.Services {
	return mcp.Services{
		Events:   a.Events,
		Stats:    a.Stats,
		Users:    a.Users,
		Queries:  a.Queries,
		Activity: a.Activity,
		Store:    a.Store,
		Caller:   a.Session,
	}
}

// Close releases the cache database.
func (a *App) Close() error {
	if a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

func (a *App) caller() user.Identity {
	if a.Session == nil {
		return user.Identity{}
	}
	return a.Session.Current()
}

func identityFromConfig(c config.IdentityConfig) user.Identity {
	return user.Identity{
		ID:      c.ID,
		Name:    c.Name,
		Email:   c.Email,
		Role:    user.Role(c.Role),
		Team:    user.Team(c.Team),
		Passkey: c.Passkey,
	}
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

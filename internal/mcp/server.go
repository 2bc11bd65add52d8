package mcp

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/clubboard/internal/domain/activity"
	"github.com/rpggio/clubboard/internal/domain/event"
	"github.com/rpggio/clubboard/internal/domain/query"
	"github.com/rpggio/clubboard/internal/domain/stats"
	"github.com/rpggio/clubboard/internal/domain/user"
	"github.com/rpggio/clubboard/internal/store"
)

// EventService defines event operations needed by MCP.
type EventService interface {
	List(ctx context.Context) ([]event.Event, error)
	Get(ctx context.Context, id string) (event.Event, error)
	Create(ctx context.Context, caller user.Identity, req event.CreateRequest) (event.Event, error)
	Transition(ctx context.Context, caller user.Identity, req event.TransitionRequest) (event.Event, error)
}

// StatsService defines stats operations needed by MCP.
type StatsService interface {
	Overview(ctx context.Context) (stats.Overview, error)
	Teams(ctx context.Context) ([]stats.TeamStats, error)
	NeedsMediaEntry(ctx context.Context) (bool, error)
	NeedsDesignEntry(ctx context.Context) (bool, error)
	SubmitMedia(ctx context.Context, caller user.Identity, in stats.MediaInput) (*stats.MediaSeries, error)
	SubmitDesign(ctx context.Context, caller user.Identity, in stats.DesignInput) (*stats.DesignSeries, error)
}

// UserService defines member administration needed by MCP.
type UserService interface {
	List(ctx context.Context) ([]user.User, error)
	Update(ctx context.Context, caller user.Identity, id string, role user.Role, team user.Team) error
	Delete(ctx context.Context, caller user.Identity, id string) error
}

// QueryService defines query operations needed by MCP.
type QueryService interface {
	List(ctx context.Context, caller user.Identity) ([]query.Query, error)
	Address(ctx context.Context, caller user.Identity, id, solution string) (query.Query, error)
}

// ActivityService defines activity operations needed by MCP.
type ActivityService interface {
	Recent(ctx context.Context, opts activity.ListOptions) ([]activity.Entry, error)
}

// StoreService reloads cached resources.
type StoreService interface {
	Refetch(ctx context.Context, r store.Resource) (any, error)
}

// Caller supplies the identity tools act as.
type Caller interface {
	Current() user.Identity
}

// Services contains all domain services needed by MCP.
type Services struct {
	Events   EventService
	Stats    StatsService
	Users    UserService
	Queries  QueryService
	Activity ActivityService
	Store    StoreService
	Caller   Caller
}

// Config contains server configuration.
type Config struct {
	Services Services
	Version  string
	Logger   *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	version := cfg.Version
	if version == "" {
		version = "0.1.0"
	}
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "clubboard",
		Version: version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	server.AddReceivingMiddleware(toolMetricsMiddleware())
	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, NewHandler(cfg.Services), cfg.Logger)

	return server
}

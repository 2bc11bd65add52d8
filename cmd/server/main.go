package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/clubboard/internal/app"
	"github.com/rpggio/clubboard/internal/config"
	"github.com/rpggio/clubboard/internal/mcp"
	"github.com/rpggio/clubboard/internal/messaging"
	"github.com/rpggio/clubboard/internal/otel"
	"github.com/rpggio/clubboard/internal/transport"
)

const (
	bootstrapTimeout = 30 * time.Second
	natsDialTimeout  = 10 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "clubboard: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	// Keep stdout clean for JSON-RPC in stdio mode.
	logWriter := io.Writer(os.Stdout)
	if cfg.Transport.Mode == "stdio" {
		logWriter = os.Stderr
	}
	if logPath := os.Getenv("CLUBBOARD_LOG_PATH"); logPath != "" {
		file, err := openCappedLog(logPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		} else {
			defer file.Close()
			logWriter = file
		}
	}
	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	var metricsHandler http.Handler
	if cfg.Metrics.Enabled {
		metricsHandler, err = otel.InitMeterProvider(context.Background(), "clubboard")
		if err != nil {
			return fmt.Errorf("init meter provider: %w", err)
		}
		if err := otel.InitMetrics(context.Background()); err != nil {
			return fmt.Errorf("init metrics: %w", err)
		}
	}

	a, err := app.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("build app: %w", err)
	}
	defer a.Close()

	if cfg.NATS.URL != "" {
		client, err := messaging.ConnectWithRetry(cfg.NATS.URL, "clubboard", natsDialTimeout)
		if err != nil {
			return fmt.Errorf("connect to nats at %s: %w", cfg.NATS.URL, err)
		}
		defer client.Close()
		detach := messaging.NewNotifier(client.Publisher(), cfg.NATS.SubjectPrefix, logger).Attach(a.Store)
		defer detach()
		logger.Info("publishing store changes", "url", cfg.NATS.URL, "prefix", cfg.NATS.SubjectPrefix)
	}

	// A failed bootstrap is not fatal: tools serve whatever loaded and
	// refresh retries the rest.
	bootCtx, cancel := context.WithTimeout(context.Background(), bootstrapTimeout)
	_ = a.Start(bootCtx)
	cancel()

	mcpServer := mcp.NewServer(mcp.Config{
		Services: a.MCPServices(),
		Logger:   logger,
	})

	if cfg.Transport.Mode == "stdio" {
		return runStdioMode(logger, mcpServer)
	}

	opts := transport.Options{
		RPC:       mcp.NewHandler(a.MCPServices()),
		MCP:       newMCPHandler(mcpServer),
		Snapshots: a.Store,
		Metrics:   metricsHandler,
		Logger:    logger,
	}
	if cfg.Auth.Enabled {
		if cfg.Auth.Token == "" {
			return errors.New("auth enabled without CLUBBOARD_AUTH_TOKEN")
		}
		opts.Auth = transport.AuthMiddleware(transport.StaticToken{Token: cfg.Auth.Token})
	}
	return runHTTPMode(logger, transport.NewServer(opts), cfg.Server.Host, cfg.Server.Port, cfg.Auth.Enabled)
}

func newMCPHandler(server *sdkmcp.Server) http.Handler {
	return sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return server },
		&sdkmcp.StreamableHTTPOptions{
			Stateless:      false,
			SessionTimeout: 30 * time.Minute,
		},
	)
}

func runStdioMode(logger *slog.Logger, mcpServer *sdkmcp.Server) error {
	logger.Info("starting stdio transport", "auth", "disabled")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Run blocks until stdin closes or the context is canceled.
	if err := mcpServer.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("stdio server: %w", err)
	}
	return nil
}

func runHTTPMode(logger *slog.Logger, handler http.Handler, host string, port int, auth bool) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr, "auth", auth)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	return waitForShutdown(logger, httpServer, serveErr)
}

func waitForShutdown(logger *slog.Logger, server *http.Server, serveErr <-chan error) error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case err := <-serveErr:
		return fmt.Errorf("http server: %w", err)
	case <-stop:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

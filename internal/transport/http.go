package transport

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rpggio/clubboard/internal/store"
)

// RPCHandler dispatches tool calls by name.
type RPCHandler interface {
	Handle(ctx context.Context, method string, params json.RawMessage) (any, error)
}

// SnapshotSource exposes cached resources.
type SnapshotSource interface {
	Snapshot(r store.Resource) (store.Snapshot, bool)
}

// Options configures the HTTP surface. Nil handlers leave their routes unmounted.
type Options struct {
	RPC       RPCHandler
	MCP       http.Handler
	Snapshots SnapshotSource
	Metrics   http.Handler
	Auth      func(http.Handler) http.Handler
	Logger    *slog.Logger
}

// Server wires HTTP handlers.
type Server struct {
	rpc       RPCHandler
	snapshots SnapshotSource
}

// NewServer creates an HTTP server router with middleware. /health and
// /metrics stay open; everything else sits behind opts.Auth.
func NewServer(opts Options) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	if opts.Logger != nil {
		r.Use(requestLogger(opts.Logger))
	}

	srv := &Server{rpc: opts.RPC, snapshots: opts.Snapshots}

	r.Get("/health", srv.handleHealth)
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics)
	}

	r.Group(func(r chi.Router) {
		if opts.Auth != nil {
			r.Use(opts.Auth)
		}
		if opts.RPC != nil {
			r.Post("/rpc", srv.handleRPC)
		}
		if opts.Snapshots != nil {
			r.Get("/snapshot", srv.handleSnapshots)
			r.Get("/snapshot/{resource}", srv.handleSnapshot)
		}
		if opts.MCP != nil {
			r.Handle("/mcp", opts.MCP)
			r.Handle("/mcp/*", opts.MCP)
		}
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleRPC(w http.ResponseWriter, r *http.Request) {
	req, err := ParseRequest(r.Body)
	if errors.Is(err, ErrParse) {
		WriteError(w, nil, ErrParseCode, "parse error", nil)
		return
	}
	if err != nil {
		WriteError(w, nil, ErrInvalidReq, "invalid request", nil)
		return
	}

	result, err := s.rpc.Handle(r.Context(), req.Method, req.Params)
	if err != nil {
		WriteHandlerError(w, req.ID, err)
		return
	}

	WriteResult(w, req.ID, result)
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	resource, err := store.ParseResource(chi.URLParam(r, "resource"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	snap, ok := s.snapshots.Snapshot(resource)
	if !ok {
		http.Error(w, "not loaded yet", http.StatusServiceUnavailable)
		return
	}
	writeBody(w, snap)
}

func (s *Server) handleSnapshots(w http.ResponseWriter, _ *http.Request) {
	out := make([]store.Snapshot, 0, len(store.Resources))
	for _, resource := range store.Resources {
		if snap, ok := s.snapshots.Snapshot(resource); ok {
			out = append(out, snap)
		}
	}
	writeBody(w, out)
}

func writeBody(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"elapsed", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}

// Package handler is the HTTP surface: the GraphQL endpoint plus health and
// metrics.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"

	"appointment-graphql-api/internal/metrics"
	"appointment-graphql-api/internal/middleware"
)

// Pinger is satisfied by *store.Store and *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	schema  *graphql.Schema
	db      Pinger
	log     *slog.Logger
	metrics *metrics.Metrics
	limiter *middleware.RateLimiter
}

// New wires the handler. limiter may be nil to disable rate limiting.
func New(schema *graphql.Schema, db Pinger, logger *slog.Logger, m *metrics.Metrics, limiter *middleware.RateLimiter) *Handler {
	return &Handler{schema: schema, db: db, log: logger, metrics: m, limiter: limiter}
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(middleware.WithRequestID)
	r.Use(middleware.AccessLog(h.log, h.metrics))
	r.Use(chimw.Recoverer)

	r.Get("/healthz", h.health)
	r.Method(http.MethodGet, "/metrics", h.metrics.Handler())

	r.Group(func(r chi.Router) {
		if h.limiter != nil {
			r.Use(middleware.RateLimit(h.limiter))
		}
		r.Method(http.MethodPost, "/query", &relay.Handler{Schema: h.schema})
	})
	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	code, status := http.StatusOK, "ok"
	if err := h.db.Ping(ctx); err != nil {
		h.log.WarnContext(ctx, "health check failed", "error", err)
		code, status = http.StatusServiceUnavailable, "unavailable"
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(map[string]string{"status": status}); err != nil {
		h.log.DebugContext(ctx, "write health response", "error", err)
	}
}

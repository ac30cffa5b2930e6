package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"appointment-graphql-api/internal/config"
	"appointment-graphql-api/internal/graph"
	"appointment-graphql-api/internal/handler"
	"appointment-graphql-api/internal/logger"
	"appointment-graphql-api/internal/metrics"
	"appointment-graphql-api/internal/middleware"
	"appointment-graphql-api/internal/store"
)

func main() {
	cfg := config.Load()
	log := logger.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	log.Info("starting", "config", cfg.Redacted())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// database
	pool, err := pgxpool.New(ctx, cfg.DSN())
	if err != nil {
		log.Error("db", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		log.Error("db ping", "error", err)
		os.Exit(1)
	}
	log.Info("connected to postgres")

	if cfg.MigrateOnStart {
		if err := store.Migrate(pool); err != nil {
			log.Error("migrate", "error", err)
			os.Exit(1)
		}
		log.Info("migrations applied")
	}

	m := metrics.New()
	st := store.New(pool, store.WithObserver(m.ObserveStorage))
	if err := st.VerifySchema(ctx); err != nil {
		log.Error("appointments schema", "error", err)
		os.Exit(1)
	}
	log.Info("appointments schema verified", "id_column", st.IDColumn())

	schema, err := graph.NewSchema(graph.NewResolver(st, log, m), cfg.MaxQueryDepth, log)
	if err != nil {
		log.Error("graphql schema", "error", err)
		os.Exit(1)
	}

	rl := middleware.NewRateLimiter(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst)
	h := handler.New(schema, st, log, m, rl)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           h.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}
	go func() {
		log.Info("graphql on /query", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http", "error", err)
			stop()
		}
	}()

	// graceful shutdown
	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", "error", err)
	}
}

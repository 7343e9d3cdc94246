package server

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/openquiz/livequiz/internal/auth"
	"github.com/openquiz/livequiz/internal/config"
	"github.com/openquiz/livequiz/internal/logging"
	"github.com/openquiz/livequiz/internal/session"
)

// NewHTTPServer wires base routes (health, metrics) and the session API.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, pool *pgxpool.Pool, redis *redis.Client, tokens *auth.Manager, handlers *session.HTTPHandlers) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /v1/ping", func(w http.ResponseWriter, r *http.Request) {
		ctx := logging.IntoContext(r.Context(), logger)
		if err := pingDependencies(ctx, pool, redis); err != nil {
			logger.Error().Err(err).Msg("dependency ping failed")
			http.Error(w, "upstream error", http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pong":true}`))
	})

	// Operator endpoints
	mux.HandleFunc("POST /v1/sessions", auth.Require(tokens, auth.RoleOperator, handlers.CreateSession))
	mux.HandleFunc("POST /v1/sessions/{id}/mutate", auth.Require(tokens, auth.RoleOperator, handlers.Mutate))
	mux.HandleFunc("DELETE /v1/sessions/{id}", auth.Require(tokens, auth.RoleOperator, handlers.Evict))
	mux.HandleFunc("GET /v1/sessions/{id}/admin", auth.Require(tokens, auth.RoleOperator, handlers.AdminStatus))

	// Participant endpoints (join issues the player token the others require)
	mux.HandleFunc("POST /v1/sessions/{id}/join", handlers.Join)
	mux.HandleFunc("POST /v1/sessions/{id}/answers", auth.Require(tokens, auth.RolePlayer, handlers.SubmitAnswer))
	mux.HandleFunc("GET /v1/sessions/{id}/status", auth.Require(tokens, auth.RolePlayer, handlers.PlayerStatus))

	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: mux,
	}
}

func pingDependencies(ctx context.Context, pool *pgxpool.Pool, redis *redis.Client) error {
	if err := pool.Ping(ctx); err != nil {
		return err
	}
	return redis.Ping(ctx).Err()
}

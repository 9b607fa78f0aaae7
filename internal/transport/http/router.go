// Package http serves snapshots over HTTP and websocket.
package http

import (
	"net/http"

	"horizonx-probe/internal/config"
	"horizonx-probe/internal/logger"
	"horizonx-probe/internal/transport/http/middleware"
	"horizonx-probe/internal/transport/ws"
)

type RouterDeps struct {
	Snapshot *SnapshotHandler
	Ws       *ws.Handler
	Metrics  http.Handler
}

func NewRouter(cfg *config.Config, log logger.Logger, deps *RouterDeps) http.Handler {
	mux := http.NewServeMux()

	authStack := middleware.New()
	authStack.Use(middleware.JWT(cfg.JWTSecret, log))

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	if err := limiter.TrustProxies(cfg.TrustedProxies...); err != nil {
		log.Warn("ignoring trusted proxies", "error", err)
	}
	apiStack := authStack.Extend(middleware.RateLimit(limiter))

	// HEALTH
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// SNAPSHOTS
	mux.Handle("GET /api/snapshot", apiStack.ThenFunc(deps.Snapshot.Show))
	mux.Handle("GET /ws", authStack.ThenFunc(deps.Ws.Serve))

	// PROMETHEUS
	if deps.Metrics != nil {
		mux.Handle("GET /metrics", deps.Metrics)
	}

	return mux
}

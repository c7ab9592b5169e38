package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"musa/internal/auth"
	"musa/internal/config"
	"musa/internal/store"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// MusicServer serves the account and playlist API
type MusicServer struct {
	config       *config.Config
	logger       *logrus.Logger
	authService  *auth.Service
	users        *store.UserStore
	playlists    *store.PlaylistStore
	loginLimiter *RateLimiter
	httpServer   *http.Server
}

// NewMusicServer creates a new music server instance with empty stores
func NewMusicServer(cfg *config.Config, logger *logrus.Logger) *MusicServer {
	users := store.NewUserStore()

	ms := &MusicServer{
		config:      cfg,
		logger:      logger,
		authService: auth.NewService(users, auth.NewSessionStore(), logger),
		users:       users,
		playlists:   store.NewPlaylistStore(),
	}

	if cfg.Auth.LoginRatePerSecond > 0 {
		ms.loginLimiter = NewRateLimiter(cfg.Auth.LoginRatePerSecond, cfg.Auth.LoginBurst)
	}

	ms.httpServer = &http.Server{
		Addr:         cfg.GetAddress(),
		Handler:      ms.Handler(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	return ms
}

// Handler returns the fully wrapped route table
func (ms *MusicServer) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", ms.handleHome)
	mux.HandleFunc("GET /health", ms.handleHealthCheck)

	mux.HandleFunc("POST /register", ms.handleRegister)
	mux.Handle("POST /login", ms.rateLimitMiddleware(http.HandlerFunc(ms.handleLogin)))

	mux.Handle("GET /playlist", ms.authMiddleware(http.HandlerFunc(ms.handleGetPlaylists)))
	mux.Handle("POST /playlist", ms.authMiddleware(http.HandlerFunc(ms.handleCreatePlaylist)))

	if ms.config.Metrics.Enabled {
		mux.Handle("GET "+ms.config.Metrics.Path, promhttp.Handler())
	}

	return ms.wrap(mux)
}

// wrap applies the shared middleware chain. Recovery sits inside request
// logging so panics are still counted and logged as 500s.
func (ms *MusicServer) wrap(handler http.Handler) http.Handler {
	handler = ms.panicRecoveryMiddleware(handler)
	handler = ms.requestLoggingMiddleware(handler)
	handler = ms.corsMiddleware(handler)
	return handler
}

// Start listens on the configured address and blocks until the server
// stops. A graceful Shutdown is not reported as an error.
func (ms *MusicServer) Start() error {
	ms.logger.WithFields(logrus.Fields{
		"address": ms.httpServer.Addr,
		"app":     ms.config.App.Name,
		"version": ms.config.App.Version,
	}).Info("Music server starting")

	if err := ms.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the music server
func (ms *MusicServer) Shutdown(ctx context.Context) error {
	ms.logger.Info("Shutting down music server...")

	if err := ms.httpServer.Shutdown(ctx); err != nil {
		return err
	}

	ms.logger.Info("Music server shutdown complete")
	return nil
}

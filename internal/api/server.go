// Copyright (c) 2026 Kinora. All rights reserved.
// Author: platform@kinora.app

/*
Package api assembles the HTTP surface of the Kinora authentication service.

It owns the router construction (middleware chain and route mounting) and the
lifecycle of the underlying http.Server (startup, graceful shutdown).

Route map:

	/auth      — registration, login, logout, demo-login
	/password  — forgot-password, reset-password
	/users     — profile management (authenticated)
	/health    — liveness probe
	/ready     — readiness probe (checks dependencies)
	/metrics   — Prometheus scrape endpoint
*/
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/kinora/kinora/internal/platform/config"
	"github.com/kinora/kinora/internal/platform/constants"
	"github.com/kinora/kinora/internal/platform/metrics"
	"github.com/kinora/kinora/internal/platform/middleware"
)

// Handlers aggregates everything the router mounts.
type Handlers struct {
	Liveness  http.HandlerFunc
	Readiness http.HandlerFunc

	Auth     RouteProvider
	Recovery RouteProvider
	Account  RouteProvider
}

// RouteProvider is implemented by the domain HTTP handlers.
type RouteProvider interface {
	Routes() chi.Router
}

// Server wraps the standard http.Server with Kinora-specific wiring.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer builds the full middleware chain and route tree.
//
// # Middleware Order
//
// The order is deliberate: tracing and logging wrap everything; the timeout
// and rate limiter guard the expensive work; authentication runs before the
// routers so that every handler can rely on claims being in context.
func NewServer(
	appCtx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	verifier middleware.TokenVerifier,
	revocations middleware.RevocationChecker,
	handlers Handlers,
) *Server {
	router := chi.NewRouter()

	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogger(logger))
	router.Use(chimiddleware.Timeout(constants.GlobalRequestTimeout))
	router.Use(middleware.RateLimit(appCtx))
	router.Use(middleware.PanicRecovery(logger))
	router.Use(metrics.Middleware())
	router.Use(middleware.Authenticate(verifier, revocations))
	router.Use(middleware.CORS(cfg))
	router.Use(chimiddleware.CleanPath)

	// Probes and instrumentation
	router.Get("/health", handlers.Liveness)
	router.Get("/ready", handlers.Readiness)
	router.Method(http.MethodGet, "/metrics", metrics.Handler())

	// Domain routes
	router.Mount("/auth", handlers.Auth.Routes())
	router.Mount("/password", handlers.Recovery.Routes())
	router.Mount("/users", handlers.Account.Routes())

	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           router,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
		logger: logger,
	}
}

// Start binds the listener and serves until shutdown. It only returns on
// unrecoverable listener errors; a clean shutdown returns nil.
func (server *Server) Start() error {
	server.logger.Info("http server listening", slog.String("addr", server.httpServer.Addr))

	if err := server.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("api: server failed: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and closes the listener.
func (server *Server) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, constants.ShutdownTimeout)
	defer cancel()

	server.logger.Info("http server shutting down")
	return server.httpServer.Shutdown(shutdownCtx)
}

// Copyright (c) 2026 Kinora. All rights reserved.
// Author: platform@kinora.app

// Command api is the Kinora authentication and account service.
//
// Startup order matters: configuration, then durable storage (with schema
// migrations), then the optional Redis-backed revocation registry, then the
// HTTP server. The process refuses to start in production without a real
// JWT secret.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"

	"github.com/kinora/kinora/internal/api"
	"github.com/kinora/kinora/internal/platform/config"
	"github.com/kinora/kinora/internal/platform/constants"
	"github.com/kinora/kinora/internal/platform/mail"
	"github.com/kinora/kinora/internal/platform/migration"
	"github.com/kinora/kinora/internal/platform/postgres"
	"github.com/kinora/kinora/internal/platform/redis"
	"github.com/kinora/kinora/internal/platform/sec"
	"github.com/kinora/kinora/internal/users/account"
	"github.com/kinora/kinora/internal/users/auth"
	"github.com/kinora/kinora/internal/users/recovery"
)

func main() {
	// Best-effort .env loading for local development. Real deployments set
	// environment variables directly.
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		slog.String("app", constants.AppName),
	)
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("fatal", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	appCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// # Configuration
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	jwtSecret := cfg.JWTSecret
	if jwtSecret == "" {
		if cfg.IsProduction() {
			logger.Error("JWT_SECRET must be set in production")
			os.Exit(1)
		}
		logger.Warn("JWT_SECRET not set, using the documented development secret")
		jwtSecret = constants.DevJWTSecret
	}

	// # Durable Storage
	pool, err := postgres.NewPool(appCtx, cfg.DatabaseURL, logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := migration.Run(cfg.DatabaseURL, cfg.MigrationPath, logger); err != nil {
		return err
	}

	// # Revocation Registry
	// Redis when configured (shared across replicas), in-process otherwise.
	var revocationRegistry auth.RevocationRegistry
	var redisClient *goredis.Client
	if cfg.RedisURL != "" {
		client, err := redis.NewClient(appCtx, cfg.RedisURL, logger)
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()
		redisClient = client
		revocationRegistry = auth.NewRedisRevocationRegistry(client, cfg.TokenTTL)
	} else {
		logger.Info("no REDIS_URL configured, token revocation is in-process only")
		memoryRegistry := auth.NewMemoryRevocationRegistry(cfg.TokenTTL)
		memoryRegistry.StartPruning(appCtx, constants.RateLimitCleanupInterval)
		revocationRegistry = memoryRegistry
	}

	// # Outbound Email
	var sender mail.Sender
	if cfg.SMTPConfigured() {
		sender = mail.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.EmailFrom)
	} else {
		logger.Info("no SMTP_HOST configured, outgoing email will be logged instead")
		sender = mail.NewLogSender(logger)
	}

	// # Domain Wiring
	tokenService := sec.NewTokenService(jwtSecret, constants.AuthIssuer, cfg.TokenTTL)
	userRepository := auth.NewPostgresUserRepository(pool)

	authService := auth.NewService(userRepository, revocationRegistry, tokenService)
	recoveryService := recovery.NewService(userRepository, sender, recovery.Config{
		FrontendURL:         cfg.FrontendURL,
		RevealUserExistence: cfg.RevealsUserExistence(),
		OverrideRecipient:   cfg.ResetEmailOverride,
	})
	accountService := account.NewService(userRepository)

	handlers := api.Handlers{
		Liveness:  api.Liveness,
		Readiness: api.Readiness(pool, redisClient),
		Auth:      auth.NewHTTPHandler(authService, cfg.AllowDemoLogin),
		Recovery:  recovery.NewHTTPHandler(recoveryService),
		Account:   account.NewHTTPHandler(accountService, userRepository),
	}

	server := api.NewServer(appCtx, cfg, logger, tokenService, revocationRegistry, handlers)

	// # Serve
	serveErr := make(chan error, 1)
	go func() { serveErr <- server.Start() }()

	select {
	case err := <-serveErr:
		return err
	case <-appCtx.Done():
		return server.Shutdown(context.Background())
	}
}

// Copyright (c) 2026 Kinora. All rights reserved.
// Author: platform@kinora.app

// Package migration applies SQL schema migrations at startup.
//
// Migrations are embedded in the deployment artifact under data/migrations
// and run before the HTTP listener binds, so a process that serves traffic
// is guaranteed to see the schema version it was built against.
package migration

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// slogAdapter bridges golang-migrate's Logger interface onto slog.
type slogAdapter struct {
	logger *slog.Logger
}

func (adapter *slogAdapter) Printf(format string, args ...any) {
	adapter.logger.Info("migrate: " + strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (adapter *slogAdapter) Verbose() bool { return false }

// Run applies all pending "up" migrations.
//
// # Parameters
//   - databaseURL: postgres:// connection URL. Rewritten to the pgx5 scheme
//     that golang-migrate's pgx/v5 driver registers under.
//   - sourcePath: Filesystem path to the migration directory.
//   - logger: Structured logger for migration progress.
//
// A database that is already up to date is not an error.
func Run(databaseURL, sourcePath string, logger *slog.Logger) error {
	// golang-migrate selects its driver by URL scheme. The pgx/v5 driver
	// registers as "pgx5", while the rest of the app uses plain postgres URLs.
	migrateURL := databaseURL
	switch {
	case strings.HasPrefix(migrateURL, "postgres://"):
		migrateURL = "pgx5://" + strings.TrimPrefix(migrateURL, "postgres://")
	case strings.HasPrefix(migrateURL, "postgresql://"):
		migrateURL = "pgx5://" + strings.TrimPrefix(migrateURL, "postgresql://")
	}

	migrator, err := migrate.New("file://"+sourcePath, migrateURL)
	if err != nil {
		return fmt.Errorf("migration: failed to initialize: %w", err)
	}
	migrator.Log = &slogAdapter{logger: logger}

	defer func() {
		sourceErr, databaseErr := migrator.Close()
		if sourceErr != nil {
			logger.Warn("migration source close failed", slog.String("error", sourceErr.Error()))
		}
		if databaseErr != nil {
			logger.Warn("migration database close failed", slog.String("error", databaseErr.Error()))
		}
	}()

	if err := migrator.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("migrations: schema already up to date")
			return nil
		}
		return fmt.Errorf("migration: failed to apply: %w", err)
	}

	version, dirty, err := migrator.Version()
	if err != nil {
		return fmt.Errorf("migration: failed to read version: %w", err)
	}

	logger.Info("migrations applied",
		slog.Uint64("version", uint64(version)),
		slog.Bool("dirty", dirty),
	)

	return nil
}

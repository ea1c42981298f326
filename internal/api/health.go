// Copyright (c) 2026 Kinora. All rights reserved.
// Author: platform@kinora.app

package api

import (
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/kinora/kinora/internal/platform/apperr"
	"github.com/kinora/kinora/internal/platform/constants"
	"github.com/kinora/kinora/internal/platform/postgres"
	"github.com/kinora/kinora/internal/platform/redis"
	"github.com/kinora/kinora/internal/platform/respond"
)

// Liveness answers 200 as long as the process can serve HTTP at all.
// It must not touch any dependency: a wedged database should fail readiness,
// not liveness.
func Liveness(writer http.ResponseWriter, _ *http.Request) {
	respond.OK(writer, map[string]string{
		constants.FieldStatus: "ok",
		"version":             constants.AppVersion,
	})
}

// Readiness returns a handler that verifies every hard dependency.
//
// # Parameters
//   - pool: The PostgreSQL pool (required).
//   - redisClient: The Redis client, or nil when revocation is in-process.
func Readiness(pool *pgxpool.Pool, redisClient *goredis.Client) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		checks := map[string]string{}
		healthy := true

		if err := postgres.Ping(request.Context(), pool); err != nil {
			checks["postgres"] = "down"
			healthy = false
		} else {
			checks["postgres"] = "ok"
		}

		if redisClient != nil {
			if err := redis.Ping(request.Context(), redisClient); err != nil {
				checks["redis"] = "down"
				healthy = false
			} else {
				checks["redis"] = "ok"
			}
		}

		if !healthy {
			appError := apperr.ServiceUnavailable("One or more dependencies are unavailable")
			respond.JSON(writer, appError.HTTPStatus, map[string]any{
				constants.FieldError:  appError.Message,
				constants.FieldCode:   appError.Code,
				constants.FieldChecks: checks,
			})
			return
		}

		respond.OK(writer, map[string]any{
			constants.FieldStatus: "ready",
			constants.FieldChecks: checks,
		})
	}
}

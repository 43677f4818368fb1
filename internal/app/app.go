package app

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"go-teamdesk/internal/middleware"
	"go-teamdesk/internal/shared/config"
	"go-teamdesk/internal/shared/connection"
	"go-teamdesk/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// BuildApp connects infrastructure and mounts every route on router. The
// returned cleanup releases the connections.
func BuildApp(router *gin.Engine, cfg config.Config) (func(), error) {
	logger := zap.L().Named("app")

	// 1. Setup Infrastructure
	gormDB, err := connection.ConnectGORMWithRetry(cfg.DB)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	logger.Info("database connection established")

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = connection.ConnectRedisWithRetry(cfg.Redis.Addr, cfg.DB.MaxRetries)
		if err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
		logger.Info("redis connection established")
	} else {
		logger.Warn("REDIS_ADDR not set, caching and idempotency disabled")
	}

	cleanup := func() {
		if rdb != nil {
			_ = rdb.Close()
		}
		_ = sqlDB.Close()
	}

	// 2. Platform endpoints
	metrics := middleware.NewHTTPMetrics(prometheus.DefaultRegisterer)
	router.Use(
		middleware.RequestID(),
		metrics.Handler(),
		middleware.RateLimitByIP(rate.Limit(50), 100),
	)
	router.GET("/healthz", healthz(sqlDB, rdb))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 3. Register Modules & Routes
	if err := registerModules(router, cfg, sqlDB, gormDB, rdb); err != nil {
		cleanup()
		return nil, err
	}

	return cleanup, nil
}

func healthz(db *sql.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		checks := map[string]string{"database": "ok"}
		status := http.StatusOK
		if err := db.PingContext(ctx); err != nil {
			checks["database"] = err.Error()
			status = http.StatusServiceUnavailable
		}
		if rdb != nil {
			checks["redis"] = "ok"
			if err := rdb.Ping(ctx).Err(); err != nil {
				checks["redis"] = err.Error()
				status = http.StatusServiceUnavailable
			}
		}

		if status != http.StatusOK {
			response.Error(c, status, "UNHEALTHY", "dependency check failed", checks)
			return
		}
		response.Success(c, status, checks, nil)
	}
}

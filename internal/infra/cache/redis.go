// Package cache implements the shop cache on a Redis geo index through redigo.
package cache

import (
	"context"
	"log/slog"
	"net"
	"strconv"
	"time"

	"brewscout/config"
	"brewscout/internal/domain/lifecycle"
	"brewscout/internal/errors"

	"github.com/gomodule/redigo/redis"
	"go.uber.org/fx"
)

const (
	defaultMaxIdle     = 10
	defaultMaxActive   = 50
	defaultIdleTimeout = 4 * time.Minute
)

// PoolParams defines the required parameters
type PoolParams struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// NewPool creates the shared redigo connection pool with lifecycle management.
func NewPool(params PoolParams) (*redis.Pool, error) {
	cfg := params.Config.Redis
	if cfg == nil {
		return nil, errors.New("redis configuration is required")
	}

	maxIdle := cfg.MaxIdle
	if maxIdle <= 0 {
		maxIdle = defaultMaxIdle
	}
	maxActive := cfg.MaxActive
	if maxActive <= 0 {
		maxActive = defaultMaxActive
	}
	idleTimeout := cfg.IdleTimeout
	if idleTimeout <= 0 {
		idleTimeout = defaultIdleTimeout
	}

	address := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	pool := &redis.Pool{
		MaxIdle:     maxIdle,
		MaxActive:   maxActive,
		IdleTimeout: idleTimeout,
		Wait:        true,
		Dial: func() (redis.Conn, error) {
			return redis.Dial("tcp", address,
				redis.DialPassword(cfg.Password),
				redis.DialDatabase(cfg.DB),
			)
		},
		TestOnBorrow: func(c redis.Conn, t time.Time) error {
			if time.Since(t) < time.Minute {
				return nil
			}
			_, err := c.Do("PING")

			return err
		},
	}

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			conn, err := pool.GetContext(ctx)
			if err != nil {
				return errors.Wrap(err, "failed to get redis connection")
			}
			defer conn.Close()

			if _, err := conn.Do("PING"); err != nil {
				return errors.Wrap(err, "failed to ping redis")
			}

			params.Logger.Info("Redis pool ready", slog.String("address", address))

			return nil
		},
		OnStop: func(_ context.Context) error {
			return pool.Close()
		},
	})

	return pool, nil
}

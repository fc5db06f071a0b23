package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/movequote/movequote/internal/platform/cache"
	"github.com/movequote/movequote/internal/platform/db"
	"github.com/movequote/movequote/internal/snapshot"
)

// OpenStore connects the snapshot store selected by STORE_DRIVER. The
// returned func releases the underlying connection.
func OpenStore(ctx context.Context, cfg *Config, logger *slog.Logger) (snapshot.Store, func(), error) {
	switch cfg.StoreDriver {
	case StoreRedis:
		client, err := cache.New(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, nil, err
		}
		closer := func() {
			if err := client.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}
		return snapshot.NewRedisStore(client), closer, nil
	case StorePostgres:
		pool, err := db.New(ctx, cfg.PGDSN, cfg.PGMaxConns)
		if err != nil {
			return nil, nil, err
		}
		applied, err := db.Migrate(ctx, pool, snapshot.Migrations)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		if applied > 0 {
			logger.Info("applied migrations", slog.Int("count", applied))
		}
		return snapshot.NewPostgresStore(pool), pool.Close, nil
	case StoreMemory:
		return snapshot.NewMemoryStore(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ariefcatur/go-pancake-orders/internal/config"
	"github.com/ariefcatur/go-pancake-orders/internal/orders"
	"github.com/ariefcatur/go-pancake-orders/internal/postgres"
)

// Open builds the Store selected by cfg.StoreBackend. On success the returned
// close func is non-nil.
func Open(ctx context.Context, cfg config.Config, log *slog.Logger) (orders.Store, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendMemory:
		log.Info("using in-memory store; orders are lost on restart")
		return orders.NewMemStore(), func() {}, nil

	case config.BackendPostgres:
		pool, err := postgres.Connect(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("db connect: %w", err)
		}
		applied, err := postgres.Migrate(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("db migrate: %w", err)
		}
		for _, name := range applied {
			log.Info("migration applied", slog.String("name", name))
		}
		repo := &orders.Repo{DB: pool}
		if err := repo.SeedCatalog(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("seed catalog: %w", err)
		}
		return repo, pool.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

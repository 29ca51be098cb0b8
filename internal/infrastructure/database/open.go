package database

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/wekeepgrowing/shop-wallet/internal/config"
)

// Backend is an opened storage backend
type Backend struct {
	*Repositories
	// Ping reports whether the backend is reachable
	Ping  func(ctx context.Context) error
	close func()
}

// Close releases the backend's connections
func (b *Backend) Close() {
	if b.close != nil {
		b.close()
	}
}

// Open connects the backend selected by database.driver. SQL backends are migrated.
func Open(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Backend, error) {
	if cfg.Database.Driver == config.DriverMongoDB {
		return openMongo(ctx, cfg, log)
	}

	db, err := NewConnection(&cfg.Database, log)
	if err != nil {
		return nil, err
	}
	closeFn := func() {
		if err := Close(db, log); err != nil {
			log.Error("Failed to close database connection", zap.Error(err))
		}
	}

	if err := Migrate(db, log); err != nil {
		closeFn()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		closeFn()
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	return &Backend{
		Repositories: NewRepositories(db, log),
		Ping:         sqlDB.PingContext,
		close:        closeFn,
	}, nil
}

func openMongo(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Backend, error) {
	client, err := NewMongoConnection(ctx, &cfg.MongoDB, log)
	if err != nil {
		return nil, err
	}
	closeFn := func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), cfg.MongoDB.Timeout)
		defer cancel()
		if err := CloseMongo(closeCtx, client, log); err != nil {
			log.Error("Failed to close MongoDB connection", zap.Error(err))
		}
	}

	repos, err := NewMongoRepositories(ctx, client, cfg.MongoDB.Database, cfg.MongoDB.Timeout, log)
	if err != nil {
		closeFn()
		return nil, err
	}

	return &Backend{
		Repositories: repos,
		Ping: func(ctx context.Context) error {
			return client.Ping(ctx, nil)
		},
		close: closeFn,
	}, nil
}

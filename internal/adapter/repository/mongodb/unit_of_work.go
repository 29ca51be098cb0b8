package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	domainRepo "github.com/wekeepgrowing/shop-wallet/internal/domain/repository"
)

type unitOfWork struct {
	client *mongo.Client
	store  domainRepo.Store
	logger *zap.Logger
}

// NewUnitOfWork creates a unit of work backed by MongoDB session transactions.
// Transactions need a replica set or sharded cluster.
func NewUnitOfWork(client *mongo.Client, db *mongo.Database, timeout time.Duration, logger *zap.Logger) domainRepo.UnitOfWork {
	return &unitOfWork{
		client: client,
		store: domainRepo.Store{
			Customers: NewCustomerRepository(db, timeout, logger),
			Purchases: NewPurchaseRepository(db, timeout, logger),
		},
		logger: logger,
	}
}

// Do runs fn inside a session transaction. The session travels in the context
// handed to fn, so the repositories join the transaction through it.
func (u *unitOfWork) Do(ctx context.Context, fn func(ctx context.Context, store domainRepo.Store) error) error {
	session, err := u.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc, u.store)
	})
	if err != nil {
		u.logger.Debug("Unit of work aborted", zap.Error(err))
		return err
	}
	return nil
}

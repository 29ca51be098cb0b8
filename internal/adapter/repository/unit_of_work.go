package repository

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	domainRepo "github.com/wekeepgrowing/shop-wallet/internal/domain/repository"
)

// gormUnitOfWork runs callbacks inside one database transaction
type gormUnitOfWork struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewUnitOfWork creates a unit of work backed by gorm transactions
func NewUnitOfWork(db *gorm.DB, logger *zap.Logger) domainRepo.UnitOfWork {
	return &gormUnitOfWork{
		db:     db,
		logger: logger,
	}
}

// Do runs fn with repositories bound to a single transaction. The callback
// must only use the repositories it is given.
func (u *gormUnitOfWork) Do(ctx context.Context, fn func(ctx context.Context, store domainRepo.Store) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		store := domainRepo.Store{
			Customers: NewCustomerRepository(tx, u.logger),
			Purchases: NewPurchaseRepository(tx, u.logger),
		}
		if err := fn(ctx, store); err != nil {
			u.logger.Debug("Rolling back unit of work", zap.Error(err))
			return err
		}
		return nil
	})
}

package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wekeepgrowing/shop-wallet/internal/domain/model"
	domainRepo "github.com/wekeepgrowing/shop-wallet/internal/domain/repository"
)

// purchaseRepository implements the PurchaseRepository interface
type purchaseRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewPurchaseRepository creates a new purchase repository instance
func NewPurchaseRepository(db *gorm.DB, logger *zap.Logger) domainRepo.PurchaseRepository {
	return &purchaseRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a purchase without touching its customer
func (r *purchaseRepository) Create(ctx context.Context, purchase *model.Purchase) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(purchase).Error; err != nil {
		return fmt.Errorf("failed to create purchase: %w", err)
	}
	return nil
}

// List retrieves all purchases with their customers, newest first
func (r *purchaseRepository) List(ctx context.Context) ([]*model.Purchase, error) {
	var purchases []*model.Purchase
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Order("purchase_date DESC").
		Find(&purchases).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}
	return purchases, nil
}

// ListByCustomer retrieves the purchases of one customer, newest first
func (r *purchaseRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*model.Purchase, error) {
	var purchases []*model.Purchase
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("purchase_date DESC").
		Find(&purchases).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list purchases for customer: %w", err)
	}
	return purchases, nil
}

// DeleteAll removes every purchase
func (r *purchaseRepository) DeleteAll(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&model.Purchase{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete purchases: %w", result.Error)
	}

	r.logger.Info("Purchases cleared", zap.Int64("deleted", result.RowsAffected))
	return result.RowsAffected, nil
}

// Count returns the number of purchases
func (r *purchaseRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Purchase{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count purchases: %w", err)
	}
	return count, nil
}

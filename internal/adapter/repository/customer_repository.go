package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domainErrors "github.com/wekeepgrowing/shop-wallet/internal/domain/errors"
	"github.com/wekeepgrowing/shop-wallet/internal/domain/model"
	domainRepo "github.com/wekeepgrowing/shop-wallet/internal/domain/repository"
)

// customerRepository implements the CustomerRepository interface
type customerRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewCustomerRepository creates a new customer repository instance
func NewCustomerRepository(db *gorm.DB, logger *zap.Logger) domainRepo.CustomerRepository {
	return &customerRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new customer
func (r *customerRepository) Create(ctx context.Context, customer *model.Customer) error {
	err := r.db.WithContext(ctx).Create(customer).Error
	if err == nil {
		return nil
	}

	if !isUniqueViolation(err) {
		return fmt.Errorf("failed to create customer: %w", err)
	}

	// Both contact number and referral code are unique; tell them apart by
	// looking the contact number up again.
	existing, lookupErr := r.GetByContactNumber(ctx, customer.ContactNumber)
	if lookupErr == nil && existing != nil {
		return domainErrors.NewDuplicateContactError(customer.ContactNumber)
	}

	r.logger.Warn("Referral code collision on insert",
		zap.String("referral_code", customer.ReferralCode),
		zap.Error(err))
	return domainErrors.NewDuplicateReferralCodeError(customer.ReferralCode, err)
}

// GetByID retrieves a customer by ID
func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	return r.first(ctx, r.db.WithContext(ctx), "id = ?", id)
}

// GetByReferralCode retrieves a customer by referral code
func (r *customerRepository) GetByReferralCode(ctx context.Context, referralCode string) (*model.Customer, error) {
	return r.first(ctx, r.db.WithContext(ctx), "referral_code = ?", referralCode)
}

// GetByContactNumber retrieves a customer by contact number
func (r *customerRepository) GetByContactNumber(ctx context.Context, contactNumber string) (*model.Customer, error) {
	return r.first(ctx, r.db.WithContext(ctx), "contact_number = ?", contactNumber)
}

// LockByID retrieves a customer with SELECT ... FOR UPDATE
func (r *customerRepository) LockByID(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	return r.first(ctx, r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), "id = ?", id)
}

func (r *customerRepository) first(ctx context.Context, db *gorm.DB, query string, arg interface{}) (*model.Customer, error) {
	var customer model.Customer
	if err := db.Where(query, arg).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return &customer, nil
}

// List retrieves all customers ordered by creation time, newest first
func (r *customerRepository) List(ctx context.Context) ([]*model.Customer, error) {
	var customers []*model.Customer
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}

// Delete removes a customer. Purchases are left in place.
func (r *customerRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Customer{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete customer: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// UpdateBalance overwrites the wallet balance of a customer
func (r *customerRepository) UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	result := r.db.WithContext(ctx).
		Model(&model.Customer{}).
		Where("id = ?", id).
		Update("wallet_balance", balance)
	if result.Error != nil {
		return fmt.Errorf("failed to update wallet balance: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainErrors.NewCustomerNotFoundError("id", id.String())
	}
	return nil
}

// Count returns the number of customers
func (r *customerRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Customer{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count customers: %w", err)
	}
	return count, nil
}

// SumBalances returns the sum of all wallet balances
func (r *customerRepository) SumBalances(ctx context.Context) (decimal.Decimal, error) {
	// Summed in Go: sqlite aggregates numeric columns as floating point.
	var balances []decimal.Decimal
	if err := r.db.WithContext(ctx).
		Model(&model.Customer{}).
		Pluck("wallet_balance", &balances).Error; err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum wallet balances: %w", err)
	}
	return decimal.Sum(decimal.Zero, balances...), nil
}

// isUniqueViolation recognizes translated and untranslated unique constraint errors
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}

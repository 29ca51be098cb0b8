package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wekeepgrowing/shop-wallet/internal/domain/model"
)

// CustomerRepository defines persistence operations for customers.
// Lookups return (nil, nil) when no customer matches.
type CustomerRepository interface {
	// Create inserts a customer. Unique violations surface as DuplicateContact
	// or DuplicateReferralCode domain errors.
	Create(ctx context.Context, customer *model.Customer) error

	GetByID(ctx context.Context, id uuid.UUID) (*model.Customer, error)
	GetByReferralCode(ctx context.Context, referralCode string) (*model.Customer, error)
	GetByContactNumber(ctx context.Context, contactNumber string) (*model.Customer, error)

	// LockByID reads the customer and holds a row lock until the surrounding
	// unit of work ends. Outside a unit of work it behaves like GetByID.
	LockByID(ctx context.Context, id uuid.UUID) (*model.Customer, error)

	// List returns all customers, newest first.
	List(ctx context.Context) ([]*model.Customer, error)

	// Delete removes the customer and reports whether a row was deleted.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)

	// UpdateBalance overwrites the stored wallet balance.
	UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error

	Count(ctx context.Context) (int64, error)
	SumBalances(ctx context.Context) (decimal.Decimal, error)
}

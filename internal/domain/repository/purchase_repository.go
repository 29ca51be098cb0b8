package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/wekeepgrowing/shop-wallet/internal/domain/model"
)

// PurchaseRepository defines persistence operations for the purchase log.
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *model.Purchase) error

	// List returns all purchases, newest first, with Customer loaded when the
	// customer still exists.
	List(ctx context.Context) ([]*model.Purchase, error)

	// ListByCustomer returns the customer's purchases, newest first.
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*model.Purchase, error)

	// DeleteAll removes every purchase and returns how many were removed.
	DeleteAll(ctx context.Context) (int64, error)

	Count(ctx context.Context) (int64, error)
}

package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wekeepgrowing/shop-wallet/internal/domain/model"
)

// CreatePurchaseRequest is the body of POST /api/purchases
type CreatePurchaseRequest struct {
	ReferID    string           `json:"referId" validate:"required"`
	Amount     *decimal.Decimal `json:"amount" validate:"required"`
	WalletUsed *decimal.Decimal `json:"walletUsed,omitempty"`
}

// CustomerSnapshot is the live view of a purchase's customer
type CustomerSnapshot struct {
	Name          string          `json:"name"`
	ReferID       string          `json:"referId"`
	ContactNumber string          `json:"contactNumber"`
	WalletBalance decimal.Decimal `json:"walletBalance"`
}

// PurchaseResponse represents a purchase for API responses.
// Customer is null for purchases whose customer was deleted.
type PurchaseResponse struct {
	ID           uuid.UUID         `json:"id"`
	CustomerID   uuid.UUID         `json:"customerId"`
	ReferID      string            `json:"referId"`
	Amount       decimal.Decimal   `json:"amount"`
	WalletCredit decimal.Decimal   `json:"walletCredit"`
	WalletUsed   decimal.Decimal   `json:"walletUsed"`
	PurchaseDate time.Time         `json:"purchaseDate"`
	Customer     *CustomerSnapshot `json:"customer"`
}

// ClearPurchasesResponse is returned by DELETE /api/purchases/clear/all
type ClearPurchasesResponse struct {
	Message  string `json:"message"`
	Deleted  int64  `json:"deleted"`
	Reversed bool   `json:"reversed"`
}

// NewCustomerSnapshot returns nil for a nil customer
func NewCustomerSnapshot(c *model.Customer) *CustomerSnapshot {
	if c == nil {
		return nil
	}
	return &CustomerSnapshot{
		Name:          c.Name,
		ReferID:       c.ReferralCode,
		ContactNumber: c.ContactNumber,
		WalletBalance: c.WalletBalance,
	}
}

// NewPurchaseResponse converts a purchase, using its loaded Customer as the snapshot
func NewPurchaseResponse(p *model.Purchase) PurchaseResponse {
	return PurchaseResponse{
		ID:           p.ID,
		CustomerID:   p.CustomerID,
		ReferID:      p.ReferralCode,
		Amount:       p.Amount,
		WalletCredit: p.WalletCredit,
		WalletUsed:   p.WalletUsed,
		PurchaseDate: p.PurchaseDate,
		Customer:     NewCustomerSnapshot(p.Customer),
	}
}

// NewPurchaseListResponse never returns nil so empty lists encode as []
func NewPurchaseListResponse(purchases []*model.Purchase) []PurchaseResponse {
	out := make([]PurchaseResponse, 0, len(purchases))
	for _, p := range purchases {
		out = append(out, NewPurchaseResponse(p))
	}
	return out
}

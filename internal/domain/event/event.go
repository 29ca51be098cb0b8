// Package event defines the wallet events published to subscribers.
package event

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event types
const (
	TypeCustomerCreated  = "customer.created"
	TypeCustomerDeleted  = "customer.deleted"
	TypeWalletAdjusted   = "wallet.adjusted"
	TypePurchaseSettled  = "purchase.settled"
	TypePurchasesCleared = "purchases.cleared"
)

// Event is the envelope published for every wallet change.
type Event struct {
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurredAt"`
	Payload    interface{} `json:"payload"`
}

// CustomerPayload accompanies customer events
type CustomerPayload struct {
	CustomerID    uuid.UUID       `json:"customerId"`
	ReferID       string          `json:"referId"`
	WalletBalance decimal.Decimal `json:"walletBalance"`
}

// PurchasePayload accompanies purchase.settled
type PurchasePayload struct {
	PurchaseID    uuid.UUID       `json:"purchaseId"`
	CustomerID    uuid.UUID       `json:"customerId"`
	ReferID       string          `json:"referId"`
	Amount        decimal.Decimal `json:"amount"`
	WalletUsed    decimal.Decimal `json:"walletUsed"`
	WalletCredit  decimal.Decimal `json:"walletCredit"`
	WalletBalance decimal.Decimal `json:"walletBalance"`
}

// ClearPayload accompanies purchases.cleared
type ClearPayload struct {
	Deleted  int64 `json:"deleted"`
	Reversed bool  `json:"reversed"`
}

// Publisher delivers events after the state change has been committed.
type Publisher interface {
	Publish(ctx context.Context, evt Event) error
}

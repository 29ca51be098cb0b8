package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Purchase is an immutable settled purchase.
type Purchase struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"customerId"`
	ReferralCode string          `gorm:"size:20;not null;index" json:"referId"`
	Amount       decimal.Decimal `gorm:"type:numeric;not null" json:"amount"`
	WalletCredit decimal.Decimal `gorm:"type:numeric;not null" json:"walletCredit"`
	WalletUsed   decimal.Decimal `gorm:"type:numeric;not null" json:"walletUsed"`
	PurchaseDate time.Time       `gorm:"not null;index" json:"purchaseDate"`

	// Customer is loaded on reads; nil when the customer has been deleted.
	Customer *Customer `gorm:"foreignKey:CustomerID" json:"-"`
}

// TableName specifies the table name for GORM
func (Purchase) TableName() string {
	return "purchases"
}

// NetWalletEffect is what this purchase added to the customer's balance.
func (p *Purchase) NetWalletEffect() decimal.Decimal {
	return p.WalletCredit.Sub(p.WalletUsed)
}

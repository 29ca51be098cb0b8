package model

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainErrors "github.com/wekeepgrowing/shop-wallet/internal/domain/errors"
)

// MinContactNumberLength is the shortest contact number that still yields a full referral code.
const MinContactNumberLength = 3

// Customer is a shop customer and the owner of a wallet balance.
type Customer struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string          `gorm:"size:200;not null" json:"name"`
	FirstName     string          `gorm:"size:100;not null" json:"firstName"`
	LastName      string          `gorm:"size:100;not null" json:"lastName"`
	ReferralCode  string          `gorm:"size:20;not null;uniqueIndex" json:"referId"`
	ContactNumber string          `gorm:"size:32;not null;uniqueIndex" json:"contactNumber"`
	WalletBalance decimal.Decimal `gorm:"type:numeric;not null" json:"walletBalance"`
	CreatedAt     time.Time       `gorm:"not null;index" json:"createdAt"`
}

// TableName specifies the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer validates registration input and builds a customer with its
// derived fields set once: first/last name, referral code and a zero balance.
func NewCustomer(fullName, contactNumber string, now time.Time) (*Customer, error) {
	name := strings.TrimSpace(fullName)
	contact := strings.TrimSpace(contactNumber)

	if name == "" || contact == "" {
		return nil, domainErrors.NewValidationError("name and contact number are required")
	}

	parts := strings.Fields(name)
	if len(parts) < 2 {
		return nil, domainErrors.NewValidationError("please provide both first and last name")
	}

	if utf8.RuneCountInString(contact) < MinContactNumberLength {
		return nil, domainErrors.NewValidationError("contact number must have at least 3 characters")
	}

	firstName := parts[0]
	lastName := strings.Join(parts[1:], " ")

	return &Customer{
		ID:            uuid.New(),
		Name:          name,
		FirstName:     firstName,
		LastName:      lastName,
		ReferralCode:  AssignReferralCode(firstName, lastName, contact),
		ContactNumber: contact,
		WalletBalance: decimal.Zero,
		CreatedAt:     now,
	}, nil
}

// Package mongodb implements the wallet repositories on a MongoDB database.
package mongodb

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wekeepgrowing/shop-wallet/internal/domain/model"
)

const (
	customersCollection = "customers"
	purchasesCollection = "purchases"
)

type customerDocument struct {
	ID            string               `bson:"_id"`
	Name          string               `bson:"name"`
	FirstName     string               `bson:"firstName"`
	LastName      string               `bson:"lastName"`
	ReferralCode  string               `bson:"referId"`
	ContactNumber string               `bson:"contactNumber"`
	WalletBalance primitive.Decimal128 `bson:"walletBalance"`
	CreatedAt     time.Time            `bson:"createdAt"`
}

type purchaseDocument struct {
	ID           string               `bson:"_id"`
	CustomerID   string               `bson:"customerId"`
	ReferralCode string               `bson:"referId"`
	Amount       primitive.Decimal128 `bson:"amount"`
	WalletCredit primitive.Decimal128 `bson:"walletCredit"`
	WalletUsed   primitive.Decimal128 `bson:"walletUsed"`
	PurchaseDate time.Time            `bson:"purchaseDate"`
}

func toDecimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	v, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		return primitive.Decimal128{}, fmt.Errorf("invalid decimal %s: %w", d.String(), err)
	}
	return v, nil
}

func fromDecimal128(v primitive.Decimal128) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(v.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid stored decimal %s: %w", v.String(), err)
	}
	return d, nil
}

func newCustomerDocument(c *model.Customer) (*customerDocument, error) {
	balance, err := toDecimal128(c.WalletBalance)
	if err != nil {
		return nil, err
	}
	return &customerDocument{
		ID:            c.ID.String(),
		Name:          c.Name,
		FirstName:     c.FirstName,
		LastName:      c.LastName,
		ReferralCode:  c.ReferralCode,
		ContactNumber: c.ContactNumber,
		WalletBalance: balance,
		CreatedAt:     c.CreatedAt.UTC(),
	}, nil
}

func (d *customerDocument) toModel() (*model.Customer, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid customer id %q: %w", d.ID, err)
	}
	balance, err := fromDecimal128(d.WalletBalance)
	if err != nil {
		return nil, err
	}
	return &model.Customer{
		ID:            id,
		Name:          d.Name,
		FirstName:     d.FirstName,
		LastName:      d.LastName,
		ReferralCode:  d.ReferralCode,
		ContactNumber: d.ContactNumber,
		WalletBalance: balance,
		CreatedAt:     d.CreatedAt,
	}, nil
}

func newPurchaseDocument(p *model.Purchase) (*purchaseDocument, error) {
	amount, err := toDecimal128(p.Amount)
	if err != nil {
		return nil, err
	}
	credit, err := toDecimal128(p.WalletCredit)
	if err != nil {
		return nil, err
	}
	used, err := toDecimal128(p.WalletUsed)
	if err != nil {
		return nil, err
	}
	return &purchaseDocument{
		ID:           p.ID.String(),
		CustomerID:   p.CustomerID.String(),
		ReferralCode: p.ReferralCode,
		Amount:       amount,
		WalletCredit: credit,
		WalletUsed:   used,
		PurchaseDate: p.PurchaseDate.UTC(),
	}, nil
}

func (d *purchaseDocument) toModel() (*model.Purchase, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid purchase id %q: %w", d.ID, err)
	}
	customerID, err := uuid.Parse(d.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("invalid customer id %q: %w", d.CustomerID, err)
	}

	p := &model.Purchase{
		ID:           id,
		CustomerID:   customerID,
		ReferralCode: d.ReferralCode,
		PurchaseDate: d.PurchaseDate,
	}
	if p.Amount, err = fromDecimal128(d.Amount); err != nil {
		return nil, err
	}
	if p.WalletCredit, err = fromDecimal128(d.WalletCredit); err != nil {
		return nil, err
	}
	if p.WalletUsed, err = fromDecimal128(d.WalletUsed); err != nil {
		return nil, err
	}
	return p, nil
}

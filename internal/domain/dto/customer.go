package dto

import (
	"github.com/shopspring/decimal"
)

// CreateCustomerRequest is the body of POST /api/customers
type CreateCustomerRequest struct {
	Name          string `json:"name" validate:"required"`
	ContactNumber string `json:"contactNumber" validate:"required"`
}

// AdjustWalletRequest is the body of PATCH /api/customers/:id/wallet.
// Amount is a signed delta.
type AdjustWalletRequest struct {
	Amount *decimal.Decimal `json:"amount" validate:"required"`
}

// MessageResponse is a plain acknowledgement
type MessageResponse struct {
	Message string `json:"message"`
}

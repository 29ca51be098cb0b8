package errors

import (
	"fmt"

	apperrors "github.com/wekeepgrowing/shop-wallet/pkg/errors"
)

// WalletError represents a failure of a customer or purchase operation.
type WalletError struct {
	Type    string
	Message string
	Cause   error
}

func (e *WalletError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *WalletError) Unwrap() error {
	return e.Cause
}

// Is matches any WalletError of the same Type, so the sentinels below work with errors.Is.
func (e *WalletError) Is(target error) bool {
	t, ok := target.(*WalletError)
	return ok && t.Type == e.Type
}

// Code maps the error type onto the shared error codes used for HTTP statuses.
func (e *WalletError) Code() string {
	switch e.Type {
	case ErrTypeValidation, ErrTypeInvalidAmount:
		return apperrors.ErrInvalidArgument
	case ErrTypeNotFound:
		return apperrors.ErrNotFound
	case ErrTypeDuplicateContact, ErrTypeDuplicateReferralCode:
		return apperrors.ErrConflict
	default:
		return apperrors.ErrInternal
	}
}

// Wallet error types
const (
	ErrTypeValidation            = "VALIDATION_ERROR"
	ErrTypeNotFound              = "NOT_FOUND"
	ErrTypeDuplicateContact      = "DUPLICATE_CONTACT"
	ErrTypeDuplicateReferralCode = "DUPLICATE_REFERRAL_CODE"
	ErrTypeInvalidAmount         = "INVALID_AMOUNT"
)

// Sentinels for errors.Is checks.
var (
	ErrValidation            = &WalletError{Type: ErrTypeValidation}
	ErrNotFound              = &WalletError{Type: ErrTypeNotFound}
	ErrDuplicateContact      = &WalletError{Type: ErrTypeDuplicateContact}
	ErrDuplicateReferralCode = &WalletError{Type: ErrTypeDuplicateReferralCode}
	ErrInvalidAmount         = &WalletError{Type: ErrTypeInvalidAmount}
)

// NewValidationError creates a validation error for malformed input.
func NewValidationError(message string) *WalletError {
	return &WalletError{
		Type:    ErrTypeValidation,
		Message: message,
	}
}

// NewCustomerNotFoundError creates a not found error for a customer lookup.
func NewCustomerNotFoundError(by, value string) *WalletError {
	return &WalletError{
		Type:    ErrTypeNotFound,
		Message: fmt.Sprintf("customer not found with %s %s", by, value),
	}
}

// NewDuplicateContactError is returned when the contact number is already registered.
func NewDuplicateContactError(contactNumber string) *WalletError {
	return &WalletError{
		Type:    ErrTypeDuplicateContact,
		Message: fmt.Sprintf("customer with contact number %s already exists", contactNumber),
	}
}

// NewDuplicateReferralCodeError is returned when the derived referral code is taken.
func NewDuplicateReferralCodeError(code string, cause error) *WalletError {
	return &WalletError{
		Type:    ErrTypeDuplicateReferralCode,
		Message: fmt.Sprintf("customer with referral code %s already exists", code),
		Cause:   cause,
	}
}

// NewInvalidAmountError is returned for non-positive purchase amounts.
func NewInvalidAmountError(amount fmt.Stringer) *WalletError {
	return &WalletError{
		Type:    ErrTypeInvalidAmount,
		Message: fmt.Sprintf("purchase amount must be positive, got %s", amount),
	}
}

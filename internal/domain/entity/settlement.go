package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainErrors "github.com/wekeepgrowing/shop-wallet/internal/domain/errors"
	"github.com/wekeepgrowing/shop-wallet/internal/domain/model"
)

// MoneyPlaces is the number of decimal places money is rounded to.
const MoneyPlaces = 2

// DefaultRewardRate credits 2% of the nominal purchase amount.
var DefaultRewardRate = decimal.RequireFromString("0.02")

// Settlement is the outcome of settling one purchase against a wallet balance.
type Settlement struct {
	BalanceBefore      decimal.Decimal
	Amount             decimal.Decimal
	RequestedWalletUse decimal.Decimal
	WalletUsed         decimal.Decimal
	BalanceAfterDebit  decimal.Decimal
	WalletCredit       decimal.Decimal
	FinalBalance       decimal.Decimal
}

// Settle computes the wallet debit, the reward credit and the resulting balance.
//
// The debit is min(walletUse, balance, amount) and never negative: a negative
// request counts as zero, and so does a balance already pushed below zero by an
// administrative adjustment. The credit is rewardRate of the full amount,
// rounded half-up to cents, regardless of how much wallet value was redeemed.
func Settle(balance, amount, walletUse, rewardRate decimal.Decimal) (Settlement, error) {
	if !amount.IsPositive() {
		return Settlement{}, domainErrors.NewInvalidAmountError(amount)
	}

	requested := walletUse
	if requested.IsNegative() {
		requested = decimal.Zero
	}

	used := decimal.Min(requested, balance, amount)
	if used.IsNegative() {
		used = decimal.Zero
	}

	afterDebit := balance.Sub(used)
	credit := amount.Mul(rewardRate).Round(MoneyPlaces)

	return Settlement{
		BalanceBefore:      balance,
		Amount:             amount,
		RequestedWalletUse: requested,
		WalletUsed:         used,
		BalanceAfterDebit:  afterDebit,
		WalletCredit:       credit,
		FinalBalance:       afterDebit.Add(credit),
	}, nil
}

// SettleSimple settles a purchase that redeems no wallet value.
func SettleSimple(balance, amount, rewardRate decimal.Decimal) (Settlement, error) {
	return Settle(balance, amount, decimal.Zero, rewardRate)
}

// NewPurchase builds the purchase record for this settlement.
func (s Settlement) NewPurchase(customer *model.Customer, now time.Time) *model.Purchase {
	return &model.Purchase{
		ID:           uuid.New(),
		CustomerID:   customer.ID,
		ReferralCode: customer.ReferralCode,
		Amount:       s.Amount,
		WalletCredit: s.WalletCredit,
		WalletUsed:   s.WalletUsed,
		PurchaseDate: now,
	}
}

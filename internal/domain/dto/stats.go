package dto

import "github.com/shopspring/decimal"

// StatsResponse holds the dashboard totals
type StatsResponse struct {
	TotalCustomers     int64           `json:"totalCustomers"`
	TotalPurchases     int64           `json:"totalPurchases"`
	TotalWalletBalance decimal.Decimal `json:"totalWalletBalance"`
}

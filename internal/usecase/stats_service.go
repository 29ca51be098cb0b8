package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	domainRepo "github.com/wekeepgrowing/shop-wallet/internal/domain/repository"
)

// Stats are the dashboard totals
type Stats struct {
	TotalCustomers     int64
	TotalPurchases     int64
	TotalWalletBalance decimal.Decimal
}

// StatsService computes dashboard totals
type StatsService struct {
	customerRepo domainRepo.CustomerRepository
	purchaseRepo domainRepo.PurchaseRepository
}

// NewStatsService creates a new stats service instance
func NewStatsService(customerRepo domainRepo.CustomerRepository, purchaseRepo domainRepo.PurchaseRepository) *StatsService {
	return &StatsService{
		customerRepo: customerRepo,
		purchaseRepo: purchaseRepo,
	}
}

// GetStats counts customers and purchases and sums all wallet balances
func (s *StatsService) GetStats(ctx context.Context) (*Stats, error) {
	customers, err := s.customerRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	purchases, err := s.purchaseRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	total, err := s.customerRepo.SumBalances(ctx)
	if err != nil {
		return nil, err
	}
	return &Stats{
		TotalCustomers:     customers,
		TotalPurchases:     purchases,
		TotalWalletBalance: total,
	}, nil
}

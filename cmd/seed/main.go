package main

import (
	"context"
	"errors"
	"flag"
	"log"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/wekeepgrowing/shop-wallet/internal/config"
	domainErrors "github.com/wekeepgrowing/shop-wallet/internal/domain/errors"
	"github.com/wekeepgrowing/shop-wallet/internal/infrastructure/database"
	"github.com/wekeepgrowing/shop-wallet/internal/usecase"
	"github.com/wekeepgrowing/shop-wallet/pkg/logger"
)

func main() {
	path := flag.String("file", "configs/seed.example.yaml", "YAML fixture with customers and purchases")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	zapLogger, err := logger.NewZapLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	ctx := context.Background()

	store, err := database.Open(ctx, cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to initialize storage", zap.Error(err))
	}
	defer store.Close()

	customers := usecase.NewCustomerService(store.Customers, store.UnitOfWork,
		usecase.NopEventPublisher{}, usecase.NopRecorder{}, zapLogger)
	purchases := usecase.NewPurchaseService(customers, store.Purchases, store.UnitOfWork,
		decimal.NewFromFloat(cfg.Wallet.RewardRate), usecase.NopEventPublisher{}, usecase.NopRecorder{}, zapLogger)

	entries, err := loadSeedFromYAML(*path)
	if err != nil {
		zapLogger.Fatal("Failed to load seed file", zap.String("path", *path), zap.Error(err))
	}

	created, skipped, err := seed(ctx, customers, purchases, entries, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to seed", zap.Error(err))
	}

	zapLogger.Info("Seed completed",
		zap.Int("customers_created", created),
		zap.Int("customers_skipped", skipped),
	)
}

// seed creates every customer in entries. Customers whose contact number or
// referral code is already taken are skipped together with their purchases.
func seed(ctx context.Context, customers *usecase.CustomerService, purchases *usecase.PurchaseService,
	entries []customerEntry, log *zap.Logger) (created, skipped int, err error) {
	for _, entry := range entries {
		customer, err := customers.CreateCustomer(ctx, entry.Name, entry.ContactNumber)
		if errors.Is(err, domainErrors.ErrDuplicateContact) || errors.Is(err, domainErrors.ErrDuplicateReferralCode) {
			log.Warn("Skipping existing customer",
				zap.String("contact_number", entry.ContactNumber),
				zap.Error(err))
			skipped++
			continue
		}
		if err != nil {
			return created, skipped, err
		}
		created++

		if !entry.WalletBalance.IsZero() {
			if _, err := customers.AdjustWallet(ctx, customer.ID, entry.WalletBalance); err != nil {
				return created, skipped, err
			}
		}

		for _, p := range entry.Purchases {
			if _, err := purchases.CreatePurchase(ctx, customer.ReferralCode, p.Amount, p.WalletUsed); err != nil {
				return created, skipped, err
			}
		}
	}
	return created, skipped, nil
}

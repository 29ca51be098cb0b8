package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	eventAdapter "github.com/wekeepgrowing/shop-wallet/internal/adapter/event"
	grpcHandler "github.com/wekeepgrowing/shop-wallet/internal/adapter/handler/grpc"
	"github.com/wekeepgrowing/shop-wallet/internal/config"
	"github.com/wekeepgrowing/shop-wallet/internal/domain/event"
	"github.com/wekeepgrowing/shop-wallet/internal/infrastructure/database"
	grpcServer "github.com/wekeepgrowing/shop-wallet/internal/infrastructure/grpc"
	httpServer "github.com/wekeepgrowing/shop-wallet/internal/infrastructure/http"
	"github.com/wekeepgrowing/shop-wallet/internal/infrastructure/metrics"
	"github.com/wekeepgrowing/shop-wallet/internal/usecase"
	"github.com/wekeepgrowing/shop-wallet/pkg/logger"
	"github.com/wekeepgrowing/shop-wallet/pkg/messaging"
)

const (
	shutdownTimeout     = 15 * time.Second
	healthCheckInterval = 10 * time.Second
)

func main() {
	// Money is rendered as JSON numbers in responses and events
	decimal.MarshalJSONWithoutQuotes = true

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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize storage
	store, err := database.Open(ctx, cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to initialize storage", zap.String("driver", cfg.Database.Driver), zap.Error(err))
	}
	defer store.Close()
	repos := store.Repositories

	// Initialize event publisher
	publisher, closePublisher := newEventPublisher(ctx, cfg, zapLogger)
	defer closePublisher()

	m := metrics.New()

	// Initialize services
	customerService := usecase.NewCustomerService(repos.Customers, repos.UnitOfWork, publisher, m, zapLogger)
	purchaseService := usecase.NewPurchaseService(
		customerService,
		repos.Purchases,
		repos.UnitOfWork,
		decimal.NewFromFloat(cfg.Wallet.RewardRate),
		publisher,
		m,
		zapLogger,
	)
	services := &httpServer.Services{
		Customers: customerService,
		Purchases: purchaseService,
		Access:    usecase.NewAccessService(cfg.Access, zapLogger),
		Stats:     usecase.NewStatsService(repos.Customers, repos.Purchases),
	}

	if cfg.Access.Password == "" {
		zapLogger.Warn("access.password is empty, every password check will be rejected")
	}

	// Initialize servers
	httpSrv := httpServer.NewServer(cfg, zapLogger, services, m, store.Ping)
	grpcSrv := grpcServer.NewServer(cfg, zapLogger)

	// Start servers
	if grpcSrv.Enabled() {
		health := grpcHandler.NewHealthHandler(grpcSrv.Health(), store.Ping, zapLogger)
		go health.Run(ctx, healthCheckInterval)

		go func() {
			if err := grpcSrv.Start(); err != nil {
				zapLogger.Fatal("Failed to start gRPC server", zap.Error(err))
			}
		}()
	}

	go func() {
		if err := httpSrv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	zapLogger.Info("Shutting down servers...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	// Shutdown servers
	if grpcSrv.Enabled() {
		if err := grpcSrv.Shutdown(shutdownCtx); err != nil {
			zapLogger.Error("Failed to shutdown gRPC server", zap.Error(err))
		}
	}

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Failed to shutdown HTTP server", zap.Error(err))
	}

	zapLogger.Info("Servers shut down successfully")
}

// newEventPublisher publishes domain events to redis when enabled and drops them otherwise.
func newEventPublisher(ctx context.Context, cfg *config.Config, log *zap.Logger) (event.Publisher, func()) {
	if !cfg.Redis.Enabled {
		return usecase.NopEventPublisher{}, func() {}
	}

	broker, err := messaging.NewRedisPublisher(ctx, messaging.RedisOptions{
		Addr:     cfg.Redis.Addr,
		Username: cfg.Redis.Username,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn("Redis unavailable, domain events will not be published", zap.Error(err))
		return usecase.NopEventPublisher{}, func() {}
	}

	log.Info("Publishing domain events to redis",
		zap.String("addr", cfg.Redis.Addr),
		zap.String("channel", cfg.Redis.Channel),
	)
	return eventAdapter.NewBrokerPublisher(broker, cfg.Redis.Channel, log), func() {
		if err := broker.Close(); err != nil {
			log.Error("Failed to close redis publisher", zap.Error(err))
		}
	}
}

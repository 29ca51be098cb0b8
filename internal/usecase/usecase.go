package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/wekeepgrowing/shop-wallet/internal/domain/event"
)

// WalletRecorder receives business measurements after state changes commit.
type WalletRecorder interface {
	CustomerCreated()
	PurchaseSettled(amount, walletUsed, walletCredit decimal.Decimal)
	PurchasesCleared(deleted int64, reversed bool)
}

// NopRecorder discards measurements
type NopRecorder struct{}

func (NopRecorder) CustomerCreated()                                     {}
func (NopRecorder) PurchaseSettled(amount, used, credit decimal.Decimal) {}
func (NopRecorder) PurchasesCleared(deleted int64, reversed bool)        {}

// NopEventPublisher discards events
type NopEventPublisher struct{}

func (NopEventPublisher) Publish(ctx context.Context, evt event.Event) error {
	return nil
}

// Clock returns the current time
type Clock func() time.Time

func utcNow() time.Time {
	return time.Now().UTC()
}

// publishEvent delivers an event for a change that is already committed, so
// failures are logged and not returned.
func publishEvent(ctx context.Context, publisher event.Publisher, logger *zap.Logger, evt event.Event) {
	if err := publisher.Publish(ctx, evt); err != nil {
		logger.Warn("Failed to publish wallet event",
			zap.String("type", evt.Type),
			zap.Error(err))
	}
}

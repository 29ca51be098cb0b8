// Package event delivers wallet events to the configured message broker.
package event

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/wekeepgrowing/shop-wallet/internal/domain/event"
	"github.com/wekeepgrowing/shop-wallet/pkg/messaging"
)

// BrokerPublisher publishes wallet events on a single channel.
type BrokerPublisher struct {
	publisher messaging.Publisher
	channel   string
	logger    *zap.Logger
}

// NewBrokerPublisher creates an event publisher on top of a messaging publisher
func NewBrokerPublisher(publisher messaging.Publisher, channel string, logger *zap.Logger) *BrokerPublisher {
	return &BrokerPublisher{
		publisher: publisher,
		channel:   channel,
		logger:    logger,
	}
}

// Publish sends the event as JSON
func (p *BrokerPublisher) Publish(ctx context.Context, evt event.Event) error {
	if err := p.publisher.Publish(ctx, p.channel, evt); err != nil {
		return fmt.Errorf("failed to publish %s: %w", evt.Type, err)
	}

	p.logger.Debug("Event published",
		zap.String("type", evt.Type),
		zap.String("channel", p.channel))
	return nil
}

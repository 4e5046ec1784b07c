package services

import (
	"encoding/json"

	"go.uber.org/zap"
)

// Routing keys of the catalog events.
const (
	EventProductViewed   = "product.viewed"
	EventWishlistAdded   = "wishlist.added"
	EventWishlistRemoved = "wishlist.removed"
	EventReviewCreated   = "review.created"
)

// EventPublisher sends catalog events to a message broker.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// publish marshals payload and hands it to events. Failures are logged and
// never reach the caller.
func publish(events EventPublisher, routingKey string, payload map[string]interface{}) {
	if events == nil {
		zap.L().Debug("Event publisher is not configured, skipping event", zap.String("event", routingKey))
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		zap.L().Warn("Failed to marshal event", zap.String("event", routingKey), zap.Error(err))
		return
	}
	if err := events.Publish(routingKey, body); err != nil {
		zap.L().Warn("Failed to publish event", zap.String("event", routingKey), zap.Error(err))
	}
}

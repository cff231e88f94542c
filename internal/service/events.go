package service

import (
	"context"
	"strconv"

	"github.com/posk43/api-final-yatube/pkg/log"
	"github.com/posk43/api-final-yatube/pkg/pubsub"
)

// publishEvent publishes a content event best-effort. A nil publisher
// disables events; failures are logged and never surfaced to the caller.
func publishEvent(ctx context.Context, pub pubsub.Publisher, entity, eventType string, id uint, actor string, payload interface{}) {
	if pub == nil {
		return
	}

	entityID := strconv.FormatUint(uint64(id), 10)
	event, err := pubsub.NewEvent(eventType, entityID, actor, payload)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("event_type", eventType).Msg("failed to build event")
		return
	}

	if err := pub.Publish(ctx, pubsub.ContentChannel(entity, entityID), event); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("event_type", eventType).Msg("failed to publish event")
	}
}

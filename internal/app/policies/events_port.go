package policies

import (
	"context"
	"log/slog"

	"stayhub/internal/domain/shared/events"
)

// EventPublisher pushes committed domain events toward downstream
// consumers.
type EventPublisher interface {
	Publish(ctx context.Context, event events.DomainEvent) error
}

// PublishAll drains recorded events after a successful commit. Publishing is
// best-effort: the mutation is already durable, so failures are logged and
// dropped.
func PublishAll(ctx context.Context, p EventPublisher, logger *slog.Logger, pending []events.DomainEvent) {
	if p == nil {
		return
	}
	for _, event := range pending {
		if err := p.Publish(ctx, event); err != nil && logger != nil {
			logger.Warn("event publish failed", "event", event.EventName(), "aggregate_id", event.AggregateID(), "error", err)
		}
	}
}

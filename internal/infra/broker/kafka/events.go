package kafka

import (
	"context"
	"encoding/json"
	"time"

	"stayhub/internal/app/policies"
	"stayhub/internal/domain/shared/events"
)

// EventPublisher serializes committed domain events onto a Kafka topic,
// keyed by aggregate id so per-aggregate ordering survives partitioning.
type EventPublisher struct {
	Producer *Producer
	Topic    string
}

type eventEnvelope struct {
	Name        string          `json:"name"`
	AggregateID string          `json:"aggregate_id"`
	OccurredAt  time.Time       `json:"occurred_at"`
	Payload     json.RawMessage `json:"payload"`
}

func (p EventPublisher) Publish(ctx context.Context, event events.DomainEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	body, err := json.Marshal(eventEnvelope{
		Name:        event.EventName(),
		AggregateID: event.AggregateID(),
		OccurredAt:  event.OccurredAt(),
		Payload:     payload,
	})
	if err != nil {
		return err
	}
	headers := map[string]string{"event": event.EventName()}
	return p.Producer.Publish(ctx, p.Topic, event.AggregateID(), body, headers)
}

var _ policies.EventPublisher = EventPublisher{}

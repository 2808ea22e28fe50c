package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"stayhub/internal/app/policies"
	"stayhub/internal/infra/broker/kafka"
)

// KafkaNotifier hands notifications to the delivery pipeline via a Kafka
// topic. A separate consumer fans them out to email or push channels.
type KafkaNotifier struct {
	Producer *kafka.Producer
	Topic    string
}

type notificationMessage struct {
	UserID string    `json:"user_id"`
	Title  string    `json:"title"`
	Body   string    `json:"body"`
	Tag    string    `json:"tag"`
	SentAt time.Time `json:"sent_at"`
}

func (n KafkaNotifier) Notify(ctx context.Context, userID string, title, body, tag string) error {
	payload, err := json.Marshal(notificationMessage{
		UserID: userID,
		Title:  title,
		Body:   body,
		Tag:    tag,
		SentAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	return n.Producer.Publish(ctx, n.Topic, userID, payload, map[string]string{"tag": tag})
}

// LogNotifier writes notifications to the log. It backs standalone runs
// with no broker configured.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) Notify(ctx context.Context, userID string, title, body, tag string) error {
	if n.Logger != nil {
		n.Logger.Info("notification", "user_id", userID, "title", title, "body", body, "tag", tag)
	}
	return nil
}

var _ policies.Notifier = KafkaNotifier{}
var _ policies.Notifier = LogNotifier{}

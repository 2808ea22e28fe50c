package policies

import (
	"context"
	"log/slog"
)

// Notifier is the outbound notification sink. Implementations deliver to
// users; the engine never depends on delivery succeeding.
type Notifier interface {
	Notify(ctx context.Context, userID string, title, body, tag string) error
}

// NotifyBestEffort sends a notification and swallows any failure. Delivery
// problems are logged and must never roll back or fail the primary
// operation.
func NotifyBestEffort(ctx context.Context, n Notifier, logger *slog.Logger, userID, title, body, tag string) {
	if n == nil || userID == "" {
		return
	}
	if err := n.Notify(ctx, userID, title, body, tag); err != nil && logger != nil {
		logger.Warn("notification delivery failed", "user_id", userID, "tag", tag, "error", err)
	}
}

package notification

import (
	"context"

	"go.uber.org/zap"
)

// Notifier delivers a message to a single user. The worker plugs in a
// Discord-backed implementation when a bot token is configured.
type Notifier interface {
	SendDirectMessage(ctx context.Context, userID int64, message string) error
}

// LogNotifier writes notifications to the process log instead of
// delivering them. Used when no Discord token is configured.
type LogNotifier struct {
	Logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{Logger: logger}
}

func (n *LogNotifier) SendDirectMessage(_ context.Context, userID int64, message string) error {
	n.Logger.Info("notification", zap.Int64("user_id", userID), zap.String("message", message))
	return nil
}

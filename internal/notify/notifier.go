package notify

import (
	"fmt"

	"spendtrack-backend/internal/config"
	"spendtrack-backend/internal/models"

	"go.uber.org/zap"
)

// Notifier delivers a single best-effort notification to a user. Callers
// decide whether a failure matters; on the budget-alert path it never does.
type Notifier interface {
	Notify(user *models.User, subject, body string) error
}

// New builds the notifier selected by NOTIFY_BACKEND.
func New(cfg *config.Config, log *zap.Logger) (Notifier, error) {
	switch cfg.NotifyBackend {
	case "smtp":
		return NewMailer(cfg), nil
	case "amqp":
		return NewQueuePublisher(cfg.AMQPURL, cfg.AMQPQueue)
	case "telegram":
		return NewTelegramNotifier(cfg.TelegramToken, log)
	case "log":
		return &LogNotifier{log: log}, nil
	default:
		return nil, fmt.Errorf("unknown notify backend %q", cfg.NotifyBackend)
	}
}

// LogNotifier only records the notification. Default for development and the
// fallback when no transport is configured.
type LogNotifier struct {
	log *zap.Logger
}

func (n *LogNotifier) Notify(user *models.User, subject, body string) error {
	n.log.Info("notification (log backend)",
		zap.Uint("user_id", user.ID),
		zap.String("to", user.Email),
		zap.String("subject", subject),
		zap.String("body", body))
	return nil
}

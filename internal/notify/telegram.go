package notify

import (
	"fmt"

	"spendtrack-backend/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// TelegramNotifier messages users who have linked a chat ID to their account.
type TelegramNotifier struct {
	bot *tgbotapi.BotAPI
	log *zap.Logger
}

func NewTelegramNotifier(token string, log *zap.Logger) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("init telegram bot: %w", err)
	}
	log.Info("telegram notifier ready", zap.String("bot", bot.Self.UserName))
	return &TelegramNotifier{bot: bot, log: log}, nil
}

func (n *TelegramNotifier) Notify(user *models.User, subject, body string) error {
	if user.TelegramChatID == nil {
		return fmt.Errorf("user %d has no telegram chat linked", user.ID)
	}

	msg := tgbotapi.NewMessage(*user.TelegramChatID, subject+"\n\n"+body)
	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	return nil
}

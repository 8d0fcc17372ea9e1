package notify

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// TelegramNotifier sends due-card digests over Telegram. It implements
// reminder.Notifier; the conversational bot surface lives outside the core.
type TelegramNotifier struct {
	api *tgbotapi.BotAPI
	log *zap.Logger
}

// NewTelegram creates the notifier from a bot token
func NewTelegram(token string, log *zap.Logger) (*TelegramNotifier, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %v", err)
	}
	return &TelegramNotifier{api: api, log: log}, nil
}

// SendDueDigest tells a user how many cards are waiting for review
func (n *TelegramNotifier) SendDueDigest(userID int64, chatID int64, count int) error {
	text := fmt.Sprintf("📚 You have %d card(s) due for review. Keep your streak going!", count)
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send digest to user %d: %v", userID, err)
	}
	n.log.Debug("sent due digest", zap.Int64("user_id", userID), zap.Int("count", count))
	return nil
}

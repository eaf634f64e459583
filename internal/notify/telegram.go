package notify

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/avoropaev/propdesk/internal/config"
)

type TelegramSender struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramSender returns nil when the bot is not configured; the notify
// service treats a nil sender as log-only mode.
func NewTelegramSender(cfg *config.Config) (*TelegramSender, error) {
	if cfg.TelegramToken == "" || cfg.TelegramChatID == 0 {
		return nil, nil
	}

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return nil, err
	}
	bot.Debug = false

	return &TelegramSender{
		bot:    bot,
		chatID: cfg.TelegramChatID,
	}, nil
}

func (s *TelegramSender) Send(text string) error {
	msg := tgbotapi.NewMessage(s.chatID, text)

	if _, err := s.bot.Send(msg); err != nil {
		return err
	}

	return nil
}

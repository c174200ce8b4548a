package telegram

import (
	"context"
	"fmt"
	"strconv"

	"nlu-router/internal/dialog"
	"nlu-router/internal/model"
	pkgTelegram "nlu-router/pkg/telegram"
)

// Sender delivers dialog output through the Telegram Bot API.
type Sender struct {
	bot *pkgTelegram.Bot
}

var _ dialog.Sender = (*Sender)(nil)

func NewSender(bot *pkgTelegram.Bot) *Sender {
	return &Sender{bot: bot}
}

func (s *Sender) Send(ctx context.Context, addr model.Address, text string) error {
	if addr.ChannelID != ChannelID {
		return fmt.Errorf("telegram sender: unsupported channel %q", addr.ChannelID)
	}
	chatID, err := strconv.ParseInt(addr.ConversationID, 10, 64)
	if err != nil {
		return fmt.Errorf("telegram sender: invalid chat id %q: %w", addr.ConversationID, err)
	}
	return s.bot.SendMessage(ctx, chatID, text)
}

package telegram

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"nlu-router/internal/model"
	pkgResponse "nlu-router/pkg/response"
	pkgTelegram "nlu-router/pkg/telegram"
)

// FailureMessage is sent when an update could not be handled.
const FailureMessage = "Sorry, something went wrong while handling your message. Please try again."

// HandleWebhook is the Gin handler for incoming Telegram webhook updates.
// It responds with HTTP 200 immediately and dispatches the turn in a background
// goroutine so slow recognition engines do not hit Telegram's webhook timeout.
func (h *handler) HandleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	var update pkgTelegram.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		h.l.Errorf(ctx, "telegram handler: failed to parse update: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}

	// Ignore non-message updates (polls, channel_post, etc.)
	if update.Message == nil || update.Message.Chat == nil {
		pkgResponse.OK(c, map[string]string{"status": "ignored"})
		return
	}

	turn := toTurn(update.Message)
	chatID := update.Message.Chat.ID

	// Detach from the request context, which is cancelled after the response.
	bgCtx := context.WithoutCancel(ctx)
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		dctx, cancel := context.WithTimeout(bgCtx, DispatchTimeout)
		defer cancel()

		if err := h.dispatcher.Dispatch(dctx, turn); err != nil {
			h.l.Errorf(dctx, "telegram handler: background Dispatch failed: %v", err)
			// Best-effort error notification to user
			_ = h.bot.SendMessage(dctx, chatID, FailureMessage)
		}
	}()

	pkgResponse.OK(c, map[string]string{"status": "accepted"})
}

func (h *handler) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		h.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// toTurn converts a Telegram message. Non-text messages become turns without text.
func toTurn(msg *pkgTelegram.Message) model.Turn {
	addr := model.Address{
		ChannelID:      ChannelID,
		ConversationID: strconv.FormatInt(msg.Chat.ID, 10),
	}
	var locale string
	if msg.From != nil {
		addr.UserID = strconv.FormatInt(msg.From.ID, 10)
		addr.UserName = msg.From.Username
		locale = msg.From.LanguageCode
	}

	turn := model.Turn{Address: addr, Locale: locale}
	if msg.Text != "" {
		turn.Message = &model.Message{
			ID:     strconv.FormatInt(msg.MessageID, 10),
			Text:   msg.Text,
			Locale: locale,
		}
	}
	return turn
}

package telegram

import (
	"context"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"nlu-router/internal/model"
	pkgLog "nlu-router/pkg/log"
	pkgTelegram "nlu-router/pkg/telegram"
)

// ChannelID identifies Telegram conversations in addresses and store keys.
const ChannelID = "telegram"

// DispatchTimeout bounds the background handling of one update.
const DispatchTimeout = 60 * time.Second

// Dispatcher runs a turn through the chat host. *dialog.Bot implements it.
type Dispatcher interface {
	Dispatch(ctx context.Context, turn model.Turn) error
}

// Handler is the interface for the Telegram delivery handler.
type Handler interface {
	HandleWebhook(c *gin.Context)
	// Shutdown waits for in-flight updates until ctx is done.
	Shutdown(ctx context.Context) error
}

type handler struct {
	l          pkgLog.Logger
	dispatcher Dispatcher
	bot        *pkgTelegram.Bot
	wg         sync.WaitGroup
}

// New creates a new Telegram delivery handler.
func New(l pkgLog.Logger, dispatcher Dispatcher, bot *pkgTelegram.Bot) Handler {
	return &handler{
		l:          l,
		dispatcher: dispatcher,
		bot:        bot,
	}
}

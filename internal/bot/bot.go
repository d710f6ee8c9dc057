package bot

import (
	"context"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// pollTimeout is the long-polling timeout in seconds passed to getUpdates
const pollTimeout = 30

// Bot drives the long-polling loop and fans updates out to the handler
type Bot struct {
	api     *tgbotapi.BotAPI
	handler *Handler
	logger  *zap.Logger
}

// New creates a new bot around an authorized Telegram API client
func New(api *tgbotapi.BotAPI, handler *Handler, logger *zap.Logger) *Bot {
	return &Bot{
		api:     api,
		handler: handler,
		logger:  logger,
	}
}

// Run polls for updates until the context is cancelled, then waits for
// in-flight handlers to finish so a save started just before shutdown still
// completes before the caller closes the database.
func (b *Bot) Run(ctx context.Context) {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = pollTimeout

	updates := b.api.GetUpdatesChan(updateConfig)

	b.logger.Info("bot_polling_started",
		zap.String("bot_username", b.api.Self.UserName),
	)

	b.dispatch(ctx, updates)

	b.api.StopReceivingUpdates()
	b.logger.Info("bot_polling_stopped")
}

// dispatch fans updates out to per-update goroutines so a slow transcription
// or insert for one user never stalls delivery of other users' events. It
// returns once the context is cancelled or the channel closes, after every
// dispatched update has been handled.
func (b *Bot) dispatch(ctx context.Context, updates <-chan tgbotapi.Update) {
	var inFlight sync.WaitGroup
	defer inFlight.Wait()

	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				b.logger.Info("update_channel_closed")
				return
			}
			inFlight.Add(1)
			// Handlers run to completion even when shutdown cancels the
			// polling loop; their own per-call timeouts still apply.
			handlerCtx := context.WithoutCancel(ctx)
			go func(update tgbotapi.Update) {
				defer inFlight.Done()
				b.handler.HandleUpdate(handlerCtx, update)
			}(update)
		}
	}
}

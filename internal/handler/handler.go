package handler

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/bitcorise/earnbot/internal/config"
	"github.com/bitcorise/earnbot/internal/service"
	"github.com/bitcorise/earnbot/internal/telegram"
)

// Handler holds all dependencies needed by command and callback handlers.
type Handler struct {
	bot         *bot.Bot
	cfg         *config.Config
	catalog     *config.Catalog
	ledger      *service.LedgerService
	timers      *service.TimerService
	payouts     *service.PayoutService
	sessions    *service.SessionService
	stats       *service.StatsService
	notifier    *telegram.AdminNotifier
	botUsername string
}

// Deps contains all dependencies required to construct a Handler.
type Deps struct {
	Bot         *bot.Bot
	Cfg         *config.Config
	Catalog     *config.Catalog
	Ledger      *service.LedgerService
	Timers      *service.TimerService
	Payouts     *service.PayoutService
	Sessions    *service.SessionService
	Stats       *service.StatsService
	Notifier    *telegram.AdminNotifier
	BotUsername string
}

// New creates a new Handler from the provided dependencies.
func New(deps Deps) *Handler {
	return &Handler{
		bot:         deps.Bot,
		cfg:         deps.Cfg,
		catalog:     deps.Catalog,
		ledger:      deps.Ledger,
		timers:      deps.Timers,
		payouts:     deps.Payouts,
		sessions:    deps.Sessions,
		stats:       deps.Stats,
		notifier:    deps.Notifier,
		botUsername: deps.BotUsername,
	}
}

// callbackChatID extracts the chat of the message a callback was attached to.
func callbackChatID(update *models.Update) int64 {
	if msg := update.CallbackQuery.Message.Message; msg != nil {
		return msg.Chat.ID
	}
	return 0
}

// answerCallback acknowledges a callback query so the client stops the
// loading spinner.
func (h *Handler) answerCallback(ctx context.Context, b *bot.Bot, update *models.Update) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: update.CallbackQuery.ID,
	})
}

// editMessage replaces the text and keyboard of the message a callback came
// from, the way every menu transition works here.
func (h *Handler) editMessage(ctx context.Context, b *bot.Bot, update *models.Update, text string, markup *models.InlineKeyboardMarkup) {
	msg := update.CallbackQuery.Message.Message
	if msg == nil {
		return
	}
	b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      msg.Chat.ID,
		MessageID:   msg.ID,
		Text:        text,
		ParseMode:   models.ParseModeMarkdownV1,
		ReplyMarkup: markup,
	})
}

func backToMenuRow() []models.InlineKeyboardButton {
	return telegram.ButtonRow(telegram.InlineButton("🔙 Back to Menu", "back_to_menu"))
}

package handler

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/bitcorise/earnbot/internal/domain"
	"github.com/bitcorise/earnbot/internal/middleware"
	tg "github.com/bitcorise/earnbot/internal/telegram"
)

func (h *Handler) handleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	acc := middleware.GetAccount(ctx)
	if acc == nil {
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      update.Message.Chat.ID,
		Text:        h.welcomeText(acc),
		ParseMode:   models.ParseModeMarkdownV1,
		ReplyMarkup: h.mainMenuKeyboard(),
	})
}

func (h *Handler) handleBackToMenu(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}
	h.answerCallback(ctx, b, update)

	acc := middleware.GetAccount(ctx)
	if acc == nil {
		return
	}

	h.editMessage(ctx, b, update, h.welcomeText(acc), h.mainMenuKeyboard())
}

func (h *Handler) welcomeText(acc *domain.Account) string {
	var sb strings.Builder
	sb.WriteString("🚀 *Welcome to the Earning Bot!*\n\n")
	sb.WriteString("💰 Earn by completing simple tasks:\n")
	for _, t := range h.catalog.All() {
		sb.WriteString(fmt.Sprintf("• %s: %s\n", t.Name, tg.FormatAmount(t.Reward, h.cfg.Currency)))
	}
	sb.WriteString(fmt.Sprintf(
		"\n💎 *Your Stats:*\n"+
			"Balance: %s\n"+
			"Total Earned: %s\n"+
			"Tasks Completed: %d\n\n"+
			"📊 *Daily Limit:* %.2f%s\n"+
			"💸 *Min Payout:* %.2f%s\n\n"+
			"Ready to start earning? Choose an option below! 👇",
		tg.FormatAmount(acc.Balance, h.cfg.Currency),
		tg.FormatAmount(acc.TotalEarned, h.cfg.Currency),
		acc.TasksCompleted,
		h.cfg.DailyLimit, h.cfg.Currency,
		h.cfg.MinPayout, h.cfg.Currency,
	))
	return sb.String()
}

func (h *Handler) mainMenuKeyboard() *models.InlineKeyboardMarkup {
	return tg.InlineKeyboard(
		tg.ButtonRow(
			tg.InlineButton("💰 Start Tasks", "tasks"),
			tg.InlineButton("💳 Balance", "balance"),
		),
		tg.ButtonRow(
			tg.InlineButton("💸 Request Payout", "payout"),
			tg.InlineButton("📋 My Requests", "my_requests"),
		),
		tg.ButtonRow(
			tg.InlineButton("👥 Referrals", "referrals"),
			tg.InlineButton("ℹ️ Help", "help"),
		),
	)
}

package handler

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/bitcorise/earnbot/internal/domain"
	"github.com/bitcorise/earnbot/internal/middleware"
	tg "github.com/bitcorise/earnbot/internal/telegram"
)

func (h *Handler) handleBalance(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}
	h.answerCallback(ctx, b, update)

	acc := middleware.GetAccount(ctx)
	if acc == nil {
		return
	}

	pending := h.payouts.PendingFor(update.CallbackQuery.From.ID)
	h.editMessage(ctx, b, update, h.balanceText(acc, len(pending)), tg.InlineKeyboard(
		tg.ButtonRow(
			tg.InlineButton("💸 Request Payout", "payout"),
			tg.InlineButton("🔙 Back to Menu", "back_to_menu"),
		),
	))
}

func (h *Handler) handleBalanceCommand(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	acc := middleware.GetAccount(ctx)
	if acc == nil {
		return
	}

	pending := h.payouts.PendingFor(update.Message.From.ID)
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    update.Message.Chat.ID,
		Text:      h.balanceText(acc, len(pending)),
		ParseMode: models.ParseModeMarkdownV1,
	})
}

func (h *Handler) balanceText(acc *domain.Account, pendingCount int) string {
	return fmt.Sprintf(
		"💳 *Your Balance Information*\n\n"+
			"💰 Current Balance: %s\n"+
			"📊 Total Earned: %s\n"+
			"📈 Today's Earnings: %s / %.2f%s\n"+
			"✅ Tasks Completed: %d\n"+
			"👥 Referrals: %d\n"+
			"⏳ Pending Requests: %d\n\n"+
			"💸 Minimum payout: %.2f%s",
		tg.FormatAmount(acc.Balance, h.cfg.Currency),
		tg.FormatAmount(acc.TotalEarned, h.cfg.Currency),
		tg.FormatAmount(acc.DailyEarned, h.cfg.Currency),
		h.cfg.DailyLimit, h.cfg.Currency,
		acc.TasksCompleted,
		acc.Referrals,
		pendingCount,
		h.cfg.MinPayout, h.cfg.Currency,
	)
}

func (h *Handler) handleReferrals(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}
	h.answerCallback(ctx, b, update)

	acc := middleware.GetAccount(ctx)
	if acc == nil {
		return
	}

	userID := update.CallbackQuery.From.ID
	refLink := fmt.Sprintf("https://t.me/%s?start=%d", h.botUsername, userID)
	bonus := fmt.Sprintf("%.2f%s", h.cfg.ReferralBonus, h.cfg.Currency)

	h.editMessage(ctx, b, update, fmt.Sprintf(
		"👥 *Referral Program*\n\n"+
			"💰 Earn %s for each person you refer!\n"+
			"📊 Your Referrals: %d\n\n"+
			"🔗 *Your Referral Link:*\n`%s`\n\n"+
			"Share this link with friends and earn when they join!",
		bonus,
		acc.Referrals,
		refLink,
	), tg.InlineKeyboard(backToMenuRow()))
}

func (h *Handler) handleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}
	h.answerCallback(ctx, b, update)

	contact := ""
	if h.cfg.AdminUsername != "" {
		contact = fmt.Sprintf("\n\n❓ *Need help?* Contact @%s", h.cfg.AdminUsername)
	}

	h.editMessage(ctx, b, update, fmt.Sprintf(
		"ℹ️ *Help & Information*\n\n"+
			"🤖 *How to earn:*\n"+
			"1. Click 'Start Tasks' to see available tasks\n"+
			"2. Choose a task and complete it\n"+
			"3. Wait for the specified time\n"+
			"4. Claim your reward\n\n"+
			"💸 *Payouts:*\n"+
			"• Minimum: %.2f%s\n"+
			"• Submit requests through the bot\n"+
			"• Admin reviews within %s\n\n"+
			"📊 *Limits:*\n"+
			"• Daily earning limit: %.2f%s\n"+
			"• One pending payout request at a time\n\n"+
			"👥 *Referrals:*\n"+
			"• Earn %.2f%s per referral\n"+
			"• Share your referral link%s",
		h.cfg.MinPayout, h.cfg.Currency,
		h.cfg.ProcessingTime,
		h.cfg.DailyLimit, h.cfg.Currency,
		h.cfg.ReferralBonus, h.cfg.Currency,
		contact,
	), tg.InlineKeyboard(backToMenuRow()))
}

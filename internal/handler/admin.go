package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/bitcorise/earnbot/internal/domain"
	tg "github.com/bitcorise/earnbot/internal/telegram"
)

// isAdminMessage gates the admin commands on the configured admin IDs.
func (h *Handler) isAdminMessage(update *models.Update) bool {
	return update.Message != nil &&
		update.Message.From != nil &&
		h.cfg.IsAdmin(update.Message.From.ID)
}

func (h *Handler) handlePending(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.isAdminMessage(update) {
		return
	}
	chatID := update.Message.Chat.ID

	pending := h.payouts.Pending()
	if len(pending) == 0 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "✅ No pending payout requests.",
		})
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📋 *Pending Payout Requests (%d)*\n\n", len(pending)))
	for _, req := range pending {
		sb.WriteString(fmt.Sprintf("🆔 `%s`\n", req.ID))
		sb.WriteString(fmt.Sprintf("👤 @%s (ID: %d)\n", req.Username, req.UserID))
		sb.WriteString(fmt.Sprintf("💰 %s via %s\n",
			tg.FormatAmount(req.Amount, h.cfg.Currency), methodTitle(req.PaymentMethod)))
		sb.WriteString(fmt.Sprintf("📧 `%s`\n", req.PaymentAddress))
		sb.WriteString(fmt.Sprintf("📅 %s\n\n", req.CreatedAt.Format("2006-01-02 15:04")))
	}
	sb.WriteString("Use `/approve <request_id>` or `/reject <request_id> [reason]` to process requests.")

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      sb.String(),
		ParseMode: models.ParseModeMarkdownV1,
	})
}

func (h *Handler) handleApprove(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.isAdminMessage(update) {
		return
	}
	chatID := update.Message.Chat.ID

	parts := strings.Fields(update.Message.Text)
	if len(parts) < 2 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:    chatID,
			Text:      "❌ Usage: `/approve <request_id>`",
			ParseMode: models.ParseModeMarkdownV1,
		})
		return
	}
	requestID := parts[1]

	note := fmt.Sprintf("Approved by admin on %s", time.Now().Format("2006-01-02 15:04"))
	req, err := h.payouts.Approve(requestID, note)
	if err != nil {
		h.replyProcessError(ctx, b, chatID, requestID, err)
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text: fmt.Sprintf(
			"✅ *Request Approved*\n\n"+
				"🆔 Request ID: `%s`\n"+
				"👤 User: @%s\n"+
				"💰 Amount: %s\n"+
				"💳 Method: %s\n"+
				"📧 Address: `%s`\n\n"+
				"Please process the payment manually.",
			req.ID, req.Username,
			tg.FormatAmount(req.Amount, h.cfg.Currency),
			methodTitle(req.PaymentMethod),
			req.PaymentAddress,
		),
		ParseMode: models.ParseModeMarkdownV1,
	})

	_, err = b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: req.UserID,
		Text: fmt.Sprintf(
			"✅ *Payout Request Approved!*\n\n"+
				"🆔 Request ID: `%s`\n"+
				"💰 Amount: %s\n"+
				"💳 Method: %s\n\n"+
				"Your payment will be processed shortly. Thank you for using our bot!",
			req.ID,
			tg.FormatAmount(req.Amount, h.cfg.Currency),
			methodTitle(req.PaymentMethod),
		),
		ParseMode: models.ParseModeMarkdownV1,
	})
	if err != nil {
		slog.Error("notify user about approval", "error", err, "user_id", req.UserID)
	}
}

func (h *Handler) handleReject(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.isAdminMessage(update) {
		return
	}
	chatID := update.Message.Chat.ID

	parts := strings.Fields(update.Message.Text)
	if len(parts) < 2 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:    chatID,
			Text:      "❌ Usage: `/reject <request_id> [reason]`",
			ParseMode: models.ParseModeMarkdownV1,
		})
		return
	}
	requestID := parts[1]
	reason := "No reason provided"
	if len(parts) > 2 {
		reason = strings.Join(parts[2:], " ")
	}

	req, err := h.payouts.Reject(requestID, reason)
	if err != nil {
		h.replyProcessError(ctx, b, chatID, requestID, err)
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text: fmt.Sprintf(
			"❌ *Request Rejected*\n\n"+
				"🆔 Request ID: `%s`\n"+
				"👤 User: @%s\n"+
				"💰 Amount: %s (balance restored)\n"+
				"📝 Reason: %s",
			req.ID, req.Username,
			tg.FormatAmount(req.Amount, h.cfg.Currency),
			reason,
		),
		ParseMode: models.ParseModeMarkdownV1,
	})

	_, err = b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: req.UserID,
		Text: fmt.Sprintf(
			"❌ *Payout Request Rejected*\n\n"+
				"🆔 Request ID: `%s`\n"+
				"💰 Amount: %s\n"+
				"📝 Reason: %s\n\n"+
				"Your balance has been restored. You can submit a new request after addressing the issue.",
			req.ID,
			tg.FormatAmount(req.Amount, h.cfg.Currency),
			reason,
		),
		ParseMode: models.ParseModeMarkdownV1,
	})
	if err != nil {
		slog.Error("notify user about rejection", "error", err, "user_id", req.UserID)
	}
}

func (h *Handler) replyProcessError(ctx context.Context, b *bot.Bot, chatID int64, requestID string, err error) {
	var text string
	switch {
	case errors.Is(err, domain.ErrRequestNotFound):
		text = fmt.Sprintf("❌ Request ID `%s` not found.", requestID)
	case errors.Is(err, domain.ErrRequestNotPending):
		text = fmt.Sprintf("❌ Request `%s` is already processed.", requestID)
	default:
		slog.Error("process payout request", "error", err, "request_id", requestID)
		text = "❌ Failed to process the request."
	}
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeMarkdownV1,
	})
}

func (h *Handler) handleAdminStats(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.isAdminMessage(update) {
		return
	}

	sum := h.stats.Summary()
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text: fmt.Sprintf(
			"📊 *Admin Statistics*\n\n"+
				"👥 *Users:* %d\n"+
				"📈 *Active Today:* %d\n"+
				"💰 *Total Balance:* %s\n"+
				"📈 *Total Earned:* %s\n"+
				"💸 *Total Paid Out:* %s\n\n"+
				"📋 *Payout Requests:*\n"+
				"⏳ Pending: %d\n"+
				"✅ Approved: %d\n"+
				"❌ Rejected: %d\n\n"+
				"🎯 *Active Tasks:* %d",
			sum.TotalUsers,
			sum.ActiveToday,
			tg.FormatAmount(sum.TotalBalance, h.cfg.Currency),
			tg.FormatAmount(sum.TotalEarned, h.cfg.Currency),
			tg.FormatAmount(sum.TotalPaidOut, h.cfg.Currency),
			sum.PendingPayouts,
			sum.ApprovedPayouts,
			sum.RejectedPayouts,
			sum.ActiveTasks,
		),
		ParseMode: models.ParseModeMarkdownV1,
	})
}

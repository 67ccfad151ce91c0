package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/shopspring/decimal"

	"github.com/bitcorise/earnbot/internal/config"
	"github.com/bitcorise/earnbot/internal/domain"
	"github.com/bitcorise/earnbot/internal/middleware"
	tg "github.com/bitcorise/earnbot/internal/telegram"
)

func (h *Handler) handlePayout(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}
	h.answerCallback(ctx, b, update)

	acc := middleware.GetAccount(ctx)
	if acc == nil {
		return
	}
	userID := update.CallbackQuery.From.ID

	if pending := h.payouts.PendingFor(userID); len(pending) > 0 {
		total := decimal.Zero
		for _, req := range pending {
			total = total.Add(req.Amount)
		}
		h.editMessage(ctx, b, update, fmt.Sprintf(
			"⏳ *You have pending payout requests!*\n\n"+
				"Pending Requests: %d\n"+
				"Total Amount: %s\n\n"+
				"Please wait for the admin to process them before submitting a new one.",
			len(pending),
			tg.FormatAmount(total, h.cfg.Currency),
		), tg.InlineKeyboard(
			tg.ButtonRow(
				tg.InlineButton("📋 My Requests", "my_requests"),
				tg.InlineButton("🔙 Back to Menu", "back_to_menu"),
			),
		))
		return
	}

	minPayout := decimal.NewFromFloat(h.cfg.MinPayout)
	if acc.Balance.LessThan(minPayout) {
		h.editMessage(ctx, b, update, fmt.Sprintf(
			"❌ *Insufficient Balance*\n\n"+
				"💰 Current Balance: %s\n"+
				"💸 Minimum Required: %s\n"+
				"📈 Need: %s more\n\n"+
				"Complete more tasks to reach the minimum payout amount!",
			tg.FormatAmount(acc.Balance, h.cfg.Currency),
			tg.FormatAmount(minPayout, h.cfg.Currency),
			tg.FormatAmount(minPayout.Sub(acc.Balance), h.cfg.Currency),
		), tg.InlineKeyboard(
			tg.ButtonRow(
				tg.InlineButton("💰 Start Tasks", "tasks"),
				tg.InlineButton("🔙 Back to Menu", "back_to_menu"),
			),
		))
		return
	}

	h.editMessage(ctx, b, update, fmt.Sprintf(
		"💸 *Choose Payout Method*\n\n"+
			"💰 Available Balance: %s\n\n"+
			"*Payment Options:*\n"+
			"💳 *FaucetPay* — Min: %.2f%s\n"+
			"💎 *Payeer* — Min: %.2f%s\n\n"+
			"⚠️ *Important:* Your request will be reviewed by admin and processed within %s.",
		tg.FormatAmount(acc.Balance, h.cfg.Currency),
		h.cfg.MinPayoutFaucetPay, h.cfg.Currency,
		h.cfg.MinPayoutPayeer, h.cfg.Currency,
		h.cfg.ProcessingTime,
	), tg.InlineKeyboard(
		tg.ButtonRow(
			tg.InlineButton("💳 FaucetPay", "payout_"+config.MethodFaucetPay),
			tg.InlineButton("💎 Payeer", "payout_"+config.MethodPayeer),
		),
		backToMenuRow(),
	))
}

func (h *Handler) handlePayoutMethod(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}
	h.answerCallback(ctx, b, update)

	acc := middleware.GetAccount(ctx)
	if acc == nil {
		return
	}
	userID := update.CallbackQuery.From.ID
	method := strings.TrimPrefix(update.CallbackQuery.Data, "payout_")

	minAmount := decimal.NewFromFloat(h.cfg.MethodMin(method))
	if acc.Balance.LessThan(minAmount) {
		h.editMessage(ctx, b, update, fmt.Sprintf(
			"❌ *Insufficient Balance for %s*\n\n"+
				"💰 Current Balance: %s\n"+
				"💸 %s Minimum: %s\n"+
				"📈 Need: %s more",
			methodTitle(method),
			tg.FormatAmount(acc.Balance, h.cfg.Currency),
			methodTitle(method),
			tg.FormatAmount(minAmount, h.cfg.Currency),
			tg.FormatAmount(minAmount.Sub(acc.Balance), h.cfg.Currency),
		), tg.InlineKeyboard(
			tg.ButtonRow(
				tg.InlineButton("💰 Start Tasks", "tasks"),
				tg.InlineButton("🔙 Back to Menu", "back_to_menu"),
			),
		))
		return
	}

	// The payout amount is the full balance, captured now. The session is
	// consumed by the next text message from this user.
	h.sessions.BeginPayout(userID, method, acc.Balance)

	example := "(e.g., P1234567890 for Payeer)"
	if method == config.MethodFaucetPay {
		example = "(e.g., your@email.com for FaucetPay)"
	}

	h.editMessage(ctx, b, update, fmt.Sprintf(
		"💸 *%s Payout Request*\n\n"+
			"💰 Amount: %s\n"+
			"💳 Method: %s\n\n"+
			"📧 *Please send your %s address:*\n%s\n\n"+
			"⚠️ Make sure the address is correct! Wrong addresses may result in loss of funds.",
		methodTitle(method),
		tg.FormatAmount(acc.Balance, h.cfg.Currency),
		methodTitle(method),
		methodTitle(method),
		example,
	), nil)
}

// HandlePayoutAddress consumes the pending payout session, if any, treating
// the message text as a payment address. The session is removed before any
// validation so a refused submission never leaves the flag armed.
func (h *Handler) HandlePayoutAddress(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	sess, ok := h.sessions.TakePayout(userID)
	if !ok {
		return
	}

	address := strings.TrimSpace(update.Message.Text)
	if len(address) < config.MinAddressLen {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:    chatID,
			Text:      "❌ *Invalid Address*\n\nPlease provide a valid payment address and start the payout again.",
			ParseMode: models.ParseModeMarkdownV1,
		})
		return
	}

	acc := middleware.GetAccount(ctx)
	username := update.Message.From.Username
	if username == "" && acc != nil {
		username = acc.FirstName
	}

	requestID, err := h.payouts.Create(userID, username, sess.Amount, sess.Method, address)
	if err != nil {
		if errors.Is(err, domain.ErrPendingPayout) {
			b.SendMessage(ctx, &bot.SendMessageParams{
				ChatID:    chatID,
				Text:      "⏳ You already have a pending payout request. Please wait for it to be processed.",
				ParseMode: models.ParseModeMarkdownV1,
			})
			return
		}
		slog.Error("create payout request", "error", err, "user_id", userID)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ Failed to submit the payout request. Please try again.",
		})
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text: fmt.Sprintf(
			"✅ *Payout Request Submitted!*\n\n"+
				"🆔 Request ID: `%s`\n"+
				"💰 Amount: %s\n"+
				"💳 Method: %s\n"+
				"📧 Address: `%s`\n\n"+
				"⏳ Your request is being reviewed by admin and will be processed within %s.",
			requestID,
			tg.FormatAmount(sess.Amount, h.cfg.Currency),
			methodTitle(sess.Method),
			address,
			h.cfg.ProcessingTime,
		),
		ParseMode: models.ParseModeMarkdownV1,
	})

	req, err := h.payouts.Get(requestID)
	if err == nil {
		h.notifier.NotifyPayoutRequest(req)
	}
}

func (h *Handler) handleMyRequests(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}
	h.answerCallback(ctx, b, update)

	acc := middleware.GetAccount(ctx)
	if acc == nil {
		return
	}
	userID := update.CallbackQuery.From.ID

	history := h.payouts.HistoryFor(userID)
	if len(history) == 0 {
		h.editMessage(ctx, b, update, fmt.Sprintf(
			"📋 *Your Payout Requests*\n\n"+
				"You haven't made any payout requests yet.\n\n"+
				"Current Balance: %s\n"+
				"Minimum Payout: %.2f%s",
			tg.FormatAmount(acc.Balance, h.cfg.Currency),
			h.cfg.MinPayout, h.cfg.Currency,
		), tg.InlineKeyboard(
			tg.ButtonRow(
				tg.InlineButton("💸 Request Payout", "payout"),
				tg.InlineButton("🔙 Back to Menu", "back_to_menu"),
			),
		))
		return
	}

	if len(history) > config.DisplayedRequests {
		history = history[:config.DisplayedRequests]
	}

	var sb strings.Builder
	sb.WriteString("📋 *Your Recent Payout Requests*\n\n")
	for _, req := range history {
		sb.WriteString(fmt.Sprintf("%s *%s* via %s\n",
			statusEmoji(req.Status),
			tg.FormatAmount(req.Amount, h.cfg.Currency),
			methodTitle(req.PaymentMethod),
		))
		sb.WriteString(fmt.Sprintf("   📅 %s | Status: %s\n",
			req.CreatedAt.Format("2006-01-02 15:04"),
			title(string(req.Status)),
		))
		if req.AdminNote != "" {
			sb.WriteString(fmt.Sprintf("   📝 Note: %s\n", req.AdminNote))
		}
		sb.WriteString("\n")
	}

	h.editMessage(ctx, b, update, sb.String(), tg.InlineKeyboard(
		tg.ButtonRow(
			tg.InlineButton("💸 New Request", "payout"),
			tg.InlineButton("🔙 Back to Menu", "back_to_menu"),
		),
	))
}

func statusEmoji(status domain.PayoutStatus) string {
	switch status {
	case domain.PayoutStatusPending:
		return "⏳"
	case domain.PayoutStatusApproved:
		return "✅"
	case domain.PayoutStatusRejected:
		return "❌"
	default:
		return "❓"
	}
}

func methodTitle(method string) string {
	switch method {
	case config.MethodFaucetPay:
		return "FaucetPay"
	case config.MethodPayeer:
		return "Payeer"
	default:
		return title(method)
	}
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-telegram/bot"

	"github.com/bitcorise/earnbot/internal/domain"
)

// AdminNotifier pushes events that need human attention to the configured
// admin chats. Failures are logged and swallowed; review happens out of
// band anyway.
type AdminNotifier struct {
	bot      *bot.Bot
	adminIDs []int64
	currency string
}

func NewAdminNotifier(b *bot.Bot, adminIDs []int64, currency string) *AdminNotifier {
	return &AdminNotifier{bot: b, adminIDs: adminIDs, currency: currency}
}

func (n *AdminNotifier) send(message string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, id := range n.adminIDs {
		_, err := n.bot.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:    id,
			Text:      message,
			ParseMode: "Markdown",
		})
		if err != nil {
			slog.Error("failed to notify admin", "admin_id", id, "error", err)
		}
	}
}

// NotifyPayoutRequest tells the admins about a fresh payout request.
func (n *AdminNotifier) NotifyPayoutRequest(req domain.PayoutRequest) {
	n.send(fmt.Sprintf(
		"🔔 *New Payout Request*\n\n"+
			"🆔 Request ID: `%s`\n"+
			"👤 User: @%s (ID: %d)\n"+
			"💰 Amount: %s\n"+
			"💳 Method: %s\n"+
			"📧 Address: `%s`\n"+
			"📅 Submitted: %s\n\n"+
			"Use `/approve %s` or `/reject %s [reason]` to process this request.",
		req.ID, req.Username, req.UserID,
		FormatAmount(req.Amount, n.currency),
		req.PaymentMethod, req.PaymentAddress,
		req.CreatedAt.Format("2006-01-02 15:04:05"),
		req.ID, req.ID,
	))
}

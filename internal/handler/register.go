package handler

import (
	"github.com/go-telegram/bot"
)

// Register registers all command and callback handlers on the bot instance.
func (h *Handler) Register() {
	// Commands
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypePrefix, h.handleStart)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/balance", bot.MatchTypePrefix, h.handleBalanceCommand)

	// Admin commands
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/pending", bot.MatchTypePrefix, h.handlePending)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/approve", bot.MatchTypePrefix, h.handleApprove)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/reject", bot.MatchTypePrefix, h.handleReject)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/stats", bot.MatchTypePrefix, h.handleAdminStats)

	// Menu callbacks
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "tasks", bot.MatchTypeExact, h.handleTaskMenu)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "balance", bot.MatchTypeExact, h.handleBalance)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "payout", bot.MatchTypeExact, h.handlePayout)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "payout_", bot.MatchTypePrefix, h.handlePayoutMethod)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "my_requests", bot.MatchTypeExact, h.handleMyRequests)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "referrals", bot.MatchTypeExact, h.handleReferrals)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "help", bot.MatchTypeExact, h.handleHelp)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "back_to_menu", bot.MatchTypeExact, h.handleBackToMenu)

	// Task callbacks: one exact handler per catalog key, plus claim checks
	for _, key := range h.catalog.Keys() {
		h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, key, bot.MatchTypeExact, h.handleTaskSelect)
	}
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "verify_", bot.MatchTypePrefix, h.handleVerify)
}

package handler

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/bitcorise/earnbot/internal/domain"
	tg "github.com/bitcorise/earnbot/internal/telegram"
)

func (h *Handler) handleTaskMenu(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}
	h.answerCallback(ctx, b, update)

	userID := update.CallbackQuery.From.ID
	if !h.checkDailyLimit(ctx, b, update, userID) {
		return
	}

	acc, err := h.ledger.Get(userID)
	if err != nil {
		slog.Error("get account", "error", err, "user_id", userID)
		return
	}

	var rows [][]models.InlineKeyboardButton
	var row []models.InlineKeyboardButton
	for _, t := range h.catalog.All() {
		row = append(row, tg.InlineButton(
			fmt.Sprintf("%s (%s)", t.Name, tg.FormatAmount(t.Reward, h.cfg.Currency)),
			t.Key,
		))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, backToMenuRow())

	h.editMessage(ctx, b, update, fmt.Sprintf(
		"🎯 *Choose a Task to Complete*\n\n"+
			"💰 Today's Earnings: %s / %.2f%s\n"+
			"💳 Current Balance: %s\n\n"+
			"Select any task below to start earning! 👇",
		tg.FormatAmount(acc.DailyEarned, h.cfg.Currency),
		h.cfg.DailyLimit, h.cfg.Currency,
		tg.FormatAmount(acc.Balance, h.cfg.Currency),
	), tg.InlineKeyboard(rows...))
}

func (h *Handler) handleTaskSelect(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}
	h.answerCallback(ctx, b, update)

	userID := update.CallbackQuery.From.ID
	taskKey := update.CallbackQuery.Data

	task, ok := h.catalog.Get(taskKey)
	if !ok {
		return
	}

	if !h.checkDailyLimit(ctx, b, update, userID) {
		return
	}

	// A running timer is never restarted from the menu: an elapsed one pays
	// out, an unfinished one shows the remaining wait.
	if h.timers.Active(userID, taskKey) {
		if h.timers.IsComplete(userID, taskKey, task.Wait()) {
			h.claimTask(ctx, b, update, userID, task)
			return
		}
		remaining := h.timers.Remaining(userID, taskKey, task.Wait())
		h.editMessage(ctx, b, update, fmt.Sprintf(
			"⏳ *Task in Progress*\n\n"+
				"📋 %s\n"+
				"⏰ Time Remaining: %s\n"+
				"💰 Reward: %s\n\n"+
				"Please wait for the timer to complete, then claim your reward.",
			task.Description,
			tg.FormatDuration(remaining),
			tg.FormatAmount(task.Reward, h.cfg.Currency),
		), tg.InlineKeyboard(
			tg.ButtonRow(tg.InlineButton("✅ Claim Reward", "verify_"+taskKey)),
			tg.ButtonRow(tg.InlineButton("🔙 Back to Tasks", "tasks")),
		))
		return
	}

	h.timers.Start(userID, taskKey)

	rows := taskLinkRows(task)
	rows = append(rows,
		tg.ButtonRow(tg.InlineButton("✅ I completed this task", "verify_"+taskKey)),
		tg.ButtonRow(tg.InlineButton("🔙 Back to Tasks", "tasks")),
	)

	wait := tg.FormatDuration(task.Wait())
	h.editMessage(ctx, b, update, fmt.Sprintf(
		"🎯 *%s*\n\n"+
			"📋 %s\n"+
			"💰 Reward: %s\n"+
			"⏰ Wait Time: %s\n\n"+
			"1. Click the link(s) below to complete the task\n"+
			"2. Wait for %s\n"+
			"3. Click 'I completed this task' to claim your reward",
		task.Name,
		task.Description,
		tg.FormatAmount(task.Reward, h.cfg.Currency),
		wait, wait,
	), tg.InlineKeyboard(rows...))
}

func (h *Handler) handleVerify(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}
	h.answerCallback(ctx, b, update)

	userID := update.CallbackQuery.From.ID
	taskKey := strings.TrimPrefix(update.CallbackQuery.Data, "verify_")

	task, ok := h.catalog.Get(taskKey)
	if !ok {
		return
	}

	if !h.timers.IsComplete(userID, taskKey, task.Wait()) {
		remaining := h.timers.Remaining(userID, taskKey, task.Wait())
		h.editMessage(ctx, b, update, fmt.Sprintf(
			"⏳ *Please wait!*\n\n"+
				"You need to wait *%s* more before claiming this reward.\n\n"+
				"⚠️ This is to ensure you actually completed the task!",
			tg.FormatDuration(remaining),
		), tg.InlineKeyboard(
			tg.ButtonRow(tg.InlineButton("🔄 Check Again", "verify_"+taskKey)),
			backToMenuRow(),
		))
		return
	}

	h.claimTask(ctx, b, update, userID, task)
}

// claimTask credits the task reward once and removes the timer.
func (h *Handler) claimTask(ctx context.Context, b *bot.Bot, update *models.Update, userID int64, task domain.Task) {
	acc, err := h.ledger.AddEarnings(userID, task.Reward)
	if err != nil {
		slog.Error("add earnings", "error", err, "user_id", userID, "task", task.Key)
		return
	}
	h.timers.Clear(userID, task.Key)

	slog.Info("task claimed",
		"user_id", userID,
		"task", task.Key,
		"reward", task.Reward.String(),
	)

	h.editMessage(ctx, b, update, fmt.Sprintf(
		"✅ *Task Completed Successfully!*\n\n"+
			"🎯 Task: %s\n"+
			"💰 Reward: +%s\n"+
			"💳 New Balance: %s\n"+
			"📊 Today's Earnings: %s / %.2f%s\n\n"+
			"🎉 Great job! Keep completing tasks to earn more!",
		task.Name,
		tg.FormatAmount(task.Reward, h.cfg.Currency),
		tg.FormatAmount(acc.Balance, h.cfg.Currency),
		tg.FormatAmount(acc.DailyEarned, h.cfg.Currency),
		h.cfg.DailyLimit, h.cfg.Currency,
	), tg.InlineKeyboard(
		tg.ButtonRow(
			tg.InlineButton("💰 More Tasks", "tasks"),
			tg.InlineButton("🔙 Back to Menu", "back_to_menu"),
		),
	))
}

// checkDailyLimit renders the daily-limit refusal and reports whether the
// user may still earn today.
func (h *Handler) checkDailyLimit(ctx context.Context, b *bot.Bot, update *models.Update, userID int64) bool {
	can, err := h.ledger.CanEarnToday(userID)
	if err != nil {
		slog.Error("daily limit check", "error", err, "user_id", userID)
		return false
	}
	if can {
		return true
	}

	h.editMessage(ctx, b, update, fmt.Sprintf(
		"❌ *Daily Limit Reached!*\n\n"+
			"You've reached your daily earning limit of %.2f%s.\n"+
			"Come back tomorrow to continue earning!",
		h.cfg.DailyLimit, h.cfg.Currency,
	), tg.InlineKeyboard(backToMenuRow()))
	return false
}

func taskLinkRows(task domain.Task) [][]models.InlineKeyboardButton {
	var rows [][]models.InlineKeyboardButton
	var row []models.InlineKeyboardButton
	for i, link := range task.Links {
		row = append(row, tg.URLButton(fmt.Sprintf("🔗 Link %d", i+1), link))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return rows
}

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/bitcorise/earnbot/internal/config"
	"github.com/bitcorise/earnbot/internal/handler"
	"github.com/bitcorise/earnbot/internal/middleware"
	"github.com/bitcorise/earnbot/internal/service"
	"github.com/bitcorise/earnbot/internal/store"
	"github.com/bitcorise/earnbot/internal/telegram"
	"github.com/bitcorise/earnbot/internal/web"
)

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration (.env is optional)
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Load task catalog
	catalog, err := config.LoadCatalog(cfg.TasksFile)
	if err != nil {
		slog.Error("failed to load task catalog", "error", err)
		os.Exit(1)
	}

	// Setup context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Open snapshot store
	st, err := store.Open(cfg.DataFile)
	if err != nil {
		slog.Error("failed to open store", "error", err)
		os.Exit(1)
	}

	// Initialize services
	ledger := service.NewLedgerService(st,
		decimal.NewFromFloat(cfg.DailyLimit),
		decimal.NewFromFloat(cfg.ReferralBonus),
	)
	timers := service.NewTimerService()
	payouts := service.NewPayoutService(st)
	sessions := service.NewSessionService()
	stats := service.NewStatsService(st, timers)

	// Create bot
	opts := []bot.Option{
		bot.WithMiddlewares(
			middleware.Recover(),
			middleware.Logging(),
			middleware.AccountLoader(ledger, cfg.Currency),
		),
	}

	b, err := bot.New(cfg.BotToken, opts...)
	if err != nil {
		slog.Error("failed to create bot", "error", err)
		os.Exit(1)
	}

	// Get bot info
	me, err := b.GetMe(ctx)
	if err != nil {
		slog.Error("failed to get bot info", "error", err)
		os.Exit(1)
	}

	slog.Info("bot info retrieved", "id", me.ID, "username", me.Username)

	// Initialize handler
	h := handler.New(handler.Deps{
		Bot:         b,
		Cfg:         cfg,
		Catalog:     catalog,
		Ledger:      ledger,
		Timers:      timers,
		Payouts:     payouts,
		Sessions:    sessions,
		Stats:       stats,
		Notifier:    telegram.NewAdminNotifier(b, cfg.AdminIDs, cfg.Currency),
		BotUsername: me.Username,
	})

	// Register all handlers
	h.Register()

	// Free-form text is a payout address while a payout session is open
	b.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, func(ctx context.Context, b *bot.Bot, update *models.Update) {
		if update.Message == nil {
			return
		}
		if len(update.Message.Text) > 0 && update.Message.Text[0] == '/' {
			return
		}
		h.HandlePayoutAddress(ctx, b, update)
	})

	// Start stats server
	go func() {
		if err := web.NewServer(cfg.Port, stats).Run(ctx); err != nil {
			slog.Error("stats server stopped", "error", err)
		}
	}()

	// Start bot
	slog.Info("starting bot", "username", me.Username, "id", me.ID)
	b.Start(ctx)

	// Final flush so the snapshot on disk matches memory at exit
	if err := st.Flush(); err != nil {
		slog.Error("final snapshot flush failed", "error", err)
	}
	slog.Info("bot stopped gracefully")
}

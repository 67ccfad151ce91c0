package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/bitcorise/earnbot/internal/domain"
	"github.com/bitcorise/earnbot/internal/service"
)

type ctxKey string

const AccountKey ctxKey = "account"

// GetAccount extracts the sender's account from context.
func GetAccount(ctx context.Context) *domain.Account {
	acc, ok := ctx.Value(AccountKey).(*domain.Account)
	if !ok {
		return nil
	}
	return acc
}

// AccountLoader returns middleware that loads (or lazily creates) the
// sender's account and puts it into context. Referral payloads are settled
// here: a /start argument on the message that created the account credits
// the referrer exactly once.
func AccountLoader(ledger *service.LedgerService, currency string) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			var from *models.User
			if update.Message != nil {
				from = update.Message.From
			} else if update.CallbackQuery != nil {
				from = &update.CallbackQuery.From
			}

			if from == nil {
				next(ctx, b, update)
				return
			}

			acc, created, err := ledger.GetOrCreate(from.ID, from.FirstName, from.Username)
			if err != nil {
				slog.Error("load account", "error", err, "user_id", from.ID)
				next(ctx, b, update)
				return
			}

			if created {
				if refArg, ok := startPayload(update); ok {
					refID, credited, err := ledger.CreditReferrer(from.ID, refArg)
					if err != nil {
						slog.Error("credit referrer", "error", err, "user_id", from.ID)
					} else if credited {
						b.SendMessage(ctx, &bot.SendMessageParams{
							ChatID: refID,
							Text:   fmt.Sprintf("🎉 You got a new referral! Bonus credited to your balance (%s).", currency),
						})
					}
				}
			}

			ctx = context.WithValue(ctx, AccountKey, &acc)
			next(ctx, b, update)
		}
	}
}

func startPayload(update *models.Update) (string, bool) {
	if update.Message == nil {
		return "", false
	}
	parts := strings.Fields(update.Message.Text)
	if len(parts) < 2 || parts[0] != "/start" {
		return "", false
	}
	return parts[1], true
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is a user's earning ledger entry, keyed by the string form of the
// Telegram user ID. Created lazily on first contact, never deleted.
type Account struct {
	Username       string          `json:"username"`
	FirstName      string          `json:"first_name"`
	Balance        decimal.Decimal `json:"balance"`
	TotalEarned    decimal.Decimal `json:"total_earned"`
	DailyEarned    decimal.Decimal `json:"daily_earned"`
	TasksCompleted int             `json:"tasks_completed"`
	Referrals      int             `json:"referrals"`
	LastActivity   time.Time       `json:"last_activity"`
	Joined         time.Time       `json:"joined"`
}

func NewAccount(firstName, username string, now time.Time) *Account {
	return &Account{
		Username:     username,
		FirstName:    firstName,
		Balance:      decimal.Zero,
		TotalEarned:  decimal.Zero,
		DailyEarned:  decimal.Zero,
		LastActivity: now,
		Joined:       now,
	}
}

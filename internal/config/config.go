package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// Core
	BotToken  string `env:"BOT_TOKEN,required"`
	DataFile  string `env:"DATA_FILE" envDefault:"data.json"`
	TasksFile string `env:"TASKS_FILE" envDefault:"tasks.json"`

	// Admin
	AdminIDs      []int64 `env:"ADMIN_IDS" envSeparator:","`
	AdminUsername string  `env:"ADMIN_USERNAME"`

	// Earning rules
	Currency      string  `env:"CURRENCY" envDefault:"₽"`
	DailyLimit    float64 `env:"DAILY_LIMIT" envDefault:"1.0"`
	ReferralBonus float64 `env:"REFERRAL_BONUS" envDefault:"0.1"`

	// Payouts
	MinPayout          float64 `env:"MIN_PAYOUT" envDefault:"0.05"`
	MinPayoutFaucetPay float64 `env:"MIN_PAYOUT_FAUCETPAY" envDefault:"0.05"`
	MinPayoutPayeer    float64 `env:"MIN_PAYOUT_PAYEER" envDefault:"2.0"`
	ProcessingTime     string  `env:"PAYOUT_PROCESSING_TIME" envDefault:"24-48 hours"`

	// Stats server
	Port int `env:"PORT" envDefault:"5000"`

	// Bot behavior
	DropPendingUpdates bool `env:"BOT_DROP_PENDING_UPDATES" envDefault:"true"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func (c *Config) IsAdmin(telegramID int64) bool {
	for _, id := range c.AdminIDs {
		if id == telegramID {
			return true
		}
	}
	return false
}

// MethodMin returns the minimum payout amount for a payment method,
// falling back to the global minimum for unknown methods.
func (c *Config) MethodMin(method string) float64 {
	switch method {
	case MethodFaucetPay:
		return c.MinPayoutFaucetPay
	case MethodPayeer:
		return c.MinPayoutPayeer
	default:
		return c.MinPayout
	}
}

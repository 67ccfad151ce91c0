package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("ADMIN_IDS", "111,222")
	t.Setenv("DAILY_LIMIT", "2.5")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "123:abc", cfg.BotToken)
	assert.Equal(t, []int64{111, 222}, cfg.AdminIDs)
	assert.Equal(t, 2.5, cfg.DailyLimit)

	// Defaults
	assert.Equal(t, "data.json", cfg.DataFile)
	assert.Equal(t, "tasks.json", cfg.TasksFile)
	assert.Equal(t, "₽", cfg.Currency)
	assert.Equal(t, 0.1, cfg.ReferralBonus)
	assert.Equal(t, 5000, cfg.Port)
}

func TestLoad_MissingToken(t *testing.T) {
	t.Setenv("BOT_TOKEN", "placeholder")
	os.Unsetenv("BOT_TOKEN")

	_, err := Load()
	require.Error(t, err)
}

func TestIsAdmin(t *testing.T) {
	cfg := &Config{AdminIDs: []int64{111, 222}}
	assert.True(t, cfg.IsAdmin(111))
	assert.True(t, cfg.IsAdmin(222))
	assert.False(t, cfg.IsAdmin(333))

	assert.False(t, (&Config{}).IsAdmin(111))
}

func TestMethodMin(t *testing.T) {
	cfg := &Config{
		MinPayout:          0.05,
		MinPayoutFaucetPay: 0.10,
		MinPayoutPayeer:    2.0,
	}
	assert.Equal(t, 0.10, cfg.MethodMin(MethodFaucetPay))
	assert.Equal(t, 2.0, cfg.MethodMin(MethodPayeer))
	assert.Equal(t, 0.05, cfg.MethodMin("unknown"))
}

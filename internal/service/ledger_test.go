package service

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitcorise/earnbot/internal/domain"
	"github.com/bitcorise/earnbot/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "data.json"))
	require.NoError(t, err)
	return st
}

func newTestLedger(t *testing.T, dailyLimit, referralBonus string) (*LedgerService, *time.Time) {
	t.Helper()
	svc := NewLedgerService(newTestStore(t),
		decimal.RequireFromString(dailyLimit),
		decimal.RequireFromString(referralBonus))

	current := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return current }
	return svc, &current
}

func TestGetOrCreate(t *testing.T) {
	svc, _ := newTestLedger(t, "1.0", "0.1")

	acc, created, err := svc.GetOrCreate(42, "Alice", "alice")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "Alice", acc.FirstName)
	assert.Equal(t, "alice", acc.Username)
	assert.True(t, acc.Balance.IsZero())
	assert.True(t, acc.TotalEarned.IsZero())
	assert.True(t, acc.DailyEarned.IsZero())
	assert.Zero(t, acc.TasksCompleted)
	assert.Zero(t, acc.Referrals)

	acc, created, err = svc.GetOrCreate(42, "Alice", "alice")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "alice", acc.Username)
}

func TestGetOrCreate_UpdatesProfileDrift(t *testing.T) {
	svc, _ := newTestLedger(t, "1.0", "0.1")

	_, _, err := svc.GetOrCreate(42, "Alice", "alice")
	require.NoError(t, err)

	acc, created, err := svc.GetOrCreate(42, "Alicia", "alicia")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "Alicia", acc.FirstName)
	assert.Equal(t, "alicia", acc.Username)
}

func TestGet_Unknown(t *testing.T) {
	svc, _ := newTestLedger(t, "1.0", "0.1")

	_, err := svc.Get(999)
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestAddEarnings(t *testing.T) {
	svc, _ := newTestLedger(t, "1.0", "0.1")

	_, _, err := svc.GetOrCreate(42, "Alice", "alice")
	require.NoError(t, err)

	acc, err := svc.AddEarnings(42, decimal.RequireFromString("0.15"))
	require.NoError(t, err)
	assert.True(t, acc.Balance.Equal(decimal.RequireFromString("0.15")))
	assert.True(t, acc.TotalEarned.Equal(decimal.RequireFromString("0.15")))
	assert.True(t, acc.DailyEarned.Equal(decimal.RequireFromString("0.15")))
	assert.Equal(t, 1, acc.TasksCompleted)

	acc, err = svc.AddEarnings(42, decimal.RequireFromString("0.05"))
	require.NoError(t, err)
	assert.True(t, acc.Balance.Equal(decimal.RequireFromString("0.20")))
	assert.True(t, acc.TotalEarned.Equal(decimal.RequireFromString("0.20")))
	assert.Equal(t, 2, acc.TasksCompleted)
}

func TestAddEarnings_UnknownAccount(t *testing.T) {
	svc, _ := newTestLedger(t, "1.0", "0.1")

	_, err := svc.AddEarnings(999, decimal.RequireFromString("0.10"))
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestDailyLimit_OvershootThenRefusal(t *testing.T) {
	svc, _ := newTestLedger(t, "1.0", "0.1")

	_, _, err := svc.GetOrCreate(42, "Alice", "alice")
	require.NoError(t, err)

	reward := decimal.RequireFromString("0.3")
	for i := 0; i < 3; i++ {
		can, err := svc.CanEarnToday(42)
		require.NoError(t, err)
		require.True(t, can, "claim %d", i+1)
		_, err = svc.AddEarnings(42, reward)
		require.NoError(t, err)
	}

	acc, err := svc.Get(42)
	require.NoError(t, err)
	assert.True(t, acc.Balance.Equal(decimal.RequireFromString("0.9")), "balance: %s", acc.Balance)
	assert.True(t, acc.DailyEarned.Equal(decimal.RequireFromString("0.9")))

	// 0.9 is still under the cap, so a fourth claim goes through and may
	// overshoot. Only the fifth attempt is refused.
	can, err := svc.CanEarnToday(42)
	require.NoError(t, err)
	require.True(t, can)
	_, err = svc.AddEarnings(42, reward)
	require.NoError(t, err)

	acc, err = svc.Get(42)
	require.NoError(t, err)
	assert.True(t, acc.DailyEarned.Equal(decimal.RequireFromString("1.2")))

	can, err = svc.CanEarnToday(42)
	require.NoError(t, err)
	assert.False(t, can)
}

func TestDailyRollover(t *testing.T) {
	svc, current := newTestLedger(t, "1.0", "0.1")

	_, _, err := svc.GetOrCreate(42, "Alice", "alice")
	require.NoError(t, err)
	_, err = svc.AddEarnings(42, decimal.RequireFromString("1.0"))
	require.NoError(t, err)

	can, err := svc.CanEarnToday(42)
	require.NoError(t, err)
	require.False(t, can)

	// Later the same day: still capped.
	*current = current.Add(5 * time.Hour)
	can, err = svc.CanEarnToday(42)
	require.NoError(t, err)
	assert.False(t, can)

	// Next calendar day: the daily counter resets, balance survives.
	*current = current.Add(24 * time.Hour)
	can, err = svc.CanEarnToday(42)
	require.NoError(t, err)
	assert.True(t, can)

	acc, err := svc.Get(42)
	require.NoError(t, err)
	assert.True(t, acc.DailyEarned.IsZero())
	assert.True(t, acc.Balance.Equal(decimal.RequireFromString("1.0")))
	assert.True(t, acc.TotalEarned.Equal(decimal.RequireFromString("1.0")))
}

func TestCreditReferrer(t *testing.T) {
	svc, _ := newTestLedger(t, "1.0", "0.1")

	_, _, err := svc.GetOrCreate(42, "Alice", "alice")
	require.NoError(t, err)

	refID, credited, err := svc.CreditReferrer(77, "42")
	require.NoError(t, err)
	assert.True(t, credited)
	assert.Equal(t, int64(42), refID)

	acc, err := svc.Get(42)
	require.NoError(t, err)
	assert.Equal(t, 1, acc.Referrals)
	assert.True(t, acc.Balance.Equal(decimal.RequireFromString("0.1")))
	assert.True(t, acc.TotalEarned.Equal(decimal.RequireFromString("0.1")))
}

func TestCreditReferrer_Ignored(t *testing.T) {
	svc, _ := newTestLedger(t, "1.0", "0.1")

	_, _, err := svc.GetOrCreate(42, "Alice", "alice")
	require.NoError(t, err)

	cases := []struct {
		name   string
		newID  int64
		refArg string
	}{
		{"self referral", 42, "42"},
		{"unknown referrer", 77, "999"},
		{"garbage payload", 77, "not-a-number"},
		{"empty payload", 77, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, credited, err := svc.CreditReferrer(tc.newID, tc.refArg)
			require.NoError(t, err)
			assert.False(t, credited)
		})
	}

	acc, err := svc.Get(42)
	require.NoError(t, err)
	assert.Zero(t, acc.Referrals)
	assert.True(t, acc.Balance.IsZero())
}

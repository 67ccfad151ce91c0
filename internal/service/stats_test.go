package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummary(t *testing.T) {
	st := newTestStore(t)

	current := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	ledger := NewLedgerService(st, decimal.RequireFromString("10.0"), decimal.RequireFromString("0.1"))
	ledger.now = func() time.Time { return current }
	payouts := NewPayoutService(st)
	payouts.now = func() time.Time { return current }
	timers := NewTimerService()

	stats := NewStatsService(st, timers)
	stats.now = func() time.Time { return current }

	fundAccount(t, ledger, 1, "0.50")
	fundAccount(t, ledger, 2, "1.00")
	fundAccount(t, ledger, 3, "2.00")

	// User 3's full balance goes out and is approved.
	id, err := payouts.Create(3, "carol", decimal.RequireFromString("2.00"), "payeer", "P12345")
	require.NoError(t, err)
	_, err = payouts.Approve(id, "")
	require.NoError(t, err)

	// User 2's request stays pending; user 1's is rejected and refunded.
	_, err = payouts.Create(2, "bob", decimal.RequireFromString("1.00"), "faucetpay", "bob@example.com")
	require.NoError(t, err)
	id, err = payouts.Create(1, "alice", decimal.RequireFromString("0.50"), "faucetpay", "alice@example.com")
	require.NoError(t, err)
	_, err = payouts.Reject(id, "bad address")
	require.NoError(t, err)

	timers.Start(1, "watch")
	timers.Start(2, "visit")

	sum := stats.Summary()
	assert.Equal(t, 3, sum.TotalUsers)
	assert.Equal(t, 3, sum.ActiveToday)
	assert.True(t, sum.TotalBalance.Equal(decimal.RequireFromString("0.50")), "balance: %s", sum.TotalBalance)
	assert.True(t, sum.TotalEarned.Equal(decimal.RequireFromString("3.50")))
	assert.True(t, sum.TotalPaidOut.Equal(decimal.RequireFromString("2.00")))
	assert.Equal(t, 2, sum.ActiveTasks)
	assert.Equal(t, 1, sum.PendingPayouts)
	assert.Equal(t, 1, sum.ApprovedPayouts)
	assert.Equal(t, 1, sum.RejectedPayouts)
}

func TestSummary_ActiveTodayWindow(t *testing.T) {
	st := newTestStore(t)

	current := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	ledger := NewLedgerService(st, decimal.RequireFromString("10.0"), decimal.RequireFromString("0.1"))
	ledger.now = func() time.Time { return current }

	stats := NewStatsService(st, NewTimerService())
	stats.now = func() time.Time { return current }

	_, _, err := ledger.GetOrCreate(1, "Alice", "alice")
	require.NoError(t, err)

	sum := stats.Summary()
	assert.Equal(t, 1, sum.ActiveToday)

	// Next day, with no new activity, the account drops out of the window.
	current = current.Add(24 * time.Hour)
	sum = stats.Summary()
	assert.Equal(t, 1, sum.TotalUsers)
	assert.Equal(t, 0, sum.ActiveToday)
}

func TestSummary_Empty(t *testing.T) {
	st := newTestStore(t)
	stats := NewStatsService(st, NewTimerService())

	sum := stats.Summary()
	assert.Zero(t, sum.TotalUsers)
	assert.Zero(t, sum.ActiveToday)
	assert.True(t, sum.TotalBalance.IsZero())
	assert.True(t, sum.TotalPaidOut.IsZero())
	assert.Zero(t, sum.ActiveTasks)
}

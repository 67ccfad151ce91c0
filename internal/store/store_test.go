package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitcorise/earnbot/internal/domain"
)

func TestOpen_MissingFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")

	s, err := Open(path)
	require.NoError(t, err)

	s.View(func(sn *Snapshot) {
		assert.Empty(t, sn.Accounts)
		assert.Empty(t, sn.Payouts)
	})

	// No file until the first mutation
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestOpen_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := Open(path)
	require.Error(t, err)
}

func TestUpdate_PersistsMutation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")

	s, err := Open(path)
	require.NoError(t, err)

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	err = s.Update(func(sn *Snapshot) error {
		sn.Accounts["42"] = domain.NewAccount("Alice", "alice", now)
		return nil
	})
	require.NoError(t, err)

	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestUpdate_ErrorSkipsWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")

	s, err := Open(path)
	require.NoError(t, err)

	sentinel := errors.New("refused")
	err = s.Update(func(sn *Snapshot) error {
		sn.Accounts["42"] = domain.NewAccount("Alice", "alice", time.Now())
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")

	s, err := Open(path)
	require.NoError(t, err)

	joined := time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC)
	active := time.Date(2024, 5, 2, 17, 45, 10, 0, time.UTC)
	processed := time.Date(2024, 5, 3, 9, 0, 0, 0, time.UTC)

	err = s.Update(func(sn *Snapshot) error {
		sn.Accounts["42"] = &domain.Account{
			Username:       "alice",
			FirstName:      "Alice",
			Balance:        decimal.RequireFromString("0.35"),
			TotalEarned:    decimal.RequireFromString("1.25"),
			DailyEarned:    decimal.RequireFromString("0.05"),
			TasksCompleted: 7,
			Referrals:      2,
			LastActivity:   active,
			Joined:         joined,
		}
		sn.Payouts["REQ_1714640400_deadbeef"] = &domain.PayoutRequest{
			ID:             "REQ_1714640400_deadbeef",
			UserID:         42,
			Username:       "alice",
			Amount:         decimal.RequireFromString("0.90"),
			PaymentMethod:  "payeer",
			PaymentAddress: "P1234567890",
			Status:         domain.PayoutStatusApproved,
			CreatedAt:      active,
			ProcessedAt:    &processed,
			AdminNote:      "Approved by admin on 2024-05-03 09:00",
		}
		return nil
	})
	require.NoError(t, err)

	reopened, err := Open(path)
	require.NoError(t, err)

	reopened.View(func(sn *Snapshot) {
		require.Len(t, sn.Accounts, 1)
		acc := sn.Accounts["42"]
		require.NotNil(t, acc)
		assert.Equal(t, "alice", acc.Username)
		assert.Equal(t, "Alice", acc.FirstName)
		assert.True(t, acc.Balance.Equal(decimal.RequireFromString("0.35")), "balance: %s", acc.Balance)
		assert.True(t, acc.TotalEarned.Equal(decimal.RequireFromString("1.25")))
		assert.True(t, acc.DailyEarned.Equal(decimal.RequireFromString("0.05")))
		assert.Equal(t, 7, acc.TasksCompleted)
		assert.Equal(t, 2, acc.Referrals)
		assert.True(t, acc.LastActivity.Equal(active))
		assert.True(t, acc.Joined.Equal(joined))

		require.Len(t, sn.Payouts, 1)
		req := sn.Payouts["REQ_1714640400_deadbeef"]
		require.NotNil(t, req)
		assert.Equal(t, "REQ_1714640400_deadbeef", req.ID)
		assert.Equal(t, int64(42), req.UserID)
		assert.True(t, req.Amount.Equal(decimal.RequireFromString("0.90")))
		assert.Equal(t, "payeer", req.PaymentMethod)
		assert.Equal(t, "P1234567890", req.PaymentAddress)
		assert.Equal(t, domain.PayoutStatusApproved, req.Status)
		assert.True(t, req.CreatedAt.Equal(active))
		require.NotNil(t, req.ProcessedAt)
		assert.True(t, req.ProcessedAt.Equal(processed))
		assert.Equal(t, "Approved by admin on 2024-05-03 09:00", req.AdminNote)
	})
}

func TestRoundTrip_PendingWithoutProcessedAt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")

	s, err := Open(path)
	require.NoError(t, err)

	err = s.Update(func(sn *Snapshot) error {
		sn.Payouts["REQ_1_abcd1234"] = &domain.PayoutRequest{
			ID:        "REQ_1_abcd1234",
			UserID:    7,
			Amount:    decimal.RequireFromString("2.00"),
			Status:    domain.PayoutStatusPending,
			CreatedAt: time.Now().UTC(),
		}
		return nil
	})
	require.NoError(t, err)

	reopened, err := Open(path)
	require.NoError(t, err)

	reopened.View(func(sn *Snapshot) {
		req := sn.Payouts["REQ_1_abcd1234"]
		require.NotNil(t, req)
		assert.Equal(t, domain.PayoutStatusPending, req.Status)
		assert.Nil(t, req.ProcessedAt)
	})
}

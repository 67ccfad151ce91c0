package service

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bitcorise/earnbot/internal/domain"
	"github.com/bitcorise/earnbot/internal/store"
)

// LedgerService maintains per-user balances and earning counters and
// enforces the daily earning cap. The cap is checked by callers via
// CanEarnToday before granting; AddEarnings itself never clamps.
type LedgerService struct {
	store         *store.Store
	dailyLimit    decimal.Decimal
	referralBonus decimal.Decimal
	now           func() time.Time
}

func NewLedgerService(st *store.Store, dailyLimit, referralBonus decimal.Decimal) *LedgerService {
	return &LedgerService{
		store:         st,
		dailyLimit:    dailyLimit,
		referralBonus: referralBonus,
		now:           time.Now,
	}
}

func accountKey(userID int64) string {
	return strconv.FormatInt(userID, 10)
}

// rollover zeroes the daily counter the first time an account is touched on
// a calendar day later than its stored last activity. Pure with respect to
// the clock passed in; mutation happens only here, never inside a predicate
// scattered across callers.
func rollover(acc *domain.Account, now time.Time) {
	last := acc.LastActivity
	ly, lm, ld := last.Date()
	ny, nm, nd := now.Date()
	if time.Date(ly, lm, ld, 0, 0, 0, 0, time.UTC).Before(time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC)) {
		acc.DailyEarned = decimal.Zero
	}
}

// GetOrCreate returns the account for userID, creating it with zeroed
// counters on first contact. The second return reports whether the account
// was just created.
func (s *LedgerService) GetOrCreate(userID int64, firstName, username string) (domain.Account, bool, error) {
	var (
		out     domain.Account
		created bool
	)
	err := s.store.Update(func(sn *store.Snapshot) error {
		key := accountKey(userID)
		acc, ok := sn.Accounts[key]
		if !ok {
			acc = domain.NewAccount(firstName, username, s.now())
			sn.Accounts[key] = acc
			created = true
		} else if (username != "" && acc.Username != username) || (firstName != "" && acc.FirstName != firstName) {
			acc.Username = username
			acc.FirstName = firstName
		}
		out = *acc
		return nil
	})
	if err != nil {
		return domain.Account{}, false, fmt.Errorf("get or create account: %w", err)
	}
	if created {
		slog.Info("account created", "user_id", userID, "username", username)
	}
	return out, created, nil
}

// Get returns the account for userID without creating it.
func (s *LedgerService) Get(userID int64) (domain.Account, error) {
	var (
		out domain.Account
		ok  bool
	)
	s.store.View(func(sn *store.Snapshot) {
		var acc *domain.Account
		acc, ok = sn.Accounts[accountKey(userID)]
		if ok {
			out = *acc
		}
	})
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound
	}
	return out, nil
}

// CanEarnToday applies the lazy day rollover and reports whether the user
// is still under the daily limit. The rollover is a persisted mutation.
func (s *LedgerService) CanEarnToday(userID int64) (bool, error) {
	var can bool
	err := s.store.Update(func(sn *store.Snapshot) error {
		acc, ok := sn.Accounts[accountKey(userID)]
		if !ok {
			return domain.ErrAccountNotFound
		}
		rollover(acc, s.now())
		can = acc.DailyEarned.LessThan(s.dailyLimit)
		return nil
	})
	if err != nil {
		return false, err
	}
	return can, nil
}

// AddEarnings credits amount to balance, total and daily counters and bumps
// the completed-task count. The caller must have checked CanEarnToday; an
// amount pushing daily_earned past the limit is accepted as-is.
func (s *LedgerService) AddEarnings(userID int64, amount decimal.Decimal) (domain.Account, error) {
	var out domain.Account
	err := s.store.Update(func(sn *store.Snapshot) error {
		acc, ok := sn.Accounts[accountKey(userID)]
		if !ok {
			return domain.ErrAccountNotFound
		}
		rollover(acc, s.now())
		acc.Balance = acc.Balance.Add(amount)
		acc.TotalEarned = acc.TotalEarned.Add(amount)
		acc.DailyEarned = acc.DailyEarned.Add(amount)
		acc.TasksCompleted++
		acc.LastActivity = s.now()
		out = *acc
		return nil
	})
	if err != nil {
		return domain.Account{}, fmt.Errorf("add earnings: %w", err)
	}
	return out, nil
}

// CreditReferrer credits the referral bonus for a just-registered user.
// refArg is the raw /start payload. The referrer must be an existing,
// different account; anything else is ignored. Returns the referrer ID and
// whether a bonus was credited.
func (s *LedgerService) CreditReferrer(newUserID int64, refArg string) (int64, bool, error) {
	refID, err := strconv.ParseInt(refArg, 10, 64)
	if err != nil || refID == newUserID {
		return 0, false, nil
	}

	var credited bool
	err = s.store.Update(func(sn *store.Snapshot) error {
		acc, ok := sn.Accounts[accountKey(refID)]
		if !ok {
			return nil
		}
		rollover(acc, s.now())
		acc.Referrals++
		acc.Balance = acc.Balance.Add(s.referralBonus)
		acc.TotalEarned = acc.TotalEarned.Add(s.referralBonus)
		acc.DailyEarned = acc.DailyEarned.Add(s.referralBonus)
		acc.TasksCompleted++
		acc.LastActivity = s.now()
		credited = true
		return nil
	})
	if err != nil {
		return 0, false, fmt.Errorf("credit referrer: %w", err)
	}
	if credited {
		slog.Info("referral bonus credited", "referrer_id", refID, "referred_id", newUserID)
	}
	return refID, credited, nil
}

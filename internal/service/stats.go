package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bitcorise/earnbot/internal/domain"
	"github.com/bitcorise/earnbot/internal/store"
)

// Summary is the read-only aggregate view served to the web endpoint and
// the admin /stats command.
type Summary struct {
	TotalUsers      int             `json:"total_users"`
	ActiveToday     int             `json:"active_today"`
	TotalBalance    decimal.Decimal `json:"total_balance"`
	TotalEarned     decimal.Decimal `json:"total_earned"`
	TotalPaidOut    decimal.Decimal `json:"total_paid_out"`
	ActiveTasks     int             `json:"active_tasks"`
	PendingPayouts  int             `json:"pending_payouts"`
	ApprovedPayouts int             `json:"approved_payouts"`
	RejectedPayouts int             `json:"rejected_payouts"`
}

// StatsService aggregates over the store and the timer registry. It never
// mutates either.
type StatsService struct {
	store  *store.Store
	timers *TimerService
	now    func() time.Time
}

func NewStatsService(st *store.Store, timers *TimerService) *StatsService {
	return &StatsService{store: st, timers: timers, now: time.Now}
}

func (s *StatsService) Summary() Summary {
	sum := Summary{
		TotalBalance: decimal.Zero,
		TotalEarned:  decimal.Zero,
		TotalPaidOut: decimal.Zero,
	}

	today := s.now()
	ty, tm, td := today.Date()

	s.store.View(func(sn *store.Snapshot) {
		sum.TotalUsers = len(sn.Accounts)
		for _, acc := range sn.Accounts {
			sum.TotalBalance = sum.TotalBalance.Add(acc.Balance)
			sum.TotalEarned = sum.TotalEarned.Add(acc.TotalEarned)
			ay, am, ad := acc.LastActivity.Date()
			if ay == ty && am == tm && ad == td {
				sum.ActiveToday++
			}
		}
		for _, req := range sn.Payouts {
			switch req.Status {
			case domain.PayoutStatusPending:
				sum.PendingPayouts++
			case domain.PayoutStatusApproved:
				sum.ApprovedPayouts++
				sum.TotalPaidOut = sum.TotalPaidOut.Add(req.Amount)
			case domain.PayoutStatusRejected:
				sum.RejectedPayouts++
			}
		}
	})

	sum.ActiveTasks = s.timers.Count()
	return sum
}

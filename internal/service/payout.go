package service

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bitcorise/earnbot/internal/domain"
	"github.com/bitcorise/earnbot/internal/store"
)

// PayoutService records payout requests and their pending -> approved or
// rejected lifecycle. Requests are reviewed by an admin; rejection returns
// the held amount to the user's balance.
type PayoutService struct {
	store *store.Store
	now   func() time.Time
}

func NewPayoutService(st *store.Store) *PayoutService {
	return &PayoutService{store: st, now: time.Now}
}

func (s *PayoutService) newRequestID() string {
	return fmt.Sprintf("REQ_%d_%s", s.now().Unix(), uuid.NewString()[:8])
}

// Create stores a pending request and zeroes the user's balance in the same
// persisted mutation. Refused with ErrPendingPayout when the user already
// has a pending request; the balance is untouched in that case.
func (s *PayoutService) Create(userID int64, username string, amount decimal.Decimal, method, address string) (string, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return "", domain.ErrInvalidAmount
	}

	var id string
	err := s.store.Update(func(sn *store.Snapshot) error {
		for _, req := range sn.Payouts {
			if req.UserID == userID && req.Status == domain.PayoutStatusPending {
				return domain.ErrPendingPayout
			}
		}

		acc, ok := sn.Accounts[accountKey(userID)]
		if !ok {
			return domain.ErrAccountNotFound
		}

		id = s.newRequestID()
		sn.Payouts[id] = &domain.PayoutRequest{
			ID:             id,
			UserID:         userID,
			Username:       username,
			Amount:         amount,
			PaymentMethod:  method,
			PaymentAddress: address,
			Status:         domain.PayoutStatusPending,
			CreatedAt:      s.now(),
		}
		acc.Balance = decimal.Zero
		return nil
	})
	if err != nil {
		return "", err
	}

	slog.Info("payout request created",
		"request_id", id,
		"user_id", userID,
		"amount", amount.String(),
		"method", method,
	)
	return id, nil
}

// Get returns a request by ID.
func (s *PayoutService) Get(id string) (domain.PayoutRequest, error) {
	var (
		out domain.PayoutRequest
		ok  bool
	)
	s.store.View(func(sn *store.Snapshot) {
		var req *domain.PayoutRequest
		req, ok = sn.Payouts[id]
		if ok {
			out = *req
		}
	})
	if !ok {
		return domain.PayoutRequest{}, domain.ErrRequestNotFound
	}
	return out, nil
}

// PendingFor returns the user's pending requests.
func (s *PayoutService) PendingFor(userID int64) []domain.PayoutRequest {
	var out []domain.PayoutRequest
	s.store.View(func(sn *store.Snapshot) {
		for _, req := range sn.Payouts {
			if req.UserID == userID && req.Status == domain.PayoutStatusPending {
				out = append(out, *req)
			}
		}
	})
	return out
}

// Pending returns every pending request, oldest first, for admin review.
func (s *PayoutService) Pending() []domain.PayoutRequest {
	var out []domain.PayoutRequest
	s.store.View(func(sn *store.Snapshot) {
		for _, req := range sn.Payouts {
			if req.Status == domain.PayoutStatusPending {
				out = append(out, *req)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// HistoryFor returns all of the user's requests, most recent first.
func (s *PayoutService) HistoryFor(userID int64) []domain.PayoutRequest {
	var out []domain.PayoutRequest
	s.store.View(func(sn *store.Snapshot) {
		for _, req := range sn.Payouts {
			if req.UserID == userID {
				out = append(out, *req)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// Approve marks a pending request approved. The payment itself is made
// manually by the admin.
func (s *PayoutService) Approve(id, note string) (domain.PayoutRequest, error) {
	return s.process(id, domain.PayoutStatusApproved, note)
}

// Reject marks a pending request rejected and restores the held amount to
// the user's balance.
func (s *PayoutService) Reject(id, reason string) (domain.PayoutRequest, error) {
	return s.process(id, domain.PayoutStatusRejected, reason)
}

func (s *PayoutService) process(id string, status domain.PayoutStatus, note string) (domain.PayoutRequest, error) {
	var out domain.PayoutRequest
	err := s.store.Update(func(sn *store.Snapshot) error {
		req, ok := sn.Payouts[id]
		if !ok {
			return domain.ErrRequestNotFound
		}
		if req.Status != domain.PayoutStatusPending {
			return domain.ErrRequestNotPending
		}

		processed := s.now()
		req.Status = status
		req.ProcessedAt = &processed
		req.AdminNote = note

		if status == domain.PayoutStatusRejected {
			if acc, ok := sn.Accounts[accountKey(req.UserID)]; ok {
				acc.Balance = acc.Balance.Add(req.Amount)
			}
		}

		out = *req
		return nil
	})
	if err != nil {
		return domain.PayoutRequest{}, err
	}

	slog.Info("payout request processed", "request_id", id, "status", string(status))
	return out, nil
}

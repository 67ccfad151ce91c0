package service

import (
	"sync"

	"github.com/shopspring/decimal"
)

// PayoutSession is the ephemeral per-user state between choosing a payout
// method and sending an address. It lives only in memory; a restart drops
// it and the user restarts the flow.
type PayoutSession struct {
	Method string
	Amount decimal.Decimal
}

// SessionService holds pending payout sessions. A session is consumed
// exactly once: any text message while a session exists takes and removes
// it, so a later unrelated message is never misread as an address.
type SessionService struct {
	mu      sync.Mutex
	pending map[int64]PayoutSession
}

func NewSessionService() *SessionService {
	return &SessionService{pending: make(map[int64]PayoutSession)}
}

// BeginPayout records the chosen method and the amount captured at that
// moment, replacing any earlier unconsumed session.
func (s *SessionService) BeginPayout(userID int64, method string, amount decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[userID] = PayoutSession{Method: method, Amount: amount}
}

// TakePayout removes and returns the user's session, if any.
func (s *SessionService) TakePayout(userID int64) (PayoutSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.pending[userID]
	if ok {
		delete(s.pending, userID)
	}
	return sess, ok
}

// Cancel drops the user's session, if any.
func (s *SessionService) Cancel(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, userID)
}

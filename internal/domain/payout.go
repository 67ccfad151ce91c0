package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PayoutStatus string

const (
	PayoutStatusPending  PayoutStatus = "pending"
	PayoutStatusApproved PayoutStatus = "approved"
	PayoutStatusRejected PayoutStatus = "rejected"
)

// PayoutRequest is a user-initiated, admin-reviewed request to convert
// balance into an external payment. A user holds at most one pending
// request at a time.
type PayoutRequest struct {
	ID             string          `json:"-"`
	UserID         int64           `json:"user_id"`
	Username       string          `json:"username"`
	Amount         decimal.Decimal `json:"amount"`
	PaymentMethod  string          `json:"payment_method"`
	PaymentAddress string          `json:"payment_address"`
	Status         PayoutStatus    `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
	ProcessedAt    *time.Time      `json:"processed_at"`
	AdminNote      string          `json:"admin_note"`
}

package domain

import "errors"

var (
	ErrAccountNotFound     = errors.New("account not found")
	ErrTaskNotFound        = errors.New("task not found")
	ErrDailyLimitReached   = errors.New("daily earning limit reached")
	ErrTaskNotElapsed      = errors.New("task wait time not elapsed")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrPendingPayout       = errors.New("pending payout request exists")
	ErrRequestNotFound     = errors.New("payout request not found")
	ErrRequestNotPending   = errors.New("payout request already processed")
	ErrInvalidAmount       = errors.New("invalid amount")
)

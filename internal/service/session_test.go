package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSession_TakeConsumes(t *testing.T) {
	svc := NewSessionService()

	_, ok := svc.TakePayout(42)
	assert.False(t, ok)

	svc.BeginPayout(42, "faucetpay", decimal.RequireFromString("0.90"))

	sess, ok := svc.TakePayout(42)
	assert.True(t, ok)
	assert.Equal(t, "faucetpay", sess.Method)
	assert.True(t, sess.Amount.Equal(decimal.RequireFromString("0.90")))

	// Consumed: a second take finds nothing.
	_, ok = svc.TakePayout(42)
	assert.False(t, ok)
}

func TestSession_BeginOverwrites(t *testing.T) {
	svc := NewSessionService()

	svc.BeginPayout(42, "faucetpay", decimal.RequireFromString("0.90"))
	svc.BeginPayout(42, "payeer", decimal.RequireFromString("2.50"))

	sess, ok := svc.TakePayout(42)
	assert.True(t, ok)
	assert.Equal(t, "payeer", sess.Method)
	assert.True(t, sess.Amount.Equal(decimal.RequireFromString("2.50")))
}

func TestSession_Cancel(t *testing.T) {
	svc := NewSessionService()

	svc.BeginPayout(42, "faucetpay", decimal.RequireFromString("0.90"))
	svc.Cancel(42)

	_, ok := svc.TakePayout(42)
	assert.False(t, ok)
}

func TestSession_PerUser(t *testing.T) {
	svc := NewSessionService()

	svc.BeginPayout(1, "faucetpay", decimal.RequireFromString("0.10"))
	svc.BeginPayout(2, "payeer", decimal.RequireFromString("2.00"))

	sess, ok := svc.TakePayout(1)
	assert.True(t, ok)
	assert.Equal(t, "faucetpay", sess.Method)

	sess, ok = svc.TakePayout(2)
	assert.True(t, ok)
	assert.Equal(t, "payeer", sess.Method)
}

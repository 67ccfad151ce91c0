package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Task describes a single micro-task from the catalog. Reward and wait are
// static for the process lifetime.
type Task struct {
	Key         string          `json:"-"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Reward      decimal.Decimal `json:"reward"`
	WaitSeconds int             `json:"wait"`
	Links       []string        `json:"links,omitempty"`
}

func (t Task) Wait() time.Duration {
	return time.Duration(t.WaitSeconds) * time.Second
}

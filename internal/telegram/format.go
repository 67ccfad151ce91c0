package telegram

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// FormatDuration renders a wait or remaining time compactly: "45s",
// "3m 0s", "1h 5m".
func FormatDuration(d time.Duration) string {
	secs := int(d / time.Second)
	switch {
	case secs < 60:
		return fmt.Sprintf("%ds", secs)
	case secs < 3600:
		return fmt.Sprintf("%dm %ds", secs/60, secs%60)
	default:
		return fmt.Sprintf("%dh %dm", secs/3600, (secs%3600)/60)
	}
}

// FormatAmount renders a money amount with its currency symbol, e.g.
// "0.05₽".
func FormatAmount(amount decimal.Decimal, currency string) string {
	return fmt.Sprintf("%.2f%s", amount.InexactFloat64(), currency)
}

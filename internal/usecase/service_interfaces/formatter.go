package service_interfaces

import (
	"time"

	"github.com/shopspring/decimal"
)

// Formatter is the display-string service. It is consumed by the core,
// never implemented by it; the adapter decides what the strings look
// like.
type Formatter interface {
	Currency(amount decimal.Decimal, locale string, currencyCode string) string
	MovementDate(at time.Time, locale string, now time.Time) string
	Clock(remainingSeconds int) string
}

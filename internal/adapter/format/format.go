package format

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Service produces the display strings the UI shows: locale-aware
// currency values, relative movement dates and the countdown clock.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

// Currency renders an amount for the account's locale and currency,
// e.g. "€ 1,300.00" for pt-PT/EUR. Unknown locales fall back to
// English, unknown currency codes to a plain fixed-point number.
func (s *Service) Currency(amount decimal.Decimal, locale string, currencyCode string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}

	printer := message.NewPrinter(tag)

	unit, err := currency.ParseISO(currencyCode)
	if err != nil {
		return printer.Sprintf("%.2f", amount.InexactFloat64())
	}

	return printer.Sprintf("%v", currency.Symbol(unit.Amount(amount.InexactFloat64())))
}

// MovementDate buckets a movement's age: Today, Yesterday, "N days ago"
// up to a week, then a short date.
func (s *Service) MovementDate(at time.Time, locale string, now time.Time) string {
	days := int(math.Round(math.Abs(now.Sub(at).Hours() / 24)))

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days <= 7:
		return fmt.Sprintf("%d days ago", days)
	default:
		return at.Format("01/02/2006")
	}
}

// Clock renders remaining seconds as mm:ss.
func (s *Service) Clock(remainingSeconds int) string {
	if remainingSeconds < 0 {
		remainingSeconds = 0
	}
	return fmt.Sprintf("%02d:%02d", remainingSeconds/60, remainingSeconds%60)
}

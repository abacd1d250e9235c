package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Movement pairs a signed amount with the timestamp it was recorded at.
// Positive amounts are deposits, negative amounts withdrawals.
type Movement struct {
	Amount decimal.Decimal
	Date   time.Time
}

// MovementPairs zips the account's parallel slices into display rows in
// chronological append order.
func (a *Account) MovementPairs() []Movement {
	pairs := make([]Movement, len(a.Movements))
	for i, amount := range a.Movements {
		pairs[i] = Movement{Amount: amount, Date: a.MovementDates[i]}
	}
	return pairs
}

// SortMovementsByAmount returns a new slice ordered ascending by amount.
// Each row keeps its own date; the stored history is never touched.
func SortMovementsByAmount(pairs []Movement) []Movement {
	sorted := make([]Movement, len(pairs))
	copy(sorted, pairs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Amount.LessThan(sorted[j].Amount)
	})
	return sorted
}

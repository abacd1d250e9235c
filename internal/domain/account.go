package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Account struct {
	ID            string
	Owner         string
	Username      string
	PinHash       string
	InterestRate  decimal.Decimal
	Currency      string
	Locale        string
	Movements     []decimal.Decimal
	MovementDates []time.Time
	CreatedAt     time.Time
}

// AppendMovement is the only mutation path for the movement history.
// Movements and MovementDates stay index-aligned because both slices
// grow together here and nowhere else.
func (a *Account) AppendMovement(amount decimal.Decimal, at time.Time) {
	a.Movements = append(a.Movements, amount)
	a.MovementDates = append(a.MovementDates, at)
}

// Balance is derived, never stored: the sum of every movement.
func (a *Account) Balance() decimal.Decimal {
	total := decimal.Zero
	for _, m := range a.Movements {
		total = total.Add(m)
	}
	return total
}

// FirstName returns the leading word of the owner's display name.
func (a *Account) FirstName() string {
	parts := strings.Fields(a.Owner)
	if len(parts) == 0 {
		return a.Owner
	}
	return parts[0]
}

// Clone returns a deep copy so callers can hand out snapshots without
// exposing the stored slices.
func (a *Account) Clone() Account {
	cp := *a
	cp.Movements = make([]decimal.Decimal, len(a.Movements))
	copy(cp.Movements, a.Movements)
	cp.MovementDates = make([]time.Time, len(a.MovementDates))
	copy(cp.MovementDates, a.MovementDates)
	return cp
}

// DeriveUsername builds the login identifier from an owner's display
// name: the lowercased first letter of every word, joined.
// "Jonas Schmedtmann" -> "js".
func DeriveUsername(owner string) string {
	var b strings.Builder
	for _, word := range strings.Fields(strings.ToLower(owner)) {
		runes := []rune(word)
		b.WriteRune(runes[0])
	}
	return b.String()
}

package domain

import "github.com/shopspring/decimal"

type Summary struct {
	Balance   decimal.Decimal
	Income    decimal.Decimal
	Outgoings decimal.Decimal
	Interest  decimal.Decimal
}

var (
	hundred       = decimal.NewFromInt(100)
	interestFloor = decimal.NewFromInt(1)
)

// ComputeSummary derives balance, income, outgoings and qualifying
// interest from a movement history. Outgoings keep their negative sign;
// the display layer takes the absolute value. Interest accrues per
// deposit and a deposit's contribution is dropped entirely, not rounded,
// when it comes out below one unit.
func ComputeSummary(movements []decimal.Decimal, interestRate decimal.Decimal) Summary {
	summary := Summary{
		Balance:   decimal.Zero,
		Income:    decimal.Zero,
		Outgoings: decimal.Zero,
		Interest:  decimal.Zero,
	}

	for _, m := range movements {
		summary.Balance = summary.Balance.Add(m)

		switch {
		case m.IsPositive():
			summary.Income = summary.Income.Add(m)
			interest := m.Mul(interestRate).Div(hundred)
			if interest.GreaterThanOrEqual(interestFloor) {
				summary.Interest = summary.Interest.Add(interest)
			}
		case m.IsNegative():
			summary.Outgoings = summary.Outgoings.Add(m)
		}
	}

	return summary
}

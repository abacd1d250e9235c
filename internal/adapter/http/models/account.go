package models

import (
	"errors"
	"strings"
)

type CloseAccountRequest struct {
	Username string `json:"username"`
	Pin      string `json:"pin"`
}

func (r CloseAccountRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.Username) == "" {
		errs = append(errs, "username is required")
	}
	if strings.TrimSpace(r.Pin) == "" {
		errs = append(errs, "pin is required")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type MovementRow struct {
	Type          string `json:"type"`
	Amount        string `json:"amount"`
	AmountDisplay string `json:"amountDisplay"`
	Date          string `json:"date"`
	DateDisplay   string `json:"dateDisplay"`
}

type SummaryView struct {
	Balance          string `json:"balance"`
	BalanceDisplay   string `json:"balanceDisplay"`
	Income           string `json:"income"`
	IncomeDisplay    string `json:"incomeDisplay"`
	Outgoings        string `json:"outgoings"`
	OutgoingsDisplay string `json:"outgoingsDisplay"`
	Interest         string `json:"interest"`
	InterestDisplay  string `json:"interestDisplay"`
}

type AccountOverviewResponse struct {
	Owner     string        `json:"owner"`
	Username  string        `json:"username"`
	Currency  string        `json:"currency"`
	Locale    string        `json:"locale"`
	Sorted    bool          `json:"sorted"`
	Movements []MovementRow `json:"movements"`
	Summary   SummaryView   `json:"summary"`
}

type SortToggleResponse struct {
	Sorted    bool          `json:"sorted"`
	Movements []MovementRow `json:"movements"`
}

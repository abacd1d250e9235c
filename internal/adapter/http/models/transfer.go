package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

type TransferRequest struct {
	To     string `json:"to"`
	Amount string `json:"amount"`
}

func (r TransferRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.To) == "" {
		errs = append(errs, "to is required")
	}

	amount := strings.TrimSpace(r.Amount)
	if amount == "" {
		errs = append(errs, "amount is required")
	} else if _, err := decimal.NewFromString(amount); err != nil {
		errs = append(errs, "amount must be numeric")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type TransferResponse struct {
	From       string `json:"from"`
	To         string `json:"to"`
	Amount     string `json:"amount"`
	PostedAt   string `json:"postedAt"`
	NewBalance string `json:"newBalance"`
}

package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

type LoanRequest struct {
	Amount string `json:"amount"`
}

func (r LoanRequest) Validate() error {
	var errs []string

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

type LoanResponse struct {
	Amount       string `json:"amount"`
	Status       string `json:"status"`
	PostsAfterMs int64  `json:"postsAfterMs"`
}

package models

import (
	"errors"
	"strings"
)

type LoginRequest struct {
	Username string `json:"username"`
	Pin      string `json:"pin"`
}

func (r LoginRequest) Validate() error {
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

type LoginResponse struct {
	Token            string `json:"token"`
	Welcome          string `json:"welcome"`
	Username         string `json:"username"`
	Owner            string `json:"owner"`
	Currency         string `json:"currency"`
	Locale           string `json:"locale"`
	RemainingSeconds int    `json:"remainingSeconds"`
	Clock            string `json:"clock"`
}

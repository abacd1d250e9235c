package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/api-sage/bankist-demo-bank/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// statusForError maps the engine's sentinel errors onto HTTP statuses.
// Validation failures are the caller's fault, business rejections are
// unprocessable, and anything unexpected stays a 500.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrNoActiveSession):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInsufficientBalance),
		errors.Is(err, domain.ErrUnknownRecipient),
		errors.Is(err, domain.ErrSelfTransfer),
		errors.Is(err, domain.ErrLoanNotEligible),
		errors.Is(err, domain.ErrConfirmationMismatch):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrRecordNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func isValidationError(message string) bool {
	return message == "validation failed"
}

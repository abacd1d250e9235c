package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/api-sage/bankist-demo-bank/internal/adapter/http/middleware"
	"github.com/api-sage/bankist-demo-bank/internal/adapter/http/models"
	"github.com/api-sage/bankist-demo-bank/internal/commons"
	"github.com/gorilla/mux"
)

type LoanService interface {
	RequestLoan(ctx context.Context, sessionID string, req models.LoanRequest) (commons.Response[models.LoanResponse], error)
}

type LoanController struct {
	service LoanService
}

func NewLoanController(service LoanService) *LoanController {
	return &LoanController{service: service}
}

func (c *LoanController) RegisterRoutes(r *mux.Router, authMiddleware func(http.Handler) http.Handler) {
	handler := http.Handler(http.HandlerFunc(c.requestLoan))
	if authMiddleware != nil {
		handler = authMiddleware(handler)
	}
	r.Handle("/accounts/current/loans", handler).Methods(http.MethodPost)
}

func (c *LoanController) requestLoan(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, commons.ErrorResponse[models.LoanResponse]("No active session"))
		return
	}

	var req models.LoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.LoanResponse]("invalid request body", err.Error()))
		return
	}
	logRequest(r, req)

	response, err := c.service.RequestLoan(r.Context(), session.ID, req)
	if err != nil {
		status := statusForError(err)
		if isValidationError(response.Message) {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, response)
		logResponse(r, status, start)
		return
	}

	// The credit posts later; approval only acknowledges the request.
	writeJSON(w, http.StatusAccepted, response)
	logResponse(r, http.StatusAccepted, start)
}

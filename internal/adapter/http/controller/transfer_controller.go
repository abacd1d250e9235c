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

type TransferService interface {
	TransferFunds(ctx context.Context, sessionID string, req models.TransferRequest) (commons.Response[models.TransferResponse], error)
}

type TransferController struct {
	service TransferService
}

func NewTransferController(service TransferService) *TransferController {
	return &TransferController{service: service}
}

func (c *TransferController) RegisterRoutes(r *mux.Router, authMiddleware func(http.Handler) http.Handler) {
	handler := http.Handler(http.HandlerFunc(c.transfer))
	if authMiddleware != nil {
		handler = authMiddleware(handler)
	}
	r.Handle("/accounts/current/transfers", handler).Methods(http.MethodPost)
}

func (c *TransferController) transfer(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, commons.ErrorResponse[models.TransferResponse]("No active session"))
		return
	}

	var req models.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.TransferResponse]("invalid request body", err.Error()))
		return
	}
	logRequest(r, req)

	response, err := c.service.TransferFunds(r.Context(), session.ID, req)
	if err != nil {
		status := statusForError(err)
		if isValidationError(response.Message) {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, response)
		logResponse(r, status, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, start)
}

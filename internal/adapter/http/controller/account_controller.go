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

type AccountService interface {
	GetOverview(ctx context.Context, sessionID string) (commons.Response[models.AccountOverviewResponse], error)
	ToggleSort(ctx context.Context, sessionID string) (commons.Response[models.SortToggleResponse], error)
	CloseAccount(ctx context.Context, sessionID string, req models.CloseAccountRequest) (commons.Response[commons.Empty], error)
}

type AccountController struct {
	service AccountService
}

func NewAccountController(service AccountService) *AccountController {
	return &AccountController{service: service}
}

func (c *AccountController) RegisterRoutes(r *mux.Router, authMiddleware func(http.Handler) http.Handler) {
	overview := http.Handler(http.HandlerFunc(c.overview))
	sort := http.Handler(http.HandlerFunc(c.toggleSort))
	closeAccount := http.Handler(http.HandlerFunc(c.closeAccount))
	if authMiddleware != nil {
		overview = authMiddleware(overview)
		sort = authMiddleware(sort)
		closeAccount = authMiddleware(closeAccount)
	}
	r.Handle("/accounts/current", overview).Methods(http.MethodGet)
	r.Handle("/accounts/current/sort", sort).Methods(http.MethodPost)
	r.Handle("/accounts/current/close", closeAccount).Methods(http.MethodPost)
}

func (c *AccountController) overview(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, commons.ErrorResponse[models.AccountOverviewResponse]("No active session"))
		return
	}

	response, err := c.service.GetOverview(r.Context(), session.ID)
	if err != nil {
		writeJSON(w, statusForError(err), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *AccountController) toggleSort(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, commons.ErrorResponse[models.SortToggleResponse]("No active session"))
		return
	}

	response, err := c.service.ToggleSort(r.Context(), session.ID)
	if err != nil {
		writeJSON(w, statusForError(err), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *AccountController) closeAccount(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, commons.ErrorResponse[commons.Empty]("No active session"))
		return
	}

	var req models.CloseAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[commons.Empty]("invalid request body", err.Error()))
		return
	}
	logRequest(r, req)

	response, err := c.service.CloseAccount(r.Context(), session.ID, req)
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

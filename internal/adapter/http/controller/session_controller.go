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

type SessionService interface {
	Login(ctx context.Context, req models.LoginRequest) (commons.Response[models.LoginResponse], error)
	Logout(ctx context.Context, sessionID string) (commons.Response[commons.Empty], error)
	Status(ctx context.Context, sessionID string) (commons.Response[models.SessionStatusResponse], error)
}

type SessionController struct {
	service SessionService
}

func NewSessionController(service SessionService) *SessionController {
	return &SessionController{service: service}
}

func (c *SessionController) RegisterRoutes(r *mux.Router, authMiddleware func(http.Handler) http.Handler) {
	r.HandleFunc("/sessions", c.login).Methods(http.MethodPost)

	status := http.Handler(http.HandlerFunc(c.status))
	logout := http.Handler(http.HandlerFunc(c.logout))
	if authMiddleware != nil {
		status = authMiddleware(status)
		logout = authMiddleware(logout)
	}
	r.Handle("/sessions/current", status).Methods(http.MethodGet)
	r.Handle("/sessions/current", logout).Methods(http.MethodDelete)
}

func (c *SessionController) login(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.LoginResponse]("invalid request body", err.Error()))
		return
	}
	logRequest(r, req)

	response, err := c.service.Login(r.Context(), req)
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

func (c *SessionController) status(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, commons.ErrorResponse[models.SessionStatusResponse]("No active session"))
		return
	}

	response, err := c.service.Status(r.Context(), session.ID)
	if err != nil {
		writeJSON(w, statusForError(err), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *SessionController) logout(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, commons.ErrorResponse[commons.Empty]("No active session"))
		return
	}

	response, err := c.service.Logout(r.Context(), session.ID)
	if err != nil {
		status := statusForError(err)
		writeJSON(w, status, response)
		logResponse(r, status, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, start)
}

package router

import (
	"net/http"

	"github.com/gorilla/mux"
)

type SessionRouteRegistrar interface {
	RegisterRoutes(r *mux.Router, authMiddleware func(http.Handler) http.Handler)
}

type AccountRouteRegistrar interface {
	RegisterRoutes(r *mux.Router, authMiddleware func(http.Handler) http.Handler)
}

type TransferRouteRegistrar interface {
	RegisterRoutes(r *mux.Router, authMiddleware func(http.Handler) http.Handler)
}

type LoanRouteRegistrar interface {
	RegisterRoutes(r *mux.Router, authMiddleware func(http.Handler) http.Handler)
}

func New(
	sessionController SessionRouteRegistrar,
	accountController AccountRouteRegistrar,
	transferController TransferRouteRegistrar,
	loanController LoanRouteRegistrar,
	authMiddleware func(http.Handler) http.Handler,
) *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	if sessionController != nil {
		sessionController.RegisterRoutes(api, authMiddleware)
	}
	if accountController != nil {
		accountController.RegisterRoutes(api, authMiddleware)
	}
	if transferController != nil {
		transferController.RegisterRoutes(api, authMiddleware)
	}
	if loanController != nil {
		loanController.RegisterRoutes(api, authMiddleware)
	}

	return r
}

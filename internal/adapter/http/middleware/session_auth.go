package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/api-sage/bankist-demo-bank/internal/domain"
	"github.com/api-sage/bankist-demo-bank/internal/logger"
)

type contextKey string

const sessionContextKey contextKey = "session"

// TokenVerifier resolves a bearer token to the active session it names.
type TokenVerifier interface {
	VerifyToken(token string) (domain.Session, error)
}

// SessionAuth guards every route behind login: it expects an
// "Authorization: Bearer <token>" header, verifies it and stores the
// resolved session on the request context. Tokens for ended or replaced
// sessions are rejected even when their signature is still valid.
func SessionAuth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				logger.Info("session auth middleware missing token", logger.Fields{
					"method": r.Method,
					"path":   r.URL.Path,
				})
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			session, err := verifier.VerifyToken(token)
			if err != nil {
				logger.Info("session auth middleware rejected token", logger.Fields{
					"method": r.Method,
					"path":   r.URL.Path,
				})
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), sessionContextKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext returns the session placed by SessionAuth.
func SessionFromContext(ctx context.Context) (domain.Session, bool) {
	session, ok := ctx.Value(sessionContextKey).(domain.Session)
	return session, ok
}

func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

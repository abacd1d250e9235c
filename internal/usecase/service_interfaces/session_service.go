package service_interfaces

import "github.com/api-sage/bankist-demo-bank/internal/domain"

// SessionManager is the slice of the session service the transaction
// engine depends on: gating operations on an active session, resetting
// the inactivity timer after mutations, and ending sessions.
type SessionManager interface {
	Resolve(sessionID string) (domain.Session, error)
	ResetTimer(sessionID string) error
	EndSession(sessionID string, reason domain.SessionEndReason) error
	ToggleSorted(sessionID string) (bool, error)
}

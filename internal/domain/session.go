package domain

import "time"

// Session is the period between a successful login and logout or
// timeout during which exactly one account is current.
type Session struct {
	ID        string
	Username  string
	Owner     string
	StartedAt time.Time
	Sorted    bool
}

type SessionEndReason string

const (
	SessionEndLogout        SessionEndReason = "LOGOUT"
	SessionEndTimeout       SessionEndReason = "TIMEOUT"
	SessionEndReplaced      SessionEndReason = "REPLACED"
	SessionEndAccountClosed SessionEndReason = "ACCOUNT_CLOSED"
)

package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/api-sage/bankist-demo-bank/internal/adapter/http/models"
	"github.com/api-sage/bankist-demo-bank/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/bankist-demo-bank/internal/commons"
	"github.com/api-sage/bankist-demo-bank/internal/domain"
	"github.com/api-sage/bankist-demo-bank/internal/logger"
	"github.com/api-sage/bankist-demo-bank/internal/usecase/service_interfaces"
	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// tokenTTL is a backstop only; the effective session lifetime is the
// inactivity countdown, enforced by Resolve.
const tokenTTL = 24 * time.Hour

type sessionClaims struct {
	SessionID string `json:"sessionId"`
	Username  string `json:"username"`
	jwt.StandardClaims
}

// SessionService owns the login/logout state machine. At most one
// session is active per process; a new login replaces the previous
// session the way reloading the original page did. Every session owns
// at most one running countdown at any time.
type SessionService struct {
	accountRepo    repo_interfaces.AccountRepository
	formatter      service_interfaces.Formatter
	timeoutSeconds int
	tickInterval   time.Duration
	jwtSecret      []byte
	clock          func() time.Time

	mu        sync.Mutex
	current   *activeSession
	endHooks  []func(sessionID string, reason domain.SessionEndReason)
	tickHooks []func(sessionID string, remainingSeconds int)
}

type activeSession struct {
	session domain.Session
	timer   *countdown
}

func NewSessionService(
	accountRepo repo_interfaces.AccountRepository,
	formatter service_interfaces.Formatter,
	timeoutSeconds int,
	tickInterval time.Duration,
	jwtSecret string,
	clock func() time.Time,
) *SessionService {
	if clock == nil {
		clock = time.Now
	}

	return &SessionService{
		accountRepo:    accountRepo,
		formatter:      formatter,
		timeoutSeconds: timeoutSeconds,
		tickInterval:   tickInterval,
		jwtSecret:      []byte(jwtSecret),
		clock:          clock,
	}
}

// OnSessionEnd registers a hook fired whenever a session ends, whatever
// the reason. Hooks run outside the service lock.
func (s *SessionService) OnSessionEnd(hook func(sessionID string, reason domain.SessionEndReason)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.endHooks = append(s.endHooks, hook)
}

// OnTick registers a hook fired on every countdown tick with the
// remaining seconds.
func (s *SessionService) OnTick(hook func(sessionID string, remainingSeconds int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tickHooks = append(s.tickHooks, hook)
}

func (s *SessionService) Login(ctx context.Context, req models.LoginRequest) (commons.Response[models.LoginResponse], error) {
	logger.Info("session service login request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("session service login validation failed", err, nil)
		return commons.ErrorResponse[models.LoginResponse]("validation failed", err.Error()), err
	}

	username := strings.TrimSpace(req.Username)

	// The credential is numeric; anything that does not parse fails the
	// same way a wrong PIN does.
	pinNumber, err := strconv.Atoi(strings.TrimSpace(req.Pin))
	if err != nil {
		logger.Info("session service login non-numeric pin", logger.Fields{
			"username": username,
		})
		return commons.ErrorResponse[models.LoginResponse]("Invalid credentials"), domain.ErrInvalidCredentials
	}

	account, err := s.accountRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			// Deliberately indistinguishable from a wrong PIN.
			logger.Info("session service login unknown username", logger.Fields{
				"username": username,
			})
			return commons.ErrorResponse[models.LoginResponse]("Invalid credentials"), domain.ErrInvalidCredentials
		}
		logger.Error("session service login lookup failed", err, logger.Fields{
			"username": username,
		})
		return commons.ErrorResponse[models.LoginResponse]("failed to log in", "Unable to log in right now"), err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PinHash), []byte(strconv.Itoa(pinNumber))); err != nil {
		logger.Info("session service login pin mismatch", logger.Fields{
			"username": username,
		})
		return commons.ErrorResponse[models.LoginResponse]("Invalid credentials"), domain.ErrInvalidCredentials
	}

	session := s.beginSession(account)

	token, err := s.issueToken(session)
	if err != nil {
		logger.Error("session service login issue token failed", err, logger.Fields{
			"sessionId": session.ID,
		})
		_ = s.EndSession(session.ID, domain.SessionEndLogout)
		return commons.ErrorResponse[models.LoginResponse]("failed to log in", "Unable to log in right now"), err
	}

	response := models.LoginResponse{
		Token:            token,
		Welcome:          fmt.Sprintf("Welcome back, %s!", account.FirstName()),
		Username:         account.Username,
		Owner:            account.Owner,
		Currency:         account.Currency,
		Locale:           account.Locale,
		RemainingSeconds: s.timeoutSeconds,
		Clock:            s.formatter.Clock(s.timeoutSeconds),
	}

	logger.Info("session service login success", logger.Fields{
		"sessionId": session.ID,
		"username":  account.Username,
	})

	return commons.SuccessResponse("logged in successfully", response), nil
}

func (s *SessionService) Logout(ctx context.Context, sessionID string) (commons.Response[commons.Empty], error) {
	logger.Info("session service logout request", logger.Fields{
		"sessionId": sessionID,
	})

	if err := s.EndSession(sessionID, domain.SessionEndLogout); err != nil {
		return commons.ErrorResponse[commons.Empty]("No active session"), err
	}

	return commons.SuccessResponse("logged out successfully", commons.Empty{}), nil
}

func (s *SessionService) Status(ctx context.Context, sessionID string) (commons.Response[models.SessionStatusResponse], error) {
	s.mu.Lock()
	if s.current == nil || s.current.session.ID != sessionID {
		s.mu.Unlock()
		return commons.ErrorResponse[models.SessionStatusResponse]("No active session"), domain.ErrNoActiveSession
	}
	session := s.current.session
	remaining := s.current.timer.remainingSeconds()
	s.mu.Unlock()

	response := models.SessionStatusResponse{
		Username:         session.Username,
		RemainingSeconds: remaining,
		Clock:            s.formatter.Clock(remaining),
		Sorted:           session.Sorted,
	}

	return commons.SuccessResponse("session active", response), nil
}

// Resolve returns the active session or ErrNoActiveSession. Every
// engine operation goes through this gate.
func (s *SessionService) Resolve(sessionID string) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil || s.current.session.ID != sessionID {
		return domain.Session{}, domain.ErrNoActiveSession
	}

	return s.current.session, nil
}

// ResetTimer cancels the running countdown and restarts it at full
// duration. Called after every successful mutating action.
func (s *SessionService) ResetTimer(sessionID string) error {
	s.mu.Lock()
	if s.current == nil || s.current.session.ID != sessionID {
		s.mu.Unlock()
		return domain.ErrNoActiveSession
	}

	previous := s.current.timer
	replacement := s.newSessionCountdown(sessionID)
	s.current.timer = replacement
	s.mu.Unlock()

	previous.stop()
	replacement.start()

	logger.Info("session timer reset", logger.Fields{
		"sessionId": sessionID,
	})

	return nil
}

// EndSession tears the session down: the countdown is stopped and the
// end hooks (loan cancellation among them) fire exactly once.
func (s *SessionService) EndSession(sessionID string, reason domain.SessionEndReason) error {
	s.mu.Lock()
	if s.current == nil || s.current.session.ID != sessionID {
		s.mu.Unlock()
		return domain.ErrNoActiveSession
	}
	active := s.current
	s.current = nil
	s.mu.Unlock()

	active.timer.stop()
	s.fireEndHooks(sessionID, reason)

	logger.Info("session ended", logger.Fields{
		"sessionId": sessionID,
		"username":  active.session.Username,
		"reason":    string(reason),
	})

	return nil
}

// ToggleSorted flips the session's movement display order and returns
// the new value.
func (s *SessionService) ToggleSorted(sessionID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil || s.current.session.ID != sessionID {
		return false, domain.ErrNoActiveSession
	}

	s.current.session.Sorted = !s.current.session.Sorted
	return s.current.session.Sorted, nil
}

// VerifyToken validates a bearer token and resolves the session it
// names. A token for a replaced or ended session fails with
// ErrNoActiveSession even when its signature is still valid.
func (s *SessionService) VerifyToken(token string) (domain.Session, error) {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !parsed.Valid {
		return domain.Session{}, domain.ErrNoActiveSession
	}

	return s.Resolve(claims.SessionID)
}

func (s *SessionService) issueToken(session domain.Session) (string, error) {
	claims := &sessionClaims{
		SessionID: session.ID,
		Username:  session.Username,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  s.clock().Unix(),
			ExpiresAt: s.clock().Add(tokenTTL).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}

	return signed, nil
}

func (s *SessionService) beginSession(account domain.Account) domain.Session {
	s.mu.Lock()
	previous := s.current
	s.current = nil
	s.mu.Unlock()

	if previous != nil {
		previous.timer.stop()
		s.fireEndHooks(previous.session.ID, domain.SessionEndReplaced)
	}

	session := domain.Session{
		ID:        uuid.New().String(),
		Username:  account.Username,
		Owner:     account.Owner,
		StartedAt: s.clock(),
	}

	active := &activeSession{
		session: session,
		timer:   s.newSessionCountdown(session.ID),
	}

	s.mu.Lock()
	s.current = active
	s.mu.Unlock()

	active.timer.start()
	return session
}

func (s *SessionService) newSessionCountdown(sessionID string) *countdown {
	var c *countdown
	c = newCountdown(
		s.timeoutSeconds,
		s.tickInterval,
		func(remaining int) { s.handleTick(sessionID, remaining) },
		func() { s.handleExpiry(sessionID, c) },
	)
	return c
}

func (s *SessionService) handleTick(sessionID string, remaining int) {
	s.mu.Lock()
	hooks := make([]func(string, int), len(s.tickHooks))
	copy(hooks, s.tickHooks)
	s.mu.Unlock()

	for _, hook := range hooks {
		hook(sessionID, remaining)
	}
}

// handleExpiry ends the session on timeout, but only if the expiring
// countdown is still the session's current one; an expiry racing a
// reset loses.
func (s *SessionService) handleExpiry(sessionID string, c *countdown) {
	s.mu.Lock()
	if s.current == nil || s.current.session.ID != sessionID || s.current.timer != c {
		s.mu.Unlock()
		return
	}
	active := s.current
	s.current = nil
	s.mu.Unlock()

	active.timer.stop()
	s.fireEndHooks(sessionID, domain.SessionEndTimeout)

	logger.Info("session timed out", logger.Fields{
		"sessionId": sessionID,
		"username":  active.session.Username,
	})
}

func (s *SessionService) fireEndHooks(sessionID string, reason domain.SessionEndReason) {
	s.mu.Lock()
	hooks := make([]func(string, domain.SessionEndReason), len(s.endHooks))
	copy(hooks, s.endHooks)
	s.mu.Unlock()

	for _, hook := range hooks {
		hook(sessionID, reason)
	}
}

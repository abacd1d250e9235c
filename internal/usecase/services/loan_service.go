package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/api-sage/bankist-demo-bank/internal/adapter/http/models"
	"github.com/api-sage/bankist-demo-bank/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/bankist-demo-bank/internal/commons"
	"github.com/api-sage/bankist-demo-bank/internal/domain"
	"github.com/api-sage/bankist-demo-bank/internal/logger"
	"github.com/api-sage/bankist-demo-bank/internal/usecase/service_interfaces"
	"github.com/shopspring/decimal"
)

var ten = decimal.NewFromInt(10)

// LoanService approves loan requests and posts the credit after a
// configurable delay. Pending postings are tied to the requesting
// session and cancelled when that session ends.
type LoanService struct {
	accountRepo repo_interfaces.AccountRepository
	sessions    service_interfaces.SessionManager
	delay       time.Duration
	clock       func() time.Time

	mu      sync.Mutex
	pending map[string][]*pendingLoan
}

type pendingLoan struct {
	timer  *time.Timer
	amount decimal.Decimal
}

func NewLoanService(
	accountRepo repo_interfaces.AccountRepository,
	sessions service_interfaces.SessionManager,
	delay time.Duration,
	clock func() time.Time,
) *LoanService {
	if clock == nil {
		clock = time.Now
	}

	return &LoanService{
		accountRepo: accountRepo,
		sessions:    sessions,
		delay:       delay,
		clock:       clock,
		pending:     make(map[string][]*pendingLoan),
	}
}

// RequestLoan floors the requested amount and approves it only when
// some prior movement covers a tenth of it. Approval schedules the
// posting; the credit lands after the delay, not immediately.
func (s *LoanService) RequestLoan(ctx context.Context, sessionID string, req models.LoanRequest) (commons.Response[models.LoanResponse], error) {
	logger.Info("loan service request", logger.Fields{
		"sessionId": sessionID,
		"payload":   logger.SanitizePayload(req),
	})

	session, err := s.sessions.Resolve(sessionID)
	if err != nil {
		return commons.ErrorResponse[models.LoanResponse]("No active session"), err
	}

	if err := req.Validate(); err != nil {
		logger.Error("loan service validation failed", err, nil)
		return commons.ErrorResponse[models.LoanResponse]("validation failed", err.Error()), err
	}

	raw, _ := decimal.NewFromString(strings.TrimSpace(req.Amount))
	amount := raw.Floor()

	if !amount.IsPositive() {
		return commons.ErrorResponse[models.LoanResponse]("Invalid amount", "amount must be at least one whole unit"), domain.ErrInvalidAmount
	}

	account, err := s.accountRepo.GetByUsername(ctx, session.Username)
	if err != nil {
		logger.Error("loan service account lookup failed", err, logger.Fields{
			"username": session.Username,
		})
		return commons.ErrorResponse[models.LoanResponse]("failed to process loan", "Unable to process loan right now"), err
	}

	if !eligibleForLoan(account.Movements, amount) {
		logger.Info("loan service request rejected", logger.Fields{
			"username": session.Username,
			"amount":   amount.String(),
		})
		return commons.ErrorResponse[models.LoanResponse]("Loan request not eligible", "no prior movement covers 10% of the requested amount"), domain.ErrLoanNotEligible
	}

	s.schedule(sessionID, session.Username, amount)

	response := models.LoanResponse{
		Amount:       amount.StringFixed(2),
		Status:       "APPROVED",
		PostsAfterMs: s.delay.Milliseconds(),
	}

	logger.Info("loan service request approved", logger.Fields{
		"username":     session.Username,
		"amount":       response.Amount,
		"postsAfterMs": response.PostsAfterMs,
	})

	return commons.SuccessResponse("loan approved, credit pending", response), nil
}

// CancelPendingForSession drops every posting still scheduled for the
// session. Wired to the session manager's end hooks so a logout or
// timeout can never be followed by a stale credit.
func (s *LoanService) CancelPendingForSession(sessionID string, reason domain.SessionEndReason) {
	s.mu.Lock()
	loans := s.pending[sessionID]
	delete(s.pending, sessionID)
	s.mu.Unlock()

	for _, loan := range loans {
		loan.timer.Stop()
	}

	if len(loans) > 0 {
		logger.Info("loan service cancelled pending postings", logger.Fields{
			"sessionId": sessionID,
			"count":     len(loans),
			"reason":    string(reason),
		})
	}
}

// PendingCount reports outstanding scheduled postings for a session.
func (s *LoanService) PendingCount(sessionID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending[sessionID])
}

func (s *LoanService) schedule(sessionID string, username string, amount decimal.Decimal) {
	loan := &pendingLoan{amount: amount}

	s.mu.Lock()
	loan.timer = time.AfterFunc(s.delay, func() {
		s.post(sessionID, username, loan)
	})
	s.pending[sessionID] = append(s.pending[sessionID], loan)
	s.mu.Unlock()
}

func (s *LoanService) post(sessionID string, username string, loan *pendingLoan) {
	s.forget(sessionID, loan)

	// The session may have ended between approval and posting; a stale
	// posting must not touch the account.
	if _, err := s.sessions.Resolve(sessionID); err != nil {
		logger.Info("loan service dropped stale posting", logger.Fields{
			"sessionId": sessionID,
			"username":  username,
			"amount":    loan.amount.String(),
		})
		return
	}

	if err := s.accountRepo.AppendMovement(context.Background(), username, loan.amount, s.clock().UTC()); err != nil {
		logger.Error("loan service posting failed", err, logger.Fields{
			"username": username,
			"amount":   loan.amount.String(),
		})
		return
	}

	if err := s.sessions.ResetTimer(sessionID); err != nil {
		logger.Error("loan service timer reset failed", err, logger.Fields{
			"sessionId": sessionID,
		})
	}

	logger.Info("loan service posted credit", logger.Fields{
		"username": username,
		"amount":   loan.amount.String(),
	})
}

func (s *LoanService) forget(sessionID string, loan *pendingLoan) {
	s.mu.Lock()
	defer s.mu.Unlock()

	loans := s.pending[sessionID]
	for i, candidate := range loans {
		if candidate == loan {
			s.pending[sessionID] = append(loans[:i], loans[i+1:]...)
			break
		}
	}
	if len(s.pending[sessionID]) == 0 {
		delete(s.pending, sessionID)
	}
}

// eligibleForLoan applies the creditworthiness proxy: some existing
// movement must reach a tenth of the requested amount.
func eligibleForLoan(movements []decimal.Decimal, amount decimal.Decimal) bool {
	threshold := amount.Div(ten)
	for _, m := range movements {
		if m.GreaterThanOrEqual(threshold) {
			return true
		}
	}
	return false
}

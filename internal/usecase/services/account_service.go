package services

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/api-sage/bankist-demo-bank/internal/adapter/http/models"
	"github.com/api-sage/bankist-demo-bank/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/bankist-demo-bank/internal/commons"
	"github.com/api-sage/bankist-demo-bank/internal/domain"
	"github.com/api-sage/bankist-demo-bank/internal/logger"
	"github.com/api-sage/bankist-demo-bank/internal/usecase/service_interfaces"
	"golang.org/x/crypto/bcrypt"
)

// AccountService projects account state for display and handles
// account closure. Reads never reset the inactivity timer; only
// mutating actions do.
type AccountService struct {
	accountRepo repo_interfaces.AccountRepository
	sessions    service_interfaces.SessionManager
	formatter   service_interfaces.Formatter
	clock       func() time.Time
}

func NewAccountService(
	accountRepo repo_interfaces.AccountRepository,
	sessions service_interfaces.SessionManager,
	formatter service_interfaces.Formatter,
	clock func() time.Time,
) *AccountService {
	if clock == nil {
		clock = time.Now
	}

	return &AccountService{
		accountRepo: accountRepo,
		sessions:    sessions,
		formatter:   formatter,
		clock:       clock,
	}
}

// GetOverview renders the current account: movement rows in the
// session's display order plus the freshly recomputed summary.
func (s *AccountService) GetOverview(ctx context.Context, sessionID string) (commons.Response[models.AccountOverviewResponse], error) {
	session, err := s.sessions.Resolve(sessionID)
	if err != nil {
		return commons.ErrorResponse[models.AccountOverviewResponse]("No active session"), err
	}

	account, err := s.accountRepo.GetByUsername(ctx, session.Username)
	if err != nil {
		logger.Error("account service overview lookup failed", err, logger.Fields{
			"username": session.Username,
		})
		return commons.ErrorResponse[models.AccountOverviewResponse]("failed to load account", "Unable to load account right now"), err
	}

	response := models.AccountOverviewResponse{
		Owner:     account.Owner,
		Username:  account.Username,
		Currency:  account.Currency,
		Locale:    account.Locale,
		Sorted:    session.Sorted,
		Movements: s.movementRows(account, session.Sorted),
		Summary:   s.summaryView(account),
	}

	return commons.SuccessResponse("account fetched successfully", response), nil
}

// ToggleSort flips the display order between ascending-by-amount and
// chronological, and returns the resulting projection. The stored
// history is never reordered.
func (s *AccountService) ToggleSort(ctx context.Context, sessionID string) (commons.Response[models.SortToggleResponse], error) {
	sorted, err := s.sessions.ToggleSorted(sessionID)
	if err != nil {
		return commons.ErrorResponse[models.SortToggleResponse]("No active session"), err
	}

	session, err := s.sessions.Resolve(sessionID)
	if err != nil {
		return commons.ErrorResponse[models.SortToggleResponse]("No active session"), err
	}

	account, err := s.accountRepo.GetByUsername(ctx, session.Username)
	if err != nil {
		logger.Error("account service sort toggle lookup failed", err, logger.Fields{
			"username": session.Username,
		})
		return commons.ErrorResponse[models.SortToggleResponse]("failed to load account", "Unable to load account right now"), err
	}

	response := models.SortToggleResponse{
		Sorted:    sorted,
		Movements: s.movementRows(account, sorted),
	}

	return commons.SuccessResponse("sort order toggled", response), nil
}

// CloseAccount removes the current account after an exact confirmation
// of its username and PIN, then ends the session. A failed confirmation
// changes nothing.
func (s *AccountService) CloseAccount(ctx context.Context, sessionID string, req models.CloseAccountRequest) (commons.Response[commons.Empty], error) {
	logger.Info("account service close request", logger.Fields{
		"sessionId": sessionID,
		"payload":   logger.SanitizePayload(req),
	})

	session, err := s.sessions.Resolve(sessionID)
	if err != nil {
		return commons.ErrorResponse[commons.Empty]("No active session"), err
	}

	if err := req.Validate(); err != nil {
		logger.Error("account service close validation failed", err, nil)
		return commons.ErrorResponse[commons.Empty]("validation failed", err.Error()), err
	}

	account, err := s.accountRepo.GetByUsername(ctx, session.Username)
	if err != nil {
		logger.Error("account service close lookup failed", err, logger.Fields{
			"username": session.Username,
		})
		return commons.ErrorResponse[commons.Empty]("failed to close account", "Unable to close account right now"), err
	}

	if strings.TrimSpace(req.Username) != account.Username {
		return commons.ErrorResponse[commons.Empty]("Confirmation details do not match"), domain.ErrConfirmationMismatch
	}

	pinNumber, err := strconv.Atoi(strings.TrimSpace(req.Pin))
	if err != nil {
		return commons.ErrorResponse[commons.Empty]("Confirmation details do not match"), domain.ErrConfirmationMismatch
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PinHash), []byte(strconv.Itoa(pinNumber))); err != nil {
		return commons.ErrorResponse[commons.Empty]("Confirmation details do not match"), domain.ErrConfirmationMismatch
	}

	if err := s.accountRepo.Remove(ctx, account.Username); err != nil {
		logger.Error("account service close removal failed", err, logger.Fields{
			"username": account.Username,
		})
		return commons.ErrorResponse[commons.Empty]("failed to close account", "Unable to close account right now"), err
	}

	if err := s.sessions.EndSession(sessionID, domain.SessionEndAccountClosed); err != nil {
		logger.Error("account service close end session failed", err, logger.Fields{
			"sessionId": sessionID,
		})
	}

	logger.Info("account service account closed", logger.Fields{
		"username": account.Username,
	})

	return commons.SuccessResponse(account.FirstName()+"'s account closed", commons.Empty{}), nil
}

func (s *AccountService) movementRows(account domain.Account, sorted bool) []models.MovementRow {
	pairs := account.MovementPairs()
	if sorted {
		pairs = domain.SortMovementsByAmount(pairs)
	}

	now := s.clock()
	rows := make([]models.MovementRow, len(pairs))
	for i, pair := range pairs {
		movementType := "deposit"
		if pair.Amount.IsNegative() {
			movementType = "withdrawal"
		}

		rows[i] = models.MovementRow{
			Type:          movementType,
			Amount:        pair.Amount.StringFixed(2),
			AmountDisplay: s.formatter.Currency(pair.Amount, account.Locale, account.Currency),
			Date:          pair.Date.Format(time.RFC3339),
			DateDisplay:   s.formatter.MovementDate(pair.Date, account.Locale, now),
		}
	}

	return rows
}

func (s *AccountService) summaryView(account domain.Account) models.SummaryView {
	summary := domain.ComputeSummary(account.Movements, account.InterestRate)

	return models.SummaryView{
		Balance:          summary.Balance.StringFixed(2),
		BalanceDisplay:   s.formatter.Currency(summary.Balance, account.Locale, account.Currency),
		Income:           summary.Income.StringFixed(2),
		IncomeDisplay:    s.formatter.Currency(summary.Income, account.Locale, account.Currency),
		Outgoings:        summary.Outgoings.StringFixed(2),
		OutgoingsDisplay: s.formatter.Currency(summary.Outgoings.Abs(), account.Locale, account.Currency),
		Interest:         summary.Interest.StringFixed(2),
		InterestDisplay:  s.formatter.Currency(summary.Interest, account.Locale, account.Currency),
	}
}

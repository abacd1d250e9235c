package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/api-sage/bankist-demo-bank/internal/adapter/http/models"
	"github.com/api-sage/bankist-demo-bank/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/bankist-demo-bank/internal/commons"
	"github.com/api-sage/bankist-demo-bank/internal/domain"
	"github.com/api-sage/bankist-demo-bank/internal/logger"
	"github.com/api-sage/bankist-demo-bank/internal/usecase/service_interfaces"
	"github.com/shopspring/decimal"
)

type TransferService struct {
	accountRepo repo_interfaces.AccountRepository
	sessions    service_interfaces.SessionManager
	clock       func() time.Time
}

func NewTransferService(
	accountRepo repo_interfaces.AccountRepository,
	sessions service_interfaces.SessionManager,
	clock func() time.Time,
) *TransferService {
	if clock == nil {
		clock = time.Now
	}

	return &TransferService{
		accountRepo: accountRepo,
		sessions:    sessions,
		clock:       clock,
	}
}

// TransferFunds validates the whole transfer before any write. On
// success the debit and credit post as one unit of work with a shared
// timestamp, and the inactivity timer restarts.
func (s *TransferService) TransferFunds(ctx context.Context, sessionID string, req models.TransferRequest) (commons.Response[models.TransferResponse], error) {
	logger.Info("transfer service transfer request", logger.Fields{
		"sessionId": sessionID,
		"payload":   logger.SanitizePayload(req),
	})

	session, err := s.sessions.Resolve(sessionID)
	if err != nil {
		return commons.ErrorResponse[models.TransferResponse]("No active session"), err
	}

	if err := req.Validate(); err != nil {
		logger.Error("transfer service transfer validation failed", err, nil)
		return commons.ErrorResponse[models.TransferResponse]("validation failed", err.Error()), err
	}

	amount, _ := decimal.NewFromString(strings.TrimSpace(req.Amount))
	toUsername := strings.TrimSpace(req.To)

	if !amount.IsPositive() {
		return commons.ErrorResponse[models.TransferResponse]("Invalid amount", "amount must be greater than zero"), domain.ErrInvalidAmount
	}

	sender, err := s.accountRepo.GetByUsername(ctx, session.Username)
	if err != nil {
		logger.Error("transfer service sender lookup failed", err, logger.Fields{
			"username": session.Username,
		})
		return commons.ErrorResponse[models.TransferResponse]("failed to process transfer", "Unable to process transfer right now"), err
	}

	// Balance is recomputed fresh from the movement history.
	if amount.GreaterThan(sender.Balance()) {
		return commons.ErrorResponse[models.TransferResponse]("Insufficient balance"), domain.ErrInsufficientBalance
	}

	recipient, err := s.accountRepo.GetByUsername(ctx, toUsername)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.TransferResponse]("Unknown recipient"), domain.ErrUnknownRecipient
		}
		logger.Error("transfer service recipient lookup failed", err, logger.Fields{
			"to": toUsername,
		})
		return commons.ErrorResponse[models.TransferResponse]("failed to process transfer", "Unable to process transfer right now"), err
	}

	if recipient.Username == sender.Username {
		return commons.ErrorResponse[models.TransferResponse]("Cannot transfer to own account"), domain.ErrSelfTransfer
	}

	postedAt := s.clock().UTC()
	if err := s.accountRepo.ProcessTransfer(ctx, sender.Username, recipient.Username, amount, postedAt); err != nil {
		logger.Error("transfer service posting failed", err, logger.Fields{
			"from": sender.Username,
			"to":   recipient.Username,
		})
		return commons.ErrorResponse[models.TransferResponse]("failed to process transfer", "Unable to process transfer right now"), err
	}

	if err := s.sessions.ResetTimer(sessionID); err != nil {
		logger.Error("transfer service timer reset failed", err, logger.Fields{
			"sessionId": sessionID,
		})
	}

	response := models.TransferResponse{
		From:       sender.Username,
		To:         recipient.Username,
		Amount:     amount.StringFixed(2),
		PostedAt:   postedAt.Format(time.RFC3339),
		NewBalance: sender.Balance().Sub(amount).StringFixed(2),
	}

	logger.Info("transfer service transfer success", logger.Fields{
		"from":   response.From,
		"to":     response.To,
		"amount": response.Amount,
	})

	return commons.SuccessResponse("transfer successful", response), nil
}

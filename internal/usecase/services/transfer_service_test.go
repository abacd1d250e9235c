package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/api-sage/bankist-demo-bank/internal/adapter/http/models"
	"github.com/api-sage/bankist-demo-bank/internal/domain"
	"github.com/api-sage/bankist-demo-bank/internal/usecase/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2021, 8, 28, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func TestTransferFundsSuccess(t *testing.T) {
	repo := seededRepo(t)
	sessions := newFakeSessionManager("sess-1", "js")
	svc := services.NewTransferService(repo, sessions, fixedClock)
	ctx := context.Background()

	jonasBefore, err := repo.GetByUsername(ctx, "js")
	require.NoError(t, err)
	jessicaBefore, err := repo.GetByUsername(ctx, "jd")
	require.NoError(t, err)

	resp, err := svc.TransferFunds(ctx, "sess-1", models.TransferRequest{To: "jd", Amount: "90"})
	require.NoError(t, err)
	require.True(t, resp.Success)

	assert.Equal(t, "js", resp.Data.From)
	assert.Equal(t, "jd", resp.Data.To)
	assert.Equal(t, "90.00", resp.Data.Amount)
	assert.Equal(t, fixedNow.Format(time.RFC3339), resp.Data.PostedAt)

	amount := decimal.NewFromInt(90)
	jonas, err := repo.GetByUsername(ctx, "js")
	require.NoError(t, err)
	jessica, err := repo.GetByUsername(ctx, "jd")
	require.NoError(t, err)

	assert.True(t, jonas.Balance().Equal(jonasBefore.Balance().Sub(amount)))
	assert.True(t, jessica.Balance().Equal(jessicaBefore.Balance().Add(amount)))
	assert.Equal(t, jonas.Balance().StringFixed(2), resp.Data.NewBalance)

	assert.Equal(t, 1, sessions.resetCount())
}

func TestTransferFundsRejections(t *testing.T) {
	cases := []struct {
		name    string
		req     models.TransferRequest
		wantErr error
	}{
		{"zero amount", models.TransferRequest{To: "jd", Amount: "0"}, domain.ErrInvalidAmount},
		{"negative amount", models.TransferRequest{To: "jd", Amount: "-50"}, domain.ErrInvalidAmount},
		{"over balance", models.TransferRequest{To: "jd", Amount: "1000000"}, domain.ErrInsufficientBalance},
		{"unknown recipient", models.TransferRequest{To: "nobody", Amount: "10"}, domain.ErrUnknownRecipient},
		{"self transfer", models.TransferRequest{To: "js", Amount: "10"}, domain.ErrSelfTransfer},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := seededRepo(t)
			sessions := newFakeSessionManager("sess-1", "js")
			svc := services.NewTransferService(repo, sessions, fixedClock)
			ctx := context.Background()

			resp, err := svc.TransferFunds(ctx, "sess-1", tc.req)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.False(t, resp.Success)

			// A rejected transfer must leave both accounts untouched.
			jonas, lookupErr := repo.GetByUsername(ctx, "js")
			require.NoError(t, lookupErr)
			assert.Len(t, jonas.Movements, 8)
			jessica, lookupErr := repo.GetByUsername(ctx, "jd")
			require.NoError(t, lookupErr)
			assert.Len(t, jessica.Movements, 8)

			assert.Equal(t, 0, sessions.resetCount())
		})
	}
}

func TestTransferFundsValidation(t *testing.T) {
	repo := seededRepo(t)
	sessions := newFakeSessionManager("sess-1", "js")
	svc := services.NewTransferService(repo, sessions, fixedClock)

	resp, err := svc.TransferFunds(context.Background(), "sess-1", models.TransferRequest{To: "jd", Amount: "abc"})
	require.Error(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "validation failed", resp.Message)
}

func TestTransferFundsWithoutSession(t *testing.T) {
	repo := seededRepo(t)
	sessions := newFakeSessionManager("sess-1", "js")
	sessions.deactivate()
	svc := services.NewTransferService(repo, sessions, fixedClock)

	_, err := svc.TransferFunds(context.Background(), "sess-1", models.TransferRequest{To: "jd", Amount: "10"})
	assert.ErrorIs(t, err, domain.ErrNoActiveSession)
}

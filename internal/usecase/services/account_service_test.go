package services_test

import (
	"context"
	"testing"

	"github.com/api-sage/bankist-demo-bank/internal/adapter/format"
	"github.com/api-sage/bankist-demo-bank/internal/adapter/http/models"
	"github.com/api-sage/bankist-demo-bank/internal/domain"
	"github.com/api-sage/bankist-demo-bank/internal/usecase/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOverview(t *testing.T) {
	repo := seededRepo(t)
	sessions := newFakeSessionManager("sess-1", "js")
	svc := services.NewAccountService(repo, sessions, format.NewService(), fixedClock)

	resp, err := svc.GetOverview(context.Background(), "sess-1")
	require.NoError(t, err)
	require.True(t, resp.Success)

	overview := resp.Data
	assert.Equal(t, "Jonas Schmedtmann", overview.Owner)
	assert.Equal(t, "js", overview.Username)
	assert.Equal(t, "EUR", overview.Currency)
	assert.False(t, overview.Sorted)

	require.Len(t, overview.Movements, 8)
	assert.Equal(t, "deposit", overview.Movements[0].Type)
	assert.Equal(t, "200.00", overview.Movements[0].Amount)
	assert.Equal(t, "withdrawal", overview.Movements[2].Type)
	assert.Equal(t, "-306.50", overview.Movements[2].Amount)

	assert.Equal(t, "25952.59", overview.Summary.Balance)
	assert.Equal(t, "27035.20", overview.Summary.Income)
	assert.Equal(t, "-1082.61", overview.Summary.Outgoings)
	assert.Equal(t, "323.46", overview.Summary.Interest)

	// Reads never restart the inactivity countdown.
	assert.Equal(t, 0, sessions.resetCount())
}

func TestToggleSortRoundTrip(t *testing.T) {
	repo := seededRepo(t)
	sessions := newFakeSessionManager("sess-1", "js")
	svc := services.NewAccountService(repo, sessions, format.NewService(), fixedClock)
	ctx := context.Background()

	original, err := svc.GetOverview(ctx, "sess-1")
	require.NoError(t, err)

	sorted, err := svc.ToggleSort(ctx, "sess-1")
	require.NoError(t, err)
	assert.True(t, sorted.Data.Sorted)
	require.Len(t, sorted.Data.Movements, 8)
	assert.Equal(t, "-642.21", sorted.Data.Movements[0].Amount)
	assert.Equal(t, "25000.00", sorted.Data.Movements[7].Amount)

	restored, err := svc.ToggleSort(ctx, "sess-1")
	require.NoError(t, err)
	assert.False(t, restored.Data.Sorted)
	assert.Equal(t, original.Data.Movements, restored.Data.Movements)
}

func TestCloseAccount(t *testing.T) {
	repo := seededRepo(t)
	sessions := newFakeSessionManager("sess-1", "js")
	svc := services.NewAccountService(repo, sessions, format.NewService(), fixedClock)
	ctx := context.Background()

	resp, err := svc.CloseAccount(ctx, "sess-1", models.CloseAccountRequest{Username: "js", Pin: "1111"})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "Jonas's account closed", resp.Message)

	_, err = repo.GetByUsername(ctx, "js")
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)

	assert.Equal(t, []domain.SessionEndReason{domain.SessionEndAccountClosed}, sessions.endedWith())
}

func TestCloseAccountConfirmationMismatch(t *testing.T) {
	cases := []struct {
		name string
		req  models.CloseAccountRequest
	}{
		{"wrong username", models.CloseAccountRequest{Username: "jd", Pin: "1111"}},
		{"wrong pin", models.CloseAccountRequest{Username: "js", Pin: "9999"}},
		{"non-numeric pin", models.CloseAccountRequest{Username: "js", Pin: "abcd"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := seededRepo(t)
			sessions := newFakeSessionManager("sess-1", "js")
			svc := services.NewAccountService(repo, sessions, format.NewService(), fixedClock)
			ctx := context.Background()

			resp, err := svc.CloseAccount(ctx, "sess-1", tc.req)
			assert.ErrorIs(t, err, domain.ErrConfirmationMismatch)
			assert.False(t, resp.Success)

			// A failed confirmation changes nothing.
			_, err = repo.GetByUsername(ctx, "js")
			assert.NoError(t, err)
			assert.Empty(t, sessions.endedWith())
		})
	}
}

func TestAccountOperationsWithoutSession(t *testing.T) {
	repo := seededRepo(t)
	sessions := newFakeSessionManager("sess-1", "js")
	sessions.deactivate()
	svc := services.NewAccountService(repo, sessions, format.NewService(), fixedClock)
	ctx := context.Background()

	_, err := svc.GetOverview(ctx, "sess-1")
	assert.ErrorIs(t, err, domain.ErrNoActiveSession)

	_, err = svc.ToggleSort(ctx, "sess-1")
	assert.ErrorIs(t, err, domain.ErrNoActiveSession)

	_, err = svc.CloseAccount(ctx, "sess-1", models.CloseAccountRequest{Username: "js", Pin: "1111"})
	assert.ErrorIs(t, err, domain.ErrNoActiveSession)
}

package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/api-sage/bankist-demo-bank/internal/adapter/repository/memory"
	"github.com/api-sage/bankist-demo-bank/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSeededRepo(t *testing.T) *memory.AccountRepository {
	t.Helper()
	repo, err := memory.NewAccountRepository(memory.DefaultSeedAccounts())
	require.NoError(t, err)
	return repo
}

func TestSeedDerivesUsernames(t *testing.T) {
	repo := newSeededRepo(t)

	jonas, err := repo.GetByUsername(context.Background(), "js")
	require.NoError(t, err)
	assert.Equal(t, "Jonas Schmedtmann", jonas.Owner)
	assert.Equal(t, "EUR", jonas.Currency)
	assert.Len(t, jonas.Movements, 8)
	assert.Len(t, jonas.MovementDates, 8)

	jessica, err := repo.GetByUsername(context.Background(), "jd")
	require.NoError(t, err)
	assert.Equal(t, "Jessica Davis", jessica.Owner)
}

func TestSeedRejectsDuplicateUsernames(t *testing.T) {
	seeds := []memory.SeedAccount{
		{Owner: "John Smith", Pin: "1111", InterestRate: "1.0", Currency: "USD", Locale: "en-US"},
		{Owner: "Jane Sanders", Pin: "2222", InterestRate: "1.0", Currency: "USD", Locale: "en-US"},
	}

	_, err := memory.NewAccountRepository(seeds)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already derived")
}

func TestSeedRejectsMismatchedMovementLengths(t *testing.T) {
	seeds := []memory.SeedAccount{
		{
			Owner: "John Smith", Pin: "1111", InterestRate: "1.0", Currency: "USD", Locale: "en-US",
			Movements:     []string{"100", "200"},
			MovementDates: []string{"2021-07-25T14:43:26.374Z"},
		},
	}

	_, err := memory.NewAccountRepository(seeds)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "differ in length")
}

func TestGetByUsernameUnknown(t *testing.T) {
	repo := newSeededRepo(t)

	_, err := repo.GetByUsername(context.Background(), "nobody")
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestSnapshotsAreIsolated(t *testing.T) {
	repo := newSeededRepo(t)

	snapshot, err := repo.GetByUsername(context.Background(), "js")
	require.NoError(t, err)
	snapshot.AppendMovement(decimal.NewFromInt(9999), time.Now())

	fresh, err := repo.GetByUsername(context.Background(), "js")
	require.NoError(t, err)
	assert.Len(t, fresh.Movements, 8)
}

func TestProcessTransferPostsBothLegs(t *testing.T) {
	repo := newSeededRepo(t)
	ctx := context.Background()

	jonasBefore, err := repo.GetByUsername(ctx, "js")
	require.NoError(t, err)
	jessicaBefore, err := repo.GetByUsername(ctx, "jd")
	require.NoError(t, err)

	amount := decimal.RequireFromString("250.50")
	at := time.Date(2021, 8, 28, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.ProcessTransfer(ctx, "js", "jd", amount, at))

	jonas, err := repo.GetByUsername(ctx, "js")
	require.NoError(t, err)
	jessica, err := repo.GetByUsername(ctx, "jd")
	require.NoError(t, err)

	assert.True(t, jonas.Balance().Equal(jonasBefore.Balance().Sub(amount)))
	assert.True(t, jessica.Balance().Equal(jessicaBefore.Balance().Add(amount)))

	require.Len(t, jonas.Movements, 9)
	require.Len(t, jonas.MovementDates, 9)
	require.Len(t, jessica.Movements, 9)
	require.Len(t, jessica.MovementDates, 9)

	assert.True(t, jonas.Movements[8].Equal(amount.Neg()))
	assert.True(t, jessica.Movements[8].Equal(amount))
	assert.Equal(t, at, jonas.MovementDates[8])
	assert.Equal(t, at, jessica.MovementDates[8])
}

func TestProcessTransferUnknownAccount(t *testing.T) {
	repo := newSeededRepo(t)

	err := repo.ProcessTransfer(context.Background(), "js", "nobody", decimal.NewFromInt(10), time.Now())
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)

	jonas, lookupErr := repo.GetByUsername(context.Background(), "js")
	require.NoError(t, lookupErr)
	assert.Len(t, jonas.Movements, 8)
}

func TestRemoveMakesAccountUndiscoverable(t *testing.T) {
	repo := newSeededRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Remove(ctx, "js"))

	_, err := repo.GetByUsername(ctx, "js")
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)

	remaining, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "jd", remaining[0].Username)

	assert.ErrorIs(t, repo.Remove(ctx, "js"), domain.ErrRecordNotFound)
}

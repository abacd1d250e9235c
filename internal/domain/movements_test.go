package domain_test

import (
	"testing"
	"time"

	"github.com/api-sage/bankist-demo-bank/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortMovementsByAmount(t *testing.T) {
	account := &domain.Account{}
	base := time.Date(2021, 7, 1, 0, 0, 0, 0, time.UTC)
	for i, raw := range []string{"430", "-400", "1000", "-650"} {
		account.AppendMovement(decimal.RequireFromString(raw), base.AddDate(0, 0, i))
	}

	pairs := account.MovementPairs()
	sorted := domain.SortMovementsByAmount(pairs)

	require.Len(t, sorted, 4)
	assert.True(t, sorted[0].Amount.Equal(decimal.RequireFromString("-650")))
	assert.True(t, sorted[1].Amount.Equal(decimal.RequireFromString("-400")))
	assert.True(t, sorted[2].Amount.Equal(decimal.RequireFromString("430")))
	assert.True(t, sorted[3].Amount.Equal(decimal.RequireFromString("1000")))

	// Each row keeps its own date through the sort.
	assert.Equal(t, base.AddDate(0, 0, 3), sorted[0].Date)
	assert.Equal(t, base.AddDate(0, 0, 2), sorted[3].Date)

	// The projection never reorders the stored history.
	assert.True(t, account.Movements[0].Equal(decimal.RequireFromString("430")))
	assert.True(t, pairs[0].Amount.Equal(decimal.RequireFromString("430")))
}

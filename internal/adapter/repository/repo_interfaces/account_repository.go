package repo_interfaces

import (
	"context"
	"time"

	"github.com/api-sage/bankist-demo-bank/internal/domain"
	"github.com/shopspring/decimal"
)

type AccountRepository interface {
	GetByUsername(ctx context.Context, username string) (domain.Account, error)
	List(ctx context.Context) ([]domain.Account, error)
	AppendMovement(ctx context.Context, username string, amount decimal.Decimal, at time.Time) error
	ProcessTransfer(ctx context.Context, fromUsername string, toUsername string, amount decimal.Decimal, at time.Time) error
	Remove(ctx context.Context, username string) error
}

package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/api-sage/bankist-demo-bank/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// AccountRepository is the process-lifetime account store. A single
// mutex serializes every read and write so cross-account operations
// (transfers) complete atomically; callers only ever see snapshots.
type AccountRepository struct {
	mu       sync.Mutex
	accounts []*domain.Account
}

// SeedAccount is a raw account record as loaded at startup, before the
// username is derived and the PIN is hashed.
type SeedAccount struct {
	Owner         string
	Pin           string
	InterestRate  string
	Currency      string
	Locale        string
	Movements     []string
	MovementDates []string
}

// NewAccountRepository derives usernames, hashes PINs and materializes
// the seed records. Runs exactly once, before any lookup; duplicate
// derived usernames or mismatched movement/date lengths abort loading.
func NewAccountRepository(seeds []SeedAccount) (*AccountRepository, error) {
	repo := &AccountRepository{}
	seen := make(map[string]string, len(seeds))

	for _, seed := range seeds {
		account, err := materializeSeed(seed)
		if err != nil {
			return nil, fmt.Errorf("seed account %q: %w", seed.Owner, err)
		}

		if owner, dup := seen[account.Username]; dup {
			return nil, fmt.Errorf("seed account %q: username %q already derived for %q", seed.Owner, account.Username, owner)
		}
		seen[account.Username] = account.Owner

		repo.accounts = append(repo.accounts, account)
	}

	return repo, nil
}

func materializeSeed(seed SeedAccount) (*domain.Account, error) {
	if len(seed.Movements) != len(seed.MovementDates) {
		return nil, fmt.Errorf("movements and movement dates differ in length: %d vs %d", len(seed.Movements), len(seed.MovementDates))
	}

	rate, err := decimal.NewFromString(seed.InterestRate)
	if err != nil {
		return nil, fmt.Errorf("parse interest rate: %w", err)
	}

	pinHash, err := bcrypt.GenerateFromPassword([]byte(seed.Pin), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash pin: %w", err)
	}

	account := &domain.Account{
		ID:           uuid.New().String(),
		Owner:        seed.Owner,
		Username:     domain.DeriveUsername(seed.Owner),
		PinHash:      string(pinHash),
		InterestRate: rate,
		Currency:     seed.Currency,
		Locale:       seed.Locale,
		CreatedAt:    time.Now().UTC(),
	}

	for i, raw := range seed.Movements {
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("parse movement %d: %w", i, err)
		}
		at, err := time.Parse(time.RFC3339, seed.MovementDates[i])
		if err != nil {
			return nil, fmt.Errorf("parse movement date %d: %w", i, err)
		}
		account.AppendMovement(amount, at)
	}

	return account, nil
}

func (r *AccountRepository) GetByUsername(_ context.Context, username string) (domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account := r.find(username)
	if account == nil {
		return domain.Account{}, domain.ErrRecordNotFound
	}

	return account.Clone(), nil
}

func (r *AccountRepository) List(_ context.Context) ([]domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.Account, 0, len(r.accounts))
	for _, account := range r.accounts {
		out = append(out, account.Clone())
	}

	return out, nil
}

func (r *AccountRepository) AppendMovement(_ context.Context, username string, amount decimal.Decimal, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	account := r.find(username)
	if account == nil {
		return domain.ErrRecordNotFound
	}

	account.AppendMovement(amount, at)
	return nil
}

// ProcessTransfer posts the debit and the credit as one unit of work:
// both accounts are resolved before either is touched, and both appends
// happen under the same lock with the same timestamp.
func (r *AccountRepository) ProcessTransfer(_ context.Context, fromUsername string, toUsername string, amount decimal.Decimal, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	from := r.find(fromUsername)
	to := r.find(toUsername)
	if from == nil || to == nil {
		return domain.ErrRecordNotFound
	}

	from.AppendMovement(amount.Neg(), at)
	to.AppendMovement(amount, at)
	return nil
}

func (r *AccountRepository) Remove(_ context.Context, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, account := range r.accounts {
		if account.Username == username {
			r.accounts = append(r.accounts[:i], r.accounts[i+1:]...)
			return nil
		}
	}

	return domain.ErrRecordNotFound
}

// find must be called with the lock held.
func (r *AccountRepository) find(username string) *domain.Account {
	for _, account := range r.accounts {
		if account.Username == username {
			return account
		}
	}
	return nil
}

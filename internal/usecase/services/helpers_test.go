package services_test

import (
	"sync"
	"testing"

	"github.com/api-sage/bankist-demo-bank/internal/adapter/repository/memory"
	"github.com/api-sage/bankist-demo-bank/internal/domain"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func seededRepo(t *testing.T) *memory.AccountRepository {
	t.Helper()
	repo, err := memory.NewAccountRepository(memory.DefaultSeedAccounts())
	require.NoError(t, err)
	return repo
}

// fakeSessionManager stands in for the session service so engine tests
// can observe timer resets and session teardown without real timers.
type fakeSessionManager struct {
	mu         sync.Mutex
	session    domain.Session
	active     bool
	resetCalls int
	endReasons []domain.SessionEndReason
}

func newFakeSessionManager(sessionID, username string) *fakeSessionManager {
	return &fakeSessionManager{
		session: domain.Session{ID: sessionID, Username: username},
		active:  true,
	}
}

func (f *fakeSessionManager) Resolve(sessionID string) (domain.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.active || sessionID != f.session.ID {
		return domain.Session{}, domain.ErrNoActiveSession
	}
	return f.session, nil
}

func (f *fakeSessionManager) ResetTimer(sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.active || sessionID != f.session.ID {
		return domain.ErrNoActiveSession
	}
	f.resetCalls++
	return nil
}

func (f *fakeSessionManager) EndSession(sessionID string, reason domain.SessionEndReason) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.active || sessionID != f.session.ID {
		return domain.ErrNoActiveSession
	}
	f.active = false
	f.endReasons = append(f.endReasons, reason)
	return nil
}

func (f *fakeSessionManager) ToggleSorted(sessionID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.active || sessionID != f.session.ID {
		return false, domain.ErrNoActiveSession
	}
	f.session.Sorted = !f.session.Sorted
	return f.session.Sorted, nil
}

func (f *fakeSessionManager) resetCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.resetCalls
}

func (f *fakeSessionManager) endedWith() []domain.SessionEndReason {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.SessionEndReason, len(f.endReasons))
	copy(out, f.endReasons)
	return out
}

func (f *fakeSessionManager) deactivate() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.active = false
}

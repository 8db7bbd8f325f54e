// Package store provides an in-memory ledger.Store for tests and dev.
package store

import (
	"context"
	"sync"

	"github.com/abcampus/finance-engine/ledger"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu      sync.RWMutex
	loans   map[string]ledger.Loan
	pays    map[string]ledger.Payment
	plans   map[string]ledger.SavingsPlan
	userIDs map[string]bool
}

func NewMemory() *Memory {
	return &Memory{
		loans:   make(map[string]ledger.Loan),
		pays:    make(map[string]ledger.Payment),
		plans:   make(map[string]ledger.SavingsPlan),
		userIDs: make(map[string]bool),
	}
}

// =============================================================================
// WRITERS - Test fixture surface, not part of ledger.Store
// =============================================================================

func (m *Memory) PutLoan(l ledger.Loan) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loans[l.ID] = l
	m.userIDs[l.UserID] = true
}

func (m *Memory) PutPayment(p ledger.Payment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pays[p.ID] = p
	m.userIDs[p.UserID] = true
}

func (m *Memory) PutSavingsPlan(sp ledger.SavingsPlan) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.plans[sp.ID] = sp
	m.userIDs[sp.UserID] = true
}

func (m *Memory) PutUser(u ledger.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.userIDs[u.ID] = true
}

// =============================================================================
// ledger.Store IMPLEMENTATION
// =============================================================================

func (m *Memory) Loans(_ context.Context) ([]ledger.Loan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]ledger.Loan, 0, len(m.loans))
	for _, l := range m.loans {
		out = append(out, l)
	}
	return out, nil
}

func (m *Memory) LoansByUser(_ context.Context, userID string) ([]ledger.Loan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []ledger.Loan
	for _, l := range m.loans {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *Memory) Loan(_ context.Context, id string) (*ledger.Loan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	l, ok := m.loans[id]
	if !ok {
		return nil, ledger.ErrNotFound
	}
	return &l, nil
}

func (m *Memory) Payments(_ context.Context) ([]ledger.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]ledger.Payment, 0, len(m.pays))
	for _, p := range m.pays {
		out = append(out, p)
	}
	return out, nil
}

func (m *Memory) PaymentsByUser(_ context.Context, userID string) ([]ledger.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []ledger.Payment
	for _, p := range m.pays {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *Memory) SavingsPlans(_ context.Context) ([]ledger.SavingsPlan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]ledger.SavingsPlan, 0, len(m.plans))
	for _, sp := range m.plans {
		out = append(out, sp)
	}
	return out, nil
}

func (m *Memory) SavingsPlansByUser(_ context.Context, userID string) ([]ledger.SavingsPlan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []ledger.SavingsPlan
	for _, sp := range m.plans {
		if sp.UserID == userID {
			out = append(out, sp)
		}
	}
	return out, nil
}

func (m *Memory) CountUsers(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.userIDs), nil
}

package sqlite_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abcampus/finance-engine/ledger"
	"github.com/abcampus/finance-engine/store/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

// =============================================================================
// ROUND TRIPS
// =============================================================================

func TestStore_LoanRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	approved := time.Date(2025, time.March, 5, 9, 30, 0, 0, time.UTC)
	want := ledger.Loan{
		ID: "loan-1", UserID: "usr-1", Amount: 150000,
		InterestRate: decimal.NewFromInt(12), DurationDays: 60,
		Status:    ledger.LoanActive,
		CreatedAt: time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC),
		ApprovedAt: &approved,
		UpdatedAt:  approved,
	}
	require.NoError(t, store.SaveLoan(ctx, want))

	got, err := store.Loan(ctx, "loan-1")
	require.NoError(t, err)

	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Amount, got.Amount)
	assert.True(t, want.InterestRate.Equal(got.InterestRate))
	assert.Equal(t, want.Status, got.Status)
	require.NotNil(t, got.ApprovedAt)
	assert.True(t, approved.Equal(*got.ApprovedAt))
}

func TestStore_LoanNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Loan(context.Background(), "missing")
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestStore_UnapprovedLoanKeepsNilApproval(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	l := ledger.Loan{
		ID: "loan-2", UserID: "usr-1", Amount: 60000,
		InterestRate: decimal.NewFromInt(8), DurationDays: 30,
		Status:    ledger.LoanPending,
		CreatedAt: time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.SaveLoan(ctx, l))

	got, err := store.Loan(ctx, "loan-2")
	require.NoError(t, err)
	assert.Nil(t, got.ApprovedAt)
}

func TestStore_PaymentRoundTrip_NoGatewayDate(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	p := ledger.Payment{
		ID: "pay-1", LoanID: "loan-1", UserID: "usr-1",
		Amount: 50000, Status: ledger.PaymentProcessing,
		CreatedAt: time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.SavePayment(ctx, p))

	payments, err := store.Payments(ctx)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Nil(t, payments[0].PaymentDate)
	assert.True(t, p.CreatedAt.Equal(payments[0].EffectiveDate()))
}

func TestStore_SavingsPlanRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	sp := ledger.SavingsPlan{
		ID: "sav-1", UserID: "usr-1",
		CurrentBalance: 75000, TotalAmountTarget: 200000,
		Status:    ledger.PlanActive,
		CreatedAt: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.SaveSavingsPlan(ctx, sp))

	plans, err := store.SavingsPlans(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, int64(75000), plans[0].CurrentBalance)
}

// =============================================================================
// SCOPING
// =============================================================================

func TestStore_UserScopedQueries(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	now := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)

	for i, userID := range []string{"usr-a", "usr-a", "usr-b"} {
		l := ledger.Loan{
			ID:     fmt.Sprintf("loan-%s-%d", userID, i),
			UserID: userID, Amount: 1000,
			InterestRate: decimal.Zero, DurationDays: 30,
			Status: ledger.LoanPending, CreatedAt: now, UpdatedAt: now,
		}
		require.NoError(t, store.SaveLoan(ctx, l))
	}

	all, err := store.Loans(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	scoped, err := store.LoansByUser(ctx, "usr-b")
	require.NoError(t, err)
	assert.Len(t, scoped, 1)
	assert.Equal(t, "usr-b", scoped[0].UserID)
}

// =============================================================================
// SEED
// =============================================================================

func TestSeed_LoadsConsistentPortfolio(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, sqlite.Seed(ctx, store, now))
	// Idempotent: reseeding must not duplicate fixed-id rows.
	require.NoError(t, sqlite.Seed(ctx, store, now))

	users, err := store.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, users)

	loans, err := store.Loans(ctx)
	require.NoError(t, err)
	assert.Len(t, loans, 6)

	// Every seeded row must survive normalization and the invariant:
	// validated loans carry an approval timestamp.
	for _, l := range loans {
		if ledger.IsValidated(l) {
			assert.NotNil(t, l.ApprovedAt, "loan %s", l.ID)
		}
	}

	payments, err := store.Payments(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, payments)
}

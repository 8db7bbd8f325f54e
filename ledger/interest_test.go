package ledger_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abcampus/finance-engine/ledger"
)

// =============================================================================
// INTEREST
// =============================================================================

func TestInterest_BasicRate(t *testing.T) {
	// GIVEN: amount=100000, rate=15
	// THEN: interest = 15000
	l := loan(ledger.LoanActive, tsPtr(2025, time.March, 5))
	l.Amount = 100000
	l.InterestRate = decimal.NewFromInt(15)

	assert.Equal(t, int64(15000), ledger.Interest(l))
}

func TestInterest_RoundsHalfAwayFromZero(t *testing.T) {
	// 1005 * 2.5% = 25.125 -> 25; 1010 * 2.5% = 25.25 -> 25; 1020 * 2.5% = 25.5 -> 26
	l := loan(ledger.LoanActive, tsPtr(2025, time.March, 5))
	l.InterestRate = decimal.NewFromFloat(2.5)

	l.Amount = 1005
	assert.Equal(t, int64(25), ledger.Interest(l))

	l.Amount = 1020
	assert.Equal(t, int64(26), ledger.Interest(l))
}

func TestInterest_ZeroRateDefault(t *testing.T) {
	// Missing rates normalize to zero; zero rate means zero interest.
	l := loan(ledger.LoanActive, tsPtr(2025, time.March, 5))
	l.InterestRate = decimal.Zero

	assert.Equal(t, int64(0), ledger.Interest(l))
}

func TestInterest_DefinedRegardlessOfStatus(t *testing.T) {
	// Interest is a pure derivation; callers decide whether it counts.
	for _, status := range []ledger.LoanStatus{
		ledger.LoanPending, ledger.LoanRejected, ledger.LoanCompleted,
	} {
		l := loan(status, nil)
		l.Amount = 200000
		l.InterestRate = decimal.NewFromInt(10)
		assert.Equal(t, int64(20000), ledger.Interest(l), "status %s", status)
	}
}

func TestTotalRepayable(t *testing.T) {
	l := loan(ledger.LoanActive, tsPtr(2025, time.March, 5))
	l.Amount = 200000
	l.InterestRate = decimal.NewFromInt(10)

	assert.Equal(t, int64(220000), ledger.TotalRepayable(l))
}

// =============================================================================
// DUE DATE
// =============================================================================

func TestDueDate_UndefinedWithoutApproval(t *testing.T) {
	// GIVEN: an active loan that somehow has no ApprovedAt
	// THEN: no due date - CreatedAt is not a substitute anchor
	l := loan(ledger.LoanActive, nil)

	_, ok := ledger.DueDate(l)
	assert.False(t, ok)
}

func TestDueDate_ApprovalPlusDuration_EndOfDay(t *testing.T) {
	// GIVEN: approved March 5, 30-day window
	// THEN: due April 4, end of day
	l := loan(ledger.LoanActive, tsPtr(2025, time.March, 5))
	l.DurationDays = 30

	due, ok := ledger.DueDate(l)
	require.True(t, ok)
	assert.Equal(t, 2025, due.Year())
	assert.Equal(t, time.April, due.Month())
	assert.Equal(t, 4, due.Day())
	assert.Equal(t, 23, due.Hour())
	assert.Equal(t, 59, due.Minute())
}

// =============================================================================
// PAST DUE
// =============================================================================

func TestIsPastDue(t *testing.T) {
	l := loan(ledger.LoanActive, tsPtr(2025, time.March, 5))
	l.DurationDays = 30 // due April 4 end of day

	assert.False(t, ledger.IsPastDue(l, ts(2025, time.April, 4)), "on the due day")
	assert.True(t, ledger.IsPastDue(l, ts(2025, time.April, 5)), "day after due")
}

func TestIsPastDue_NeverForCompletedOrUnapproved(t *testing.T) {
	late := ts(2026, time.January, 1)

	completed := loan(ledger.LoanCompleted, tsPtr(2025, time.March, 5))
	assert.False(t, ledger.IsPastDue(completed, late))

	unapproved := loan(ledger.LoanActive, nil)
	assert.False(t, ledger.IsPastDue(unapproved, late))

	pending := loan(ledger.LoanPending, nil)
	assert.False(t, ledger.IsPastDue(pending, late))
}

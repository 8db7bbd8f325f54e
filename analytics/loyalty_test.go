package analytics_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/abcampus/finance-engine/analytics"
	"github.com/abcampus/finance-engine/ledger"
)

func completedLoan(id string, approvedAt time.Time, durationDays int) ledger.Loan {
	l := mkLoan(id, "u1", 100000, ledger.LoanCompleted, approvedAt, &approvedAt)
	l.DurationDays = durationDays
	return l
}

// =============================================================================
// BOUNDS
// =============================================================================

func TestLoyaltyScore_NoHistory_Zero(t *testing.T) {
	assert.Equal(t, 0, analytics.LoyaltyScore(nil, nil))
}

func TestLoyaltyScore_CappedAtFive(t *testing.T) {
	// GIVEN: 20 perfectly on-time loans
	// THEN: score is capped at 5
	approved := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)

	var loans []ledger.Loan
	var payments []ledger.Payment
	for i := 0; i < 20; i++ {
		id := fmt.Sprintf("l%d", i)
		loans = append(loans, completedLoan(id, approved.AddDate(0, 0, i*40), 30))
		payments = append(payments, mkPayment("p"+id, id, "u1", 110000,
			approved.AddDate(0, 0, i*40+5)))
	}

	assert.Equal(t, analytics.MaxLoyaltyScore, analytics.LoyaltyScore(loans, payments))
}

// =============================================================================
// ON-TIME RULES
// =============================================================================

func TestLoyaltyScore_OnTimePayment_CountsOnce(t *testing.T) {
	// Multiple on-time payments for the same loan still count as one.
	approved := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	l := completedLoan("l1", approved, 30)

	payments := []ledger.Payment{
		mkPayment("p1", "l1", "u1", 50000, approved.AddDate(0, 0, 5)),
		mkPayment("p2", "l1", "u1", 60000, approved.AddDate(0, 0, 10)),
	}

	assert.Equal(t, 1, analytics.LoyaltyScore([]ledger.Loan{l}, payments))
}

func TestLoyaltyScore_PaymentOnDueDay_OnTime(t *testing.T) {
	// Due = approval + 30 days, end of day; a payment any time that day
	// is on time (payment date is start-of-day normalized).
	approved := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	l := completedLoan("l1", approved, 30)

	dueDay := approved.AddDate(0, 0, 30).Add(20 * time.Hour)
	payments := []ledger.Payment{mkPayment("p1", "l1", "u1", 110000, dueDay)}

	assert.Equal(t, 1, analytics.LoyaltyScore([]ledger.Loan{l}, payments))
}

func TestLoyaltyScore_LatePayment_NotCounted(t *testing.T) {
	approved := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	l := completedLoan("l1", approved, 30)

	payments := []ledger.Payment{
		mkPayment("p1", "l1", "u1", 110000, approved.AddDate(0, 0, 31)),
	}

	assert.Equal(t, 0, analytics.LoyaltyScore([]ledger.Loan{l}, payments))
}

func TestLoyaltyScore_IgnoresNonCompletedPayments(t *testing.T) {
	approved := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	l := mkLoan("l1", "u1", 100000, ledger.LoanActive, approved, &approved)

	at := approved.AddDate(0, 0, 5)
	p := mkPayment("p1", "l1", "u1", 50000, at)
	p.Status = ledger.PaymentFailed

	assert.Equal(t, 0, analytics.LoyaltyScore([]ledger.Loan{l}, []ledger.Payment{p}))
}

func TestLoyaltyScore_UnapprovedLoanCannotAnchorDueDate(t *testing.T) {
	// A completed payment against an unapproved loan is skipped entirely.
	l := mkLoan("l1", "u1", 100000, ledger.LoanPending,
		time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), nil)

	p := mkPayment("p1", "l1", "u1", 50000, time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, 0, analytics.LoyaltyScore([]ledger.Loan{l}, []ledger.Payment{p}))
}

// =============================================================================
// EXTERNALLY SETTLED LENIENCY
// =============================================================================

func TestLoyaltyScore_CompletedLoanWithoutPayments_CountsAsOnTime(t *testing.T) {
	// Externally settled loans have no payment trail but still count.
	// This leniency is intentional.
	approved := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	l := completedLoan("l1", approved, 30)

	assert.Equal(t, 1, analytics.LoyaltyScore([]ledger.Loan{l}, nil))
}

func TestLoyaltyScore_CompletedLoanWithLatePayment_NotLenient(t *testing.T) {
	// The leniency only applies when there is NO payment trail at all.
	approved := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	l := completedLoan("l1", approved, 30)

	payments := []ledger.Payment{
		mkPayment("p1", "l1", "u1", 110000, approved.AddDate(0, 0, 45)),
	}

	assert.Equal(t, 0, analytics.LoyaltyScore([]ledger.Loan{l}, payments))
}

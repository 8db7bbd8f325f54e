package analytics_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abcampus/finance-engine/analytics"
	"github.com/abcampus/finance-engine/ledger"
)

func mkLoan(id, userID string, amount int64, status ledger.LoanStatus, createdAt time.Time, approvedAt *time.Time) ledger.Loan {
	return ledger.Loan{
		ID:           id,
		UserID:       userID,
		Amount:       amount,
		InterestRate: decimal.NewFromInt(10),
		DurationDays: 30,
		Status:       status,
		CreatedAt:    createdAt,
		ApprovedAt:   approvedAt,
		UpdatedAt:    createdAt,
	}
}

func mkPayment(id, loanID, userID string, amount int64, at time.Time) ledger.Payment {
	return ledger.Payment{
		ID: id, LoanID: loanID, UserID: userID,
		Amount: amount, Status: ledger.PaymentCompleted,
		PaymentDate: &at, CreatedAt: at,
	}
}

// =============================================================================
// DENSE SERIES
// =============================================================================

func TestActivitySeries_Year_AlwaysTwelveBuckets(t *testing.T) {
	// GIVEN: a year range and ZERO underlying records
	// THEN: exactly 12 buckets, monotonically ordered by month key
	r := resolve(t, analytics.PeriodYear)

	series := analytics.ActivitySeries(nil, nil, r)

	require.Len(t, series, 12)
	assert.Equal(t, "2025-01", series[0].Bucket)
	assert.Equal(t, "2025-12", series[11].Bucket)
	for i := 1; i < len(series); i++ {
		assert.Less(t, series[i-1].Bucket, series[i].Bucket)
	}
	for _, p := range series {
		assert.Zero(t, p.LoansCreated)
		assert.Zero(t, p.PaymentsAmount)
	}
}

func TestActivitySeries_Week_SevenDailyBuckets(t *testing.T) {
	r := resolve(t, analytics.PeriodWeek)

	series := analytics.ActivitySeries(nil, nil, r)

	require.Len(t, series, 7)
	assert.Equal(t, "2025-05-08", series[0].Bucket)
	assert.Equal(t, "2025-05-14", series[6].Bucket)
}

func TestActivitySeries_Quarter_WeeklyBucketsCoverWholeQuarter(t *testing.T) {
	// Q2 2025 is April 1 .. June 30 (91 days): 13 full weeks + 1 trailing.
	r := resolve(t, analytics.PeriodQuarter)

	series := analytics.ActivitySeries(nil, nil, r)

	require.NotEmpty(t, series)
	assert.Equal(t, "2025-04-01", series[0].Bucket)
	// Dense across the whole quarter, not truncated at "now" (May 14).
	last := series[len(series)-1]
	assert.Equal(t, time.June, last.Start.Month())
}

// =============================================================================
// BUCKET ASSIGNMENT
// =============================================================================

func TestActivitySeries_AssignsRecordsToSingleBuckets(t *testing.T) {
	r := resolve(t, analytics.PeriodMonth) // May 1 .. May 14, daily

	approved := time.Date(2025, time.May, 3, 16, 0, 0, 0, time.UTC)
	loans := []ledger.Loan{
		mkLoan("l1", "u1", 100000, ledger.LoanActive,
			time.Date(2025, time.May, 2, 9, 0, 0, 0, time.UTC), &approved),
		// Created outside the span: contributes nothing.
		mkLoan("l2", "u2", 50000, ledger.LoanPending,
			time.Date(2025, time.April, 20, 9, 0, 0, 0, time.UTC), nil),
	}
	payments := []ledger.Payment{
		mkPayment("p1", "l1", "u1", 30000, time.Date(2025, time.May, 3, 18, 0, 0, 0, time.UTC)),
		mkPayment("p2", "l1", "u1", 20000, time.Date(2025, time.May, 3, 19, 0, 0, 0, time.UTC)),
	}

	series := analytics.ActivitySeries(loans, payments, r)
	require.Len(t, series, 14)

	byBucket := make(map[string]analytics.ActivityPoint)
	for _, p := range series {
		byBucket[p.Bucket] = p
	}

	assert.Equal(t, 1, byBucket["2025-05-02"].LoansCreated)
	assert.Equal(t, 1, byBucket["2025-05-03"].LoansApproved)
	assert.Equal(t, 2, byBucket["2025-05-03"].PaymentsCount)
	assert.Equal(t, int64(50000), byBucket["2025-05-03"].PaymentsAmount)
	assert.Zero(t, byBucket["2025-05-01"].LoansCreated)
}

// =============================================================================
// INTEREST BY MONTH
// =============================================================================

func TestInterestByMonth_BucketsByLastPaymentDate(t *testing.T) {
	// GIVEN: a completed loan repaid across two months
	// THEN: its interest lands once, in the LAST payment's month
	approved := time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)
	l := mkLoan("l1", "u1", 200000, ledger.LoanCompleted,
		time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC), &approved)

	payments := []ledger.Payment{
		mkPayment("p1", "l1", "u1", 100000, time.Date(2025, time.January, 20, 0, 0, 0, 0, time.UTC)),
		mkPayment("p2", "l1", "u1", 120000, time.Date(2025, time.February, 5, 0, 0, 0, 0, time.UTC)),
	}

	series := analytics.InterestByMonth([]ledger.Loan{l}, payments)

	require.Len(t, series, 1)
	assert.Equal(t, "2025-02", series[0].Month)
	assert.Equal(t, int64(20000), series[0].Interest)
}

func TestInterestByMonth_FallsBackToUpdatedAt(t *testing.T) {
	approved := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	l := mkLoan("l1", "u1", 100000, ledger.LoanCompleted,
		time.Date(2025, time.February, 25, 0, 0, 0, 0, time.UTC), &approved)
	l.UpdatedAt = time.Date(2025, time.April, 2, 0, 0, 0, 0, time.UTC)

	series := analytics.InterestByMonth([]ledger.Loan{l}, nil)

	require.Len(t, series, 1)
	assert.Equal(t, "2025-04", series[0].Month)
}

func TestInterestByMonth_ExcludesUncompletedAndUnvalidated(t *testing.T) {
	approved := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	loans := []ledger.Loan{
		mkLoan("active", "u1", 100000, ledger.LoanActive,
			time.Date(2025, time.February, 25, 0, 0, 0, 0, time.UTC), &approved),
		mkLoan("pending", "u1", 100000, ledger.LoanPending,
			time.Date(2025, time.February, 25, 0, 0, 0, 0, time.UTC), nil),
	}

	assert.Empty(t, analytics.InterestByMonth(loans, nil))
}

func TestInterestByMonth_CapsAtTwelveMostRecent(t *testing.T) {
	// 15 completed loans, one per month: only the 12 most recent survive.
	var loans []ledger.Loan
	for i := 0; i < 15; i++ {
		created := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC).AddDate(0, i, 0)
		approved := created
		l := mkLoan("l"+created.Format("2006-01"), "u1", 100000, ledger.LoanCompleted, created, &approved)
		l.UpdatedAt = created
		loans = append(loans, l)
	}

	series := analytics.InterestByMonth(loans, nil)

	require.Len(t, series, 12)
	assert.Equal(t, "2024-04", series[0].Month)
	assert.Equal(t, "2025-03", series[11].Month)
}

/*
Package analytics turns raw ledger rows into the numbers the dashboards
display.

PURPOSE:
  This is the aggregation engine: given immutable Loan/Payment/
  SavingsPlan collections and a resolved period, it produces totals,
  rates, dense chart series, the all-time status distribution, the
  interest trend, and the top-borrower ranking. The same engine backs
  the admin dashboard, the analytics and statistics pages, and the
  client dashboard, so the numbers finally agree across views.

PURITY:
  The engine performs no I/O, holds no state, and never mutates its
  inputs. Aggregating the same snapshot twice yields identical output;
  all results are order-independent (sums, counts, max) and series are
  sorted by bucket key before they leave the package.

PERIOD VS ALL-TIME:
  Metrics named *InPeriod are filtered through the resolved range
  (loans by CreatedAt, validations by ApprovedAt, payments by their
  effective date). Everything else - total paid, interest split, status
  distribution, top borrowers - is an all-time snapshot, matching what
  the dashboards have always shown side by side.

ROUNDING AND ZEROES:
  Percentages and averages round half away from zero via decimal, the
  same rule as per-loan interest. Empty denominators yield 0, never NaN
  or an error.

SEE ALSO:
  - period.go: range resolution
  - series.go: dense chart series
  - borrowers.go, loyalty.go
  - ledger: record shapes and per-loan rules
*/
package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/abcampus/finance-engine/ledger"
)

// =============================================================================
// REPORT - The engine's full output
// =============================================================================

// StatusDistribution is the all-time loan status breakdown. Active merges
// active, approved, and overdue - the oversight view cares about "money out
// the door", not workflow substates.
type StatusDistribution struct {
	Pending   int
	Active    int
	Completed int
	Rejected  int
}

// Report is every metric the dashboards render, computed in one pass over
// one snapshot. Monetary fields are in the smallest currency unit;
// RepaymentRate is an integer percentage.
type Report struct {
	Period Range

	// Totals (all-time counts over the snapshot).
	TotalUsers     int
	TotalLoans     int
	ActiveLoans    int
	CompletedLoans int
	PendingLoans   int
	RejectedLoans  int

	// Money (all-time).
	TotalLoanAmount     int64 // validated principal
	TotalPaidAmount     int64 // all payments, no status filter (see design note)
	InterestCollected   int64 // validated + completed
	InterestOutstanding int64 // validated, not completed
	RepaymentRate       int   // round(paid / validated principal * 100)
	AverageLoanAmount   int64 // round(validated principal / validated count)

	// Period-filtered counters.
	LoansCreatedInPeriod   int
	LoansValidatedInPeriod int
	PaymentsInPeriod       int
	PaymentsAmountInPeriod int64

	// Series and rankings.
	Activity           []ActivityPoint
	StatusDistribution StatusDistribution
	InterestByMonth    []InterestPoint
	TopBorrowers       []BorrowerRank

	// Savings (all-time).
	ActiveSavingsPlans  int
	TotalSavingsBalance int64
}

// DefaultTopBorrowers is the ranking depth the dashboards request.
const DefaultTopBorrowers = 5

// =============================================================================
// AGGREGATION
// =============================================================================

// Aggregate computes the full report for one snapshot. topN bounds the
// borrower ranking; pass DefaultTopBorrowers for the stock dashboards.
func Aggregate(loans []ledger.Loan, payments []ledger.Payment, savings []ledger.SavingsPlan, period Range, topN int) Report {
	rep := Report{
		Period:     period,
		TotalLoans: len(loans),
	}

	users := make(map[string]bool)
	validatedCount := 0

	for _, l := range loans {
		users[l.UserID] = true

		switch {
		case ledger.IsActive(l):
			rep.ActiveLoans++
		case ledger.IsCompleted(l):
			rep.CompletedLoans++
		case ledger.IsPending(l):
			rep.PendingLoans++
		case ledger.IsRejected(l):
			rep.RejectedLoans++
		}

		if ledger.IsValidated(l) {
			validatedCount++
			rep.TotalLoanAmount += l.Amount
			if ledger.IsCompleted(l) {
				rep.InterestCollected += ledger.Interest(l)
			} else {
				rep.InterestOutstanding += ledger.Interest(l)
			}
			if l.ApprovedAt != nil && period.Contains(*l.ApprovedAt) {
				rep.LoansValidatedInPeriod++
			}
		}

		if period.Contains(l.CreatedAt) {
			rep.LoansCreatedInPeriod++
		}

		rep.StatusDistribution = bumpDistribution(rep.StatusDistribution, l)
	}

	for _, p := range payments {
		users[p.UserID] = true
		rep.TotalPaidAmount += p.Amount
		if period.Contains(p.EffectiveDate()) {
			rep.PaymentsInPeriod++
			rep.PaymentsAmountInPeriod += p.Amount
		}
	}

	for _, sp := range savings {
		users[sp.UserID] = true
		if sp.Status == ledger.PlanActive {
			rep.ActiveSavingsPlans++
			rep.TotalSavingsBalance += sp.CurrentBalance
		}
	}

	rep.TotalUsers = len(users)
	rep.RepaymentRate = percentage(rep.TotalPaidAmount, rep.TotalLoanAmount)
	rep.AverageLoanAmount = divideRounded(rep.TotalLoanAmount, validatedCount)

	rep.Activity = ActivitySeries(loans, payments, period)
	rep.InterestByMonth = InterestByMonth(loans, payments)
	rep.TopBorrowers = TopBorrowers(loans, topN)

	return rep
}

// bumpDistribution assigns a loan to its all-time distribution bucket.
// Overdue loans count as active here even though IsActive excludes them;
// the distribution is a four-way split and overdue money is still out.
func bumpDistribution(d StatusDistribution, l ledger.Loan) StatusDistribution {
	switch l.Status {
	case ledger.LoanPending:
		d.Pending++
	case ledger.LoanActive, ledger.LoanApproved, ledger.LoanOverdue:
		d.Active++
	case ledger.LoanCompleted:
		d.Completed++
	case ledger.LoanRejected:
		d.Rejected++
	}
	return d
}

// percentage returns round(num / den * 100), or 0 when den is 0.
func percentage(num, den int64) int {
	if den == 0 {
		return 0
	}
	return int(decimal.NewFromInt(num).
		Div(decimal.NewFromInt(den)).
		Mul(decimal.NewFromInt(100)).
		Round(0).
		IntPart())
}

// divideRounded returns round(num / den), or 0 when den is 0.
func divideRounded(num int64, den int) int64 {
	if den == 0 {
		return 0
	}
	return decimal.NewFromInt(num).
		Div(decimal.NewFromInt(int64(den))).
		Round(0).
		IntPart()
}

// =============================================================================
// SAVINGS SELECTION
// =============================================================================

// PrimaryPlan returns "the" savings balance for a user: the ACTIVE plan
// with the largest balance. This is a product decision, not an aggregate -
// plans are deliberately not summed. Ties break by plan ID for determinism.
// Returns false when the user has no active plan.
func PrimaryPlan(plans []ledger.SavingsPlan) (ledger.SavingsPlan, bool) {
	var best ledger.SavingsPlan
	found := false
	for _, sp := range plans {
		if sp.Status != ledger.PlanActive {
			continue
		}
		if !found ||
			sp.CurrentBalance > best.CurrentBalance ||
			(sp.CurrentBalance == best.CurrentBalance && sp.ID < best.ID) {
			best = sp
			found = true
		}
	}
	return best, found
}

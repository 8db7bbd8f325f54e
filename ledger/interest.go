/*
interest.go - Interest and due-date derivation

PURPOSE:
  Derives the two per-loan figures everything else is built from:

  Interest:  round(principal * rate / 100), round-half-away-from-zero.
             Defined for any loan regardless of status; callers decide
             whether it counts as collected (loan completed) or
             outstanding (validated but not completed).

  DueDate:   ApprovedAt + DurationDays, end-of-day normalized.
             Undefined when the loan was never approved - CreatedAt is
             NOT a substitute anchor. The dashboards must not show a
             due date for an unapproved loan.

ROUNDING:
  decimal.Round rounds half away from zero, which matches how the
  presentation layer has always rounded positive amounts. All call
  sites share this one implementation so displayed money figures agree
  across views.

SEE ALSO:
  - classify.go: predicates deciding which loans these figures apply to
  - analytics/loyalty.go: compares payment dates against DueDate
*/
package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultDurationDays is applied at the normalization boundary when a row
// carries no repayment window.
const DefaultDurationDays = 30

var oneHundred = decimal.NewFromInt(100)

// Interest returns the contractual interest for a loan in the smallest
// currency unit: round(amount * rate / 100).
func Interest(l Loan) int64 {
	return decimal.NewFromInt(l.Amount).
		Mul(l.InterestRate).
		Div(oneHundred).
		Round(0).
		IntPart()
}

// TotalRepayable returns principal plus interest.
func TotalRepayable(l Loan) int64 {
	return l.Amount + Interest(l)
}

// DueDate returns the contractual due date: ApprovedAt + DurationDays,
// normalized to the end of its calendar day so a payment made any time on
// the due day counts as on time. The second return is false when the loan
// has no ApprovedAt, even if its status claims it is active.
func DueDate(l Loan) (time.Time, bool) {
	if l.ApprovedAt == nil {
		return time.Time{}, false
	}
	due := l.ApprovedAt.AddDate(0, 0, l.DurationDays)
	return EndOfDay(due), true
}

// IsPastDue reports whether a validated, not-yet-completed loan is past its
// contractual due date at the given instant. Derived only - this never
// mutates the workflow-owned status.
func IsPastDue(l Loan, asOf time.Time) bool {
	if !IsValidated(l) || IsCompleted(l) {
		return false
	}
	due, ok := DueDate(l)
	if !ok {
		return false
	}
	return asOf.After(due)
}

// StartOfDay truncates t to 00:00:00.000 in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay extends t to 23:59:59.999 in its own location.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999000000, t.Location())
}

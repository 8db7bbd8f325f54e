/*
classify.go - Loan status predicates

PURPOSE:
  The single source of truth for loan classification. The dashboards
  historically re-implemented these checks inline with subtle
  differences (some counted overdue loans as active, some did not);
  every aggregate now goes through these predicates instead of
  comparing status strings.

SEE ALSO:
  - interest.go: uses IsValidated/IsCompleted to split collected vs
    outstanding interest
  - analytics: all counters and sums are built on these predicates
*/
package ledger

// IsValidated reports whether an admin has reviewed and accepted the loan:
// ApprovedAt is set and the loan is not pending or rejected. Validated loans
// are the only loans whose principal and interest enter aggregates.
//
// Note the double check: a pending/rejected loan is never validated even if
// a stray ApprovedAt is present in the row.
func IsValidated(l Loan) bool {
	return l.ApprovedAt != nil && l.Status != LoanPending && l.Status != LoanRejected
}

// IsActive reports whether the loan is in its repayment window.
// Covers both "approved" (validated, clock started) and "active"
// (disbursed). Overdue is deliberately NOT active; the status
// distribution merges it separately (see analytics.StatusDistribution).
func IsActive(l Loan) bool {
	return l.Status == LoanActive || l.Status == LoanApproved
}

// IsCompleted reports whether the loan has been fully repaid.
func IsCompleted(l Loan) bool { return l.Status == LoanCompleted }

// IsPending reports whether the loan awaits admin review.
func IsPending(l Loan) bool { return l.Status == LoanPending }

// IsRejected reports whether admin review declined the loan.
func IsRejected(l Loan) bool { return l.Status == LoanRejected }

/*
Package ledger provides the core record types and per-loan accounting rules.

PURPOSE:
  This package contains the normalized in-memory shapes for the three
  entities the analytics engine consumes (Loan, Payment, SavingsPlan),
  plus the pure per-record rules that every aggregate builds on:
  status classification, interest derivation, and due-date derivation.

KEY CONCEPTS IN THIS FILE (types.go):
  - Loan: a disbursed or requested micro-loan (principal + rate + window)
  - Payment: a repayment applied to exactly one loan
  - SavingsPlan: a goal-based savings balance owned by a user
  - Status enums: workflow-driven, mutually exclusive states

DESIGN PRINCIPLES:
  1. Read-only: nothing in this package mutates a record. Records are
     created by the (external) workflow layer and recomputed over on
     every request.
  2. Money as integers: all amounts are int64 in the smallest currency
     unit. Rates use decimal.Decimal to keep rounding exact.
  3. Single source of truth: status predicates live in classify.go and
     every caller uses them instead of re-testing status strings.

SEE ALSO:
  - classify.go: status predicates
  - interest.go: interest and due-date derivation
  - normalize.go: raw row -> typed record conversion
*/
package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// STATUS ENUMS
// =============================================================================

// LoanStatus is the workflow-driven state of a loan. States are mutually
// exclusive and driven by the admin approval flow, never by this engine.
type LoanStatus string

const (
	LoanPending   LoanStatus = "pending"
	LoanApproved  LoanStatus = "approved"
	LoanActive    LoanStatus = "active"
	LoanCompleted LoanStatus = "completed"
	LoanRejected  LoanStatus = "rejected"
	LoanOverdue   LoanStatus = "overdue"
)

// PaymentStatus is the gateway-driven state of a repayment.
type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "pending"
	PaymentProcessing PaymentStatus = "processing"
	PaymentCompleted  PaymentStatus = "completed"
	PaymentFailed     PaymentStatus = "failed"
	PaymentOverdue    PaymentStatus = "overdue"
)

// PlanStatus is the state of a savings plan.
type PlanStatus string

const (
	PlanActive    PlanStatus = "active"
	PlanCompleted PlanStatus = "completed"
)

// =============================================================================
// RECORDS
// =============================================================================

// Loan is a micro-loan request or disbursement.
//
// INVARIANT: ApprovedAt is set if and only if the loan has passed admin
// review (status approved/active/overdue/completed). ApprovedAt, not
// CreatedAt, anchors the repayment clock. A pending or rejected loan
// never carries interest into aggregates.
type Loan struct {
	ID     string
	UserID string

	// Principal in the smallest currency unit. Never negative.
	Amount int64

	// Percentage rate fixed at creation, e.g. 15 for 15%.
	InterestRate decimal.Decimal

	// Contractual repayment window, in days.
	DurationDays int

	Status LoanStatus

	CreatedAt  time.Time
	ApprovedAt *time.Time
	UpdatedAt  time.Time
}

// Payment is a single repayment applied to one loan. Multiple payments may
// apply to the same loan; overpayment is representable and not special-cased.
type Payment struct {
	ID     string
	LoanID string
	UserID string

	// Amount in the smallest currency unit. Never negative.
	Amount int64

	Status PaymentStatus

	// When the money moved. Nil means the gateway did not report a date;
	// EffectiveDate falls back to CreatedAt.
	PaymentDate *time.Time
	CreatedAt   time.Time
}

// EffectiveDate returns PaymentDate, or CreatedAt when the gateway never
// reported one.
func (p Payment) EffectiveDate() time.Time {
	if p.PaymentDate != nil {
		return *p.PaymentDate
	}
	return p.CreatedAt
}

// SavingsPlan is a goal-based savings balance. A user may own several plans;
// dashboards display the active plan with the largest balance (see
// analytics.PrimaryPlan), not a sum.
type SavingsPlan struct {
	ID     string
	UserID string

	CurrentBalance    int64
	TotalAmountTarget int64

	Status    PlanStatus
	CreatedAt time.Time
}

// User is a registered account holder. Only the façade and store touch
// users; the aggregation engine works purely off loan/payment ownership.
type User struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	CreatedAt time.Time
}

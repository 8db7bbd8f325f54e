/*
normalize.go - Raw storage rows -> typed records

PURPOSE:
  The hosted backend stores loosely-typed rows: nullable rates, nullable
  durations, string timestamps. This is the one place where those rows
  become the typed shapes the engine consumes, so the aggregation code
  never needs defensive nil checks or ad hoc fallbacks.

DEFAULTS (documented, not defensive):
  interest_rate  missing -> 0
  duration_days  missing -> DefaultDurationDays (30)
  approved_at    missing -> nil (due date undefined, loan not validated)
  payment_date   missing -> nil (EffectiveDate falls back to CreatedAt)
  updated_at     missing -> created_at

FAIL FAST (contract violations, never coerced):
  negative amounts, unparseable timestamps, unknown statuses.
  Each failure is a RecordError naming the offending row.

TIMESTAMPS:
  Rows carry RFC 3339 timestamps. Bare dates (YYYY-MM-DD) are also
  accepted since older rows were written that way.
*/
package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// RAW ROW SHAPES - What the storage layer actually returns
// =============================================================================

// RawLoan mirrors a loans-table row before validation.
type RawLoan struct {
	ID           string
	UserID       string
	Amount       int64
	InterestRate *float64
	DurationDays *int64
	Status       string
	CreatedAt    string
	ApprovedAt   *string
	UpdatedAt    *string
}

// RawPayment mirrors a payments-table row before validation.
type RawPayment struct {
	ID          string
	LoanID      string
	UserID      string
	Amount      int64
	Status      string
	PaymentDate *string
	CreatedAt   string
}

// RawSavingsPlan mirrors a savings_plans-table row before validation.
type RawSavingsPlan struct {
	ID                string
	UserID            string
	CurrentBalance    int64
	TotalAmountTarget int64
	Status            string
	CreatedAt         string
}

// =============================================================================
// NORMALIZATION
// =============================================================================

// NormalizeLoan validates and converts a raw loans row.
func NormalizeLoan(r RawLoan) (Loan, error) {
	if r.Amount < 0 {
		return Loan{}, &RecordError{Kind: "loan", ID: r.ID, Field: "amount", Reason: "negative"}
	}

	status, ok := loanStatus(r.Status)
	if !ok {
		return Loan{}, &RecordError{Kind: "loan", ID: r.ID, Field: "status", Reason: "unknown status " + r.Status}
	}

	createdAt, err := parseTimestamp(r.CreatedAt)
	if err != nil {
		return Loan{}, &RecordError{Kind: "loan", ID: r.ID, Field: "created_at", Reason: err.Error()}
	}

	var approvedAt *time.Time
	if r.ApprovedAt != nil {
		t, err := parseTimestamp(*r.ApprovedAt)
		if err != nil {
			return Loan{}, &RecordError{Kind: "loan", ID: r.ID, Field: "approved_at", Reason: err.Error()}
		}
		approvedAt = &t
	}

	updatedAt := createdAt
	if r.UpdatedAt != nil {
		t, err := parseTimestamp(*r.UpdatedAt)
		if err != nil {
			return Loan{}, &RecordError{Kind: "loan", ID: r.ID, Field: "updated_at", Reason: err.Error()}
		}
		updatedAt = t
	}

	rate := decimal.Zero
	if r.InterestRate != nil {
		if *r.InterestRate < 0 {
			return Loan{}, &RecordError{Kind: "loan", ID: r.ID, Field: "interest_rate", Reason: "negative"}
		}
		rate = decimal.NewFromFloat(*r.InterestRate)
	}

	duration := DefaultDurationDays
	if r.DurationDays != nil {
		if *r.DurationDays < 0 {
			return Loan{}, &RecordError{Kind: "loan", ID: r.ID, Field: "duration_days", Reason: "negative"}
		}
		duration = int(*r.DurationDays)
	}

	return Loan{
		ID:           r.ID,
		UserID:       r.UserID,
		Amount:       r.Amount,
		InterestRate: rate,
		DurationDays: duration,
		Status:       status,
		CreatedAt:    createdAt,
		ApprovedAt:   approvedAt,
		UpdatedAt:    updatedAt,
	}, nil
}

// NormalizePayment validates and converts a raw payments row.
func NormalizePayment(r RawPayment) (Payment, error) {
	if r.Amount < 0 {
		return Payment{}, &RecordError{Kind: "payment", ID: r.ID, Field: "amount", Reason: "negative"}
	}

	status, ok := paymentStatus(r.Status)
	if !ok {
		return Payment{}, &RecordError{Kind: "payment", ID: r.ID, Field: "status", Reason: "unknown status " + r.Status}
	}

	createdAt, err := parseTimestamp(r.CreatedAt)
	if err != nil {
		return Payment{}, &RecordError{Kind: "payment", ID: r.ID, Field: "created_at", Reason: err.Error()}
	}

	var paymentDate *time.Time
	if r.PaymentDate != nil {
		t, err := parseTimestamp(*r.PaymentDate)
		if err != nil {
			return Payment{}, &RecordError{Kind: "payment", ID: r.ID, Field: "payment_date", Reason: err.Error()}
		}
		paymentDate = &t
	}

	return Payment{
		ID:          r.ID,
		LoanID:      r.LoanID,
		UserID:      r.UserID,
		Amount:      r.Amount,
		Status:      status,
		PaymentDate: paymentDate,
		CreatedAt:   createdAt,
	}, nil
}

// NormalizeSavingsPlan validates and converts a raw savings_plans row.
func NormalizeSavingsPlan(r RawSavingsPlan) (SavingsPlan, error) {
	if r.CurrentBalance < 0 {
		return SavingsPlan{}, &RecordError{Kind: "savings_plan", ID: r.ID, Field: "current_balance", Reason: "negative"}
	}
	if r.TotalAmountTarget < 0 {
		return SavingsPlan{}, &RecordError{Kind: "savings_plan", ID: r.ID, Field: "target_amount", Reason: "negative"}
	}

	status, ok := planStatus(r.Status)
	if !ok {
		return SavingsPlan{}, &RecordError{Kind: "savings_plan", ID: r.ID, Field: "status", Reason: "unknown status " + r.Status}
	}

	createdAt, err := parseTimestamp(r.CreatedAt)
	if err != nil {
		return SavingsPlan{}, &RecordError{Kind: "savings_plan", ID: r.ID, Field: "created_at", Reason: err.Error()}
	}

	return SavingsPlan{
		ID:                r.ID,
		UserID:            r.UserID,
		CurrentBalance:    r.CurrentBalance,
		TotalAmountTarget: r.TotalAmountTarget,
		Status:            status,
		CreatedAt:         createdAt,
	}, nil
}

// =============================================================================
// HELPERS
// =============================================================================

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &timestampError{value: s}
}

type timestampError struct{ value string }

func (e *timestampError) Error() string { return "unparseable timestamp " + e.value }

func loanStatus(s string) (LoanStatus, bool) {
	switch LoanStatus(s) {
	case LoanPending, LoanApproved, LoanActive, LoanCompleted, LoanRejected, LoanOverdue:
		return LoanStatus(s), true
	}
	return "", false
}

func paymentStatus(s string) (PaymentStatus, bool) {
	switch PaymentStatus(s) {
	case PaymentPending, PaymentProcessing, PaymentCompleted, PaymentFailed, PaymentOverdue:
		return PaymentStatus(s), true
	}
	return "", false
}

func planStatus(s string) (PlanStatus, bool) {
	switch PlanStatus(s) {
	case PlanActive, PlanCompleted:
		return PlanStatus(s), true
	}
	return "", false
}

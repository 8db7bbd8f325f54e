/*
seed.go - Demo portfolio loader

PURPOSE:
  Loads a small, realistic campus-loan portfolio so the dashboards
  render out of the box: a handful of students, loans in every workflow
  state, mobile-money repayments (including a late and a failed one),
  and savings plans. Amounts are in the smallest currency unit.

  Seeding is idempotent: rows use fixed ids where the tests rely on
  them and INSERT OR REPLACE semantics throughout.
*/
package sqlite

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/abcampus/finance-engine/ledger"
)

// Seed populates the store with the demo portfolio, anchored at now.
func Seed(ctx context.Context, s *Store, now time.Time) error {
	users := []ledger.User{
		{ID: "usr-amara", Name: "Amara Okafor", Email: "amara@campus.example", Phone: "+237650000001"},
		{ID: "usr-brice", Name: "Brice Ngando", Email: "brice@campus.example", Phone: "+237650000002"},
		{ID: "usr-clarisse", Name: "Clarisse Mbarga", Email: "clarisse@campus.example", Phone: "+237650000003"},
		{ID: "usr-daniel", Name: "Daniel Fouda", Email: "daniel@campus.example", Phone: "+237650000004"},
	}
	for _, u := range users {
		u.CreatedAt = now.AddDate(0, -6, 0)
		if err := s.SaveUser(ctx, u); err != nil {
			return err
		}
	}

	at := func(daysAgo int) time.Time { return now.AddDate(0, 0, -daysAgo) }
	ptr := func(t time.Time) *time.Time { return &t }

	// Deterministic ids (UUIDv5 over a stable name) keep reseeding
	// idempotent under INSERT OR REPLACE.
	payID := func(name string) string {
		return "pay-" + uuid.NewSHA1(uuid.NameSpaceOID, []byte("seed:payment:"+name)).String()
	}

	loans := []ledger.Loan{
		// Completed on time: anchors the loyalty and interest-collected demos.
		{
			ID: "loan-amara-1", UserID: "usr-amara", Amount: 200000,
			InterestRate: decimal.NewFromInt(10), DurationDays: 30,
			Status: ledger.LoanCompleted, CreatedAt: at(95),
			ApprovedAt: ptr(at(90)), UpdatedAt: at(55),
		},
		// Active, inside its window.
		{
			ID: "loan-amara-2", UserID: "usr-amara", Amount: 150000,
			InterestRate: decimal.NewFromInt(12), DurationDays: 60,
			Status: ledger.LoanActive, CreatedAt: at(25),
			ApprovedAt: ptr(at(20)), UpdatedAt: at(20),
		},
		// Big single borrower: dominates the top-borrowers ranking.
		{
			ID: "loan-brice-1", UserID: "usr-brice", Amount: 500000,
			InterestRate: decimal.NewFromInt(15), DurationDays: 90,
			Status: ledger.LoanActive, CreatedAt: at(40),
			ApprovedAt: ptr(at(35)), UpdatedAt: at(35),
		},
		// Overdue: approved long ago, never repaid.
		{
			ID: "loan-clarisse-1", UserID: "usr-clarisse", Amount: 80000,
			InterestRate: decimal.NewFromInt(8), DurationDays: 30,
			Status: ledger.LoanOverdue, CreatedAt: at(75),
			ApprovedAt: ptr(at(70)), UpdatedAt: at(30),
		},
		// Awaiting review; no approval, no due date.
		{
			ID: "loan-clarisse-2", UserID: "usr-clarisse", Amount: 60000,
			InterestRate: decimal.NewFromInt(8), DurationDays: 30,
			Status: ledger.LoanPending, CreatedAt: at(3), UpdatedAt: at(3),
		},
		// Rejected at review.
		{
			ID: "loan-daniel-1", UserID: "usr-daniel", Amount: 300000,
			InterestRate: decimal.NewFromInt(20), DurationDays: 60,
			Status: ledger.LoanRejected, CreatedAt: at(15), UpdatedAt: at(12),
		},
	}
	for _, l := range loans {
		if err := s.SaveLoan(ctx, l); err != nil {
			return err
		}
	}

	payments := []ledger.Payment{
		// Full repayment of loan-amara-1, well before its due date.
		{
			ID: payID("amara-1-full"), LoanID: "loan-amara-1", UserID: "usr-amara",
			Amount: 220000, Status: ledger.PaymentCompleted,
			PaymentDate: ptr(at(80)), CreatedAt: at(80),
		},
		// Partial repayment on the big loan.
		{
			ID: payID("brice-1-partial"), LoanID: "loan-brice-1", UserID: "usr-brice",
			Amount: 100000, Status: ledger.PaymentCompleted,
			PaymentDate: ptr(at(10)), CreatedAt: at(10),
		},
		// Gateway failure: still summed by the permissive paid-total rule.
		{
			ID: payID("clarisse-1-failed"), LoanID: "loan-clarisse-1", UserID: "usr-clarisse",
			Amount: 40000, Status: ledger.PaymentFailed,
			PaymentDate: ptr(at(32)), CreatedAt: at(32),
		},
		// In-flight mobile-money payment with no gateway date yet.
		{
			ID: payID("amara-2-processing"), LoanID: "loan-amara-2", UserID: "usr-amara",
			Amount: 50000, Status: ledger.PaymentProcessing, CreatedAt: at(1),
		},
	}
	for _, p := range payments {
		if err := s.SavePayment(ctx, p); err != nil {
			return err
		}
	}

	plans := []ledger.SavingsPlan{
		{ID: "sav-amara-1", UserID: "usr-amara", CurrentBalance: 75000, TotalAmountTarget: 200000, Status: ledger.PlanActive, CreatedAt: at(120)},
		{ID: "sav-amara-2", UserID: "usr-amara", CurrentBalance: 30000, TotalAmountTarget: 50000, Status: ledger.PlanActive, CreatedAt: at(60)},
		{ID: "sav-brice-1", UserID: "usr-brice", CurrentBalance: 120000, TotalAmountTarget: 120000, Status: ledger.PlanCompleted, CreatedAt: at(200)},
	}
	for _, sp := range plans {
		if err := s.SaveSavingsPlan(ctx, sp); err != nil {
			return err
		}
	}

	return nil
}

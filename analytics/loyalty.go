/*
loyalty.go - On-time repayment loyalty score

PURPOSE:
  Computes a user's loyalty score: a hard-capped 0-5 integer counting
  loans with at least one on-time completed payment. The score is
  recomputed from scratch on every request; nothing is persisted.

ALGORITHM:
  1. Index the user's loans by id.
  2. For every COMPLETED payment, find its loan. Loans without an
     ApprovedAt are skipped - an unapproved loan cannot anchor a due
     date.
  3. A payment is on time when its effective date (start-of-day) is not
     after the loan's due date (end-of-day). Multiple on-time payments
     for one loan count once (set union).
  4. A completed loan with NO payment rows at all still counts as
     on-time. Externally settled loans (cash at the office, gateway
     reconciliation gaps) are given the benefit of the doubt. This
     leniency is intentional; do not "fix" it here.
  5. Score = min(|on-time set|, 5).
*/
package analytics

import (
	"github.com/abcampus/finance-engine/ledger"
)

// MaxLoyaltyScore caps the score regardless of history length.
const MaxLoyaltyScore = 5

// LoyaltyScore computes one user's loyalty score from their loans and
// payments. Always an integer in [0, MaxLoyaltyScore].
func LoyaltyScore(loans []ledger.Loan, payments []ledger.Payment) int {
	loanByID := make(map[string]ledger.Loan, len(loans))
	for _, l := range loans {
		loanByID[l.ID] = l
	}

	hasPayment := make(map[string]bool)
	onTime := make(map[string]bool)

	for _, p := range payments {
		hasPayment[p.LoanID] = true
		if p.Status != ledger.PaymentCompleted {
			continue
		}
		l, ok := loanByID[p.LoanID]
		if !ok {
			continue
		}
		due, ok := ledger.DueDate(l)
		if !ok {
			continue
		}
		paidOn := ledger.StartOfDay(p.EffectiveDate())
		if !paidOn.After(due) {
			onTime[l.ID] = true
		}
	}

	// Externally settled: completed loans with no payment trail.
	for _, l := range loans {
		if ledger.IsCompleted(l) && !hasPayment[l.ID] {
			onTime[l.ID] = true
		}
	}

	score := len(onTime)
	if score > MaxLoyaltyScore {
		score = MaxLoyaltyScore
	}
	return score
}

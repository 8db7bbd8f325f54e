/*
borrowers.go - Top-borrower ranking

Groups validated loans by owner and ranks by summed principal (interest
excluded). All-time: the ranking never filters by period.
*/
package analytics

import (
	"sort"

	"github.com/abcampus/finance-engine/ledger"
)

// BorrowerRank is one row of the top-borrowers table.
type BorrowerRank struct {
	UserID string

	// TotalPrincipal is the summed validated principal, interest excluded.
	TotalPrincipal int64
	LoansCount     int
	CompletedLoans int
}

// TopBorrowers ranks users by total validated principal, descending, and
// returns at most n rows. Ties break by UserID so the ranking is
// deterministic regardless of input order.
func TopBorrowers(loans []ledger.Loan, n int) []BorrowerRank {
	if n <= 0 {
		return nil
	}

	byUser := make(map[string]*BorrowerRank)
	for _, l := range loans {
		if !ledger.IsValidated(l) {
			continue
		}
		r, ok := byUser[l.UserID]
		if !ok {
			r = &BorrowerRank{UserID: l.UserID}
			byUser[l.UserID] = r
		}
		r.TotalPrincipal += l.Amount
		r.LoansCount++
		if ledger.IsCompleted(l) {
			r.CompletedLoans++
		}
	}

	ranks := make([]BorrowerRank, 0, len(byUser))
	for _, r := range byUser {
		ranks = append(ranks, *r)
	}
	sort.Slice(ranks, func(i, j int) bool {
		if ranks[i].TotalPrincipal != ranks[j].TotalPrincipal {
			return ranks[i].TotalPrincipal > ranks[j].TotalPrincipal
		}
		return ranks[i].UserID < ranks[j].UserID
	})

	if len(ranks) > n {
		ranks = ranks[:n]
	}
	return ranks
}

/*
store.go - Read-side persistence interface

PURPOSE:
  Defines the query surface the Reporting Façade depends on. The
  aggregation engine itself never touches a store - it is handed
  in-memory collections. The façade fetches the three collections as
  independent queries (no cross-table transaction; minor skew between
  tables is an accepted approximation) and feeds them to the engine.

READ-ONLY CONTRACT:
  This interface has no write methods. The workflow layer that creates
  loans, payments, and plans is an external collaborator; concrete
  stores expose their own writers for seeding and tests.

IMPLEMENTATIONS:
  - store/sqlite/sqlite.go: production SQLite store
  - ledger/store/memory.go: in-memory store for tests
*/
package ledger

import "context"

// Store is the read-side query surface for dashboard snapshots.
// Unscoped methods back admin views; ByUser methods back client views.
type Store interface {
	// Loans returns every loan, unordered.
	Loans(ctx context.Context) ([]Loan, error)

	// LoansByUser returns one user's loans, unordered.
	LoansByUser(ctx context.Context, userID string) ([]Loan, error)

	// Loan returns a single loan, or ErrNotFound.
	Loan(ctx context.Context, id string) (*Loan, error)

	// Payments returns every payment, unordered.
	Payments(ctx context.Context) ([]Payment, error)

	// PaymentsByUser returns one user's payments, unordered.
	PaymentsByUser(ctx context.Context, userID string) ([]Payment, error)

	// SavingsPlans returns every savings plan, unordered.
	SavingsPlans(ctx context.Context) ([]SavingsPlan, error)

	// SavingsPlansByUser returns one user's savings plans, unordered.
	SavingsPlansByUser(ctx context.Context, userID string) ([]SavingsPlan, error)

	// CountUsers returns the number of registered users.
	CountUsers(ctx context.Context) (int, error)
}

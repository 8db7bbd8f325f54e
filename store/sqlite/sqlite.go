/*
Package sqlite provides the SQLite-backed ledger.Store.

PURPOSE:
  Implements the read-side query surface the reporting façade depends
  on, plus the writers used by the seed loader and tests. In production
  the same patterns apply to a hosted Postgres - only minor SQL dialect
  differences.

KEY TABLES:
  users:         registered account holders
  loans:         loan requests and disbursements
  payments:      mobile-money repayments
  savings_plans: goal-based savings balances

NORMALIZATION AT THE BOUNDARY:
  Rows are scanned into the ledger's Raw* shapes and pushed through
  ledger.Normalize* before leaving this package. Malformed rows abort
  the query with a RecordError naming the row; the engine never sees a
  half-parsed record.

WAL MODE:
  SQLite is opened with WAL for better read concurrency: dashboards are
  read-heavy and refresh concurrently.

USAGE:
  store, err := sqlite.New("./data/campus.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - ledger/store.go: the interface this implements
  - ledger/store/memory.go: in-memory implementation for tests
  - seed.go: demo portfolio loader
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/abcampus/finance-engine/ledger"
)

// Store implements ledger.Store on SQLite.
type Store struct {
	db *sql.DB
}

// New opens (and migrates) a SQLite store. Use ":memory:" for tests.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		phone TEXT,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS loans (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		amount INTEGER NOT NULL,
		interest_rate REAL,
		duration_days INTEGER,
		status TEXT NOT NULL,
		created_at TEXT NOT NULL,
		approved_at TEXT,
		updated_at TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_loans_user ON loans(user_id);
	CREATE INDEX IF NOT EXISTS idx_loans_status ON loans(status);
	CREATE INDEX IF NOT EXISTS idx_loans_created_at ON loans(created_at);

	CREATE TABLE IF NOT EXISTS payments (
		id TEXT PRIMARY KEY,
		loan_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		amount INTEGER NOT NULL,
		status TEXT NOT NULL,
		payment_date TEXT,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_payments_loan ON payments(loan_id);
	CREATE INDEX IF NOT EXISTS idx_payments_user ON payments(user_id);

	CREATE TABLE IF NOT EXISTS savings_plans (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		current_balance INTEGER NOT NULL,
		target_amount INTEGER NOT NULL,
		status TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_savings_user ON savings_plans(user_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// LOAN QUERIES
// =============================================================================

const loanColumns = `id, user_id, amount, interest_rate, duration_days, status, created_at, approved_at, updated_at`

func (s *Store) Loans(ctx context.Context) ([]ledger.Loan, error) {
	return s.queryLoans(ctx, `SELECT `+loanColumns+` FROM loans`)
}

func (s *Store) LoansByUser(ctx context.Context, userID string) ([]ledger.Loan, error) {
	return s.queryLoans(ctx, `SELECT `+loanColumns+` FROM loans WHERE user_id = ?`, userID)
}

func (s *Store) Loan(ctx context.Context, id string) (*ledger.Loan, error) {
	loans, err := s.queryLoans(ctx, `SELECT `+loanColumns+` FROM loans WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(loans) == 0 {
		return nil, ledger.ErrNotFound
	}
	return &loans[0], nil
}

func (s *Store) queryLoans(ctx context.Context, query string, args ...any) ([]ledger.Loan, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query loans: %w", err)
	}
	defer rows.Close()

	var out []ledger.Loan
	for rows.Next() {
		var raw ledger.RawLoan
		if err := rows.Scan(&raw.ID, &raw.UserID, &raw.Amount, &raw.InterestRate,
			&raw.DurationDays, &raw.Status, &raw.CreatedAt, &raw.ApprovedAt, &raw.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan loan: %w", err)
		}
		loan, err := ledger.NormalizeLoan(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, loan)
	}
	return out, rows.Err()
}

// =============================================================================
// PAYMENT QUERIES
// =============================================================================

const paymentColumns = `id, loan_id, user_id, amount, status, payment_date, created_at`

func (s *Store) Payments(ctx context.Context) ([]ledger.Payment, error) {
	return s.queryPayments(ctx, `SELECT `+paymentColumns+` FROM payments`)
}

func (s *Store) PaymentsByUser(ctx context.Context, userID string) ([]ledger.Payment, error) {
	return s.queryPayments(ctx, `SELECT `+paymentColumns+` FROM payments WHERE user_id = ?`, userID)
}

func (s *Store) queryPayments(ctx context.Context, query string, args ...any) ([]ledger.Payment, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query payments: %w", err)
	}
	defer rows.Close()

	var out []ledger.Payment
	for rows.Next() {
		var raw ledger.RawPayment
		if err := rows.Scan(&raw.ID, &raw.LoanID, &raw.UserID, &raw.Amount,
			&raw.Status, &raw.PaymentDate, &raw.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		p, err := ledger.NormalizePayment(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// =============================================================================
// SAVINGS QUERIES
// =============================================================================

const planColumns = `id, user_id, current_balance, target_amount, status, created_at`

func (s *Store) SavingsPlans(ctx context.Context) ([]ledger.SavingsPlan, error) {
	return s.queryPlans(ctx, `SELECT `+planColumns+` FROM savings_plans`)
}

func (s *Store) SavingsPlansByUser(ctx context.Context, userID string) ([]ledger.SavingsPlan, error) {
	return s.queryPlans(ctx, `SELECT `+planColumns+` FROM savings_plans WHERE user_id = ?`, userID)
}

func (s *Store) queryPlans(ctx context.Context, query string, args ...any) ([]ledger.SavingsPlan, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query savings plans: %w", err)
	}
	defer rows.Close()

	var out []ledger.SavingsPlan
	for rows.Next() {
		var raw ledger.RawSavingsPlan
		if err := rows.Scan(&raw.ID, &raw.UserID, &raw.CurrentBalance,
			&raw.TotalAmountTarget, &raw.Status, &raw.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan savings plan: %w", err)
		}
		sp, err := ledger.NormalizeSavingsPlan(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, sp)
	}
	return out, rows.Err()
}

// =============================================================================
// USER QUERIES
// =============================================================================

func (s *Store) CountUsers(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

// =============================================================================
// WRITERS - Seed and test surface; the workflow layer owns these tables
// =============================================================================

func (s *Store) SaveUser(ctx context.Context, u ledger.User) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO users (id, name, email, phone, created_at) VALUES (?, ?, ?, ?, ?)`,
		u.ID, u.Name, u.Email, u.Phone, u.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

func (s *Store) SaveLoan(ctx context.Context, l ledger.Loan) error {
	var approvedAt any
	if l.ApprovedAt != nil {
		approvedAt = l.ApprovedAt.Format(time.RFC3339)
	}
	rate, _ := l.InterestRate.Float64()
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO loans
		 (id, user_id, amount, interest_rate, duration_days, status, created_at, approved_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.UserID, l.Amount, rate, l.DurationDays, string(l.Status),
		l.CreatedAt.Format(time.RFC3339), approvedAt, l.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save loan: %w", err)
	}
	return nil
}

func (s *Store) SavePayment(ctx context.Context, p ledger.Payment) error {
	var paymentDate any
	if p.PaymentDate != nil {
		paymentDate = p.PaymentDate.Format(time.RFC3339)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO payments
		 (id, loan_id, user_id, amount, status, payment_date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.LoanID, p.UserID, p.Amount, string(p.Status),
		paymentDate, p.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save payment: %w", err)
	}
	return nil
}

func (s *Store) SaveSavingsPlan(ctx context.Context, sp ledger.SavingsPlan) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO savings_plans
		 (id, user_id, current_balance, target_amount, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		sp.ID, sp.UserID, sp.CurrentBalance, sp.TotalAmountTarget,
		string(sp.Status), sp.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save savings plan: %w", err)
	}
	return nil
}

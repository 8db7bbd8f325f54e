/*
errors.go - Centralized error types for the ledger boundary

PURPOSE:
  Malformed input is a caller contract violation and fails fast at the
  normalization boundary with an error naming the offending record, so
  upstream data corruption is surfaced instead of silently coerced to
  zero. Missing OPTIONAL fields are not errors - they resolve to
  documented defaults (see normalize.go).

USAGE:
  if errors.Is(err, ledger.ErrMalformedRecord) {
      // reject the snapshot, do not aggregate over it
  }

SEE ALSO:
  - normalize.go: the only producer of RecordError
  - api: maps ErrNotFound / ErrMalformedRecord to HTTP statuses
*/
package ledger

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrMalformedRecord is the sentinel wrapped by every RecordError.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrNotFound is returned by stores when a referenced record does not
	// exist.
	ErrNotFound = errors.New("record not found")
)

// =============================================================================
// STRUCTURED ERRORS - Carry the offending record's identity
// =============================================================================

// RecordError describes a single malformed row. It always names the record
// so the upstream table can be inspected directly.
type RecordError struct {
	Kind   string // "loan", "payment", "savings_plan"
	ID     string
	Field  string
	Reason string
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("malformed %s %q: field %s: %s", e.Kind, e.ID, e.Field, e.Reason)
}

func (e *RecordError) Unwrap() error { return ErrMalformedRecord }

/*
handlers.go - Reporting façade HTTP handlers

PURPOSE:
  The only side-effectful component in the system. Each report handler:

  1. Resolves the requested period (explicit clock, see Handler.Now)
  2. Fetches loans/payments/savings as three concurrent independent
     queries (fan-out/fan-in; no cross-table transaction - minor skew
     between tables is an accepted approximation)
  3. Hands the snapshot to the pure aggregation engine
  4. Serializes the result

ERROR HANDLING:
  - 400: unknown period token, bad custom bounds, bad date format
  - 404: unknown loan id
  - 503: any fetch failure. "Data unavailable" is a distinct state and
    is never presented as computed zeroes.
  - 500: malformed rows surfaced by normalization (upstream corruption)

SEE ALSO:
  - dto.go: wire shapes
  - server.go: routing and middleware
  - analytics: the engine these handlers front
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/abcampus/finance-engine/analytics"
	"github.com/abcampus/finance-engine/ledger"
)

// Handler holds the façade's dependencies.
type Handler struct {
	Store ledger.Store
	Log   *logrus.Logger

	// Now supplies the reference instant for period resolution. Defaults
	// to time.Now; tests pin it.
	Now func() time.Time

	// TopN bounds the borrower ranking.
	TopN int
}

// NewHandler creates a handler with stock settings.
func NewHandler(store ledger.Store, log *logrus.Logger) *Handler {
	if log == nil {
		log = logrus.New()
	}
	return &Handler{
		Store: store,
		Log:   log,
		Now:   time.Now,
		TopN:  analytics.DefaultTopBorrowers,
	}
}

// =============================================================================
// SNAPSHOT FETCH - fan-out/fan-in over the three tables
// =============================================================================

type snapshot struct {
	loans    []ledger.Loan
	payments []ledger.Payment
	savings  []ledger.SavingsPlan
}

// fetchSnapshot loads the three collections concurrently. userID == ""
// means the unscoped admin view. The first error wins; a partial snapshot
// is never aggregated.
func (h *Handler) fetchSnapshot(ctx context.Context, userID string) (snapshot, error) {
	var snap snapshot
	errc := make(chan error, 3)

	go func() {
		var err error
		if userID == "" {
			snap.loans, err = h.Store.Loans(ctx)
		} else {
			snap.loans, err = h.Store.LoansByUser(ctx, userID)
		}
		errc <- err
	}()
	go func() {
		var err error
		if userID == "" {
			snap.payments, err = h.Store.Payments(ctx)
		} else {
			snap.payments, err = h.Store.PaymentsByUser(ctx, userID)
		}
		errc <- err
	}()
	go func() {
		var err error
		if userID == "" {
			snap.savings, err = h.Store.SavingsPlans(ctx)
		} else {
			snap.savings, err = h.Store.SavingsPlansByUser(ctx, userID)
		}
		errc <- err
	}()

	var firstErr error
	for i := 0; i < 3; i++ {
		if err := <-errc; err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return snap, firstErr
}

// parsePeriod reads ?period=, ?start=, ?end= into a resolved range.
// Missing period defaults to month, matching the dashboards' default view.
func (h *Handler) parsePeriod(r *http.Request) (analytics.Range, error) {
	token := analytics.PeriodToken(r.URL.Query().Get("period"))
	if token == "" {
		token = analytics.PeriodMonth
	}

	spec := analytics.PeriodSpec{Token: token, Now: h.Now()}
	if token == analytics.PeriodCustom {
		start, err := time.Parse("2006-01-02", r.URL.Query().Get("start"))
		if err != nil {
			return analytics.Range{}, errors.New("custom period requires start=YYYY-MM-DD")
		}
		end, err := time.Parse("2006-01-02", r.URL.Query().Get("end"))
		if err != nil {
			return analytics.Range{}, errors.New("custom period requires end=YYYY-MM-DD")
		}
		spec.CustomStart, spec.CustomEnd = start, end
	}

	return analytics.Resolve(spec)
}

// =============================================================================
// REPORT HANDLERS
// =============================================================================

// AdminReport returns the full unscoped report for the admin dashboards.
func (h *Handler) AdminReport(w http.ResponseWriter, r *http.Request) {
	period, err := h.parsePeriod(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid period", err)
		return
	}

	snap, err := h.fetchSnapshot(r.Context(), "")
	if err != nil {
		h.unavailable(w, err)
		return
	}

	report := analytics.Aggregate(snap.loans, snap.payments, snap.savings, period, h.TopN)
	dto := toReportDTO(report)

	// Engine-side TotalUsers only sees users with activity; the admin view
	// reports registered accounts.
	if count, err := h.Store.CountUsers(r.Context()); err == nil {
		dto.TotalUsers = count
	}

	writeJSON(w, http.StatusOK, dto)
}

// UserReport returns the client-dashboard report: the user's own rows
// through the same engine, plus loyalty score and primary savings plan.
func (h *Handler) UserReport(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	period, err := h.parsePeriod(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid period", err)
		return
	}

	snap, err := h.fetchSnapshot(r.Context(), userID)
	if err != nil {
		h.unavailable(w, err)
		return
	}

	report := analytics.Aggregate(snap.loans, snap.payments, snap.savings, period, h.TopN)
	dto := ClientReportDTO{
		ReportDTO:    toReportDTO(report),
		LoyaltyScore: analytics.LoyaltyScore(snap.loans, snap.payments),
	}
	if plan, ok := analytics.PrimaryPlan(snap.savings); ok {
		dto.PrimarySavings = toSavingsPlanDTO(plan)
	}

	writeJSON(w, http.StatusOK, dto)
}

// UserLoyalty returns just the loyalty score.
func (h *Handler) UserLoyalty(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	loans, err := h.Store.LoansByUser(r.Context(), userID)
	if err != nil {
		h.unavailable(w, err)
		return
	}
	payments, err := h.Store.PaymentsByUser(r.Context(), userID)
	if err != nil {
		h.unavailable(w, err)
		return
	}

	writeJSON(w, http.StatusOK, LoyaltyDTO{
		UserID: userID,
		Score:  analytics.LoyaltyScore(loans, payments),
		Max:    analytics.MaxLoyaltyScore,
	})
}

// LoanSchedule returns the repayment summary for one loan. The due date is
// omitted, not defaulted, for loans that were never approved.
func (h *Handler) LoanSchedule(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	loan, err := h.Store.Loan(r.Context(), id)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Loan not found", nil)
			return
		}
		h.unavailable(w, err)
		return
	}

	dto := LoanScheduleDTO{
		ID:             loan.ID,
		UserID:         loan.UserID,
		Principal:      loan.Amount,
		InterestRate:   loan.InterestRate.String(),
		Interest:       ledger.Interest(*loan),
		TotalRepayable: ledger.TotalRepayable(*loan),
		Status:         string(loan.Status),
		PastDue:        ledger.IsPastDue(*loan, h.Now()),
	}
	if due, ok := ledger.DueDate(*loan); ok {
		s := due.Format("2006-01-02")
		dto.DueDate = &s
	}

	writeJSON(w, http.StatusOK, dto)
}

// Health is the liveness probe.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// HELPERS
// =============================================================================

// unavailable reports a fetch failure as a distinct "data unavailable"
// state. Malformed rows are upstream corruption, not unavailability.
func (h *Handler) unavailable(w http.ResponseWriter, err error) {
	if errors.Is(err, ledger.ErrMalformedRecord) {
		h.Log.WithError(err).Error("snapshot contains malformed rows")
		writeError(w, http.StatusInternalServerError, "Snapshot is corrupt", err)
		return
	}
	h.Log.WithError(err).Warn("snapshot fetch failed")
	writeError(w, http.StatusServiceUnavailable, "Data unavailable", err)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

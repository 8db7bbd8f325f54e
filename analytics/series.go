/*
series.go - Dense time-bucketed series for charting

PURPOSE:
  Produces the chart series behind the dashboard activity graphs and
  the interest-earned trend. Series are DENSE: every bucket across the
  charted span is emitted even when its counts are zero. Sparse series
  break the charts' x-axis (the quarter and year views historically
  rendered with missing weeks/months), so density is a contract here.

BUCKETING:
  daily    one bucket per calendar day across the range
  weekly   7-day buckets anchored at the quarter's first day, covering
           the whole quarter
  monthly  one bucket per month; the year view always yields exactly
           12 buckets for the calendar year

  Each record lands in exactly one bucket by truncating its relevant
  timestamp: CreatedAt for requested loans, ApprovedAt for validated
  loans, EffectiveDate for payments.
*/
package analytics

import (
	"sort"
	"time"

	"github.com/abcampus/finance-engine/ledger"
)

// =============================================================================
// ACTIVITY SERIES
// =============================================================================

// ActivityPoint is one chart bucket of loan/payment activity.
type ActivityPoint struct {
	// Bucket is the chart label: "2006-01-02" for daily and weekly
	// buckets, "2006-01" for monthly buckets.
	Bucket string

	// Start is the bucket's first instant.
	Start time.Time

	LoansCreated   int
	LoansApproved  int
	PaymentsCount  int
	PaymentsAmount int64
}

// ActivitySeries buckets loan and payment activity across the charted span
// of the range. Output is dense and sorted by bucket start.
func ActivitySeries(loans []ledger.Loan, payments []ledger.Payment, r Range) []ActivityPoint {
	from, to := chartSpan(r)
	gran := r.Granularity()

	// Emit every bucket up front so zero-activity buckets survive.
	points := make([]ActivityPoint, 0, 16)
	index := make(map[string]int)
	for cur := from; !cur.After(to); cur = nextBucket(cur, gran) {
		label := bucketLabel(cur, gran)
		index[label] = len(points)
		points = append(points, ActivityPoint{Bucket: label, Start: cur})
	}

	spanEnd := endOfBucket(to, gran)
	assign := func(t time.Time) (int, bool) {
		if t.Before(from) || t.After(spanEnd) {
			return 0, false
		}
		i, ok := index[bucketLabel(truncateToBucket(t, from, gran), gran)]
		return i, ok
	}

	for _, l := range loans {
		if i, ok := assign(l.CreatedAt); ok {
			points[i].LoansCreated++
		}
		if l.ApprovedAt != nil {
			if i, ok := assign(*l.ApprovedAt); ok {
				points[i].LoansApproved++
			}
		}
	}
	for _, p := range payments {
		if i, ok := assign(p.EffectiveDate()); ok {
			points[i].PaymentsCount++
			points[i].PaymentsAmount += p.Amount
		}
	}

	return points
}

// chartSpan returns the first and last bucket starts for a range. Daily
// series span the range itself; weekly series span the whole quarter;
// monthly series span the whole calendar year, so the year view always
// charts 12 months.
func chartSpan(r Range) (time.Time, time.Time) {
	switch r.Granularity() {
	case BucketWeekly:
		quarterEnd := r.Start.AddDate(0, 3, -1)
		lastWeek := r.Start.AddDate(0, 0, daysBetween(r.Start, quarterEnd)/7*7)
		return r.Start, lastWeek
	case BucketMonthly:
		jan := time.Date(r.Start.Year(), time.January, 1, 0, 0, 0, 0, r.Start.Location())
		return jan, jan.AddDate(0, 11, 0)
	default:
		return ledger.StartOfDay(r.Start), ledger.StartOfDay(r.End)
	}
}

// endOfBucket returns the last instant of the bucket starting at t.
func endOfBucket(t time.Time, gran Granularity) time.Time {
	switch gran {
	case BucketWeekly:
		return ledger.EndOfDay(t.AddDate(0, 0, 6))
	case BucketMonthly:
		return ledger.EndOfDay(t.AddDate(0, 1, -1))
	default:
		return ledger.EndOfDay(t)
	}
}

func nextBucket(t time.Time, gran Granularity) time.Time {
	switch gran {
	case BucketWeekly:
		return t.AddDate(0, 0, 7)
	case BucketMonthly:
		return t.AddDate(0, 1, 0)
	default:
		return t.AddDate(0, 0, 1)
	}
}

// truncateToBucket maps a timestamp to its bucket's first instant.
func truncateToBucket(t, from time.Time, gran Granularity) time.Time {
	switch gran {
	case BucketWeekly:
		return from.AddDate(0, 0, daysBetween(from, t)/7*7)
	case BucketMonthly:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	default:
		return ledger.StartOfDay(t)
	}
}

func bucketLabel(start time.Time, gran Granularity) string {
	if gran == BucketMonthly {
		return start.Format("2006-01")
	}
	return start.Format("2006-01-02")
}

func daysBetween(from, to time.Time) int {
	return int(ledger.StartOfDay(to).Sub(ledger.StartOfDay(from)).Hours() / 24)
}

// =============================================================================
// INTEREST-BY-MONTH SERIES
// =============================================================================

// InterestPoint is one month of collected interest.
type InterestPoint struct {
	// Month is the bucket key, "2006-01".
	Month    string
	Interest int64
}

// InterestByMonth sums collected interest per month for validated,
// completed loans. Each loan is bucketed by its last payment date, falling
// back to UpdatedAt and then ApprovedAt when it has no payment rows. Only
// the most recent 12 months with activity are returned, ascending.
func InterestByMonth(loans []ledger.Loan, payments []ledger.Payment) []InterestPoint {
	lastPayment := make(map[string]time.Time)
	for _, p := range payments {
		at := p.EffectiveDate()
		if cur, ok := lastPayment[p.LoanID]; !ok || at.After(cur) {
			lastPayment[p.LoanID] = at
		}
	}

	byMonth := make(map[string]int64)
	for _, l := range loans {
		if !ledger.IsValidated(l) || !ledger.IsCompleted(l) {
			continue
		}
		anchor, ok := lastPayment[l.ID]
		if !ok {
			anchor = l.UpdatedAt
			if anchor.IsZero() && l.ApprovedAt != nil {
				anchor = *l.ApprovedAt
			}
		}
		byMonth[anchor.Format("2006-01")] += ledger.Interest(l)
	}

	keys := make([]string, 0, len(byMonth))
	for k := range byMonth {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) > 12 {
		keys = keys[len(keys)-12:]
	}

	out := make([]InterestPoint, len(keys))
	for i, k := range keys {
		out[i] = InterestPoint{Month: k, Interest: byMonth[k]}
	}
	return out
}

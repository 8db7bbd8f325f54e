/*
period.go - Named period tokens -> concrete time ranges

PURPOSE:
  Maps a dashboard period selector (day/week/month/quarter/year/custom)
  plus an explicit "now" into an inclusive [Start, End] range. Every
  period-filtered metric in the engine uses Range.Contains, so the
  boundary rules live in exactly one place.

RANGE RULES:
  day      [midnight(now), endOfDay(now)]
  week     trailing 7 days: [midnight(now)-6d, endOfDay(now)]
           (NOT calendar-week aligned)
  month    [first of month, endOfDay(now)]
  quarter  [first day of calendar quarter, endOfDay(now)]
  year     [Jan 1, endOfDay(now)]
  custom   caller-supplied dates, each normalized to day boundaries;
           start after end is rejected with ErrInvalidRange, never
           silently swapped.

  Both ends are inclusive: a record at exactly Start or End is in range.

CLOCK:
  "now" is always an explicit parameter. Nothing in this package reads
  the wall clock, which keeps every resolution reproducible in tests.
*/
package analytics

import (
	"errors"
	"fmt"
	"time"

	"github.com/abcampus/finance-engine/ledger"
)

// ErrInvalidRange is returned when a custom period's start falls after its
// end.
var ErrInvalidRange = errors.New("invalid period: start after end")

// PeriodToken names a dashboard period selector.
type PeriodToken string

const (
	PeriodDay     PeriodToken = "day"
	PeriodWeek    PeriodToken = "week"
	PeriodMonth   PeriodToken = "month"
	PeriodQuarter PeriodToken = "quarter"
	PeriodYear    PeriodToken = "year"
	PeriodCustom  PeriodToken = "custom"
)

// PeriodSpec is the caller's period request: a token, the reference
// instant, and for custom periods the explicit bounds.
type PeriodSpec struct {
	Token PeriodToken
	Now   time.Time

	// Only read when Token == PeriodCustom.
	CustomStart time.Time
	CustomEnd   time.Time
}

// Range is an inclusive [Start, End] window with the granularity used for
// chart bucketing.
type Range struct {
	Token PeriodToken
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the range, inclusive both ends.
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

func (r Range) String() string {
	return fmt.Sprintf("[%s, %s]", r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"))
}

// Granularity is the bucket width used when charting a range.
type Granularity int

const (
	BucketDaily Granularity = iota
	BucketWeekly
	BucketMonthly
)

// Granularity returns the chart bucket width for this range: daily for
// day/week/month/custom, weekly for quarter, monthly for year.
func (r Range) Granularity() Granularity {
	switch r.Token {
	case PeriodQuarter:
		return BucketWeekly
	case PeriodYear:
		return BucketMonthly
	default:
		return BucketDaily
	}
}

// Resolve turns a period spec into a concrete range.
func Resolve(spec PeriodSpec) (Range, error) {
	now := spec.Now
	end := ledger.EndOfDay(now)

	switch spec.Token {
	case PeriodDay:
		return Range{Token: spec.Token, Start: ledger.StartOfDay(now), End: end}, nil

	case PeriodWeek:
		return Range{Token: spec.Token, Start: ledger.StartOfDay(now.AddDate(0, 0, -6)), End: end}, nil

	case PeriodMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return Range{Token: spec.Token, Start: start, End: end}, nil

	case PeriodQuarter:
		start := time.Date(now.Year(), quarterStartMonth(now.Month()), 1, 0, 0, 0, 0, now.Location())
		return Range{Token: spec.Token, Start: start, End: end}, nil

	case PeriodYear:
		start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		return Range{Token: spec.Token, Start: start, End: end}, nil

	case PeriodCustom:
		if spec.CustomStart.IsZero() || spec.CustomEnd.IsZero() {
			return Range{}, fmt.Errorf("custom period requires both bounds: %w", ErrInvalidRange)
		}
		start := ledger.StartOfDay(spec.CustomStart)
		customEnd := ledger.EndOfDay(spec.CustomEnd)
		if start.After(customEnd) {
			return Range{}, ErrInvalidRange
		}
		return Range{Token: spec.Token, Start: start, End: customEnd}, nil

	default:
		return Range{}, fmt.Errorf("unknown period token %q", spec.Token)
	}
}

// quarterStartMonth returns the first month of m's calendar quarter.
func quarterStartMonth(m time.Month) time.Month {
	return time.Month((int(m)-1)/3*3 + 1)
}

package policy

import (
	"time"

	"github.com/roamwyth/backend/internal/domain"
)

// Span returns the inclusive calendar range a trip occupies.
//
// Exact dates win. A single exact date is a one-day span. A flexible month
// covers the whole month. ok is false for trips with nothing to place.
func Span(t domain.Trip) (start, end time.Time, ok bool) {
	switch {
	case t.StartDate != nil && t.EndDate != nil:
		start, end = Day(*t.StartDate), Day(*t.EndDate)
		if end.Before(start) {
			end = start
		}
		return start, end, true
	case t.StartDate != nil:
		d := Day(*t.StartDate)
		return d, d, true
	case t.EndDate != nil:
		d := Day(*t.EndDate)
		return d, d, true
	}
	if !t.IsFlexibleDates {
		return time.Time{}, time.Time{}, false
	}
	m, y, ok := ParseFlexibleMonth(t.FlexibleMonth)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	start = time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, -1), true
}

// Overlaps reports whether the inclusive ranges [aStart, aEnd] and
// [bStart, bEnd] share at least one day.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !Day(aEnd).Before(Day(bStart)) && !Day(bEnd).Before(Day(aStart))
}

// MonthWindow returns the first day of today's month and the last day of the
// month n-1 months later.
func MonthWindow(today time.Time, n int) (from, to time.Time) {
	y, m, _ := Day(today).Date()
	from = time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	to = from.AddDate(0, n, -1)
	return from, to
}

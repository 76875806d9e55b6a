// Package policy holds the pure rules shared by every trip read path: which
// temporal bucket a trip falls in and which of its fields a viewer may see.
// Nothing here does I/O; "today" is always supplied by the caller.
package policy

import (
	"sort"
	"strings"
	"time"

	"github.com/roamwyth/backend/internal/domain"
)

// flexibleMidpointDay is the day of month used to place a month-only trip.
const flexibleMidpointDay = 15

// Day drops the time-of-day from t, keeping its calendar date. All date
// comparisons in this package go through Day so intraday clock drift never
// moves a trip between buckets.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseFlexibleMonth parses "<FullMonthName> <4-digit year>", e.g.
// "September 2013". The month name must match exactly, capitalised. ok is
// false for anything else; callers treat that as if no month had been given.
func ParseFlexibleMonth(s string) (month time.Month, year int, ok bool) {
	fields := strings.Fields(s)
	if len(fields) != 2 || len(fields[1]) != 4 {
		return 0, 0, false
	}
	t, err := time.Parse("January 2006", fields[0]+" "+fields[1])
	if err != nil || t.Year() < 1 || fields[0] != t.Month().String() {
		return 0, 0, false
	}
	return t.Month(), t.Year(), true
}

// flexibleReference returns the midpoint date of the trip's flexible month.
func flexibleReference(t domain.Trip) (time.Time, bool) {
	if !t.IsFlexibleDates {
		return time.Time{}, false
	}
	m, y, ok := ParseFlexibleMonth(t.FlexibleMonth)
	if !ok {
		return time.Time{}, false
	}
	return time.Date(y, m, flexibleMidpointDay, 0, 0, 0, 0, time.UTC), true
}

// Classify assigns the trip to exactly one temporal category. Rules are
// evaluated in order and the first match wins:
//
//  1. a logged past trip is always past;
//  2. with no dates, a parseable flexible month is past when its 15th is
//     before today and upcoming otherwise; anything else is undated;
//  3. with both dates, today inside [start, end] is current, a start after
//     today is upcoming, everything else is past;
//  4. with only a start, upcoming if it is after today, else past;
//  5. with only an end, past if it is before today, else upcoming.
func Classify(t domain.Trip, today time.Time) domain.TemporalCategory {
	today = Day(today)

	if t.IsLoggedPastTrip {
		return domain.CategoryPast
	}

	switch {
	case t.StartDate == nil && t.EndDate == nil:
		ref, ok := flexibleReference(t)
		if !ok {
			return domain.CategoryUndated
		}
		if ref.Before(today) {
			return domain.CategoryPast
		}
		return domain.CategoryUpcoming

	case t.StartDate != nil && t.EndDate != nil:
		start, end := Day(*t.StartDate), Day(*t.EndDate)
		if !today.Before(start) && !today.After(end) {
			return domain.CategoryCurrent
		}
		if start.After(today) {
			return domain.CategoryUpcoming
		}
		return domain.CategoryPast

	case t.StartDate != nil:
		if Day(*t.StartDate).After(today) {
			return domain.CategoryUpcoming
		}
		return domain.CategoryPast

	default:
		if Day(*t.EndDate).Before(today) {
			return domain.CategoryPast
		}
		return domain.CategoryUpcoming
	}
}

// effectiveStart is the start date used for ordering: the explicit start,
// else the flexible month midpoint.
func effectiveStart(t domain.Trip) (time.Time, bool) {
	if t.StartDate != nil {
		return Day(*t.StartDate), true
	}
	return flexibleReference(t)
}

// SortForCategory orders trips of a single category for list display.
// The sort is stable, so ties keep their input order.
//
//   - current: end date ascending (soonest-ending first)
//   - upcoming: start ascending; trips without a start use the flexible
//     month, then the end date, and anything left sorts last
//   - past: effective start descending (most recent first), undatable last
//   - undated: input order
func SortForCategory(c domain.TemporalCategory, trips []domain.Trip) {
	switch c {
	case domain.CategoryCurrent:
		sort.SliceStable(trips, func(i, j int) bool {
			return ascending(endKey(trips[i]), endKey(trips[j]))
		})
	case domain.CategoryUpcoming:
		sort.SliceStable(trips, func(i, j int) bool {
			return ascending(upcomingKey(trips[i]), upcomingKey(trips[j]))
		})
	case domain.CategoryPast:
		sort.SliceStable(trips, func(i, j int) bool {
			return descending(sortKey(effectiveStart(trips[i])), sortKey(effectiveStart(trips[j])))
		})
	}
}

// key is an optional date used for ordering; missing keys always sort last.
type key struct {
	t  time.Time
	ok bool
}

func sortKey(t time.Time, ok bool) key { return key{t: t, ok: ok} }

func endKey(t domain.Trip) key {
	if t.EndDate == nil {
		return key{}
	}
	return key{t: Day(*t.EndDate), ok: true}
}

func upcomingKey(t domain.Trip) key {
	if s, ok := effectiveStart(t); ok {
		return key{t: s, ok: true}
	}
	return endKey(t)
}

func ascending(a, b key) bool {
	if a.ok != b.ok {
		return a.ok
	}
	return a.ok && a.t.Before(b.t)
}

func descending(a, b key) bool {
	if a.ok != b.ok {
		return a.ok
	}
	return a.ok && a.t.After(b.t)
}

// Group buckets trips by category relative to today and sorts each bucket
// with SortForCategory. The input slice is not modified.
func Group(trips []domain.Trip, today time.Time) domain.TripGroups[domain.Trip] {
	g := domain.TripGroups[domain.Trip]{
		Current:  []domain.Trip{},
		Upcoming: []domain.Trip{},
		Past:     []domain.Trip{},
		Undated:  []domain.Trip{},
	}
	for _, t := range trips {
		switch Classify(t, today) {
		case domain.CategoryCurrent:
			g.Current = append(g.Current, t)
		case domain.CategoryUpcoming:
			g.Upcoming = append(g.Upcoming, t)
		case domain.CategoryPast:
			g.Past = append(g.Past, t)
		default:
			g.Undated = append(g.Undated, t)
		}
	}
	SortForCategory(domain.CategoryCurrent, g.Current)
	SortForCategory(domain.CategoryUpcoming, g.Upcoming)
	SortForCategory(domain.CategoryPast, g.Past)
	return g
}

package service

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/roamwyth/backend/internal/domain"
	"github.com/roamwyth/backend/internal/policy"
	"github.com/roamwyth/backend/internal/repo"
)

// CalendarService builds the shared calendar: the viewer's own trips plus
// whatever their enabled travel pals' trips disclose, over the number of
// months the viewer chose.
type CalendarService struct {
	prefs repo.PreferencesStore
	pals  repo.PalRepo
	views *ViewService
	now   func() time.Time
}

// NewCalendarService constructs a CalendarService.
func NewCalendarService(prefs repo.PreferencesStore, pals repo.PalRepo, views *ViewService) *CalendarService {
	return &CalendarService{prefs: prefs, pals: pals, views: views, now: time.Now}
}

// placed is a calendar entry before clipping, with its full span.
type placed struct {
	entry      domain.CalendarEntry
	start, end time.Time
}

// Calendar returns the viewer's calendar for the window starting at today's
// month. Entries spanning several months appear in each of them.
func (s *CalendarService) Calendar(ctx context.Context, viewerID uuid.UUID, today time.Time) (domain.Calendar, error) {
	from, to, entries, err := s.build(ctx, viewerID, today)
	if err != nil {
		return domain.Calendar{}, fmt.Errorf("service.CalendarService.Calendar: %w", err)
	}

	cal := domain.Calendar{From: from, To: to, Months: []domain.CalendarMonth{}}
	for m := from; !m.After(to); m = m.AddDate(0, 1, 0) {
		mEnd := m.AddDate(0, 1, -1)
		month := domain.CalendarMonth{Year: m.Year(), Month: m.Month(), Entries: []domain.CalendarEntry{}}
		for _, e := range entries {
			if policy.Overlaps(e.Start, e.End, m, mEnd) {
				month.Entries = append(month.Entries, e)
			}
		}
		cal.Months = append(cal.Months, month)
	}
	return cal, nil
}

// ICS returns the same entries as Calendar encoded as an iCalendar feed of
// all-day events.
func (s *CalendarService) ICS(ctx context.Context, viewerID uuid.UUID, today time.Time) (string, error) {
	_, _, entries, err := s.build(ctx, viewerID, today)
	if err != nil {
		return "", fmt.Errorf("service.CalendarService.ICS: %w", err)
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//roamwyth//shared calendar//EN")
	stamp := s.now().UTC()
	for _, e := range entries {
		ev := cal.AddEvent(fmt.Sprintf("%s-%s@roamwyth", e.TripID, e.UserID))
		ev.SetDtStampTime(stamp)
		ev.SetSummary(e.Label)
		if e.Location != "" {
			ev.SetLocation(e.Location)
		}
		ev.SetAllDayStartAt(e.Start)
		// DTEND is exclusive for all-day events.
		ev.SetAllDayEndAt(e.End.AddDate(0, 0, 1))
	}
	return cal.Serialize(), nil
}

// build collects the clipped, sorted entries for the viewer's window.
func (s *CalendarService) build(ctx context.Context, viewerID uuid.UUID, today time.Time) (time.Time, time.Time, []domain.CalendarEntry, error) {
	prefs, err := s.prefs.Load(ctx, viewerID)
	if err != nil {
		return time.Time{}, time.Time{}, nil, err
	}
	if prefs.Validate() != nil {
		prefs.MonthsToShow = domain.DefaultMonthsToShow
	}
	from, to := policy.MonthWindow(today, prefs.MonthsToShow)

	v, err := s.views.loadViewer(ctx, viewerID)
	if err != nil {
		return time.Time{}, time.Time{}, nil, err
	}

	own, err := s.views.visibleFor(ctx, v, viewerID)
	if err != nil {
		return time.Time{}, time.Time{}, nil, err
	}
	var mine []placed
	for _, vt := range own {
		if p, ok := place(vt, viewerID); ok {
			p.entry.Mine = true
			mine = append(mine, p)
		}
	}

	palIDs, err := s.pals.ListAccepted(ctx, viewerID)
	if err != nil {
		return time.Time{}, time.Time{}, nil, err
	}
	var theirs []placed
	for _, palID := range palIDs {
		if !prefs.FriendEnabled(palID) {
			continue
		}
		visible, err := s.views.visibleFor(ctx, v, palID)
		if err != nil {
			return time.Time{}, time.Time{}, nil, err
		}
		for _, vt := range visible {
			// Trips the viewer is on already show as their own.
			if v.id == vt.Trip.OwnerID || v.onTrip[vt.Trip.ID] {
				continue
			}
			p, ok := place(vt, palID)
			if !ok {
				continue
			}
			for _, m := range mine {
				if policy.Overlaps(p.start, p.end, m.start, m.end) {
					p.entry.Overlaps = true
					break
				}
			}
			theirs = append(theirs, p)
		}
	}

	entries := []domain.CalendarEntry{}
	for _, p := range append(mine, theirs...) {
		if !policy.Overlaps(p.start, p.end, from, to) {
			continue
		}
		e := p.entry
		e.Start = maxTime(p.start, from)
		e.End = minTime(p.end, to)
		entries = append(entries, e)
	}
	slices.SortStableFunc(entries, func(a, b domain.CalendarEntry) int {
		if c := a.Start.Compare(b.Start); c != 0 {
			return c
		}
		if a.Mine != b.Mine {
			if a.Mine {
				return -1
			}
			return 1
		}
		return cmp.Compare(a.Label, b.Label)
	})
	return from, to, entries, nil
}

// place turns a visible trip into an unclipped entry. Trips whose dates are
// hidden, or which have no dates at all, cannot be placed.
func place(vt VisibleTrip, userID uuid.UUID) (placed, bool) {
	if !vt.Disclosure.Dates {
		return placed{}, false
	}
	start, end, ok := policy.Span(vt.Trip)
	if !ok {
		return placed{}, false
	}
	e := domain.CalendarEntry{
		TripID: vt.Trip.ID,
		UserID: userID,
		Label:  vt.Disclosure.Label(vt.Trip.Name),
	}
	if vt.Disclosure.Destination {
		e.Location = vt.Trip.Destination
	}
	return placed{entry: e, start: start, end: end}, true
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

package handler

import (
	"net/http"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/roamwyth/backend/internal/domain"
)

// CalendarEntry is one trip placed on the calendar.
type CalendarEntry struct {
	TripID   uuid.UUID          `json:"trip_id"`
	UserID   uuid.UUID          `json:"user_id"`
	Label    string             `json:"label"`
	Location string             `json:"location,omitempty"`
	Start    openapi_types.Date `json:"start"`
	End      openapi_types.Date `json:"end"`
	Mine     bool               `json:"mine"`
	Overlaps bool               `json:"overlaps"`
}

// CalendarMonth holds the entries touching one month.
type CalendarMonth struct {
	Year    int             `json:"year"`
	Month   int             `json:"month"`
	Entries []CalendarEntry `json:"entries"`
}

// Calendar is the body of GET /calendar.
type Calendar struct {
	From   openapi_types.Date `json:"from"`
	To     openapi_types.Date `json:"to"`
	Months []CalendarMonth    `json:"months"`
}

// GetCalendar handles GET /calendar: the caller's trips alongside the trips
// of enabled travel pals, month by month starting at today's month.
func (s *Server) GetCalendar(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	today, ok := s.today(w, r)
	if !ok {
		return
	}

	cal, err := s.calendar.Calendar(r.Context(), caller, today)
	if err != nil {
		writeServiceError(w, r, err, "calendar")
		return
	}
	writeJSON(w, http.StatusOK, calendarToResponse(cal))
}

// GetCalendarICS handles GET /calendar.ics with the same entries as an
// iCalendar feed.
func (s *Server) GetCalendarICS(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	today, ok := s.today(w, r)
	if !ok {
		return
	}

	feed, err := s.calendar.ICS(r.Context(), caller, today)
	if err != nil {
		writeServiceError(w, r, err, "calendar")
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="roamwyth.ics"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(feed))
}

func calendarToResponse(c domain.Calendar) Calendar {
	months := make([]CalendarMonth, len(c.Months))
	for i, m := range c.Months {
		entries := make([]CalendarEntry, len(m.Entries))
		for j, e := range m.Entries {
			entries[j] = CalendarEntry{
				TripID:   e.TripID,
				UserID:   e.UserID,
				Label:    e.Label,
				Location: e.Location,
				Start:    openapi_types.Date{Time: e.Start},
				End:      openapi_types.Date{Time: e.End},
				Mine:     e.Mine,
				Overlaps: e.Overlaps,
			}
		}
		months[i] = CalendarMonth{Year: m.Year, Month: int(m.Month), Entries: entries}
	}
	return Calendar{
		From:   openapi_types.Date{Time: c.From},
		To:     openapi_types.Date{Time: c.To},
		Months: months,
	}
}

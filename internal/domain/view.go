package domain

import (
	"time"

	"github.com/google/uuid"
)

// TripView is a trip as seen by a particular viewer: hidden fields are blank
// and Label carries either the real name or a placeholder.
type TripView struct {
	TripID        uuid.UUID        `json:"trip_id"`
	OwnerID       uuid.UUID        `json:"owner_id"`
	Role          ViewerRole       `json:"role"`
	Label         string           `json:"label"`
	Destination   string           `json:"destination,omitempty"`
	StartDate     *time.Time       `json:"start_date,omitempty"`
	EndDate       *time.Time       `json:"end_date,omitempty"`
	FlexibleMonth string           `json:"flexible_month,omitempty"`
	Category      TemporalCategory `json:"category"`
	Disclosure    Disclosure       `json:"disclosure"`
}

// CalendarEntry is one trip bar on the shared calendar. Start and End are
// inclusive calendar dates already clipped to the calendar window.
type CalendarEntry struct {
	TripID   uuid.UUID `json:"trip_id"`
	UserID   uuid.UUID `json:"user_id"`
	Label    string    `json:"label"`
	Location string    `json:"location,omitempty"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Mine     bool      `json:"mine"`
	// Overlaps is set on pal entries that intersect one of the viewer's own trips.
	Overlaps bool `json:"overlaps"`
}

// CalendarMonth is one month of the calendar grid.
type CalendarMonth struct {
	Year    int             `json:"year"`
	Month   time.Month      `json:"month"`
	Entries []CalendarEntry `json:"entries"`
}

// Calendar is the viewer's shared calendar over the preference window.
type Calendar struct {
	From   time.Time       `json:"from"`
	To     time.Time       `json:"to"`
	Months []CalendarMonth `json:"months"`
}

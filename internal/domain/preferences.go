package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// Bounds and default for ViewPreferences.MonthsToShow.
const (
	MinMonthsToShow     = 1
	MaxMonthsToShow     = 12
	DefaultMonthsToShow = 3
)

// ViewPreferences holds a user's shared-calendar settings.
//
// EnabledFriendIDs filters which travel pals appear on the calendar; nil
// means every pal is shown, an empty non-nil slice means none.
type ViewPreferences struct {
	MonthsToShow     int         `json:"months_to_show"`
	EnabledFriendIDs []uuid.UUID `json:"enabled_friend_ids"`
}

// DefaultViewPreferences is what a user gets before saving anything.
func DefaultViewPreferences() ViewPreferences {
	return ViewPreferences{MonthsToShow: DefaultMonthsToShow}
}

// Validate checks the preference values against their bounds.
func (p ViewPreferences) Validate() error {
	if p.MonthsToShow < MinMonthsToShow || p.MonthsToShow > MaxMonthsToShow {
		return fmt.Errorf("%w: months_to_show must be between %d and %d",
			ErrValidation, MinMonthsToShow, MaxMonthsToShow)
	}
	return nil
}

// FriendEnabled reports whether the pal should appear on the calendar.
func (p ViewPreferences) FriendEnabled(id uuid.UUID) bool {
	if p.EnabledFriendIDs == nil {
		return true
	}
	for _, f := range p.EnabledFriendIDs {
		if f == id {
			return true
		}
	}
	return false
}

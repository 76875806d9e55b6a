package domain

import (
	"time"

	"github.com/google/uuid"
)

// ParticipantStatus is a user's standing on a trip.
type ParticipantStatus string

const (
	StatusOwner     ParticipantStatus = "owner"
	StatusConfirmed ParticipantStatus = "confirmed"
	StatusInvited   ParticipantStatus = "invited"
	StatusDeclined  ParticipantStatus = "declined"
)

// Participant links a user to a trip.
//
// PersonalVisibilityOverride lets a non-owner hide the trip from their own
// outward-facing calendar. It can only narrow what the trip's Visibility
// discloses; nil means "use the trip's setting".
type Participant struct {
	TripID                     uuid.UUID         `json:"trip_id"`
	UserID                     uuid.UUID         `json:"user_id"`
	Status                     ParticipantStatus `json:"status"`
	PersonalVisibilityOverride *Visibility       `json:"personal_visibility_override,omitempty"`
	CreatedAt                  time.Time         `json:"created_at"`
	UpdatedAt                  time.Time         `json:"updated_at"`
}

// OnTrip reports whether the participant is actually going.
func (p Participant) OnTrip() bool {
	return p.Status == StatusOwner || p.Status == StatusConfirmed
}

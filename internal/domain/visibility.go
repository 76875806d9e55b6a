package domain

import "fmt"

// Visibility is the per-trip disclosure policy towards non-owners.
// The set is closed; code switching over it must handle every constant and
// treat anything else as OnlyMe.
type Visibility string

const (
	VisibilityOnlyMe       Visibility = "only_me"
	VisibilityBusyOnly     Visibility = "busy_only"
	VisibilityDatesOnly    Visibility = "dates_only"
	VisibilityLocationOnly Visibility = "location_only"
	VisibilityFullDetails  Visibility = "full_details"
)

// DefaultVisibility is applied to new trips that do not specify one.
const DefaultVisibility = VisibilityFullDetails

// Valid reports whether v is one of the five known levels.
func (v Visibility) Valid() bool {
	switch v {
	case VisibilityOnlyMe, VisibilityBusyOnly, VisibilityDatesOnly,
		VisibilityLocationOnly, VisibilityFullDetails:
		return true
	}
	return false
}

// ParseVisibility converts a raw string into a Visibility, rejecting unknown
// values with ErrValidation.
func ParseVisibility(s string) (Visibility, error) {
	v := Visibility(s)
	if !v.Valid() {
		return "", fmt.Errorf("%w: unknown visibility %q", ErrValidation, s)
	}
	return v, nil
}

// ViewerRole is the relationship between the person looking at a trip and
// the trip itself.
type ViewerRole string

const (
	RoleOwner       ViewerRole = "owner"
	RoleParticipant ViewerRole = "participant"
	RoleTravelPal   ViewerRole = "travel_pal"
	RoleNone        ViewerRole = "none"
)

// Disclosure says which trip fields a viewer may see.
// Listed is false when the trip must not appear at all; a Listed trip with
// every field hidden renders as a "Busy" block.
type Disclosure struct {
	Listed      bool `json:"listed"`
	Name        bool `json:"name"`
	Destination bool `json:"destination"`
	Dates       bool `json:"dates"`
}

// Placeholder labels substituted for a hidden trip name.
const (
	PlaceholderBusy = "Busy"
	PlaceholderTrip = "Trip"
)

// Label returns the string to show in place of the trip name.
func (d Disclosure) Label(name string) string {
	switch {
	case d.Name:
		return name
	case d.Destination || d.Dates:
		return PlaceholderTrip
	default:
		return PlaceholderBusy
	}
}

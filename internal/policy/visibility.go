package policy

import (
	"log/slog"

	"github.com/roamwyth/backend/internal/domain"
)

var (
	hidden = domain.Disclosure{}
	full   = domain.Disclosure{Listed: true, Name: true, Destination: true, Dates: true}
)

// disclosureFor is the per-level disclosure table. ok is false for values
// outside the closed set.
func disclosureFor(v domain.Visibility) (d domain.Disclosure, ok bool) {
	switch v {
	case domain.VisibilityOnlyMe:
		return hidden, true
	case domain.VisibilityBusyOnly:
		return domain.Disclosure{Listed: true}, true
	case domain.VisibilityDatesOnly:
		return domain.Disclosure{Listed: true, Dates: true}, true
	case domain.VisibilityLocationOnly:
		return domain.Disclosure{Listed: true, Destination: true}, true
	case domain.VisibilityFullDetails:
		return full, true
	}
	return hidden, false
}

// intersect keeps only what both disclosures allow.
func intersect(a, b domain.Disclosure) domain.Disclosure {
	return domain.Disclosure{
		Listed:      a.Listed && b.Listed,
		Name:        a.Name && b.Name,
		Destination: a.Destination && b.Destination,
		Dates:       a.Dates && b.Dates,
	}
}

// Resolve decides which fields of a trip the viewer may see.
//
// The owner sees everything. Anyone else is judged against the effective
// visibility: the trip's base level narrowed by the personal override when
// one is set. An override can hide more than the base, never less. Viewers
// with no relationship see nothing. Unknown roles or visibility values fail
// closed and are logged; an unknown base hides the trip even when a valid
// override is set.
func Resolve(role domain.ViewerRole, base domain.Visibility, override *domain.Visibility) domain.Disclosure {
	if role == domain.RoleOwner {
		return full
	}

	d, ok := disclosureFor(base)
	if !ok {
		slog.Warn("policy: unrecognized trip visibility, hiding trip", "visibility", string(base))
		return hidden
	}
	if override != nil {
		o, ok := disclosureFor(*override)
		if !ok {
			slog.Warn("policy: unrecognized visibility override, hiding trip", "visibility", string(*override))
			return hidden
		}
		d = intersect(d, o)
	}

	switch role {
	case domain.RoleParticipant, domain.RoleTravelPal:
		return d
	case domain.RoleNone:
		return hidden
	}
	slog.Warn("policy: unrecognized viewer role, hiding trip", "role", string(role))
	return hidden
}

// Redact builds the viewer-facing projection of a trip.
func Redact(t domain.Trip, role domain.ViewerRole, d domain.Disclosure, category domain.TemporalCategory) domain.TripView {
	v := domain.TripView{
		TripID:     t.ID,
		OwnerID:    t.OwnerID,
		Role:       role,
		Label:      d.Label(t.Name),
		Category:   category,
		Disclosure: d,
	}
	if d.Destination {
		v.Destination = t.Destination
	}
	if d.Dates {
		v.StartDate = t.StartDate
		v.EndDate = t.EndDate
		if t.IsFlexibleDates {
			v.FlexibleMonth = t.FlexibleMonth
		}
	}
	return v
}

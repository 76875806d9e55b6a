package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/roamwyth/backend/internal/domain"
	"github.com/roamwyth/backend/internal/policy"
	"github.com/roamwyth/backend/internal/repo"
)

// ViewService answers "what may this viewer see of someone's trips".
// It derives the viewer's role per trip and hands the decision to the
// visibility policy; it never returns fields the policy hides.
type ViewService struct {
	trips        repo.TripRepo
	participants repo.ParticipantRepo
	pals         repo.PalRepo
}

// NewViewService constructs a ViewService backed by the provided repos.
func NewViewService(trips repo.TripRepo, participants repo.ParticipantRepo, pals repo.PalRepo) *ViewService {
	return &ViewService{trips: trips, participants: participants, pals: pals}
}

// VisibleTrip is a trip together with the disclosure decided for one viewer.
type VisibleTrip struct {
	Trip       domain.Trip
	Role       domain.ViewerRole
	Disclosure domain.Disclosure
}

// viewer holds the relationships needed to resolve roles for one viewer.
type viewer struct {
	id     uuid.UUID
	onTrip map[uuid.UUID]bool
	pals   map[uuid.UUID]bool
}

func (s *ViewService) loadViewer(ctx context.Context, viewerID uuid.UUID) (viewer, error) {
	rows, err := s.participants.ListByUser(ctx, viewerID)
	if err != nil {
		return viewer{}, err
	}
	palIDs, err := s.pals.ListAccepted(ctx, viewerID)
	if err != nil {
		return viewer{}, err
	}

	v := viewer{
		id:     viewerID,
		onTrip: make(map[uuid.UUID]bool, len(rows)),
		pals:   make(map[uuid.UUID]bool, len(palIDs)),
	}
	for _, p := range rows {
		if p.OnTrip() {
			v.onTrip[p.TripID] = true
		}
	}
	for _, id := range palIDs {
		v.pals[id] = true
	}
	return v, nil
}

// role places the viewer relative to a trip shown on subjectID's profile.
// A travel pal is a pal of either the profile's subject or the trip owner.
func (v viewer) role(t domain.Trip, subjectID uuid.UUID) domain.ViewerRole {
	switch {
	case v.id == t.OwnerID:
		return domain.RoleOwner
	case v.onTrip[t.ID]:
		return domain.RoleParticipant
	case v.pals[subjectID] || v.pals[t.OwnerID]:
		return domain.RoleTravelPal
	default:
		return domain.RoleNone
	}
}

// VisibleTrips returns the trips subjectID owns or has confirmed that
// viewerID may see at all, in repo order.
func (s *ViewService) VisibleTrips(ctx context.Context, viewerID, subjectID uuid.UUID) ([]VisibleTrip, error) {
	v, err := s.loadViewer(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("service.ViewService.VisibleTrips: %w", err)
	}
	result, err := s.visibleFor(ctx, v, subjectID)
	if err != nil {
		return nil, fmt.Errorf("service.ViewService.VisibleTrips: %w", err)
	}
	return result, nil
}

// visibleFor resolves subjectID's trips for an already loaded viewer.
//
// When the subject is on a trip as a participant rather than its owner, the
// subject's personal override narrows what outsiders (travel pals and
// strangers) see. People on the trip see it as the trip allows.
func (s *ViewService) visibleFor(ctx context.Context, v viewer, subjectID uuid.UUID) ([]VisibleTrip, error) {
	trips, err := s.trips.ListForUser(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	var overrides map[uuid.UUID]*domain.Visibility
	for _, t := range trips {
		if t.OwnerID != subjectID {
			overrides, err = s.overridesOf(ctx, subjectID)
			if err != nil {
				return nil, err
			}
			break
		}
	}

	result := make([]VisibleTrip, 0, len(trips))
	for _, t := range trips {
		role := v.role(t, subjectID)

		var override *domain.Visibility
		if t.OwnerID != subjectID && (role == domain.RoleTravelPal || role == domain.RoleNone) {
			override = overrides[t.ID]
		}

		d := policy.Resolve(role, t.Visibility, override)
		if !d.Listed {
			continue
		}
		result = append(result, VisibleTrip{Trip: t, Role: role, Disclosure: d})
	}
	return result, nil
}

func (s *ViewService) overridesOf(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]*domain.Visibility, error) {
	rows, err := s.participants.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	m := make(map[uuid.UUID]*domain.Visibility, len(rows))
	for _, p := range rows {
		if p.PersonalVisibilityOverride != nil {
			m[p.TripID] = p.PersonalVisibilityOverride
		}
	}
	return m, nil
}

// ProfileTrips returns subjectID's trips as viewerID may see them, grouped
// by temporal category relative to today. Hidden fields are blank and the
// label carries a placeholder when the name is hidden.
func (s *ViewService) ProfileTrips(ctx context.Context, viewerID, subjectID uuid.UUID, today time.Time) (domain.TripGroups[domain.TripView], error) {
	visible, err := s.VisibleTrips(ctx, viewerID, subjectID)
	if err != nil {
		return domain.TripGroups[domain.TripView]{}, fmt.Errorf("service.ViewService.ProfileTrips: %w", err)
	}

	byID := make(map[uuid.UUID]VisibleTrip, len(visible))
	trips := make([]domain.Trip, len(visible))
	for i, vt := range visible {
		byID[vt.Trip.ID] = vt
		trips[i] = vt.Trip
	}

	g := policy.Group(trips, today)
	redact := func(c domain.TemporalCategory, ts []domain.Trip) []domain.TripView {
		views := make([]domain.TripView, len(ts))
		for i, t := range ts {
			vt := byID[t.ID]
			views[i] = policy.Redact(t, vt.Role, vt.Disclosure, c)
		}
		return views
	}
	return domain.TripGroups[domain.TripView]{
		Current:  redact(domain.CategoryCurrent, g.Current),
		Upcoming: redact(domain.CategoryUpcoming, g.Upcoming),
		Past:     redact(domain.CategoryPast, g.Past),
		Undated:  redact(domain.CategoryUndated, g.Undated),
	}, nil
}

// TripForViewer returns a single trip as viewerID may see it. A trip the
// viewer may not see at all is reported as domain.ErrNotFound.
func (s *ViewService) TripForViewer(ctx context.Context, viewerID, tripID uuid.UUID, today time.Time) (domain.TripView, error) {
	t, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.TripView{}, fmt.Errorf("service.ViewService.TripForViewer: %w", err)
	}

	role, err := s.roleOf(ctx, viewerID, t)
	if err != nil {
		return domain.TripView{}, fmt.Errorf("service.ViewService.TripForViewer: %w", err)
	}

	d := policy.Resolve(role, t.Visibility, nil)
	if !d.Listed {
		return domain.TripView{}, fmt.Errorf("service.ViewService.TripForViewer: %w", domain.ErrNotFound)
	}
	return policy.Redact(t, role, d, policy.Classify(t, today)), nil
}

// roleOf derives the viewer's role for a single trip without loading the
// viewer's full participation list.
func (s *ViewService) roleOf(ctx context.Context, viewerID uuid.UUID, t domain.Trip) (domain.ViewerRole, error) {
	if viewerID == t.OwnerID {
		return domain.RoleOwner, nil
	}
	p, err := s.participants.Get(ctx, t.ID, viewerID)
	switch {
	case err == nil && p.OnTrip():
		return domain.RoleParticipant, nil
	case err != nil && !isNotFound(err):
		return "", err
	}
	ok, err := s.pals.AreAccepted(ctx, viewerID, t.OwnerID)
	if err != nil {
		return "", err
	}
	if ok {
		return domain.RoleTravelPal, nil
	}
	return domain.RoleNone, nil
}

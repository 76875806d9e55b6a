// Package service contains the business logic for the roamwyth API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// Services depend on repo interfaces and never issue SQL.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/roamwyth/backend/internal/domain"
	"github.com/roamwyth/backend/internal/policy"
	"github.com/roamwyth/backend/internal/repo"
)

// TripService implements business logic for trips and their participants.
// Only a trip's owner may change it or invite people to it.
type TripService struct {
	trips        repo.TripRepo
	participants repo.ParticipantRepo
}

// NewTripService constructs a TripService backed by the provided repos.
func NewTripService(trips repo.TripRepo, participants repo.ParticipantRepo) *TripService {
	return &TripService{trips: trips, participants: participants}
}

// Create validates and persists a new trip owned by trip.OwnerID.
// Returns domain.ErrValidation if input violates business rules.
func (s *TripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	trip = normalizeTrip(trip)
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	result, err := s.trips.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single trip by ID, unredacted.
// Returns domain.ErrNotFound if no trip with that ID exists.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	result, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return result, nil
}

// ListByOwner returns one page of the trips ownerID owns and the total count.
func (s *TripService) ListByOwner(ctx context.Context, ownerID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	trips, total, err := s.trips.ListByOwner(ctx, ownerID, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TripService.ListByOwner: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return trips, total, nil
}

// Overview returns every trip the user owns or has confirmed, bucketed into
// current, upcoming, past and undated relative to today.
func (s *TripService) Overview(ctx context.Context, userID uuid.UUID, today time.Time) (domain.TripGroups[domain.Trip], error) {
	trips, err := s.trips.ListForUser(ctx, userID)
	if err != nil {
		return domain.TripGroups[domain.Trip]{}, fmt.Errorf("service.TripService.Overview: %w", err)
	}
	return policy.Group(trips, today), nil
}

// Update validates and persists changes to an existing trip.
// Returns domain.ErrForbidden if callerID does not own the trip.
func (s *TripService) Update(ctx context.Context, callerID uuid.UUID, trip domain.Trip) (domain.Trip, error) {
	existing, err := s.ownedTrip(ctx, callerID, trip.ID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}

	trip.OwnerID = existing.OwnerID
	trip = normalizeTrip(trip)
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	result, err := s.trips.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a trip. Returns domain.ErrForbidden if callerID does not own it.
func (s *TripService) Delete(ctx context.Context, callerID, id uuid.UUID) error {
	if _, err := s.ownedTrip(ctx, callerID, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	if err := s.trips.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// Invite adds inviteeID to the trip with status invited.
// Returns domain.ErrForbidden unless callerID owns the trip and
// domain.ErrConflict if the invitee is already on it.
func (s *TripService) Invite(ctx context.Context, callerID, tripID, inviteeID uuid.UUID) (domain.Participant, error) {
	trip, err := s.ownedTrip(ctx, callerID, tripID)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("service.TripService.Invite: %w", err)
	}
	if inviteeID == trip.OwnerID {
		return domain.Participant{}, fmt.Errorf("service.TripService.Invite: %w: the owner is already on the trip", domain.ErrValidation)
	}
	p, err := s.participants.Invite(ctx, tripID, inviteeID)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("service.TripService.Invite: %w", err)
	}
	return p, nil
}

// Respond records the caller's answer to an invitation. Accepting moves the
// caller to confirmed, declining to declined; either may be changed later.
func (s *TripService) Respond(ctx context.Context, callerID, tripID uuid.UUID, accept bool) (domain.Participant, error) {
	p, err := s.participants.Get(ctx, tripID, callerID)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("service.TripService.Respond: %w", err)
	}
	if p.Status == domain.StatusOwner {
		return domain.Participant{}, fmt.Errorf("service.TripService.Respond: %w: the owner cannot respond to their own trip", domain.ErrValidation)
	}

	status := domain.StatusDeclined
	if accept {
		status = domain.StatusConfirmed
	}
	p, err = s.participants.SetStatus(ctx, tripID, callerID, status)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("service.TripService.Respond: %w", err)
	}
	return p, nil
}

// SetOverride sets or clears (nil) the caller's personal visibility override.
// Owners control the trip's own visibility instead and are rejected.
func (s *TripService) SetOverride(ctx context.Context, callerID, tripID uuid.UUID, override *domain.Visibility) (domain.Participant, error) {
	if override != nil && !override.Valid() {
		return domain.Participant{}, fmt.Errorf("service.TripService.SetOverride: %w: unknown visibility %q", domain.ErrValidation, *override)
	}
	p, err := s.participants.Get(ctx, tripID, callerID)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("service.TripService.SetOverride: %w", err)
	}
	if p.Status == domain.StatusOwner {
		return domain.Participant{}, fmt.Errorf("service.TripService.SetOverride: %w: owners set the trip visibility instead", domain.ErrValidation)
	}
	p, err = s.participants.SetOverride(ctx, tripID, callerID, override)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("service.TripService.SetOverride: %w", err)
	}
	return p, nil
}

// Participants lists everyone on the trip. Only people with a participant
// row (including pending invitees) may see the list; anyone else gets
// domain.ErrNotFound so the trip's existence is not revealed.
func (s *TripService) Participants(ctx context.Context, callerID, tripID uuid.UUID) ([]domain.Participant, error) {
	if _, err := s.participants.Get(ctx, tripID, callerID); err != nil {
		return nil, fmt.Errorf("service.TripService.Participants: %w", err)
	}
	ps, err := s.participants.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.Participants: %w", err)
	}
	if ps == nil {
		ps = []domain.Participant{}
	}
	return ps, nil
}

// ownedTrip loads the trip and checks callerID owns it.
func (s *TripService) ownedTrip(ctx context.Context, callerID, tripID uuid.UUID) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.Trip{}, err
	}
	if trip.OwnerID != callerID {
		return domain.Trip{}, domain.ErrForbidden
	}
	return trip, nil
}

// normalizeTrip applies defaults before validation.
//   - Name, destination and month are trimmed.
//   - An empty visibility becomes domain.DefaultVisibility.
//   - FlexibleMonth is dropped unless IsFlexibleDates is set.
func normalizeTrip(trip domain.Trip) domain.Trip {
	trip.Name = strings.TrimSpace(trip.Name)
	trip.Destination = strings.TrimSpace(trip.Destination)
	trip.FlexibleMonth = strings.TrimSpace(trip.FlexibleMonth)
	if trip.Visibility == "" {
		trip.Visibility = domain.DefaultVisibility
	}
	if !trip.IsFlexibleDates {
		trip.FlexibleMonth = ""
	}
	return trip
}

// validateTrip enforces business rules common to both Create and Update.
func validateTrip(trip domain.Trip) error {
	if trip.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if trip.StartDate != nil && trip.EndDate != nil && policy.Day(*trip.EndDate).Before(policy.Day(*trip.StartDate)) {
		return fmt.Errorf("%w: end_date must not be before start_date", domain.ErrValidation)
	}
	if !trip.Visibility.Valid() {
		return fmt.Errorf("%w: unknown visibility %q", domain.ErrValidation, trip.Visibility)
	}
	if trip.IsFlexibleDates && trip.StartDate == nil && trip.EndDate == nil {
		if _, _, ok := policy.ParseFlexibleMonth(trip.FlexibleMonth); !ok {
			return fmt.Errorf("%w: flexible_month must look like \"September 2026\"", domain.ErrValidation)
		}
	}
	return nil
}

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/roamwyth/backend/internal/domain"
	"github.com/roamwyth/backend/internal/repo"
)

// PalService implements the travel-pal relationship between two users.
// A pair is pals once the addressee accepts, whichever way round they asked.
type PalService struct {
	pals repo.PalRepo
}

// NewPalService constructs a PalService backed by the provided PalRepo.
func NewPalService(pals repo.PalRepo) *PalService {
	return &PalService{pals: pals}
}

// Request sends a pal request from requesterID to addresseeID.
// Returns domain.ErrValidation for a self-request and domain.ErrConflict if
// the pair already has a pending or accepted relationship.
func (s *PalService) Request(ctx context.Context, requesterID, addresseeID uuid.UUID) (domain.Pal, error) {
	if requesterID == addresseeID {
		return domain.Pal{}, fmt.Errorf("service.PalService.Request: %w: cannot pal yourself", domain.ErrValidation)
	}
	p, err := s.pals.Request(ctx, requesterID, addresseeID)
	if err != nil {
		return domain.Pal{}, fmt.Errorf("service.PalService.Request: %w", err)
	}
	return p, nil
}

// Accept accepts the pending request requesterID sent to addresseeID.
// Returns domain.ErrNotFound if there is no such pending request.
func (s *PalService) Accept(ctx context.Context, addresseeID, requesterID uuid.UUID) (domain.Pal, error) {
	p, err := s.pals.Accept(ctx, requesterID, addresseeID)
	if err != nil {
		return domain.Pal{}, fmt.Errorf("service.PalService.Accept: %w", err)
	}
	return p, nil
}

// Remove ends the relationship, or withdraws or rejects a pending request.
func (s *PalService) Remove(ctx context.Context, userID, otherID uuid.UUID) error {
	if err := s.pals.Delete(ctx, userID, otherID); err != nil {
		return fmt.Errorf("service.PalService.Remove: %w", err)
	}
	return nil
}

// ListAccepted returns the IDs of the user's accepted pals.
// Always returns a non-nil slice so callers can safely range over it.
func (s *PalService) ListAccepted(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	ids, err := s.pals.ListAccepted(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service.PalService.ListAccepted: %w", err)
	}
	if ids == nil {
		ids = []uuid.UUID{}
	}
	return ids, nil
}

// ListPending returns the requests waiting for the user's answer.
func (s *PalService) ListPending(ctx context.Context, userID uuid.UUID) ([]domain.Pal, error) {
	ps, err := s.pals.ListPending(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service.PalService.ListPending: %w", err)
	}
	if ps == nil {
		ps = []domain.Pal{}
	}
	return ps, nil
}

// ArePals reports whether a and b are accepted travel pals.
// Nobody is their own pal.
func (s *PalService) ArePals(ctx context.Context, a, b uuid.UUID) (bool, error) {
	if a == b {
		return false, nil
	}
	ok, err := s.pals.AreAccepted(ctx, a, b)
	if err != nil {
		return false, fmt.Errorf("service.PalService.ArePals: %w", err)
	}
	return ok, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}

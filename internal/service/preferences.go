package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/roamwyth/backend/internal/domain"
	"github.com/roamwyth/backend/internal/repo"
)

// PreferencesService reads and writes a user's calendar view preferences.
type PreferencesService struct {
	store repo.PreferencesStore
}

// NewPreferencesService constructs a PreferencesService over the given store.
func NewPreferencesService(store repo.PreferencesStore) *PreferencesService {
	return &PreferencesService{store: store}
}

// Get returns the user's preferences, or the defaults if none were saved.
func (s *PreferencesService) Get(ctx context.Context, userID uuid.UUID) (domain.ViewPreferences, error) {
	prefs, err := s.store.Load(ctx, userID)
	if err != nil {
		return domain.ViewPreferences{}, fmt.Errorf("service.PreferencesService.Get: %w", err)
	}
	return prefs, nil
}

// Update validates and saves the user's preferences. Duplicate friend IDs
// are collapsed; a nil friend list means "all pals".
func (s *PreferencesService) Update(ctx context.Context, userID uuid.UUID, prefs domain.ViewPreferences) (domain.ViewPreferences, error) {
	if err := prefs.Validate(); err != nil {
		return domain.ViewPreferences{}, fmt.Errorf("service.PreferencesService.Update: %w", err)
	}
	if prefs.EnabledFriendIDs != nil {
		seen := make(map[uuid.UUID]bool, len(prefs.EnabledFriendIDs))
		ids := make([]uuid.UUID, 0, len(prefs.EnabledFriendIDs))
		for _, id := range prefs.EnabledFriendIDs {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
		prefs.EnabledFriendIDs = ids
	}
	if err := s.store.Save(ctx, userID, prefs); err != nil {
		return domain.ViewPreferences{}, fmt.Errorf("service.PreferencesService.Update: %w", err)
	}
	return prefs, nil
}

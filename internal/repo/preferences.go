package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/roamwyth/backend/internal/domain"
)

// PreferencesStore loads and saves a user's calendar view preferences.
// Load returns domain.DefaultViewPreferences when nothing has been saved.
type PreferencesStore interface {
	Load(ctx context.Context, userID uuid.UUID) (domain.ViewPreferences, error)
	Save(ctx context.Context, userID uuid.UUID, prefs domain.ViewPreferences) error
}

type pgPreferencesStore struct {
	db db
}

// NewPreferencesStore constructs a Postgres-backed PreferencesStore.
func NewPreferencesStore(db db) PreferencesStore {
	return &pgPreferencesStore{db: db}
}

// Load reads the user's row. enabled_friend_ids is NULL for "all pals".
func (s *pgPreferencesStore) Load(ctx context.Context, userID uuid.UUID) (domain.ViewPreferences, error) {
	const q = `
		SELECT months_to_show, enabled_friend_ids
		FROM user_preferences
		WHERE user_id = @user_id`

	var (
		months  int
		friends []string
	)
	err := s.db.QueryRow(ctx, q, pgx.NamedArgs{"user_id": userID}).Scan(&months, &friends)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.DefaultViewPreferences(), nil
	}
	if err != nil {
		return domain.ViewPreferences{}, fmt.Errorf("repo.PreferencesStore.Load: %w", err)
	}

	prefs := domain.ViewPreferences{MonthsToShow: months}
	if friends != nil {
		prefs.EnabledFriendIDs = make([]uuid.UUID, 0, len(friends))
		for _, f := range friends {
			id, err := uuid.Parse(f)
			if err != nil {
				return domain.ViewPreferences{}, fmt.Errorf("repo.PreferencesStore.Load: friend id %q: %w", f, err)
			}
			prefs.EnabledFriendIDs = append(prefs.EnabledFriendIDs, id)
		}
	}
	return prefs, nil
}

// Save upserts the user's row.
func (s *pgPreferencesStore) Save(ctx context.Context, userID uuid.UUID, prefs domain.ViewPreferences) error {
	const q = `
		INSERT INTO user_preferences (user_id, months_to_show, enabled_friend_ids)
		VALUES (@user_id, @months_to_show, @enabled_friend_ids)
		ON CONFLICT (user_id) DO UPDATE
		SET months_to_show     = EXCLUDED.months_to_show,
		    enabled_friend_ids = EXCLUDED.enabled_friend_ids,
		    updated_at         = now()`

	var friends []string
	if prefs.EnabledFriendIDs != nil {
		friends = make([]string, len(prefs.EnabledFriendIDs))
		for i, id := range prefs.EnabledFriendIDs {
			friends[i] = id.String()
		}
	}

	_, err := s.db.Exec(ctx, q, pgx.NamedArgs{
		"user_id":            userID,
		"months_to_show":     prefs.MonthsToShow,
		"enabled_friend_ids": friends, // nil becomes NULL
	})
	if err != nil {
		return fmt.Errorf("repo.PreferencesStore.Save: %w", err)
	}
	return nil
}

package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roamwyth/backend/internal/domain"
	"github.com/roamwyth/backend/internal/service"
)

func TestPreferencesService_Get_Defaults(t *testing.T) {
	svc := service.NewPreferencesService((&world{}).prefsStore())

	got, err := svc.Get(context.Background(), alice)

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultMonthsToShow, got.MonthsToShow)
	assert.Nil(t, got.EnabledFriendIDs, "no filter means every pal is shown")
}

func TestPreferencesService_Update(t *testing.T) {
	var saved domain.ViewPreferences
	store := &mockPreferencesStore{
		save: func(_ context.Context, _ uuid.UUID, prefs domain.ViewPreferences) error {
			saved = prefs
			return nil
		},
	}
	svc := service.NewPreferencesService(store)

	got, err := svc.Update(context.Background(), alice, domain.ViewPreferences{
		MonthsToShow:     6,
		EnabledFriendIDs: []uuid.UUID{bob, carol, bob},
	})

	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{bob, carol}, got.EnabledFriendIDs)
	assert.Equal(t, got, saved)
}

func TestPreferencesService_Update_EmptyFilterKept(t *testing.T) {
	store := &mockPreferencesStore{
		save: func(_ context.Context, _ uuid.UUID, _ domain.ViewPreferences) error { return nil },
	}
	svc := service.NewPreferencesService(store)

	got, err := svc.Update(context.Background(), alice, domain.ViewPreferences{
		MonthsToShow:     1,
		EnabledFriendIDs: []uuid.UUID{},
	})

	require.NoError(t, err)
	assert.NotNil(t, got.EnabledFriendIDs, "an empty filter hides every pal")
	assert.Empty(t, got.EnabledFriendIDs)
}

func TestPreferencesService_Update_MonthsOutOfRange(t *testing.T) {
	store := &mockPreferencesStore{
		save: func(_ context.Context, _ uuid.UUID, _ domain.ViewPreferences) error {
			t.Fatal("save must not be called for invalid preferences")
			return nil
		},
	}
	svc := service.NewPreferencesService(store)

	for _, months := range []int{0, 13, -1} {
		_, err := svc.Update(context.Background(), alice, domain.ViewPreferences{MonthsToShow: months})
		assert.ErrorIs(t, err, domain.ErrValidation, "months=%d", months)
	}
}

package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roamwyth/backend/internal/domain"
	"github.com/roamwyth/backend/internal/handler"
)

func TestGetPreferences_200(t *testing.T) {
	h := newHTTPHandler(services{prefs: &mockPreferencesServicer{
		get: func(_ context.Context, _ uuid.UUID) (domain.ViewPreferences, error) {
			return domain.DefaultViewPreferences(), nil
		},
	}})

	rec := do(t, h, http.MethodGet, "/preferences", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"months_to_show":3,"enabled_friend_ids":null}`, rec.Body.String())
}

func TestUpdatePreferences_200(t *testing.T) {
	var got domain.ViewPreferences
	h := newHTTPHandler(services{prefs: &mockPreferencesServicer{
		update: func(_ context.Context, userID uuid.UUID, prefs domain.ViewPreferences) (domain.ViewPreferences, error) {
			assert.Equal(t, alice, userID)
			got = prefs
			return prefs, nil
		},
	}})

	rec := do(t, h, http.MethodPut, "/preferences", map[string]any{
		"months_to_show":     6,
		"enabled_friend_ids": []string{bob.String()},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.ViewPreferences{MonthsToShow: 6, EnabledFriendIDs: []uuid.UUID{bob}}, got)
}

func TestUpdatePreferences_422_MonthsOutOfRange(t *testing.T) {
	tests := []struct {
		months  int
		message string
	}{
		{0, "months_to_show is required"},
		{13, "months_to_show must be at most 12"},
	}
	for _, tc := range tests {
		t.Run(fmt.Sprint(tc.months), func(t *testing.T) {
			h := newHTTPHandler(services{prefs: &mockPreferencesServicer{}})

			rec := do(t, h, http.MethodPut, "/preferences", map[string]any{"months_to_show": tc.months})

			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			resp := decode[handler.ErrorResponse](t, rec)
			assert.Equal(t, tc.message, resp.Error.Message)
		})
	}
}

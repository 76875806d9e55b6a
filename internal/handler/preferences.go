package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/roamwyth/backend/internal/domain"
)

// PreferencesRequest is the body of PUT /preferences. A null
// enabled_friend_ids shows every pal; an empty list shows none.
type PreferencesRequest struct {
	MonthsToShow     int         `json:"months_to_show" validate:"required,min=1,max=12"`
	EnabledFriendIDs []uuid.UUID `json:"enabled_friend_ids"`
}

// GetPreferences handles GET /preferences.
func (s *Server) GetPreferences(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	prefs, err := s.prefs.Get(r.Context(), caller)
	if err != nil {
		writeServiceError(w, r, err, "preferences")
		return
	}
	writeJSON(w, http.StatusOK, prefs)
}

// UpdatePreferences handles PUT /preferences.
func (s *Server) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	var body PreferencesRequest
	if !s.decodeBody(w, r, &body) {
		return
	}

	prefs, err := s.prefs.Update(r.Context(), caller, domain.ViewPreferences{
		MonthsToShow:     body.MonthsToShow,
		EnabledFriendIDs: body.EnabledFriendIDs,
	})
	if err != nil {
		writeServiceError(w, r, err, "preferences")
		return
	}
	writeJSON(w, http.StatusOK, prefs)
}

package handler

import "net/http"

// GetProfileTrips handles GET /users/{id}/trips: the subject's trips as the
// caller may see them, grouped by temporal category.
func (s *Server) GetProfileTrips(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	subject, ok := pathID(w, r)
	if !ok {
		return
	}
	today, ok := s.today(w, r)
	if !ok {
		return
	}

	groups, err := s.views.ProfileTrips(r.Context(), caller, subject, today)
	if err != nil {
		writeServiceError(w, r, err, "user")
		return
	}
	writeJSON(w, http.StatusOK, mapGroups(groups, viewToResponse))
}

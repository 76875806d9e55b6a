package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/roamwyth/backend/internal/domain"
)

// InviteRequest is the body of POST /trips/{id}/participants.
type InviteRequest struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
}

// RespondRequest is the body of PUT /trips/{id}/participants/me.
type RespondRequest struct {
	Status string `json:"status" validate:"required,oneof=confirmed declined"`
}

// OverrideRequest is the body of PUT /trips/{id}/participants/me/override.
// A null visibility clears the override.
type OverrideRequest struct {
	Visibility *string `json:"visibility" validate:"omitempty,oneof=only_me busy_only dates_only location_only full_details"`
}

// ParticipantList is the body of GET /trips/{id}/participants.
type ParticipantList struct {
	Data []domain.Participant `json:"data"`
}

// ListParticipants handles GET /trips/{id}/participants.
func (s *Server) ListParticipants(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	tripID, ok := pathID(w, r)
	if !ok {
		return
	}

	ps, err := s.trips.Participants(r.Context(), caller, tripID)
	if err != nil {
		writeServiceError(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusOK, ParticipantList{Data: ps})
}

// InviteParticipant handles POST /trips/{id}/participants. Owner only.
func (s *Server) InviteParticipant(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	tripID, ok := pathID(w, r)
	if !ok {
		return
	}
	var body InviteRequest
	if !s.decodeBody(w, r, &body) {
		return
	}

	p, err := s.trips.Invite(r.Context(), caller, tripID, body.UserID)
	if err != nil {
		writeServiceError(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// RespondToInvite handles PUT /trips/{id}/participants/me.
func (s *Server) RespondToInvite(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	tripID, ok := pathID(w, r)
	if !ok {
		return
	}
	var body RespondRequest
	if !s.decodeBody(w, r, &body) {
		return
	}

	accept := domain.ParticipantStatus(body.Status) == domain.StatusConfirmed
	p, err := s.trips.Respond(r.Context(), caller, tripID, accept)
	if err != nil {
		writeServiceError(w, r, err, "invitation")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// SetVisibilityOverride handles PUT /trips/{id}/participants/me/override.
func (s *Server) SetVisibilityOverride(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	tripID, ok := pathID(w, r)
	if !ok {
		return
	}
	var body OverrideRequest
	if !s.decodeBody(w, r, &body) {
		return
	}

	var override *domain.Visibility
	if body.Visibility != nil {
		v := domain.Visibility(*body.Visibility)
		override = &v
	}
	p, err := s.trips.SetOverride(r.Context(), caller, tripID, override)
	if err != nil {
		writeServiceError(w, r, err, "participant")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

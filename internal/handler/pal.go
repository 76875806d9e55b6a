package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/roamwyth/backend/internal/domain"
)

// PalRequest is the body of POST /pals.
type PalRequest struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
}

// PalIDList is the body of GET /pals.
type PalIDList struct {
	Data []uuid.UUID `json:"data"`
}

// PalList is the body of GET /pals/pending.
type PalList struct {
	Data []domain.Pal `json:"data"`
}

// PalStatus is the body of GET /pals/{id}.
type PalStatus struct {
	UserID uuid.UUID `json:"user_id"`
	Pals   bool      `json:"pals"`
}

// ListPals handles GET /pals: the IDs of the caller's accepted travel pals.
func (s *Server) ListPals(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	ids, err := s.pals.ListAccepted(r.Context(), caller)
	if err != nil {
		writeServiceError(w, r, err, "pal")
		return
	}
	writeJSON(w, http.StatusOK, PalIDList{Data: ids})
}

// ListPendingPals handles GET /pals/pending: requests awaiting the caller.
func (s *Server) ListPendingPals(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	pending, err := s.pals.ListPending(r.Context(), caller)
	if err != nil {
		writeServiceError(w, r, err, "pal")
		return
	}
	writeJSON(w, http.StatusOK, PalList{Data: pending})
}

// RequestPal handles POST /pals.
func (s *Server) RequestPal(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	var body PalRequest
	if !s.decodeBody(w, r, &body) {
		return
	}

	p, err := s.pals.Request(r.Context(), caller, body.UserID)
	if err != nil {
		writeServiceError(w, r, err, "pal")
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// AcceptPal handles POST /pals/{id}/accept, where id is the requester.
func (s *Server) AcceptPal(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	requester, ok := pathID(w, r)
	if !ok {
		return
	}

	p, err := s.pals.Accept(r.Context(), caller, requester)
	if err != nil {
		writeServiceError(w, r, err, "pal request")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// GetPalStatus handles GET /pals/{id}: whether the caller and id are
// accepted travel pals. Pending requests count as not pals.
func (s *Server) GetPalStatus(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	other, ok := pathID(w, r)
	if !ok {
		return
	}

	pals, err := s.pals.ArePals(r.Context(), caller, other)
	if err != nil {
		writeServiceError(w, r, err, "pal")
		return
	}
	writeJSON(w, http.StatusOK, PalStatus{UserID: other, Pals: pals})
}

// RemovePal handles DELETE /pals/{id}. It removes an accepted relationship
// or withdraws a pending request in either direction.
func (s *Server) RemovePal(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	other, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.pals.Remove(r.Context(), caller, other); err != nil {
		writeServiceError(w, r, err, "pal")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

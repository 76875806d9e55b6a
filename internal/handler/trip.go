package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/roamwyth/backend/internal/domain"
)

// TripRequest is the body of POST /trips and PUT /trips/{id}.
type TripRequest struct {
	Name             string              `json:"name" validate:"required,max=200"`
	Destination      string              `json:"destination" validate:"max=200"`
	StartDate        *openapi_types.Date `json:"start_date"`
	EndDate          *openapi_types.Date `json:"end_date"`
	IsFlexibleDates  bool                `json:"is_flexible_dates"`
	FlexibleMonth    string              `json:"flexible_month" validate:"max=32"`
	IsLoggedPastTrip bool                `json:"is_logged_past_trip"`
	Visibility       string              `json:"visibility" validate:"omitempty,oneof=only_me busy_only dates_only location_only full_details"`
}

// Trip is the owner's unredacted view of a trip.
type Trip struct {
	ID               uuid.UUID           `json:"id"`
	OwnerID          uuid.UUID           `json:"owner_id"`
	Name             string              `json:"name"`
	Destination      string              `json:"destination"`
	StartDate        *openapi_types.Date `json:"start_date,omitempty"`
	EndDate          *openapi_types.Date `json:"end_date,omitempty"`
	IsFlexibleDates  bool                `json:"is_flexible_dates"`
	FlexibleMonth    string              `json:"flexible_month,omitempty"`
	IsLoggedPastTrip bool                `json:"is_logged_past_trip"`
	Visibility       domain.Visibility   `json:"visibility"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

// TripView is a trip as one viewer is allowed to see it.
type TripView struct {
	TripID        uuid.UUID               `json:"trip_id"`
	OwnerID       uuid.UUID               `json:"owner_id"`
	Role          domain.ViewerRole       `json:"role"`
	Label         string                  `json:"label"`
	Destination   string                  `json:"destination,omitempty"`
	StartDate     *openapi_types.Date     `json:"start_date,omitempty"`
	EndDate       *openapi_types.Date     `json:"end_date,omitempty"`
	FlexibleMonth string                  `json:"flexible_month,omitempty"`
	Category      domain.TemporalCategory `json:"category"`
	Disclosure    domain.Disclosure       `json:"disclosure"`
}

// TripGroups is a set of trips bucketed by temporal category.
type TripGroups[T any] struct {
	Current  []T `json:"current"`
	Upcoming []T `json:"upcoming"`
	Past     []T `json:"past"`
	Undated  []T `json:"undated"`
}

// Pagination describes one page of a list response.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// TripList is the body of GET /trips.
type TripList struct {
	Data       []Trip     `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// CreateTrip handles POST /trips. The caller becomes the owner.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	var body TripRequest
	if !s.decodeBody(w, r, &body) {
		return
	}

	trip := requestToTrip(body)
	trip.OwnerID = caller
	created, err := s.trips.Create(r.Context(), trip)
	if err != nil {
		writeServiceError(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusCreated, tripToResponse(created))
}

// ListTrips handles GET /trips: the caller's own trips, newest first.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	page, limit, ok := pageParams(w, r)
	if !ok {
		return
	}

	params := domain.NewPaginationParams(page, limit)
	trips, total, err := s.trips.ListByOwner(r.Context(), caller, params)
	if err != nil {
		writeServiceError(w, r, err, "trip")
		return
	}

	data := make([]Trip, len(trips))
	for i, t := range trips {
		data[i] = tripToResponse(t)
	}
	writeJSON(w, http.StatusOK, TripList{
		Data: data,
		Pagination: Pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: int(total),
		},
	})
}

// GetTripOverview handles GET /trips/overview: every trip the caller owns or
// has confirmed, grouped into current, upcoming, past and undated.
func (s *Server) GetTripOverview(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	today, ok := s.today(w, r)
	if !ok {
		return
	}

	groups, err := s.trips.Overview(r.Context(), caller, today)
	if err != nil {
		writeServiceError(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusOK, mapGroups(groups, tripToResponse))
}

// GetTrip handles GET /trips/{id}. The trip is redacted for the caller;
// trips the caller may not see at all are reported as missing.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	today, ok := s.today(w, r)
	if !ok {
		return
	}

	view, err := s.views.TripForViewer(r.Context(), caller, id, today)
	if err != nil {
		writeServiceError(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusOK, viewToResponse(view))
}

// UpdateTrip handles PUT /trips/{id}. Only the owner may update.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var body TripRequest
	if !s.decodeBody(w, r, &body) {
		return
	}

	trip := requestToTrip(body)
	trip.ID = id
	updated, err := s.trips.Update(r.Context(), caller, trip)
	if err != nil {
		writeServiceError(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(updated))
}

// DeleteTrip handles DELETE /trips/{id}. Only the owner may delete.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.trips.Delete(r.Context(), caller, id); err != nil {
		writeServiceError(w, r, err, "trip")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- mapping helpers --------------------------------------------------------

func requestToTrip(body TripRequest) domain.Trip {
	return domain.Trip{
		Name:             body.Name,
		Destination:      body.Destination,
		StartDate:        fromDate(body.StartDate),
		EndDate:          fromDate(body.EndDate),
		IsFlexibleDates:  body.IsFlexibleDates,
		FlexibleMonth:    body.FlexibleMonth,
		IsLoggedPastTrip: body.IsLoggedPastTrip,
		Visibility:       domain.Visibility(body.Visibility),
	}
}

func tripToResponse(t domain.Trip) Trip {
	return Trip{
		ID:               t.ID,
		OwnerID:          t.OwnerID,
		Name:             t.Name,
		Destination:      t.Destination,
		StartDate:        toDate(t.StartDate),
		EndDate:          toDate(t.EndDate),
		IsFlexibleDates:  t.IsFlexibleDates,
		FlexibleMonth:    t.FlexibleMonth,
		IsLoggedPastTrip: t.IsLoggedPastTrip,
		Visibility:       t.Visibility,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
}

func viewToResponse(v domain.TripView) TripView {
	return TripView{
		TripID:        v.TripID,
		OwnerID:       v.OwnerID,
		Role:          v.Role,
		Label:         v.Label,
		Destination:   v.Destination,
		StartDate:     toDate(v.StartDate),
		EndDate:       toDate(v.EndDate),
		FlexibleMonth: v.FlexibleMonth,
		Category:      v.Category,
		Disclosure:    v.Disclosure,
	}
}

func mapGroups[A, B any](g domain.TripGroups[A], f func(A) B) TripGroups[B] {
	conv := func(in []A) []B {
		out := make([]B, len(in))
		for i, a := range in {
			out[i] = f(a)
		}
		return out
	}
	return TripGroups[B]{
		Current:  conv(g.Current),
		Upcoming: conv(g.Upcoming),
		Past:     conv(g.Past),
		Undated:  conv(g.Undated),
	}
}

func toDate(t *time.Time) *openapi_types.Date {
	if t == nil {
		return nil
	}
	return &openapi_types.Date{Time: *t}
}

func fromDate(d *openapi_types.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	return &t
}

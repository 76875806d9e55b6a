// Package handler implements the HTTP handlers for the roamwyth API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, trip.go, calendar.go, etc.) but share the same Server
// struct so they can access its dependencies.
package handler

import (
	"context"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/roamwyth/backend/internal/domain"
	"github.com/roamwyth/backend/internal/service"
)

// TripServicer defines the trip and participant operations the handlers
// depend on. Defining the interface here (in the consumer package) lets
// handler tests inject a mock without touching the service layer.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error)
	Overview(ctx context.Context, userID uuid.UUID, today time.Time) (domain.TripGroups[domain.Trip], error)
	Update(ctx context.Context, callerID uuid.UUID, trip domain.Trip) (domain.Trip, error)
	Delete(ctx context.Context, callerID, id uuid.UUID) error
	Invite(ctx context.Context, callerID, tripID, inviteeID uuid.UUID) (domain.Participant, error)
	Respond(ctx context.Context, callerID, tripID uuid.UUID, accept bool) (domain.Participant, error)
	SetOverride(ctx context.Context, callerID, tripID uuid.UUID, override *domain.Visibility) (domain.Participant, error)
	Participants(ctx context.Context, callerID, tripID uuid.UUID) ([]domain.Participant, error)
}

// ViewServicer resolves what one user may see of another user's trips.
type ViewServicer interface {
	ProfileTrips(ctx context.Context, viewerID, subjectID uuid.UUID, today time.Time) (domain.TripGroups[domain.TripView], error)
	TripForViewer(ctx context.Context, viewerID, tripID uuid.UUID, today time.Time) (domain.TripView, error)
}

// PalServicer manages travel pal relationships.
type PalServicer interface {
	Request(ctx context.Context, requesterID, addresseeID uuid.UUID) (domain.Pal, error)
	Accept(ctx context.Context, addresseeID, requesterID uuid.UUID) (domain.Pal, error)
	Remove(ctx context.Context, userID, otherID uuid.UUID) error
	ListAccepted(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	ListPending(ctx context.Context, userID uuid.UUID) ([]domain.Pal, error)
	ArePals(ctx context.Context, a, b uuid.UUID) (bool, error)
}

// CalendarServicer builds the multi-month calendar and its iCalendar export.
type CalendarServicer interface {
	Calendar(ctx context.Context, viewerID uuid.UUID, today time.Time) (domain.Calendar, error)
	ICS(ctx context.Context, viewerID uuid.UUID, today time.Time) (string, error)
}

// PreferencesServicer reads and writes calendar view preferences.
type PreferencesServicer interface {
	Get(ctx context.Context, userID uuid.UUID) (domain.ViewPreferences, error)
	Update(ctx context.Context, userID uuid.UUID, prefs domain.ViewPreferences) (domain.ViewPreferences, error)
}

var (
	_ TripServicer        = (*service.TripService)(nil)
	_ ViewServicer        = (*service.ViewService)(nil)
	_ PalServicer         = (*service.PalService)(nil)
	_ CalendarServicer    = (*service.CalendarService)(nil)
	_ PreferencesServicer = (*service.PreferencesService)(nil)
)

// Server holds the dependencies of every API endpoint.
type Server struct {
	trips    TripServicer
	views    ViewServicer
	pals     PalServicer
	calendar CalendarServicer
	prefs    PreferencesServicer

	validate *validator.Validate
	now      func() time.Time
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, views ViewServicer, pals PalServicer, calendar CalendarServicer, prefs PreferencesServicer) *Server {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON field names in validation messages.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &Server{
		trips:    trips,
		views:    views,
		pals:     pals,
		calendar: calendar,
		prefs:    prefs,
		validate: v,
		now:      time.Now,
	}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(nil, nil, nil, nil, nil)
}

// Routes registers every endpoint on a fresh chi router. auth guards the
// user-scoped routes; pass nil to mount them without authentication.
func (s *Server) Routes(auth func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Group(func(r chi.Router) {
		if auth != nil {
			r.Use(auth)
		}

		r.Route("/trips", func(r chi.Router) {
			r.Get("/", s.ListTrips)
			r.Post("/", s.CreateTrip)
			r.Get("/overview", s.GetTripOverview)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.GetTrip)
				r.Put("/", s.UpdateTrip)
				r.Delete("/", s.DeleteTrip)
				r.Get("/participants", s.ListParticipants)
				r.Post("/participants", s.InviteParticipant)
				r.Put("/participants/me", s.RespondToInvite)
				r.Put("/participants/me/override", s.SetVisibilityOverride)
			})
		})

		r.Route("/pals", func(r chi.Router) {
			r.Get("/", s.ListPals)
			r.Post("/", s.RequestPal)
			r.Get("/pending", s.ListPendingPals)
			r.Post("/{id}/accept", s.AcceptPal)
			r.Get("/{id}", s.GetPalStatus)
			r.Delete("/{id}", s.RemovePal)
		})

		r.Get("/users/{id}/trips", s.GetProfileTrips)

		r.Get("/calendar", s.GetCalendar)
		r.Get("/calendar.ics", s.GetCalendarICS)

		r.Get("/preferences", s.GetPreferences)
		r.Put("/preferences", s.UpdatePreferences)
	})
	return r
}

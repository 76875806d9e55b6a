package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/roamwyth/backend/internal/domain"
	"github.com/roamwyth/backend/internal/handler"
	"github.com/roamwyth/backend/internal/middleware"
)

var (
	alice = uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000001")
	bob   = uuid.MustParse("bbbbbbbb-0000-0000-0000-000000000002")
)

// mockTripServicer is a test double for handler.TripServicer.
// Set only the method fields your test needs.
type mockTripServicer struct {
	create       func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	listByOwner  func(ctx context.Context, ownerID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error)
	overview     func(ctx context.Context, userID uuid.UUID, today time.Time) (domain.TripGroups[domain.Trip], error)
	update       func(ctx context.Context, callerID uuid.UUID, trip domain.Trip) (domain.Trip, error)
	delete       func(ctx context.Context, callerID, id uuid.UUID) error
	invite       func(ctx context.Context, callerID, tripID, inviteeID uuid.UUID) (domain.Participant, error)
	respond      func(ctx context.Context, callerID, tripID uuid.UUID, accept bool) (domain.Participant, error)
	setOverride  func(ctx context.Context, callerID, tripID uuid.UUID, override *domain.Visibility) (domain.Participant, error)
	participants func(ctx context.Context, callerID, tripID uuid.UUID) ([]domain.Participant, error)
}

func (m *mockTripServicer) Create(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	return m.create(ctx, t)
}
func (m *mockTripServicer) ListByOwner(ctx context.Context, ownerID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.listByOwner(ctx, ownerID, p)
}
func (m *mockTripServicer) Overview(ctx context.Context, userID uuid.UUID, today time.Time) (domain.TripGroups[domain.Trip], error) {
	return m.overview(ctx, userID, today)
}
func (m *mockTripServicer) Update(ctx context.Context, callerID uuid.UUID, t domain.Trip) (domain.Trip, error) {
	return m.update(ctx, callerID, t)
}
func (m *mockTripServicer) Delete(ctx context.Context, callerID, id uuid.UUID) error {
	return m.delete(ctx, callerID, id)
}
func (m *mockTripServicer) Invite(ctx context.Context, callerID, tripID, inviteeID uuid.UUID) (domain.Participant, error) {
	return m.invite(ctx, callerID, tripID, inviteeID)
}
func (m *mockTripServicer) Respond(ctx context.Context, callerID, tripID uuid.UUID, accept bool) (domain.Participant, error) {
	return m.respond(ctx, callerID, tripID, accept)
}
func (m *mockTripServicer) SetOverride(ctx context.Context, callerID, tripID uuid.UUID, override *domain.Visibility) (domain.Participant, error) {
	return m.setOverride(ctx, callerID, tripID, override)
}
func (m *mockTripServicer) Participants(ctx context.Context, callerID, tripID uuid.UUID) ([]domain.Participant, error) {
	return m.participants(ctx, callerID, tripID)
}

type mockViewServicer struct {
	profileTrips  func(ctx context.Context, viewerID, subjectID uuid.UUID, today time.Time) (domain.TripGroups[domain.TripView], error)
	tripForViewer func(ctx context.Context, viewerID, tripID uuid.UUID, today time.Time) (domain.TripView, error)
}

func (m *mockViewServicer) ProfileTrips(ctx context.Context, viewerID, subjectID uuid.UUID, today time.Time) (domain.TripGroups[domain.TripView], error) {
	return m.profileTrips(ctx, viewerID, subjectID, today)
}
func (m *mockViewServicer) TripForViewer(ctx context.Context, viewerID, tripID uuid.UUID, today time.Time) (domain.TripView, error) {
	return m.tripForViewer(ctx, viewerID, tripID, today)
}

type mockPalServicer struct {
	request      func(ctx context.Context, requesterID, addresseeID uuid.UUID) (domain.Pal, error)
	accept       func(ctx context.Context, addresseeID, requesterID uuid.UUID) (domain.Pal, error)
	remove       func(ctx context.Context, userID, otherID uuid.UUID) error
	listAccepted func(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	listPending  func(ctx context.Context, userID uuid.UUID) ([]domain.Pal, error)
	arePals      func(ctx context.Context, a, b uuid.UUID) (bool, error)
}

func (m *mockPalServicer) Request(ctx context.Context, requesterID, addresseeID uuid.UUID) (domain.Pal, error) {
	return m.request(ctx, requesterID, addresseeID)
}
func (m *mockPalServicer) Accept(ctx context.Context, addresseeID, requesterID uuid.UUID) (domain.Pal, error) {
	return m.accept(ctx, addresseeID, requesterID)
}
func (m *mockPalServicer) Remove(ctx context.Context, userID, otherID uuid.UUID) error {
	return m.remove(ctx, userID, otherID)
}
func (m *mockPalServicer) ListAccepted(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return m.listAccepted(ctx, userID)
}
func (m *mockPalServicer) ListPending(ctx context.Context, userID uuid.UUID) ([]domain.Pal, error) {
	return m.listPending(ctx, userID)
}
func (m *mockPalServicer) ArePals(ctx context.Context, a, b uuid.UUID) (bool, error) {
	return m.arePals(ctx, a, b)
}

type mockCalendarServicer struct {
	calendar func(ctx context.Context, viewerID uuid.UUID, today time.Time) (domain.Calendar, error)
	ics      func(ctx context.Context, viewerID uuid.UUID, today time.Time) (string, error)
}

func (m *mockCalendarServicer) Calendar(ctx context.Context, viewerID uuid.UUID, today time.Time) (domain.Calendar, error) {
	return m.calendar(ctx, viewerID, today)
}
func (m *mockCalendarServicer) ICS(ctx context.Context, viewerID uuid.UUID, today time.Time) (string, error) {
	return m.ics(ctx, viewerID, today)
}

type mockPreferencesServicer struct {
	get    func(ctx context.Context, userID uuid.UUID) (domain.ViewPreferences, error)
	update func(ctx context.Context, userID uuid.UUID, prefs domain.ViewPreferences) (domain.ViewPreferences, error)
}

func (m *mockPreferencesServicer) Get(ctx context.Context, userID uuid.UUID) (domain.ViewPreferences, error) {
	return m.get(ctx, userID)
}
func (m *mockPreferencesServicer) Update(ctx context.Context, userID uuid.UUID, prefs domain.ViewPreferences) (domain.ViewPreferences, error) {
	return m.update(ctx, userID, prefs)
}

// compile-time checks: the mocks must satisfy the handler interfaces.
var (
	_ handler.TripServicer        = (*mockTripServicer)(nil)
	_ handler.ViewServicer        = (*mockViewServicer)(nil)
	_ handler.PalServicer         = (*mockPalServicer)(nil)
	_ handler.CalendarServicer    = (*mockCalendarServicer)(nil)
	_ handler.PreferencesServicer = (*mockPreferencesServicer)(nil)
)

// ---- helpers ---------------------------------------------------------------

// services bundles the mocks a test wires into the Server. Nil fields stay
// nil in the Server, so a test only builds what it exercises.
type services struct {
	trips    *mockTripServicer
	views    *mockViewServicer
	pals     *mockPalServicer
	calendar *mockCalendarServicer
	prefs    *mockPreferencesServicer
}

// asUser stands in for the JWT middleware and authenticates every request
// as id.
func asUser(id uuid.UUID) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(middleware.WithUserID(r.Context(), id)))
		})
	}
}

// newHTTPHandler wires a Server with the given mocks, authenticated as alice.
func newHTTPHandler(s services) http.Handler {
	var (
		trips    handler.TripServicer
		views    handler.ViewServicer
		pals     handler.PalServicer
		calendar handler.CalendarServicer
		prefs    handler.PreferencesServicer
	)
	if s.trips != nil {
		trips = s.trips
	}
	if s.views != nil {
		views = s.views
	}
	if s.pals != nil {
		pals = s.pals
	}
	if s.calendar != nil {
		calendar = s.calendar
	}
	if s.prefs != nil {
		prefs = s.prefs
	}
	return handler.NewServer(trips, views, pals, calendar, prefs).Routes(asUser(alice))
}

func do(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, jsonBody(t, body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := day(y, m, d)
	return &t
}

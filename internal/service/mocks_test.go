package service_test

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/roamwyth/backend/internal/domain"
	"github.com/roamwyth/backend/internal/repo"
)

// Hand-written test doubles for the repo interfaces.
// Each method is a function field; set only the ones a test needs.

type mockTripRepo struct {
	create      func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID     func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	listByOwner func(ctx context.Context, ownerID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error)
	listForUser func(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error)
	update      func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete      func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.listByOwner(ctx, ownerID, p)
}
func (m *mockTripRepo) ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error) {
	return m.listForUser(ctx, userID)
}
func (m *mockTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.update(ctx, trip)
}
func (m *mockTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

type mockParticipantRepo struct {
	invite      func(ctx context.Context, tripID, userID uuid.UUID) (domain.Participant, error)
	get         func(ctx context.Context, tripID, userID uuid.UUID) (domain.Participant, error)
	listByTrip  func(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error)
	listByUser  func(ctx context.Context, userID uuid.UUID) ([]domain.Participant, error)
	setStatus   func(ctx context.Context, tripID, userID uuid.UUID, status domain.ParticipantStatus) (domain.Participant, error)
	setOverride func(ctx context.Context, tripID, userID uuid.UUID, override *domain.Visibility) (domain.Participant, error)
}

func (m *mockParticipantRepo) Invite(ctx context.Context, tripID, userID uuid.UUID) (domain.Participant, error) {
	return m.invite(ctx, tripID, userID)
}
func (m *mockParticipantRepo) Get(ctx context.Context, tripID, userID uuid.UUID) (domain.Participant, error) {
	return m.get(ctx, tripID, userID)
}
func (m *mockParticipantRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error) {
	return m.listByTrip(ctx, tripID)
}
func (m *mockParticipantRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Participant, error) {
	return m.listByUser(ctx, userID)
}
func (m *mockParticipantRepo) SetStatus(ctx context.Context, tripID, userID uuid.UUID, status domain.ParticipantStatus) (domain.Participant, error) {
	return m.setStatus(ctx, tripID, userID, status)
}
func (m *mockParticipantRepo) SetOverride(ctx context.Context, tripID, userID uuid.UUID, override *domain.Visibility) (domain.Participant, error) {
	return m.setOverride(ctx, tripID, userID, override)
}

type mockPalRepo struct {
	request      func(ctx context.Context, requesterID, addresseeID uuid.UUID) (domain.Pal, error)
	accept       func(ctx context.Context, requesterID, addresseeID uuid.UUID) (domain.Pal, error)
	delete       func(ctx context.Context, a, b uuid.UUID) error
	listAccepted func(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	listPending  func(ctx context.Context, userID uuid.UUID) ([]domain.Pal, error)
	areAccepted  func(ctx context.Context, a, b uuid.UUID) (bool, error)
}

func (m *mockPalRepo) Request(ctx context.Context, requesterID, addresseeID uuid.UUID) (domain.Pal, error) {
	return m.request(ctx, requesterID, addresseeID)
}
func (m *mockPalRepo) Accept(ctx context.Context, requesterID, addresseeID uuid.UUID) (domain.Pal, error) {
	return m.accept(ctx, requesterID, addresseeID)
}
func (m *mockPalRepo) Delete(ctx context.Context, a, b uuid.UUID) error {
	return m.delete(ctx, a, b)
}
func (m *mockPalRepo) ListAccepted(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return m.listAccepted(ctx, userID)
}
func (m *mockPalRepo) ListPending(ctx context.Context, userID uuid.UUID) ([]domain.Pal, error) {
	return m.listPending(ctx, userID)
}
func (m *mockPalRepo) AreAccepted(ctx context.Context, a, b uuid.UUID) (bool, error) {
	return m.areAccepted(ctx, a, b)
}

type mockPreferencesStore struct {
	load func(ctx context.Context, userID uuid.UUID) (domain.ViewPreferences, error)
	save func(ctx context.Context, userID uuid.UUID, prefs domain.ViewPreferences) error
}

func (m *mockPreferencesStore) Load(ctx context.Context, userID uuid.UUID) (domain.ViewPreferences, error) {
	return m.load(ctx, userID)
}
func (m *mockPreferencesStore) Save(ctx context.Context, userID uuid.UUID, prefs domain.ViewPreferences) error {
	return m.save(ctx, userID, prefs)
}

// compile-time checks: the mocks must satisfy the repo interfaces.
var (
	_ repo.TripRepo         = (*mockTripRepo)(nil)
	_ repo.ParticipantRepo  = (*mockParticipantRepo)(nil)
	_ repo.PalRepo          = (*mockPalRepo)(nil)
	_ repo.PreferencesStore = (*mockPreferencesStore)(nil)
)

// ---- world -----------------------------------------------------------------

// world is a tiny in-memory data set that backs the read-side mocks for
// view and calendar tests.
type world struct {
	trips        []domain.Trip
	participants []domain.Participant
	pals         [][2]uuid.UUID
	prefs        map[uuid.UUID]domain.ViewPreferences
}

// addTrip stores the trip and its owner participant row.
func (w *world) addTrip(t domain.Trip) domain.Trip {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	w.trips = append(w.trips, t)
	w.participants = append(w.participants, domain.Participant{TripID: t.ID, UserID: t.OwnerID, Status: domain.StatusOwner})
	return t
}

func (w *world) join(tripID, userID uuid.UUID, status domain.ParticipantStatus, override *domain.Visibility) {
	w.participants = append(w.participants, domain.Participant{
		TripID: tripID, UserID: userID, Status: status, PersonalVisibilityOverride: override,
	})
}

func (w *world) befriend(a, b uuid.UUID) {
	w.pals = append(w.pals, [2]uuid.UUID{a, b})
}

func (w *world) tripRepo() *mockTripRepo {
	return &mockTripRepo{
		getByID: func(_ context.Context, id uuid.UUID) (domain.Trip, error) {
			for _, t := range w.trips {
				if t.ID == id {
					return t, nil
				}
			}
			return domain.Trip{}, domain.ErrNotFound
		},
		listForUser: func(_ context.Context, userID uuid.UUID) ([]domain.Trip, error) {
			var out []domain.Trip
			for _, t := range w.trips {
				for _, p := range w.participants {
					if p.TripID == t.ID && p.UserID == userID && p.OnTrip() {
						out = append(out, t)
						break
					}
				}
			}
			return out, nil
		},
	}
}

func (w *world) participantRepo() *mockParticipantRepo {
	return &mockParticipantRepo{
		get: func(_ context.Context, tripID, userID uuid.UUID) (domain.Participant, error) {
			for _, p := range w.participants {
				if p.TripID == tripID && p.UserID == userID {
					return p, nil
				}
			}
			return domain.Participant{}, domain.ErrNotFound
		},
		listByUser: func(_ context.Context, userID uuid.UUID) ([]domain.Participant, error) {
			var out []domain.Participant
			for _, p := range w.participants {
				if p.UserID == userID {
					out = append(out, p)
				}
			}
			return out, nil
		},
	}
}

func (w *world) palRepo() *mockPalRepo {
	return &mockPalRepo{
		listAccepted: func(_ context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
			var out []uuid.UUID
			for _, pair := range w.pals {
				switch userID {
				case pair[0]:
					out = append(out, pair[1])
				case pair[1]:
					out = append(out, pair[0])
				}
			}
			return out, nil
		},
		areAccepted: func(_ context.Context, a, b uuid.UUID) (bool, error) {
			for _, pair := range w.pals {
				if (pair[0] == a && pair[1] == b) || (pair[0] == b && pair[1] == a) {
					return true, nil
				}
			}
			return false, nil
		},
	}
}

func (w *world) prefsStore() *mockPreferencesStore {
	return &mockPreferencesStore{
		load: func(_ context.Context, userID uuid.UUID) (domain.ViewPreferences, error) {
			if p, ok := w.prefs[userID]; ok {
				return p, nil
			}
			return domain.DefaultViewPreferences(), nil
		},
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := day(y, m, d)
	return &t
}

func visPtr(v domain.Visibility) *domain.Visibility {
	return &v
}

package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roamwyth/backend/internal/domain"
	"github.com/roamwyth/backend/internal/service"
)

var (
	alice = uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000001")
	bob   = uuid.MustParse("bbbbbbbb-0000-0000-0000-000000000002")
	carol = uuid.MustParse("cccccccc-0000-0000-0000-000000000003")
	dave  = uuid.MustParse("dddddddd-0000-0000-0000-000000000004")
)

func newViewService(w *world) *service.ViewService {
	return service.NewViewService(w.tripRepo(), w.participantRepo(), w.palRepo())
}

// juneTrip is U1's trip from the classic scenario: 1–10 June 2025.
func juneTrip(owner uuid.UUID, v domain.Visibility) domain.Trip {
	return domain.Trip{
		OwnerID:     owner,
		Name:        "Lisbon with friends",
		Destination: "Lisbon",
		StartDate:   datePtr(2025, time.June, 1),
		EndDate:     datePtr(2025, time.June, 10),
		Visibility:  v,
	}
}

func allViews(g domain.TripGroups[domain.TripView]) []domain.TripView {
	var out []domain.TripView
	out = append(out, g.Current...)
	out = append(out, g.Upcoming...)
	out = append(out, g.Past...)
	return append(out, g.Undated...)
}

func TestViewService_ProfileTrips_TravelPalSeesDatesOnly(t *testing.T) {
	w := &world{}
	w.addTrip(juneTrip(alice, domain.VisibilityDatesOnly))
	w.befriend(alice, bob)

	g, err := newViewService(w).ProfileTrips(context.Background(), bob, alice, day(2025, time.June, 5))

	require.NoError(t, err)
	require.Len(t, g.Current, 1)
	v := g.Current[0]
	assert.Equal(t, domain.CategoryCurrent, v.Category)
	assert.Equal(t, domain.RoleTravelPal, v.Role)
	assert.Equal(t, domain.Disclosure{Listed: true, Dates: true}, v.Disclosure)
	assert.Equal(t, domain.PlaceholderTrip, v.Label)
	assert.Empty(t, v.Destination)
	require.NotNil(t, v.StartDate)
	assert.True(t, v.StartDate.Equal(day(2025, time.June, 1)))
}

func TestViewService_ProfileTrips_OwnerSeesEverything(t *testing.T) {
	w := &world{}
	w.addTrip(juneTrip(alice, domain.VisibilityOnlyMe))

	g, err := newViewService(w).ProfileTrips(context.Background(), alice, alice, day(2025, time.June, 5))

	require.NoError(t, err)
	require.Len(t, g.Current, 1)
	assert.Equal(t, "Lisbon with friends", g.Current[0].Label)
	assert.Equal(t, "Lisbon", g.Current[0].Destination)
	assert.Equal(t, domain.RoleOwner, g.Current[0].Role)
}

func TestViewService_ProfileTrips_HiddenTrips(t *testing.T) {
	tests := []struct {
		name       string
		visibility domain.Visibility
		viewer     uuid.UUID
	}{
		{"stranger sees nothing", domain.VisibilityFullDetails, carol},
		{"only_me hides from pals", domain.VisibilityOnlyMe, bob},
		{"unknown visibility fails closed", domain.Visibility("friends_of_friends"), bob},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := &world{}
			w.addTrip(juneTrip(alice, tc.visibility))
			w.befriend(alice, bob)

			g, err := newViewService(w).ProfileTrips(context.Background(), tc.viewer, alice, day(2025, time.June, 5))

			require.NoError(t, err)
			assert.Empty(t, allViews(g))
			assert.NotNil(t, g.Current)
		})
	}
}

func TestViewService_ProfileTrips_BusyOnly(t *testing.T) {
	w := &world{}
	w.addTrip(juneTrip(alice, domain.VisibilityBusyOnly))
	w.befriend(alice, bob)

	g, err := newViewService(w).ProfileTrips(context.Background(), bob, alice, day(2025, time.June, 5))

	require.NoError(t, err)
	views := allViews(g)
	require.Len(t, views, 1)
	assert.Equal(t, domain.PlaceholderBusy, views[0].Label)
	assert.Nil(t, views[0].StartDate)
	assert.Nil(t, views[0].EndDate)
	assert.Empty(t, views[0].Destination)
}

func TestViewService_ProfileTrips_ParticipantOverrideOnlyMeWins(t *testing.T) {
	w := &world{}
	trip := w.addTrip(juneTrip(alice, domain.VisibilityFullDetails))
	w.join(trip.ID, carol, domain.StatusConfirmed, visPtr(domain.VisibilityOnlyMe))
	w.befriend(carol, bob)
	w.befriend(alice, bob)

	// bob looks at carol's profile: carol hid the trip from her outward calendar.
	g, err := newViewService(w).ProfileTrips(context.Background(), bob, carol, day(2025, time.June, 5))
	require.NoError(t, err)
	assert.Empty(t, allViews(g))

	// On alice's own profile the trip is still visible to bob.
	g, err = newViewService(w).ProfileTrips(context.Background(), bob, alice, day(2025, time.June, 5))
	require.NoError(t, err)
	assert.Len(t, allViews(g), 1)
}

func TestViewService_ProfileTrips_OverrideNarrowsNeverWidens(t *testing.T) {
	w := &world{}
	narrowed := w.addTrip(juneTrip(alice, domain.VisibilityFullDetails))
	w.join(narrowed.ID, carol, domain.StatusConfirmed, visPtr(domain.VisibilityBusyOnly))
	widened := w.addTrip(juneTrip(alice, domain.VisibilityDatesOnly))
	w.join(widened.ID, carol, domain.StatusConfirmed, visPtr(domain.VisibilityFullDetails))
	w.befriend(carol, bob)

	vs, err := newViewService(w).VisibleTrips(context.Background(), bob, carol)

	require.NoError(t, err)
	require.Len(t, vs, 2)
	byID := map[uuid.UUID]domain.Disclosure{}
	for _, v := range vs {
		byID[v.Trip.ID] = v.Disclosure
	}
	assert.Equal(t, domain.Disclosure{Listed: true}, byID[narrowed.ID])
	assert.Equal(t, domain.Disclosure{Listed: true, Dates: true}, byID[widened.ID])
}

func TestViewService_ProfileTrips_CoParticipantIgnoresOverride(t *testing.T) {
	w := &world{}
	trip := w.addTrip(juneTrip(alice, domain.VisibilityDatesOnly))
	w.join(trip.ID, carol, domain.StatusConfirmed, visPtr(domain.VisibilityOnlyMe))
	w.join(trip.ID, dave, domain.StatusConfirmed, nil)

	g, err := newViewService(w).ProfileTrips(context.Background(), dave, carol, day(2025, time.June, 5))

	require.NoError(t, err)
	views := allViews(g)
	require.Len(t, views, 1)
	assert.Equal(t, domain.RoleParticipant, views[0].Role)
	assert.Equal(t, domain.PlaceholderTrip, views[0].Label)
}

func TestViewService_ProfileTrips_InvitedIsNotParticipant(t *testing.T) {
	w := &world{}
	trip := w.addTrip(juneTrip(alice, domain.VisibilityFullDetails))
	w.join(trip.ID, dave, domain.StatusInvited, nil)

	g, err := newViewService(w).ProfileTrips(context.Background(), dave, alice, day(2025, time.June, 5))

	require.NoError(t, err)
	assert.Empty(t, allViews(g), "an invitation alone grants no visibility")
}

func TestViewService_ProfileTrips_Grouping(t *testing.T) {
	w := &world{}
	w.addTrip(juneTrip(alice, domain.VisibilityFullDetails))
	w.addTrip(domain.Trip{
		OwnerID: alice, Name: "flex", Visibility: domain.VisibilityFullDetails,
		IsFlexibleDates: true, FlexibleMonth: "September 2025",
	})
	w.addTrip(domain.Trip{OwnerID: alice, Name: "someday", Visibility: domain.VisibilityFullDetails})
	w.addTrip(domain.Trip{
		OwnerID: alice, Name: "last year", Visibility: domain.VisibilityFullDetails,
		StartDate: datePtr(2024, time.March, 1), EndDate: datePtr(2024, time.March, 4),
	})
	w.befriend(alice, bob)

	g, err := newViewService(w).ProfileTrips(context.Background(), bob, alice, day(2025, time.June, 5))

	require.NoError(t, err)
	require.Len(t, g.Current, 1)
	require.Len(t, g.Upcoming, 1)
	assert.Equal(t, "flex", g.Upcoming[0].Label)
	assert.Equal(t, "September 2025", g.Upcoming[0].FlexibleMonth)
	require.Len(t, g.Past, 1)
	assert.Equal(t, domain.CategoryPast, g.Past[0].Category)
	require.Len(t, g.Undated, 1)
	assert.Equal(t, domain.CategoryUndated, g.Undated[0].Category)
}

func TestViewService_TripForViewer(t *testing.T) {
	w := &world{}
	trip := w.addTrip(juneTrip(alice, domain.VisibilityLocationOnly))
	w.join(trip.ID, dave, domain.StatusConfirmed, nil)
	w.befriend(alice, bob)
	svc := newViewService(w)
	today := day(2025, time.July, 1)

	v, err := svc.TripForViewer(context.Background(), bob, trip.ID, today)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleTravelPal, v.Role)
	assert.Equal(t, "Lisbon", v.Destination)
	assert.Equal(t, domain.PlaceholderTrip, v.Label)
	assert.Nil(t, v.StartDate)
	assert.Equal(t, domain.CategoryPast, v.Category)

	v, err = svc.TripForViewer(context.Background(), dave, trip.ID, today)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleParticipant, v.Role)

	v, err = svc.TripForViewer(context.Background(), alice, trip.ID, today)
	require.NoError(t, err)
	assert.Equal(t, "Lisbon with friends", v.Label)

	_, err = svc.TripForViewer(context.Background(), carol, trip.ID, today)
	assert.ErrorIs(t, err, domain.ErrNotFound, "strangers cannot tell the trip exists")
}

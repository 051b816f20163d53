package apiclient

import (
	"context"
	"testing"
	"time"

	"seatreserve/internal/reservations"
	"seatreserve/internal/session"
	"seatreserve/internal/shared/apperrors"
	"seatreserve/internal/store"
	"seatreserve/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocal(t *testing.T) *Local {
	t.Helper()
	_, services := newServices(t)
	return NewLocal(services.Spaces, services.Reservations, services.Auth)
}

func TestLocalRequiresSignIn(t *testing.T) {
	local := newLocal(t)
	ctx := context.Background()

	_, err := local.ListReservations(ctx)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindBackend, apperrors.KindOf(err))

	local.UseToken("garbage")
	_, err = local.CheckIn(ctx, "1")
	assert.Equal(t, apperrors.KindBackend, apperrors.KindOf(err))

	// inventory is public
	buildings, err := local.ListBuildings(ctx)
	require.NoError(t, err)
	assert.Len(t, buildings, 3)
}

func TestLocalLogoutRevokesToken(t *testing.T) {
	local := newLocal(t)
	ctx := context.Background()

	sess, err := local.Login(ctx, "john.doe@company.com", "secret")
	require.NoError(t, err)
	local.UseToken(sess.Token)

	_, err = local.ListReservations(ctx)
	require.NoError(t, err)

	require.NoError(t, local.Logout(ctx))
	_, err = local.ListReservations(ctx)
	assert.Equal(t, apperrors.KindBackend, apperrors.KindOf(err))
}

// A full session through the store: sign in, browse, book, check in and out, cancel.
func TestStoreOverLocalBackend(t *testing.T) {
	local := newLocal(t)
	sessions := session.NewMemoryStorage()
	st := store.New(local,
		store.WithLogger(logger.Discard()),
		store.WithSessionStorage(sessions),
		store.WithClock(func() time.Time { return apiNow }),
	)
	ctx := context.Background()

	ok, err := st.CheckAuth(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = st.Login(ctx, "john.doe@company.com", "secret")
	require.NoError(t, err)
	assert.True(t, st.Auth().Authenticated)

	_, err = st.LoadBuildings(ctx)
	require.NoError(t, err)
	st.SelectBuilding("building123")
	_, err = st.LoadFloors(ctx, "building123")
	require.NoError(t, err)
	st.SelectFloor("floor124")
	_, err = st.LoadSpaces(ctx, "floor124")
	require.NoError(t, err)

	details, err := st.LoadSpaceDetails(ctx, "space456")
	require.NoError(t, err)
	assert.Equal(t, "space456", st.Spaces().SelectedSpace.ID)
	assert.NotNil(t, details.Availability)

	_, err = st.LoadReservations(ctx)
	require.NoError(t, err)
	rs := st.Reservations()
	require.Len(t, rs.Upcoming, 2)
	require.Len(t, rs.Past, 2)

	first := rs.Upcoming[0]
	created, err := st.CreateReservation(ctx, reservations.NewReservation{
		SpaceID:   first.SpaceID,
		StartTime: first.EndTime,
		EndTime:   first.EndTime.Add(2 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, "user123", created.UserID)
	assert.Len(t, st.Reservations().Upcoming, 3)

	st.SelectReservation(created.ID)
	_, err = st.CheckIn(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, reservations.CheckInCheckedIn, st.Reservations().Selected.CheckInStatus)

	_, err = st.CheckOut(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, reservations.CheckInCheckedOut, st.Reservations().Selected.CheckInStatus)

	require.NoError(t, st.CancelReservation(ctx, first.ID))
	assert.Len(t, st.Reservations().Upcoming, 2)

	// the backend agrees after a reload
	_, err = st.LoadReservations(ctx)
	require.NoError(t, err)
	for _, r := range st.Reservations().Upcoming {
		assert.NotEqual(t, first.ID, r.ID)
	}

	// a second store restores the persisted session
	restored := store.New(local, store.WithLogger(logger.Discard()), store.WithSessionStorage(sessions))
	ok, err = restored.CheckAuth(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, st.Logout(ctx))
	assert.False(t, st.Auth().Authenticated)
	assert.Empty(t, st.Reservations().Upcoming)
	_, err = sessions.Load(ctx)
	assert.ErrorIs(t, err, session.ErrNoSession)
}

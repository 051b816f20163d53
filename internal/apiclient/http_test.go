package apiclient

import (
	"context"
	"net/http/httptest"
	"os"
	"sort"
	"testing"
	"time"

	"seatreserve/api/routes"
	"seatreserve/internal/reservations"
	"seatreserve/internal/shared/apperrors"
	"seatreserve/internal/shared/config"
	"seatreserve/internal/spaces"
	"seatreserve/internal/store"
	"seatreserve/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ store.Backend = (*HTTPClient)(nil)
	_ store.Backend = (*Local)(nil)
)

var apiNow = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.SetDefault(logger.Discard())
	os.Exit(m.Run())
}

func newServices(t *testing.T) (*config.Config, *routes.Services) {
	t.Helper()
	t.Setenv("REDIS_HOST", "")
	t.Setenv("KAFKA_BROKERS", "")
	cfg := config.Load()
	return cfg, routes.NewServices(cfg, routes.Deps{
		Logger: logger.Discard(),
		Now:    func() time.Time { return apiNow },
	})
}

func newTestAPI(t *testing.T) *HTTPClient {
	t.Helper()
	cfg, services := newServices(t)

	engine := gin.New()
	routes.NewRouter(cfg, services, nil).SetupRoutes(engine)
	srv := httptest.NewServer(engine)
	t.Cleanup(srv.Close)

	client, err := NewHTTPClient(srv.URL+cfg.GetAPIBasePath(), 5*time.Second)
	require.NoError(t, err)
	return client
}

func signIn(t *testing.T, client *HTTPClient) {
	t.Helper()
	session, err := client.Login(context.Background(), "john.doe@company.com", "secret")
	require.NoError(t, err)
	require.NotEmpty(t, session.Token)
	assert.Equal(t, "user123", session.User.ID)
	assert.Equal(t, "john.doe@company.com", session.User.Email)
	client.UseToken(session.Token)
}

func spaceIDs(list []spaces.Space) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		out = append(out, s.ID)
	}
	sort.Strings(out)
	return out
}

func TestNewHTTPClientRejectsRelativeURL(t *testing.T) {
	_, err := NewHTTPClient("/api/v1", 0)
	assert.Error(t, err)

	client, err := NewHTTPClient("http://localhost:8080/api/v1", 0)
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, client.HTTPClient.Timeout)
}

func TestHTTPClientInventory(t *testing.T) {
	client := newTestAPI(t)
	ctx := context.Background()

	buildings, err := client.ListBuildings(ctx)
	require.NoError(t, err)
	assert.Len(t, buildings, 3)

	floors, err := client.ListFloors(ctx, "building123")
	require.NoError(t, err)
	assert.Len(t, floors, 3)

	list, err := client.ListSpaces(ctx, "floor124")
	require.NoError(t, err)
	assert.Equal(t, []string{"space456", "space789", "space790"}, spaceIDs(list))

	space, err := client.GetSpace(ctx, "space456")
	require.NoError(t, err)
	assert.Equal(t, "Desk A-123", space.Name)
	assert.NotNil(t, space.Availability)

	_, err = client.GetSpace(ctx, "nope")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestHTTPClientSearchEncodesFilters(t *testing.T) {
	client := newTestAPI(t)
	start := apiNow.AddDate(0, 0, 30)

	found, err := client.SearchAvailableSpaces(context.Background(), spaces.SearchQuery{
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		SpaceType: spaces.SpaceTypeDesk,
		Amenities: []string{"adjustable-height", "monitor"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"space102", "space456"}, spaceIDs(found))

	_, err = client.SearchAvailableSpaces(context.Background(), spaces.SearchQuery{StartTime: start})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestHTTPClientRequiresToken(t *testing.T) {
	client := newTestAPI(t)

	_, err := client.ListReservations(context.Background())
	require.Error(t, err)
	assert.Equal(t, apperrors.KindBackend, apperrors.KindOf(err))
}

func TestHTTPClientLoginValidation(t *testing.T) {
	client := newTestAPI(t)

	_, err := client.Login(context.Background(), "", "")
	require.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Equal(t, "Please enter both email and password", apperrors.Message(err))
}

func TestHTTPClientReservationLifecycle(t *testing.T) {
	client := newTestAPI(t)
	ctx := context.Background()
	signIn(t, client)

	listed, err := client.ListReservations(ctx)
	require.NoError(t, err)
	require.Len(t, listed.Upcoming, 2)
	assert.Len(t, listed.Past, 2)

	first, err := client.GetReservation(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "space456", first.SpaceID)

	_, err = client.GetReservation(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// overlapping the seeded booking
	_, err = client.CreateReservation(ctx, reservations.NewReservation{
		SpaceID:   "space456",
		StartTime: first.StartTime.Add(time.Hour),
		EndTime:   first.EndTime.Add(time.Hour),
	})
	require.ErrorIs(t, err, apperrors.ErrConflict)

	created, err := client.CreateReservation(ctx, reservations.NewReservation{
		SpaceID:   "space456",
		StartTime: first.EndTime,
		EndTime:   first.EndTime.Add(time.Hour),
		Notes:     "late session",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "user123", created.UserID)
	assert.Equal(t, reservations.CheckInPending, created.CheckInStatus)
	assert.True(t, created.StartTime.Equal(first.EndTime))

	ack, err := client.CheckIn(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, reservations.CheckInCheckedIn, ack.CheckInStatus)
	assert.NotNil(t, ack.CheckInTime)

	ack, err = client.CheckOut(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, reservations.CheckInCheckedOut, ack.CheckInStatus)

	_, err = client.CheckOut(ctx, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	require.NoError(t, client.CancelReservation(ctx, "2"))
	err = client.CancelReservation(ctx, "2")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	listed, err = client.ListReservations(ctx)
	require.NoError(t, err)
	var upcoming []string
	for _, r := range listed.Upcoming {
		upcoming = append(upcoming, r.ID)
	}
	assert.ElementsMatch(t, []string{"1", created.ID}, upcoming)
}

func TestHTTPClientLogoutRevokesToken(t *testing.T) {
	client := newTestAPI(t)
	ctx := context.Background()
	signIn(t, client)

	require.NoError(t, client.Logout(ctx))

	_, err := client.ListReservations(ctx)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindBackend, apperrors.KindOf(err))
}

func TestHTTPClientTransportFailure(t *testing.T) {
	srv := httptest.NewServer(gin.New())
	base := srv.URL
	srv.Close()

	client, err := NewHTTPClient(base, time.Second)
	require.NoError(t, err)

	_, err = client.ListBuildings(context.Background())
	require.Error(t, err)
	assert.Equal(t, apperrors.KindBackend, apperrors.KindOf(err))
}

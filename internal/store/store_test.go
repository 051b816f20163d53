package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribeReceivesLifecyclePhases(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()

	var changes []Change
	unsubscribe := st.Subscribe(func(c Change) {
		// listeners run outside the lock, so reading state here must not deadlock
		_ = st.Spaces()
		changes = append(changes, c)
	})

	_, err := st.LoadBuildings(ctx)
	require.NoError(t, err)
	_, err = st.LoadFloors(ctx, "nowhere")
	require.Error(t, err)
	st.SelectBuilding("building123")

	require.Len(t, changes, 5)
	assert.Equal(t, Change{Domain: DomainSpaces, Op: "loadBuildings", Phase: PhasePending}, changes[0])
	assert.Equal(t, Change{Domain: DomainSpaces, Op: "loadBuildings", Phase: PhaseFulfilled}, changes[1])
	assert.Equal(t, PhasePending, changes[2].Phase)
	assert.Equal(t, PhaseRejected, changes[3].Phase)
	assert.Error(t, changes[3].Err)
	assert.Equal(t, "selectBuilding", changes[4].Op)

	unsubscribe()
	unsubscribe()
	st.ClearSelections()
	assert.Len(t, changes, 5)
}

func TestSubscribersRunInRegistrationOrder(t *testing.T) {
	st, _ := newTestStore(t)

	var order []int
	for i := 1; i <= 3; i++ {
		st.Subscribe(func(Change) { order = append(order, i) })
	}
	st.ClearSelections()

	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestPendingIsVisibleToSubscribers(t *testing.T) {
	st, _ := newTestStore(t)

	var loadingSeen bool
	st.Subscribe(func(c Change) {
		if c.Phase == PhasePending {
			loadingSeen = st.Spaces().Loading
		}
	})

	_, err := st.LoadBuildings(context.Background())
	require.NoError(t, err)
	assert.True(t, loadingSeen)
	assert.False(t, st.Spaces().Loading)
}

func TestSnapshotsAreIsolated(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()

	_, err := st.LoadBuildings(ctx)
	require.NoError(t, err)
	_, err = st.LoadReservations(ctx)
	require.NoError(t, err)
	st.SelectBuilding("building123")

	snap := st.Spaces()
	snap.Buildings[0].Name = "changed"
	snap.Buildings[0].Amenities[0] = "changed"
	snap.SelectedBuilding.Name = "changed"

	res := st.Reservations()
	res.Upcoming[0].Space.Name = "changed"
	res.Upcoming = res.Upcoming[:0]

	fresh := st.Spaces()
	assert.Equal(t, "Headquarters", fresh.Buildings[0].Name)
	assert.Equal(t, "gym", fresh.Buildings[0].Amenities[0])
	assert.Equal(t, "Headquarters", fresh.SelectedBuilding.Name)

	freshRes := st.Reservations()
	require.Len(t, freshRes.Upcoming, 2)
	assert.Equal(t, "Desk A-123", freshRes.Upcoming[0].Space.Name)
}

func TestLoadedCollectionsDoNotAliasBackendData(t *testing.T) {
	st, fb := newTestStore(t)

	buildings, err := st.LoadBuildings(context.Background())
	require.NoError(t, err)
	buildings[0].Name = "changed"

	fb.mu.Lock()
	fb.buildings[1].Name = "also changed"
	fb.mu.Unlock()

	state := st.Spaces()
	assert.Equal(t, "Headquarters", state.Buildings[0].Name)
	assert.Equal(t, "Downtown Office", state.Buildings[1].Name)
}

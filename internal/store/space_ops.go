package store

import (
	"context"

	"seatreserve/internal/shared/apperrors"
	"seatreserve/internal/spaces"
)

// SpaceSearch filters LoadAvailableSpaces
type SpaceSearch = spaces.SearchQuery

// LoadBuildings replaces the building collection. Selections are left alone.
func (s *Store) LoadBuildings(ctx context.Context) ([]spaces.Building, error) {
	return run(ctx, s, DomainSpaces, "loadBuildings", resourceBuildings,
		s.backend.ListBuildings,
		func(buildings []spaces.Building) {
			s.spaces.Buildings = cloneAll(buildings, spaces.Building.Clone)
		})
}

// SelectBuilding selects the loaded building with that id, or nothing. The floor
// and space selections are always cleared, even when reselecting the same building.
func (s *Store) SelectBuilding(id string) {
	s.mutate(DomainSpaces, "selectBuilding", func() {
		s.spaces.SelectedBuilding = nil
		for _, b := range s.spaces.Buildings {
			if b.ID == id {
				c := b.Clone()
				s.spaces.SelectedBuilding = &c
				break
			}
		}
		s.spaces.SelectedFloor = nil
		s.spaces.SelectedSpace = nil
		s.supersede(resourceSpaceDetails)
	})
}

// LoadFloors replaces the floor collection with the floors of buildingID
func (s *Store) LoadFloors(ctx context.Context, buildingID string) ([]spaces.Floor, error) {
	return run(ctx, s, DomainSpaces, "loadFloors", resourceFloors,
		func(ctx context.Context) ([]spaces.Floor, error) {
			return s.backend.ListFloors(ctx, buildingID)
		},
		func(floors []spaces.Floor) {
			s.spaces.Floors = cloneAll(floors, spaces.Floor.Clone)
		})
}

// SelectFloor selects a loaded floor and always clears the space selection
func (s *Store) SelectFloor(id string) {
	s.mutate(DomainSpaces, "selectFloor", func() {
		s.spaces.SelectedFloor = nil
		for _, f := range s.spaces.Floors {
			if f.ID == id {
				c := f.Clone()
				s.spaces.SelectedFloor = &c
				break
			}
		}
		s.spaces.SelectedSpace = nil
		s.supersede(resourceSpaceDetails)
	})
}

// LoadSpaces replaces the floor-scoped space collection
func (s *Store) LoadSpaces(ctx context.Context, floorID string) ([]spaces.Space, error) {
	return run(ctx, s, DomainSpaces, "loadSpaces", resourceSpaces,
		func(ctx context.Context) ([]spaces.Space, error) {
			return s.backend.ListSpaces(ctx, floorID)
		},
		func(found []spaces.Space) {
			s.spaces.Spaces = cloneAll(found, spaces.Space.Clone)
		})
}

// LoadAvailableSpaces replaces the search results. Only the presence of the window
// is checked here; the backend validates its ordering.
func (s *Store) LoadAvailableSpaces(ctx context.Context, q SpaceSearch) ([]spaces.Space, error) {
	const op = "loadAvailableSpaces"
	return run(ctx, s, DomainSpaces, op, resourceAvailableSpaces,
		func(ctx context.Context) ([]spaces.Space, error) {
			if q.StartTime.IsZero() || q.EndTime.IsZero() {
				return nil, apperrors.Validation(op, "startTime and endTime are required")
			}
			return s.backend.SearchAvailableSpaces(ctx, q)
		},
		func(found []spaces.Space) {
			s.spaces.AvailableSpaces = cloneAll(found, spaces.Space.Clone)
		})
}

// SelectSpace looks in the floor-scoped collection first, then in the search results.
// A details load still in flight no longer lands on the selection.
func (s *Store) SelectSpace(id string) {
	s.mutate(DomainSpaces, "selectSpace", func() {
		s.supersede(resourceSpaceDetails)
		s.spaces.SelectedSpace = findSpace(s.spaces.Spaces, id)
		if s.spaces.SelectedSpace == nil {
			s.spaces.SelectedSpace = findSpace(s.spaces.AvailableSpaces, id)
		}
	})
}

func findSpace(in []spaces.Space, id string) *spaces.Space {
	for _, sp := range in {
		if sp.ID == id {
			c := sp.Clone()
			return &c
		}
	}
	return nil
}

// LoadSpaceDetails fetches a space with its availability summary and selects it
func (s *Store) LoadSpaceDetails(ctx context.Context, id string) (*spaces.Space, error) {
	return run(ctx, s, DomainSpaces, "loadSpaceDetails", resourceSpaceDetails,
		func(ctx context.Context) (*spaces.Space, error) {
			return s.backend.GetSpace(ctx, id)
		},
		func(space *spaces.Space) {
			s.spaces.SelectedSpace = clonePtr(space, spaces.Space.Clone)
		})
}

// ClearSelections unsets the building, floor and space selections
func (s *Store) ClearSelections() {
	s.mutate(DomainSpaces, "clearSelections", func() {
		s.spaces.SelectedBuilding = nil
		s.spaces.SelectedFloor = nil
		s.spaces.SelectedSpace = nil
		s.supersede(resourceSpaceDetails)
	})
}

func (s *Store) ClearSpaceError() {
	s.mutate(DomainSpaces, "clearError", func() {
		s.spaces.Error = ""
	})
}

package spaces

import (
	"context"
	"sort"
	"sync"
)

// Repository is the read side of the site inventory. The mock API keeps it in memory.
type Repository interface {
	ListBuildings(ctx context.Context) ([]Building, error)
	GetBuilding(ctx context.Context, id string) (*Building, bool, error)
	ListFloors(ctx context.Context, buildingID string) ([]Floor, error)
	GetFloor(ctx context.Context, id string) (*Floor, bool, error)
	ListSpaces(ctx context.Context, floorID string) ([]Space, error)
	ListAllSpaces(ctx context.Context) ([]Space, error)
	GetSpace(ctx context.Context, id string) (*Space, bool, error)
}

type memoryRepository struct {
	mu        sync.RWMutex
	buildings []Building
	floors    []Floor
	spaces    []Space
}

// NewMemoryRepository builds a repository over the given inventory. Display names on
// spaces (floor and building) are filled from their parents.
func NewMemoryRepository(buildings []Building, floors []Floor, spaces []Space) Repository {
	floorByID := make(map[string]Floor, len(floors))
	for _, f := range floors {
		floorByID[f.ID] = f
	}
	buildingByID := make(map[string]Building, len(buildings))
	for _, b := range buildings {
		buildingByID[b.ID] = b
	}

	filled := make([]Space, len(spaces))
	for i, s := range spaces {
		if f, ok := floorByID[s.FloorID]; ok {
			s.Floor = f.Name
			s.BuildingID = f.BuildingID
			if b, ok := buildingByID[f.BuildingID]; ok {
				s.Building = b.Name
			}
		}
		filled[i] = s
	}

	sort.SliceStable(floors, func(i, j int) bool { return floors[i].Level < floors[j].Level })

	return &memoryRepository{
		buildings: buildings,
		floors:    floors,
		spaces:    filled,
	}
}

func (r *memoryRepository) ListBuildings(ctx context.Context) ([]Building, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Building, len(r.buildings))
	for i, b := range r.buildings {
		out[i] = b.Clone()
	}
	return out, nil
}

func (r *memoryRepository) GetBuilding(ctx context.Context, id string) (*Building, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, b := range r.buildings {
		if b.ID == id {
			c := b.Clone()
			return &c, true, nil
		}
	}
	return nil, false, nil
}

func (r *memoryRepository) ListFloors(ctx context.Context, buildingID string) ([]Floor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []Floor{}
	for _, f := range r.floors {
		if f.BuildingID == buildingID {
			out = append(out, f.Clone())
		}
	}
	return out, nil
}

func (r *memoryRepository) GetFloor(ctx context.Context, id string) (*Floor, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, f := range r.floors {
		if f.ID == id {
			c := f.Clone()
			return &c, true, nil
		}
	}
	return nil, false, nil
}

func (r *memoryRepository) ListSpaces(ctx context.Context, floorID string) ([]Space, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []Space{}
	for _, s := range r.spaces {
		if s.FloorID == floorID {
			out = append(out, s.Clone())
		}
	}
	return out, nil
}

func (r *memoryRepository) ListAllSpaces(ctx context.Context) ([]Space, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Space, len(r.spaces))
	for i, s := range r.spaces {
		out[i] = s.Clone()
	}
	return out, nil
}

func (r *memoryRepository) GetSpace(ctx context.Context, id string) (*Space, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.spaces {
		if s.ID == id {
			c := s.Clone()
			return &c, true, nil
		}
	}
	return nil, false, nil
}

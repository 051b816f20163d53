package spaces

const floorPlanBase = "https://storage.company.com/floorplans/"

// SeedInventory returns the demo sites the mock API serves
func SeedInventory() ([]Building, []Floor, []Space) {
	buildings := []Building{
		{
			ID:          "building123",
			Name:        "Headquarters",
			Address:     "123 Main St, San Francisco, CA 94105",
			Region:      "North America",
			Country:     "USA",
			City:        "San Francisco",
			Timezone:    "America/Los_Angeles",
			Status:      SiteStatusActive,
			Floors:      10,
			TotalSpaces: 500,
			Amenities:   []string{"cafeteria", "gym", "parking"},
		},
		{
			ID:          "building456",
			Name:        "Downtown Office",
			Address:     "456 Market St, San Francisco, CA 94105",
			Region:      "North America",
			Country:     "USA",
			City:        "San Francisco",
			Timezone:    "America/Los_Angeles",
			Status:      SiteStatusActive,
			Floors:      5,
			TotalSpaces: 200,
			Amenities:   []string{"cafeteria", "parking"},
		},
		{
			ID:          "building789",
			Name:        "Tech Campus",
			Address:     "789 Tech Blvd, San Jose, CA 95110",
			Region:      "North America",
			Country:     "USA",
			City:        "San Jose",
			Timezone:    "America/Los_Angeles",
			Status:      SiteStatusActive,
			Floors:      3,
			TotalSpaces: 150,
			Amenities:   []string{"cafeteria", "gym", "parking", "game-room"},
		},
	}

	floors := []Floor{
		{
			ID: "floor123", BuildingID: "building123", Name: "3rd Floor", Level: 3, Capacity: 120,
			SpaceTypes:   map[SpaceType]int{SpaceTypeDesk: 80, SpaceTypeMeetingRoom: 10, SpaceTypePhoneBooth: 5, SpaceTypeCollaborationArea: 3},
			Status:       SiteStatusActive,
			FloorPlanURL: floorPlanBase + "building123-floor3.svg",
		},
		{
			ID: "floor124", BuildingID: "building123", Name: "4th Floor", Level: 4, Capacity: 100,
			SpaceTypes:   map[SpaceType]int{SpaceTypeDesk: 70, SpaceTypeMeetingRoom: 8, SpaceTypePhoneBooth: 4, SpaceTypeCollaborationArea: 2},
			Status:       SiteStatusActive,
			FloorPlanURL: floorPlanBase + "building123-floor4.svg",
		},
		{
			ID: "floor125", BuildingID: "building123", Name: "5th Floor", Level: 5, Capacity: 80,
			SpaceTypes:   map[SpaceType]int{SpaceTypeDesk: 60, SpaceTypeMeetingRoom: 6, SpaceTypePhoneBooth: 3, SpaceTypeCollaborationArea: 1},
			Status:       SiteStatusActive,
			FloorPlanURL: floorPlanBase + "building123-floor5.svg",
		},
		{
			ID: "floor201", BuildingID: "building456", Name: "1st Floor", Level: 1, Capacity: 60,
			SpaceTypes:   map[SpaceType]int{SpaceTypeDesk: 45, SpaceTypeMeetingRoom: 4, SpaceTypePhoneBooth: 2},
			Status:       SiteStatusActive,
			FloorPlanURL: floorPlanBase + "building456-floor1.svg",
		},
		{
			ID: "floor202", BuildingID: "building456", Name: "2nd Floor", Level: 2, Capacity: 40,
			SpaceTypes:   map[SpaceType]int{SpaceTypeDesk: 30, SpaceTypeMeetingRoom: 3},
			Status:       SiteStatusInactive,
			FloorPlanURL: floorPlanBase + "building456-floor2.svg",
		},
		{
			ID: "floor301", BuildingID: "building789", Name: "Ground Floor", Level: 0, Capacity: 50,
			SpaceTypes:   map[SpaceType]int{SpaceTypeDesk: 30, SpaceTypeMeetingRoom: 5, SpaceTypeCollaborationArea: 4},
			Status:       SiteStatusActive,
			FloorPlanURL: floorPlanBase + "building789-floor0.svg",
		},
	}

	spaces := []Space{
		{ID: "space120", FloorID: "floor123", Name: "Desk A-101", Type: SpaceTypeDesk, Status: SpaceStatusAvailable,
			Amenities: []string{"monitor", "docking-station"}},
		{ID: "space121", FloorID: "floor123", Name: "Collaboration Zone A", Type: SpaceTypeCollaborationArea, Status: SpaceStatusAvailable,
			Amenities: []string{"whiteboard", "tv-screen"}},
		{ID: "space456", FloorID: "floor124", Name: "Desk A-123", Type: SpaceTypeDesk, Status: SpaceStatusAvailable,
			Amenities: []string{"monitor", "docking-station", "adjustable-height"}},
		{ID: "space789", FloorID: "floor124", Name: "Meeting Room B-101", Type: SpaceTypeMeetingRoom, Status: SpaceStatusAvailable,
			Amenities: []string{"video-conference", "whiteboard", "tv-screen"}},
		{ID: "space790", FloorID: "floor124", Name: "Desk B-140", Type: SpaceTypeDesk, Status: SpaceStatusOccupied,
			Amenities: []string{"monitor"}},
		{ID: "space101", FloorID: "floor125", Name: "Phone Booth C-105", Type: SpaceTypePhoneBooth, Status: SpaceStatusAvailable,
			Amenities: []string{"sound-insulation", "small-desk"}},
		{ID: "space102", FloorID: "floor125", Name: "Desk C-110", Type: SpaceTypeDesk, Status: SpaceStatusAvailable,
			Amenities: []string{"monitor", "adjustable-height"}},
		{ID: "space201", FloorID: "floor201", Name: "Desk D-001", Type: SpaceTypeDesk, Status: SpaceStatusAvailable,
			Amenities: []string{"monitor", "docking-station"}},
		{ID: "space202", FloorID: "floor201", Name: "Meeting Room D-10", Type: SpaceTypeMeetingRoom, Status: SpaceStatusAvailable,
			Amenities: []string{"video-conference", "whiteboard"}},
		{ID: "space301", FloorID: "floor301", Name: "Huddle Room E-01", Type: SpaceTypeMeetingRoom, Status: SpaceStatusAvailable,
			Amenities: []string{"tv-screen", "whiteboard"}},
	}

	return buildings, floors, spaces
}

package spaces

import "time"

type SpaceType string

const (
	SpaceTypeDesk              SpaceType = "desk"
	SpaceTypeMeetingRoom       SpaceType = "meeting-room"
	SpaceTypePhoneBooth        SpaceType = "phone-booth"
	SpaceTypeCollaborationArea SpaceType = "collaboration-area"
)

// SpaceTypes lists every bookable type in display order
var SpaceTypes = []SpaceType{
	SpaceTypeDesk,
	SpaceTypeMeetingRoom,
	SpaceTypePhoneBooth,
	SpaceTypeCollaborationArea,
}

func (t SpaceType) IsValid() bool {
	switch t {
	case SpaceTypeDesk, SpaceTypeMeetingRoom, SpaceTypePhoneBooth, SpaceTypeCollaborationArea:
		return true
	}
	return false
}

func (t SpaceType) String() string {
	return string(t)
}

type SpaceStatus string

const (
	SpaceStatusAvailable SpaceStatus = "available"
	SpaceStatusOccupied  SpaceStatus = "occupied"
	SpaceStatusReserved  SpaceStatus = "reserved"
)

type SiteStatus string

const (
	SiteStatusActive   SiteStatus = "active"
	SiteStatusInactive SiteStatus = "inactive"
)

type Building struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Address     string     `json:"address"`
	Region      string     `json:"region"`
	Country     string     `json:"country"`
	City        string     `json:"city"`
	Timezone    string     `json:"timezone"`
	Status      SiteStatus `json:"status"`
	Floors      int        `json:"floors"`
	TotalSpaces int        `json:"totalSpaces"`
	Amenities   []string   `json:"amenities"`
}

type Floor struct {
	ID           string            `json:"id"`
	BuildingID   string            `json:"buildingId"`
	Name         string            `json:"name"`
	Level        int               `json:"level"`
	Capacity     int               `json:"capacity"`
	SpaceTypes   map[SpaceType]int `json:"spaceTypes"`
	Status       SiteStatus        `json:"status"`
	FloorPlanURL string            `json:"floorPlanUrl"`
}

type Space struct {
	ID           string        `json:"id"`
	FloorID      string        `json:"floorId"`
	BuildingID   string        `json:"buildingId"`
	Name         string        `json:"name"`
	Type         SpaceType     `json:"type"`
	Floor        string        `json:"floor"`
	Building     string        `json:"building"`
	Status       SpaceStatus   `json:"status"`
	Amenities    []string      `json:"amenities"`
	Availability *Availability `json:"availability,omitempty"`
}

// HasAmenities reports whether the space offers every wanted amenity
func (s Space) HasAmenities(wanted []string) bool {
	for _, w := range wanted {
		found := false
		for _, a := range s.Amenities {
			if a == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Availability is either a search window (StartTime/EndTime) or a detail summary (Today/NextSevenDays)
type Availability struct {
	StartTime     *time.Time        `json:"startTime,omitempty"`
	EndTime       *time.Time        `json:"endTime,omitempty"`
	Today         []TimeSlot        `json:"today,omitempty"`
	NextSevenDays *WeekAvailability `json:"nextSevenDays,omitempty"`
}

// TimeSlot is a wall-clock slot such as 09:00-12:00
type TimeSlot struct {
	StartTime string      `json:"startTime"`
	EndTime   string      `json:"endTime"`
	Status    SpaceStatus `json:"status"`
}

type WeekAvailability struct {
	AvailableDays       int `json:"availableDays"`
	AvailablePercentage int `json:"availablePercentage"`
}

// Interval is a booked window on a space, supplied by the reservations domain
type Interval struct {
	Start time.Time
	End   time.Time
}

func (i Interval) Overlaps(start, end time.Time) bool {
	return i.Start.Before(end) && start.Before(i.End)
}

// Clone helpers return deep copies so callers never share slices or maps.

func (b Building) Clone() Building {
	b.Amenities = append([]string(nil), b.Amenities...)
	return b
}

func (f Floor) Clone() Floor {
	if f.SpaceTypes != nil {
		types := make(map[SpaceType]int, len(f.SpaceTypes))
		for k, v := range f.SpaceTypes {
			types[k] = v
		}
		f.SpaceTypes = types
	}
	return f
}

func (s Space) Clone() Space {
	s.Amenities = append([]string(nil), s.Amenities...)
	if s.Availability != nil {
		a := *s.Availability
		if a.StartTime != nil {
			t := *a.StartTime
			a.StartTime = &t
		}
		if a.EndTime != nil {
			t := *a.EndTime
			a.EndTime = &t
		}
		a.Today = append([]TimeSlot(nil), a.Today...)
		if a.NextSevenDays != nil {
			w := *a.NextSevenDays
			a.NextSevenDays = &w
		}
		s.Availability = &a
	}
	return s
}

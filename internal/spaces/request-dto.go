package spaces

import (
	"strings"
	"time"

	"seatreserve/internal/shared/apperrors"
)

// SearchAvailableRequest is the query string of GET /reservations/available
type SearchAvailableRequest struct {
	StartTime  string   `form:"startTime" validate:"required"`
	EndTime    string   `form:"endTime" validate:"required"`
	BuildingID string   `form:"buildingId"`
	FloorID    string   `form:"floorId"`
	SpaceType  string   `form:"spaceType"`
	Amenities  []string `form:"amenities"`
}

// ToQuery parses the timestamps. Range ordering is checked by the service.
func (r SearchAvailableRequest) ToQuery() (SearchQuery, error) {
	start, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return SearchQuery{}, apperrors.Validation("search available spaces", "startTime must be an ISO-8601 timestamp")
	}
	end, err := time.Parse(time.RFC3339, r.EndTime)
	if err != nil {
		return SearchQuery{}, apperrors.Validation("search available spaces", "endTime must be an ISO-8601 timestamp")
	}

	// amenities may arrive repeated or comma separated
	var amenities []string
	for _, a := range r.Amenities {
		for _, part := range strings.Split(a, ",") {
			if part = strings.TrimSpace(part); part != "" {
				amenities = append(amenities, part)
			}
		}
	}

	return SearchQuery{
		StartTime:  start,
		EndTime:    end,
		BuildingID: r.BuildingID,
		FloorID:    r.FloorID,
		SpaceType:  SpaceType(r.SpaceType),
		Amenities:  amenities,
	}, nil
}

package reservations

import (
	"time"

	"seatreserve/internal/shared/apperrors"
)

// CreateReservationRequest is the body of POST /reservations
type CreateReservationRequest struct {
	SpaceID   string `json:"spaceId" validate:"required"`
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime" validate:"required"`
	Notes     string `json:"notes,omitempty" validate:"max=500"`
}

func (r CreateReservationRequest) ToNewReservation(userID string) (NewReservation, error) {
	start, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return NewReservation{}, apperrors.Validation("create reservation", "startTime must be an ISO-8601 timestamp")
	}
	end, err := time.Parse(time.RFC3339, r.EndTime)
	if err != nil {
		return NewReservation{}, apperrors.Validation("create reservation", "endTime must be an ISO-8601 timestamp")
	}

	return NewReservation{
		SpaceID:   r.SpaceID,
		UserID:    userID,
		StartTime: start,
		EndTime:   end,
		Notes:     r.Notes,
	}, nil
}

package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventReservationCreated    EventType = "RESERVATION_CREATED"
	EventReservationCancelled  EventType = "RESERVATION_CANCELLED"
	EventReservationCheckedIn  EventType = "RESERVATION_CHECKED_IN"
	EventReservationCheckedOut EventType = "RESERVATION_CHECKED_OUT"
)

// ReservationEvent describes one reservation lifecycle change
type ReservationEvent struct {
	ID            uuid.UUID `json:"id"`
	Type          EventType `json:"type"`
	ReservationID string    `json:"reservation_id"`
	UserID        string    `json:"user_id"`
	SpaceID       string    `json:"space_id"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	CheckInStatus string    `json:"check_in_status,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func NewReservationEvent(eventType EventType, reservationID, userID, spaceID string, start, end time.Time) *ReservationEvent {
	return &ReservationEvent{
		ID:            uuid.New(),
		Type:          eventType,
		ReservationID: reservationID,
		UserID:        userID,
		SpaceID:       spaceID,
		StartTime:     start,
		EndTime:       end,
		OccurredAt:    time.Now().UTC(),
	}
}

// PartitionKey keeps every event of one reservation on the same partition
func (e *ReservationEvent) PartitionKey() string {
	return e.ReservationID
}

func (e *ReservationEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

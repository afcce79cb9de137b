// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationCreatedEvent is published when a reservation is successfully
// created. It contains enough information for downstream consumers to log,
// notify, or trigger analytics without querying the primary database.
type ReservationCreatedEvent struct {
	ReservationID uint64 `json:"reservation_id"`
	RoomID        uint64 `json:"room_id"`
	RoomName      string `json:"room_name"`
	UserID        uint64 `json:"user_id"`
	UserName      string `json:"user_name"`
	UserEmail     string `json:"user_email"`
	Date          string `json:"date"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	CreatedAt     string `json:"created_at"`
}

// ReservationFinalizedEvent is published when an administrator finalizes a
// reservation ahead of its scheduled end.
type ReservationFinalizedEvent struct {
	ReservationID uint64 `json:"reservation_id"`
	RoomID        uint64 `json:"room_id"`
	RoomName      string `json:"room_name"`
	UserID        uint64 `json:"user_id"`
	FinalizedBy   uint64 `json:"finalized_by"`
	FinalizedAt   string `json:"finalized_at"`
}

package model

import "time"

// Reservation status values.  Only ACTIVE reservations participate in
// conflict checks and room status computation; FINALIZED ones are kept
// for history and never deleted.
const (
    ReservationActive    = "ACTIVE"
    ReservationFinalized = "FINALIZED"
)

// Reservation records a time-bounded claim on a room by a user.  The
// wall-clock date and times are what the user typed; StartsAt and
// EndsAt are the derived absolute instants (date+time combined, UTC)
// and are the only fields used for overlap comparisons.  A reservation
// is never deleted; its single lifecycle transition is ACTIVE to
// FINALIZED, performed by an administrator.
//
// Fields:
//  ID          – primary key identifier.
//  RoomID      – reserved room; weak reference, deleting the room does
//                not cascade to its reservations.
//  RoomName    – room name denormalised at creation time for display.
//  UserID      – identifier of the requesting user.
//  UserName    – display name of the requesting user.
//  UserEmail   – email of the requesting user.
//  Date        – calendar date of the reservation (YYYY-MM-DD).
//  StartTime   – wall-clock start (HH:MM), same day.
//  EndTime     – wall-clock end (HH:MM), strictly after StartTime.
//  StartsAt    – derived absolute start instant.
//  EndsAt      – derived absolute end instant.
//  Status      – ACTIVE or FINALIZED.
//  CreatedAt   – creation timestamp.
//  FinalizedAt – when the reservation was finalized (nil while active).
type Reservation struct {
    ID          uint64     // reservations.id
    RoomID      uint64     // reservations.room_id
    RoomName    string     // reservations.room_name
    UserID      uint64     // reservations.user_id
    UserName    string     // reservations.user_name
    UserEmail   string     // reservations.user_email
    Date        string     // reservations.res_date
    StartTime   string     // reservations.start_time
    EndTime     string     // reservations.end_time
    StartsAt    time.Time  // reservations.starts_at
    EndsAt      time.Time  // reservations.ends_at
    Status      string     // reservations.status
    CreatedAt   time.Time  // reservations.created_at
    FinalizedAt *time.Time // reservations.finalized_at (nullable)
}

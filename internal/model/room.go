package model

import "time"

// Room represents a reservable facility within the sports centre, such
// as a court, gym hall or multi-purpose room.  Rooms are created and
// maintained by administrators.  The Active flag controls whether the
// room can be reserved at all; it is independent of whether a
// reservation currently occupies the room.  This struct corresponds
// to a row in the `rooms` table.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – human readable room name (e.g. "Court A").
//  Description – free text describing features and equipment.
//  Location    – where the room is found inside the facility.
//  Capacity    – maximum number of people, always positive.
//  Equipment   – optional list of equipment available in the room.
//  Active      – whether the room accepts reservations.
//  CreatedAt   – timestamp when the room was created.
//  UpdatedAt   – timestamp of last update.
type Room struct {
    ID          uint64    // rooms.id
    Name        string    // rooms.name
    Description string    // rooms.description
    Location    string    // rooms.location
    Capacity    uint32    // rooms.capacity
    Equipment   []string  // rooms.equipment (comma separated in the DB)
    Active      bool      // rooms.active
    CreatedAt   time.Time // rooms.created_at
    UpdatedAt   time.Time // rooms.updated_at
}

// RoomState is the derived display status of a room.  It is never
// stored; it is recomputed from the room's Active flag and the current
// reservation set on every read.
type RoomState string

const (
    // StateAvailable means the room is active and no reservation
    // occupies it right now.
    StateAvailable RoomState = "AVAILABLE"
    // StateOccupied means an active reservation's interval contains
    // the current instant.
    StateOccupied RoomState = "OCCUPIED"
    // StateInactive means the room has been deactivated by an
    // administrator; it wins over any reservation.
    StateInactive RoomState = "INACTIVE"
)

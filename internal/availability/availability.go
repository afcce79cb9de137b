// Package availability contains the conflict detection and room status
// computation for the booking system.  Everything in this package is a
// pure function over immutable snapshots: callers fetch rooms and
// reservations from the store and pass them in, and the same inputs
// always produce the same outputs.  No caching or incremental state is
// kept anywhere; status is recomputed on every read.
//
// All interval arithmetic uses the half-open rule [start, end): two
// intervals [a,b) and [c,d) overlap iff a < d && b > c.  The same rule
// decides whether a reservation occupies a room "now", so a room
// becomes free at the exact instant a back-to-back reservation could
// begin.
package availability

import (
    "time"

    "github.com/Eliox00/Sistema-de-reservas/internal/model"
)

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) share any instant.  Touching endpoints do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
    return aStart.Before(bEnd) && aEnd.After(bStart)
}

// HasConflict reports whether the candidate interval [start, end) on
// the given room collides with any ACTIVE reservation in existing.
// Reservations on other rooms and finalized reservations are ignored,
// so callers may pass an unfiltered snapshot.  The caller is
// responsible for rejecting zero-length or inverted candidates before
// invoking this function.
func HasConflict(roomID uint64, start, end time.Time, existing []model.Reservation) bool {
    for _, r := range existing {
        if r.RoomID != roomID || r.Status != model.ReservationActive {
            continue
        }
        if Overlaps(start, end, r.StartsAt, r.EndsAt) {
            return true
        }
    }
    return false
}

// Status bundles a room's derived display state with the reservation
// occupying it, when there is one.  Occupant is nil unless State is
// StateOccupied.
type Status struct {
    State    model.RoomState
    Occupant *model.Reservation
}

// RoomStatus derives the display state of a room at the instant now.
// An inactive room is INACTIVE regardless of reservations.  Otherwise
// the room is OCCUPIED when an ACTIVE reservation's [start, end)
// interval contains now, and AVAILABLE when none does.  The first
// containing reservation is returned as the occupant; active
// reservations on one room should not overlap, so no tie-break is
// needed.
func RoomStatus(room model.Room, reservations []model.Reservation, now time.Time) Status {
    if !room.Active {
        return Status{State: model.StateInactive}
    }
    for i := range reservations {
        r := &reservations[i]
        if r.RoomID != room.ID || r.Status != model.ReservationActive {
            continue
        }
        if !now.Before(r.StartsAt) && now.Before(r.EndsAt) {
            return Status{State: model.StateOccupied, Occupant: r}
        }
    }
    return Status{State: model.StateAvailable}
}

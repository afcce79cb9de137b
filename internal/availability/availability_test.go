package availability

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/Eliox00/Sistema-de-reservas/internal/model"
)

// at builds an instant on a fixed day so tests read like timetables.
func at(hour, min int) time.Time {
    return time.Date(2025, 3, 10, hour, min, 0, 0, time.UTC)
}

func activeReservation(roomID uint64, start, end time.Time) model.Reservation {
    return model.Reservation{
        RoomID:   roomID,
        Status:   model.ReservationActive,
        StartsAt: start,
        EndsAt:   end,
    }
}

func TestOverlapsHalfOpen(t *testing.T) {
    cases := []struct {
        name                           string
        aStart, aEnd, bStart, bEnd     time.Time
        want                           bool
    }{
        {"identical intervals", at(9, 0), at(10, 0), at(9, 0), at(10, 0), true},
        {"contained interval", at(9, 30), at(9, 45), at(9, 0), at(10, 0), true},
        {"partial overlap left", at(8, 30), at(9, 30), at(9, 0), at(10, 0), true},
        {"partial overlap right", at(9, 30), at(10, 30), at(9, 0), at(10, 0), true},
        {"back to back after", at(10, 0), at(11, 0), at(9, 0), at(10, 0), false},
        {"back to back before", at(8, 0), at(9, 0), at(9, 0), at(10, 0), false},
        {"fully disjoint", at(12, 0), at(13, 0), at(9, 0), at(10, 0), false},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            assert.Equal(t, tc.want, Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd))
            // overlap is symmetric
            assert.Equal(t, tc.want, Overlaps(tc.bStart, tc.bEnd, tc.aStart, tc.aEnd))
        })
    }
}

func TestHasConflictMatchesOverlapRule(t *testing.T) {
    existing := []model.Reservation{activeReservation(1, at(9, 0), at(10, 0))}

    assert.True(t, HasConflict(1, at(9, 30), at(9, 45), existing), "exact overlap must conflict")
    assert.True(t, HasConflict(1, at(8, 0), at(9, 1), existing))
    assert.False(t, HasConflict(1, at(10, 0), at(11, 0), existing), "back-to-back must not conflict")
    assert.False(t, HasConflict(1, at(8, 0), at(9, 0), existing), "back-to-back must not conflict")
}

func TestHasConflictCrossRoomIsolation(t *testing.T) {
    existing := []model.Reservation{activeReservation(2, at(9, 0), at(10, 0))}
    assert.False(t, HasConflict(1, at(9, 0), at(10, 0), existing),
        "a reservation on another room must never conflict")
}

func TestHasConflictIgnoresFinalized(t *testing.T) {
    finalized := activeReservation(1, at(9, 0), at(10, 0))
    finalized.Status = model.ReservationFinalized
    assert.False(t, HasConflict(1, at(9, 0), at(10, 0), []model.Reservation{finalized}))
}

func TestHasConflictAnyOfMany(t *testing.T) {
    existing := []model.Reservation{
        activeReservation(1, at(8, 0), at(9, 0)),
        activeReservation(1, at(11, 0), at(12, 0)),
        activeReservation(1, at(14, 0), at(15, 0)),
    }
    assert.True(t, HasConflict(1, at(11, 30), at(13, 0), existing))
    assert.False(t, HasConflict(1, at(9, 0), at(11, 0), existing))
}

func TestRoomStatusInactiveShortCircuit(t *testing.T) {
    room := model.Room{ID: 1, Active: false}
    res := []model.Reservation{activeReservation(1, at(9, 0), at(10, 0))}

    st := RoomStatus(room, res, at(9, 30))
    assert.Equal(t, model.StateInactive, st.State,
        "inactive rooms report INACTIVE even while a reservation contains now")
    assert.Nil(t, st.Occupant)
}

func TestRoomStatusOccupiedWithinInterval(t *testing.T) {
    room := model.Room{ID: 1, Active: true}
    res := []model.Reservation{activeReservation(1, at(10, 0), at(11, 0))}

    st := RoomStatus(room, res, at(10, 30))
    require.Equal(t, model.StateOccupied, st.State)
    require.NotNil(t, st.Occupant)
    assert.Equal(t, at(10, 0), st.Occupant.StartsAt)

    assert.Equal(t, model.StateAvailable, RoomStatus(room, res, at(9, 59)).State)
    assert.Equal(t, model.StateAvailable, RoomStatus(room, res, at(11, 30)).State)
}

func TestRoomStatusHalfOpenBoundaries(t *testing.T) {
    room := model.Room{ID: 1, Active: true}
    res := []model.Reservation{activeReservation(1, at(10, 0), at(11, 0))}

    assert.Equal(t, model.StateOccupied, RoomStatus(room, res, at(10, 0)).State,
        "start instant is inside the half-open interval")
    assert.Equal(t, model.StateAvailable, RoomStatus(room, res, at(11, 0)).State,
        "end instant is outside the half-open interval")
}

func TestRoomStatusIgnoresOtherRoomsAndFinalized(t *testing.T) {
    room := model.Room{ID: 1, Active: true}
    other := activeReservation(2, at(9, 0), at(17, 0))
    done := activeReservation(1, at(9, 0), at(17, 0))
    done.Status = model.ReservationFinalized

    st := RoomStatus(room, []model.Reservation{other, done}, at(12, 0))
    assert.Equal(t, model.StateAvailable, st.State)
}

func TestRoomStatusIsDeterministic(t *testing.T) {
    room := model.Room{ID: 1, Active: true}
    res := []model.Reservation{
        activeReservation(1, at(9, 0), at(10, 0)),
        activeReservation(1, at(10, 0), at(11, 0)),
    }
    now := at(9, 15)

    first := RoomStatus(room, res, now)
    second := RoomStatus(room, res, now)
    assert.Equal(t, first.State, second.State)
    assert.Equal(t, first.Occupant, second.Occupant)
}

// End-to-end shape of the derived view: an empty room is available,
// becomes occupied only while "now" falls inside a created
// reservation, and the snapshot itself is never mutated.
func TestRoomStatusEndToEndScenario(t *testing.T) {
    room := model.Room{ID: 7, Name: "Court A", Active: true}

    assert.Equal(t, model.StateAvailable, RoomStatus(room, nil, at(10, 30)).State)

    res := []model.Reservation{activeReservation(7, at(10, 0), at(11, 0))}
    assert.Equal(t, model.StateOccupied, RoomStatus(room, res, at(10, 30)).State)
    assert.Equal(t, model.StateAvailable, RoomStatus(room, res, at(12, 0)).State)

    assert.Equal(t, model.ReservationActive, res[0].Status, "computing status must not alter the snapshot")
}

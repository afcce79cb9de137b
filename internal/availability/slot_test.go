package availability

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

// now is fixed mid-day so "today" is unambiguous in every test.
var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func TestParseSlotDerivesInstants(t *testing.T) {
    s, err := ParseSlot("2025-03-15", "10:00", "11:30", testNow)
    require.NoError(t, err)
    assert.Equal(t, time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC), s.StartsAt)
    assert.Equal(t, time.Date(2025, 3, 15, 11, 30, 0, 0, time.UTC), s.EndsAt)
    assert.Equal(t, "2025-03-15", s.Date)
}

func TestParseSlotMissingFields(t *testing.T) {
    _, err := ParseSlot("", "10:00", "11:00", testNow)
    assert.ErrorIs(t, err, ErrMissingFields)
    _, err = ParseSlot("2025-03-15", "", "11:00", testNow)
    assert.ErrorIs(t, err, ErrMissingFields)
    _, err = ParseSlot("2025-03-15", "10:00", "", testNow)
    assert.ErrorIs(t, err, ErrMissingFields)
}

func TestParseSlotMalformedInput(t *testing.T) {
    _, err := ParseSlot("15/03/2025", "10:00", "11:00", testNow)
    assert.ErrorIs(t, err, ErrBadDate)
    _, err = ParseSlot("2025-03-15", "10am", "11:00", testNow)
    assert.ErrorIs(t, err, ErrBadTime)
    _, err = ParseSlot("2025-03-15", "10:00", "eleven", testNow)
    assert.ErrorIs(t, err, ErrBadTime)
}

func TestParseSlotEndMustFollowStart(t *testing.T) {
    _, err := ParseSlot("2025-03-15", "11:00", "10:00", testNow)
    assert.ErrorIs(t, err, ErrEndNotAfter)
    _, err = ParseSlot("2025-03-15", "10:00", "10:00", testNow)
    assert.ErrorIs(t, err, ErrEndNotAfter, "zero-length slots are rejected")
}

func TestParseSlotDateWindowBoundaries(t *testing.T) {
    // today is accepted
    _, err := ParseSlot("2025-03-10", "14:00", "15:00", testNow)
    assert.NoError(t, err)

    // yesterday is rejected
    _, err = ParseSlot("2025-03-09", "14:00", "15:00", testNow)
    assert.ErrorIs(t, err, ErrDateInPast)

    // exactly 30 days ahead is accepted
    _, err = ParseSlot("2025-04-09", "14:00", "15:00", testNow)
    assert.NoError(t, err)

    // 31 days ahead is rejected
    _, err = ParseSlot("2025-04-10", "14:00", "15:00", testNow)
    assert.ErrorIs(t, err, ErrDateTooFar)
}

func TestParseSlotOpeningHours(t *testing.T) {
    _, err := ParseSlot("2025-03-15", "05:30", "07:00", testNow)
    assert.ErrorIs(t, err, ErrOutsideHours)

    _, err = ParseSlot("2025-03-15", "22:00", "23:30", testNow)
    assert.ErrorIs(t, err, ErrOutsideHours)

    // boundaries themselves are fine
    _, err = ParseSlot("2025-03-15", "06:00", "23:00", testNow)
    assert.NoError(t, err)
}

package availability

import (
    "errors"
    "fmt"
    "time"
)

// Booking window and opening hours enforced when a reservation is
// requested.  Dates may be at most MaxAdvanceDays ahead of today
// (inclusive), and slots must fall inside the facility's opening
// hours.
const (
    MaxAdvanceDays = 30
    OpeningHour    = 6  // 06:00
    ClosingHour    = 23 // 23:00
)

// Validation errors returned by ParseSlot.  Handlers translate these
// into 400 responses; none of them involves a store call.
var (
    ErrMissingFields  = errors.New("date, start time and end time are required")
    ErrBadDate        = errors.New("date must be in YYYY-MM-DD format")
    ErrBadTime        = errors.New("times must be in HH:MM format")
    ErrEndNotAfter    = errors.New("end time must be after start time")
    ErrDateInPast     = errors.New("date must not be in the past")
    ErrDateTooFar     = fmt.Errorf("date must be at most %d days ahead", MaxAdvanceDays)
    ErrOutsideHours   = fmt.Errorf("slot must fall between %02d:00 and %02d:00", OpeningHour, ClosingHour)
)

// Slot is a validated candidate interval: the user's wall-clock input
// plus the derived absolute instants used for comparisons.
type Slot struct {
    Date      string    // YYYY-MM-DD as submitted
    StartTime string    // HH:MM as submitted
    EndTime   string    // HH:MM as submitted
    StartsAt  time.Time // Date+StartTime in UTC
    EndsAt    time.Time // Date+EndTime in UTC
}

// ParseSlot validates a candidate reservation slot against the rules
// in one place: all fields present, well-formed, end strictly after
// start, date inside [today, today+MaxAdvanceDays] and the interval
// inside opening hours.  The now argument fixes "today" so the
// function stays deterministic.  On success the derived instants are
// returned; no store access happens here.
func ParseSlot(date, startTime, endTime string, now time.Time) (Slot, error) {
    if date == "" || startTime == "" || endTime == "" {
        return Slot{}, ErrMissingFields
    }
    day, err := time.ParseInLocation("2006-01-02", date, time.UTC)
    if err != nil {
        return Slot{}, ErrBadDate
    }
    st, err := time.Parse("15:04", startTime)
    if err != nil {
        return Slot{}, ErrBadTime
    }
    et, err := time.Parse("15:04", endTime)
    if err != nil {
        return Slot{}, ErrBadTime
    }
    if !et.After(st) {
        return Slot{}, ErrEndNotAfter
    }

    today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
    if day.Before(today) {
        return Slot{}, ErrDateInPast
    }
    if day.After(today.AddDate(0, 0, MaxAdvanceDays)) {
        return Slot{}, ErrDateTooFar
    }

    opening := OpeningHour * 60
    closing := ClosingHour * 60
    startMin := st.Hour()*60 + st.Minute()
    endMin := et.Hour()*60 + et.Minute()
    if startMin < opening || endMin > closing {
        return Slot{}, ErrOutsideHours
    }

    return Slot{
        Date:      date,
        StartTime: startTime,
        EndTime:   endTime,
        StartsAt:  day.Add(time.Duration(startMin) * time.Minute),
        EndsAt:    day.Add(time.Duration(endMin) * time.Minute),
    }, nil
}

package booking

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeOfDay is an hour and minute without a date, used for restaurant
// operating hours.  Hours are compared against "now" by projecting them
// onto today's date.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses "HH:MM" (24-hour clock) into a TimeOfDay.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return TimeOfDay{}, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return TimeOfDay{}, fmt.Errorf("invalid minute in %q", s)
	}
	return TimeOfDay{Hour: h, Minute: m}, nil
}

// String renders the time as zero-padded "HH:MM".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// On projects the time of day onto the date of the given instant, in
// that instant's location.
func (t TimeOfDay) On(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour, t.Minute, 0, 0, day.Location())
}

// OpenStatus is the result of evaluating a restaurant's operating hours
// against the current time.
type OpenStatus int

const (
	StatusClosed OpenStatus = iota
	StatusOpensSoon
	StatusOpen
	StatusClosesSoon
)

// String returns the wire representation used in API responses.
func (s OpenStatus) String() string {
	switch s {
	case StatusOpensSoon:
		return "opens_soon"
	case StatusOpen:
		return "open"
	case StatusClosesSoon:
		return "closes_soon"
	default:
		return "closed"
	}
}

// lookahead is the window before opening/closing during which the status
// switches to OpensSoon/ClosesSoon.
const lookahead = 30 * time.Minute

// Status evaluates operating hours against now.  Opening and closing are
// projected onto now's date; the function then returns
//
//	OpensSoon  when now is in [opening-30m, opening)
//	ClosesSoon when now is in [closing-30m, closing)
//	Open       when now is in [opening, closing]
//	Closed     otherwise
//
// The ClosesSoon window takes precedence over Open, so the last half
// hour of service reports ClosesSoon.  Hours that span midnight
// (closing earlier in the day than opening) are not supported: such a
// restaurant reports Closed for most of the night.  See DESIGN.md.
func Status(now time.Time, opening, closing TimeOfDay) OpenStatus {
	todayOpening := opening.On(now)
	todayClosing := closing.On(now)

	if in(now, todayOpening.Add(-lookahead), todayOpening) {
		return StatusOpensSoon
	}
	if in(now, todayClosing.Add(-lookahead), todayClosing) {
		return StatusClosesSoon
	}
	if !now.Before(todayOpening) && !now.After(todayClosing) {
		return StatusOpen
	}
	return StatusClosed
}

// in reports whether t lies in the half-open interval [from, to).
func in(t, from, to time.Time) bool {
	return !t.Before(from) && t.Before(to)
}

// Package clock stamps lifecycle timestamps. Slot computation never reads it:
// availability is wall-clock only.
package clock

import "time"

type Clock interface {
	Now() time.Time
}

// System reads the process clock in a configured location.
type System struct {
	loc *time.Location
}

// New resolves tz, falling back to the process's local zone when tz is empty
// or unknown.
func New(tz string) System {
	return System{loc: Location(tz)}
}

func (s System) Now() time.Time {
	if s.loc == nil {
		return time.Now()
	}
	return time.Now().In(s.loc)
}

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	return time.Local
}

// Fixed always returns the same instant.
type Fixed time.Time

func (f Fixed) Now() time.Time {
	return time.Time(f)
}

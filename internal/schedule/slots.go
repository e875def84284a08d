// Package schedule produces the fixed set of offerable meeting start
// times and combines a chosen slot with a booking's calendar date.
package schedule

import (
	"fmt"
	"time"
)

const (
	// Bookable day runs 08:00 through 22:00 in half-hour steps.
	DayStartMinute = 8 * 60
	DayEndMinute   = 22 * 60
	StepMinutes    = 30

	// MeetingDuration is the fixed length of a provisioned session.
	MeetingDuration = time.Hour
)

// Slot is one offerable meeting start time.
type Slot struct {
	Value string `json:"value"` // 24h "HH:MM", zero-padded
	Label string `json:"label"` // 12h display form
}

// Slots returns every start time from startMinute through endMinute
// inclusive, stepping by stepMinutes. Pure and deterministic; the
// default window yields 29 slots.
func Slots(startMinute, endMinute, stepMinutes int) []Slot {
	if stepMinutes <= 0 {
		stepMinutes = StepMinutes
	}

	var slots []Slot
	for t := startMinute; t <= endMinute; t += stepMinutes {
		h, m := t/60, t%60
		slots = append(slots, Slot{
			Value: fmt.Sprintf("%02d:%02d", h, m),
			Label: time.Date(0, time.January, 1, h, m, 0, 0, time.UTC).Format("3:04 PM"),
		})
	}
	return slots
}

// DefaultSlots returns the standard operating window.
func DefaultSlots() []Slot {
	return Slots(DayStartMinute, DayEndMinute, StepMinutes)
}

// MeetingTime combines a booking's calendar date with a slot value
// into the absolute meeting instant, in the date's location. Slots
// themselves carry no timezone beyond display formatting.
func MeetingTime(date time.Time, slot string) (time.Time, error) {
	parsed, err := time.Parse("15:04", slot)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time slot %q: %w", slot, err)
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, date.Location()), nil
}

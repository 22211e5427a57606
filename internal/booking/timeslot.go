package booking

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// timeSlots is the fixed hourly grid customers pick from.
var timeSlots = []string{
	"09:00 AM", "10:00 AM", "11:00 AM", "12:00 PM",
	"01:00 PM", "02:00 PM", "03:00 PM", "04:00 PM",
	"05:00 PM", "06:00 PM", "07:00 PM", "08:00 PM",
	"09:00 PM",
}

var timeSlotRe = regexp.MustCompile(`^(\d{1,2}):(\d{2}) (AM|PM)$`)

// TimeSlots returns the canonical list of selectable event time slots.
func TimeSlots() []string {
	out := make([]string, len(timeSlots))
	copy(out, timeSlots)
	return out
}

// IsValidTimeSlot reports whether the slot is one of the canonical values.
func IsValidTimeSlot(slot string) bool {
	for _, s := range timeSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// ParseTimeSlot converts an "HH:MM AM/PM" string into a 24-hour clock.
// 12 AM maps to hour 0, 12 PM stays 12, other PM hours add 12.
func ParseTimeSlot(slot string) (hour, minute int, err error) {
	m := timeSlotRe.FindStringSubmatch(slot)
	if m == nil {
		return 0, 0, fmt.Errorf("invalid time slot %q (expected HH:MM AM/PM)", slot)
	}

	hour, _ = strconv.Atoi(m[1])
	minute, _ = strconv.Atoi(m[2])
	if hour < 1 || hour > 12 {
		return 0, 0, fmt.Errorf("invalid time slot hour %d", hour)
	}
	if minute > 59 {
		return 0, 0, fmt.Errorf("invalid time slot minute %d", minute)
	}

	switch m[3] {
	case "AM":
		if hour == 12 {
			hour = 0
		}
	case "PM":
		if hour != 12 {
			hour += 12
		}
	}
	return hour, minute, nil
}

// MergeEventDate folds a time slot into a calendar date, producing the
// event timestamp stored on the order.
func MergeEventDate(date time.Time, slot string) (time.Time, error) {
	hour, minute, err := ParseTimeSlot(slot)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location()), nil
}

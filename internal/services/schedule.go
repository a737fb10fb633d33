package services

import (
	"fmt"
	"time"
)

const (
	DefaultStartHour = 9
	DefaultEndHour   = 21

	// SlotStep is the width of one bookable window. Session times must land
	// exactly on a multiple of it.
	SlotStep = 15 * time.Minute
)

// GenerateTimeSlots returns the ordered "HH:MM" labels of every slot in
// [startHour, endHour) at stepMinutes intervals. Deterministic, no I/O.
func GenerateTimeSlots(startHour, endHour, stepMinutes int) []string {
	if startHour < 0 || endHour > 24 || startHour >= endHour || stepMinutes <= 0 {
		return nil
	}

	slots := make([]string, 0, (endHour-startHour)*60/stepMinutes)
	for hour := startHour; hour < endHour; hour++ {
		for minute := 0; minute < 60; minute += stepMinutes {
			slots = append(slots, fmt.Sprintf("%02d:%02d", hour, minute))
		}
	}
	return slots
}

// isSlotAligned reports whether t is an exact multiple of the slot step.
// Unaligned times are rejected, never rounded.
func isSlotAligned(t time.Time) bool {
	return t.Equal(t.Truncate(SlotStep))
}

package services

import (
	"testing"
	"time"
)

func TestGenerateTimeSlotsDefaultDay(t *testing.T) {
	slots := GenerateTimeSlots(DefaultStartHour, DefaultEndHour, 15)

	if len(slots) != 48 {
		t.Fatalf("expected 48 slots, got %d", len(slots))
	}
	if slots[0] != "09:00" {
		t.Fatalf("expected first slot 09:00, got %q", slots[0])
	}
	if slots[len(slots)-1] != "20:45" {
		t.Fatalf("expected last slot 20:45, got %q", slots[len(slots)-1])
	}

	for i := 1; i < len(slots); i++ {
		if slots[i] <= slots[i-1] {
			t.Fatalf("slots not strictly increasing at %d: %q then %q", i, slots[i-1], slots[i])
		}
	}
	for _, label := range slots {
		parsed, err := time.Parse("15:04", label)
		if err != nil {
			t.Fatalf("slot %q does not parse: %v", label, err)
		}
		if parsed.Minute()%15 != 0 {
			t.Fatalf("slot %q not on a 15-minute boundary", label)
		}
	}
}

func TestGenerateTimeSlotsCustomRange(t *testing.T) {
	slots := GenerateTimeSlots(8, 10, 30)

	want := []string{"08:00", "08:30", "09:00", "09:30"}
	if len(slots) != len(want) {
		t.Fatalf("expected %d slots, got %d", len(want), len(slots))
	}
	for i, label := range want {
		if slots[i] != label {
			t.Fatalf("expected slot %d to be %q, got %q", i, label, slots[i])
		}
	}
}

func TestGenerateTimeSlotsRejectsBadRange(t *testing.T) {
	if slots := GenerateTimeSlots(21, 9, 15); slots != nil {
		t.Fatalf("expected nil for inverted range, got %v", slots)
	}
	if slots := GenerateTimeSlots(9, 21, 0); slots != nil {
		t.Fatalf("expected nil for zero step, got %v", slots)
	}
}

func TestIsSlotAligned(t *testing.T) {
	aligned := time.Date(2030, 6, 1, 10, 45, 0, 0, time.UTC)
	if !isSlotAligned(aligned) {
		t.Fatalf("expected %v to be aligned", aligned)
	}

	unaligned := time.Date(2030, 6, 1, 10, 7, 0, 0, time.UTC)
	if isSlotAligned(unaligned) {
		t.Fatalf("expected %v to be unaligned", unaligned)
	}

	withSeconds := time.Date(2030, 6, 1, 10, 15, 30, 0, time.UTC)
	if isSlotAligned(withSeconds) {
		t.Fatalf("expected %v with seconds to be unaligned", withSeconds)
	}
}

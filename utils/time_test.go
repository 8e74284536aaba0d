package utils

import (
	"testing"
	"time"
)

func TestStartOfDay(t *testing.T) {
	in := time.Date(2026, 3, 14, 15, 9, 26, 535, time.UTC)
	got := StartOfDay(in)
	want := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("StartOfDay(%v) = %v, want %v", in, got, want)
	}
}

func TestStartOfDayNormalizesZone(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	// 01:30 on the 15th in UTC+8 is still the 14th in UTC
	in := time.Date(2026, 3, 15, 1, 30, 0, 0, loc)
	got := StartOfDay(in)
	want := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("StartOfDay(%v) = %v, want %v", in, got, want)
	}
}

func TestDayKey(t *testing.T) {
	in := time.Date(2026, 1, 2, 23, 59, 59, 0, time.UTC)
	if got := DayKey(in); got != "2026-01-02" {
		t.Errorf("DayKey = %q, want 2026-01-02", got)
	}
}

func TestTimeOfDay(t *testing.T) {
	in := time.Date(2026, 1, 2, 9, 5, 0, 0, time.UTC)
	if got := TimeOfDay(in); got != "09:05:00" {
		t.Errorf("TimeOfDay = %q, want 09:05:00", got)
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2026, 5, 1, 0, 0, 1, 0, time.UTC)
	b := time.Date(2026, 5, 1, 23, 59, 0, 0, time.UTC)
	c := time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)

	if !SameDay(a, b) {
		t.Error("expected a and b on the same day")
	}
	if SameDay(b, c) {
		t.Error("expected b and c on different days")
	}
}

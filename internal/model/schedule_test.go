package model

import (
	"testing"
	"time"
)

func TestSentToday(t *testing.T) {
	now := time.Date(2026, 6, 10, 14, 0, 0, 0, time.UTC)

	s := &ScheduledCheckin{}
	if s.SentToday(now) {
		t.Error("nil sent_at reported as sent today")
	}

	earlier := time.Date(2026, 6, 10, 0, 30, 0, 0, time.UTC)
	s.SentAt = &earlier
	if !s.SentToday(now) {
		t.Error("same-day sent_at not detected")
	}

	yesterday := time.Date(2026, 6, 9, 23, 59, 0, 0, time.UTC)
	s.SentAt = &yesterday
	if s.SentToday(now) {
		t.Error("previous-day sent_at reported as today")
	}
}

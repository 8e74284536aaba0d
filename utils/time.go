package utils

import "time"

// StartOfDay truncates t to midnight UTC.
func StartOfDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// DayKey formats t as a stable per-day cache key segment.
func DayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// TimeOfDay renders the UTC clock time of t for SQL time comparisons.
func TimeOfDay(t time.Time) string {
	return t.UTC().Format("15:04:05")
}

// SameDay reports whether a and b fall on the same UTC calendar day.
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.UTC().Date()
	y2, m2, d2 := b.UTC().Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

package dispatch

import (
	"strings"

	"staffpulse/internal/model"
)

// RenderMessage picks the record's override text when present, otherwise
// the organization-wide default.
func RenderMessage(record *model.ScheduledCheckin, defaultMessage string) string {
	if record.Message != nil {
		if text := strings.TrimSpace(*record.Message); text != "" {
			return text
		}
	}
	return defaultMessage
}

package model

import "time"

const (
	RecurrenceOnce   = "once"
	RecurrenceWeekly = "weekly"
)

const (
	ScheduleStatusPending = "pending"
	ScheduleStatusSent    = "sent"
	ScheduleStatusFailed  = "failed"
)

// ScheduledCheckin is one recurring or one-off check-in rule. ScheduledAt
// is stored in UTC; for weekly rules only its time-of-day matters, the
// day comes from DayOfWeek (0 = Sunday).
type ScheduledCheckin struct {
	BaseModel
	PublicID       string     `gorm:"type:varchar(36);uniqueIndex;not null" json:"public_id"`
	OrganizationID int64      `gorm:"not null;index:idx_schedules_org_status" json:"organization_id,string"`
	Department     *string    `gorm:"type:varchar(100)" json:"department,omitempty"`
	ScheduledAt    time.Time  `gorm:"not null;index" json:"scheduled_at"`
	Recurrence     string     `gorm:"type:varchar(10);not null;default:'once'" json:"recurrence"`
	DayOfWeek      *int16     `json:"day_of_week,omitempty"`
	Status         string     `gorm:"type:varchar(10);not null;default:'pending';index:idx_schedules_org_status" json:"status"`
	SentAt         *time.Time `json:"sent_at,omitempty"`
	LastError      *string    `gorm:"type:text" json:"last_error,omitempty"`
	Message        *string    `gorm:"type:text" json:"message,omitempty"`
	CreatedBy      int64      `gorm:"not null" json:"created_by,string"`
}

func (ScheduledCheckin) TableName() string {
	return "scheduled_checkins"
}

func (s *ScheduledCheckin) IsWeekly() bool {
	return s.Recurrence == RecurrenceWeekly
}

// SentToday reports whether SentAt falls within the UTC calendar day of now.
func (s *ScheduledCheckin) SentToday(now time.Time) bool {
	if s.SentAt == nil {
		return false
	}
	y1, m1, d1 := s.SentAt.UTC().Date()
	y2, m2, d2 := now.UTC().Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

package model

import "time"

// MoodCheckin is one employee's answer for one calendar day. The unique
// index enforces a single row per employee per day.
type MoodCheckin struct {
	BaseModel
	OrganizationID int64     `gorm:"not null;index" json:"organization_id,string"`
	EmployeeID     int64     `gorm:"not null;uniqueIndex:idx_checkins_employee_day" json:"employee_id,string"`
	CheckinDate    time.Time `gorm:"type:date;not null;uniqueIndex:idx_checkins_employee_day" json:"checkin_date"`
	MoodScore      int16     `gorm:"not null" json:"mood_score"`
	Comment        string    `gorm:"type:text" json:"comment,omitempty"`
	Channel        string    `gorm:"type:varchar(20);not null;default:'whatsapp'" json:"channel"`
}

func (MoodCheckin) TableName() string {
	return "mood_checkins"
}

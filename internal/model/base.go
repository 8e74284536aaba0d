package model

import (
	"time"

	"gorm.io/gorm"
)

// BaseModel uses snowflake IDs assigned by the application, not the DB.
type BaseModel struct {
	ID        int64          `gorm:"primaryKey" json:"id,string"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

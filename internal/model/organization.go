package model

const (
	PlanFree    = "free"
	PlanStarter = "starter"
	PlanPremium = "premium"
)

const (
	OrgStatusActive    = "active"
	OrgStatusSuspended = "suspended"
)

type Organization struct {
	BaseModel
	PublicID string `gorm:"type:varchar(36);uniqueIndex;not null" json:"public_id"`
	Name     string `gorm:"type:varchar(200);not null" json:"name"`
	Plan     string `gorm:"type:varchar(20);not null;default:'free'" json:"plan"`
	Status   string `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`
	Timezone string `gorm:"type:varchar(64);not null;default:'UTC'" json:"timezone"`
}

func (Organization) TableName() string {
	return "organizations"
}

func (o *Organization) IsActive() bool {
	return o.Status == OrgStatusActive
}

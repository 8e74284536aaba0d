package model

const (
	EmployeeStatusActive   = "active"
	EmployeeStatusInactive = "inactive"
)

type Employee struct {
	BaseModel
	PublicID       string  `gorm:"type:varchar(36);uniqueIndex;not null" json:"public_id"`
	OrganizationID int64   `gorm:"not null;index:idx_employees_org_dept" json:"organization_id,string"`
	FullName       string  `gorm:"type:varchar(200);not null" json:"full_name"`
	Phone          string  `gorm:"type:varchar(32);not null" json:"phone"`
	Department     *string `gorm:"type:varchar(100);index:idx_employees_org_dept" json:"department,omitempty"`
	Status         string  `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
}

func (Employee) TableName() string {
	return "employees"
}

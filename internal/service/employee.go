package service

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"staffpulse/internal/model"
	"staffpulse/internal/store"
	"staffpulse/pkg/errors"
	"staffpulse/pkg/snowflake"
)

type EmployeeService struct {
	employees *store.EmployeeStore
}

var (
	employeeService     *EmployeeService
	employeeServiceOnce sync.Once
)

func GetEmployeeService() *EmployeeService {
	employeeServiceOnce.Do(func() {
		employeeService = &EmployeeService{employees: store.GetEmployeeStore()}
	})
	return employeeService
}

type CreateEmployeeRequest struct {
	FullName   string  `json:"full_name"`
	Phone      string  `json:"phone"`
	Department *string `json:"department"`
}

func (s *EmployeeService) Create(ctx context.Context, org *model.Organization, req *CreateEmployeeRequest) (*model.Employee, error) {
	if !org.IsActive() {
		return nil, errors.OrgSuspended
	}
	if req.FullName == "" || req.Phone == "" {
		return nil, errors.EmployeeInvalid
	}

	active, err := s.employees.CountActive(ctx, org.ID)
	if err != nil {
		return nil, err
	}
	if active >= int64(LimitsFor(org.Plan).MaxEmployees) {
		return nil, errors.EmployeeLimitReached
	}

	employee := &model.Employee{
		PublicID:       uuid.NewString(),
		OrganizationID: org.ID,
		FullName:       req.FullName,
		Phone:          req.Phone,
		Department:     req.Department,
		Status:         model.EmployeeStatusActive,
	}
	employee.ID = snowflake.NextID()

	if err := s.employees.Create(ctx, employee); err != nil {
		return nil, err
	}
	return employee, nil
}

func (s *EmployeeService) List(ctx context.Context, orgID int64, limit, offset int) ([]model.Employee, int64, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.employees.ListByOrganization(ctx, orgID, limit, offset)
}

func (s *EmployeeService) Deactivate(ctx context.Context, orgID int64, publicID string) error {
	return s.employees.Deactivate(ctx, orgID, publicID)
}

package store

import (
	"context"
	"sync"

	"gorm.io/gorm"

	"staffpulse/internal/model"
	"staffpulse/pkg/errors"
	"staffpulse/storage/database"
)

type EmployeeStore struct {
	db *gorm.DB
}

var (
	employeeStore     *EmployeeStore
	employeeStoreOnce sync.Once
)

func GetEmployeeStore() *EmployeeStore {
	employeeStoreOnce.Do(func() {
		employeeStore = &EmployeeStore{db: database.DB()}
	})
	return employeeStore
}

func NewEmployeeStore(db *gorm.DB) *EmployeeStore {
	return &EmployeeStore{db: db}
}

// ActiveEmployees resolves recipients for one schedule: every active
// employee of the organization, narrowed by department when set.
func (s *EmployeeStore) ActiveEmployees(ctx context.Context, orgID int64, department *string) ([]model.Employee, error) {
	query := s.db.WithContext(ctx).
		Where("organization_id = ? AND status = ?", orgID, model.EmployeeStatusActive)
	if department != nil {
		query = query.Where("department = ?", *department)
	}

	var employees []model.Employee
	if err := query.Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

func (s *EmployeeStore) Create(ctx context.Context, employee *model.Employee) error {
	return s.db.WithContext(ctx).Create(employee).Error
}

func (s *EmployeeStore) GetByPublicID(ctx context.Context, orgID int64, publicID string) (*model.Employee, error) {
	var employee model.Employee
	err := s.db.WithContext(ctx).
		Where("organization_id = ? AND public_id = ?", orgID, publicID).
		First(&employee).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.EmployeeNotFound
		}
		return nil, err
	}
	return &employee, nil
}

// GetByPhone matches an inbound webhook sender to an employee.
func (s *EmployeeStore) GetByPhone(ctx context.Context, phone string) (*model.Employee, error) {
	var employee model.Employee
	err := s.db.WithContext(ctx).
		Where("phone = ? AND status = ?", phone, model.EmployeeStatusActive).
		First(&employee).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.EmployeeNotFound
		}
		return nil, err
	}
	return &employee, nil
}

func (s *EmployeeStore) ListByOrganization(ctx context.Context, orgID int64, limit, offset int) ([]model.Employee, int64, error) {
	query := s.db.WithContext(ctx).
		Model(&model.Employee{}).
		Where("organization_id = ?", orgID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var employees []model.Employee
	err := query.Order("full_name").Limit(limit).Offset(offset).Find(&employees).Error
	if err != nil {
		return nil, 0, err
	}
	return employees, total, nil
}

func (s *EmployeeStore) CountActive(ctx context.Context, orgID int64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.Employee{}).
		Where("organization_id = ? AND status = ?", orgID, model.EmployeeStatusActive).
		Count(&count).Error
	return count, err
}

// DepartmentExists checks that at least one employee carries the
// department label before a schedule may target it.
func (s *EmployeeStore) DepartmentExists(ctx context.Context, orgID int64, department string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.Employee{}).
		Where("organization_id = ? AND department = ?", orgID, department).
		Count(&count).Error
	return count > 0, err
}

func (s *EmployeeStore) Deactivate(ctx context.Context, orgID int64, publicID string) error {
	result := s.db.WithContext(ctx).
		Model(&model.Employee{}).
		Where("organization_id = ? AND public_id = ?", orgID, publicID).
		Update("status", model.EmployeeStatusInactive)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.EmployeeNotFound
	}
	return nil
}

package store

import (
	"context"
	"sync"

	"gorm.io/gorm"

	"staffpulse/internal/model"
	"staffpulse/pkg/errors"
	"staffpulse/storage/database"
)

type OrganizationStore struct {
	db *gorm.DB
}

var (
	orgStore     *OrganizationStore
	orgStoreOnce sync.Once
)

func GetOrganizationStore() *OrganizationStore {
	orgStoreOnce.Do(func() {
		orgStore = &OrganizationStore{db: database.DB()}
	})
	return orgStore
}

func NewOrganizationStore(db *gorm.DB) *OrganizationStore {
	return &OrganizationStore{db: db}
}

func (s *OrganizationStore) Create(ctx context.Context, org *model.Organization) error {
	return s.db.WithContext(ctx).Create(org).Error
}

func (s *OrganizationStore) GetByID(ctx context.Context, id int64) (*model.Organization, error) {
	var org model.Organization
	err := s.db.WithContext(ctx).First(&org, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.OrgNotFound
		}
		return nil, err
	}
	return &org, nil
}

func (s *OrganizationStore) GetByPublicID(ctx context.Context, publicID string) (*model.Organization, error) {
	var org model.Organization
	err := s.db.WithContext(ctx).Where("public_id = ?", publicID).First(&org).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.OrgNotFound
		}
		return nil, err
	}
	return &org, nil
}

func (s *OrganizationStore) UpdatePlan(ctx context.Context, id int64, plan string) error {
	result := s.db.WithContext(ctx).
		Model(&model.Organization{}).
		Where("id = ?", id).
		Update("plan", plan)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.OrgNotFound
	}
	return nil
}

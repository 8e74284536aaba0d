package store

import (
	"context"
	"sync"
	"time"

	"gorm.io/gorm"

	"staffpulse/internal/model"
	"staffpulse/pkg/errors"
	"staffpulse/storage/database"
	"staffpulse/utils"
)

type CheckinStore struct {
	db *gorm.DB
}

var (
	checkinStore     *CheckinStore
	checkinStoreOnce sync.Once
)

func GetCheckinStore() *CheckinStore {
	checkinStoreOnce.Do(func() {
		checkinStore = &CheckinStore{db: database.DB()}
	})
	return checkinStore
}

func NewCheckinStore(db *gorm.DB) *CheckinStore {
	return &CheckinStore{db: db}
}

// Create inserts one mood check-in. The unique index on
// (employee_id, checkin_date) turns a same-day duplicate into
// CheckinAlreadyDone.
func (s *CheckinStore) Create(ctx context.Context, checkin *model.MoodCheckin) error {
	checkin.CheckinDate = utils.StartOfDay(checkin.CheckinDate)

	err := s.db.WithContext(ctx).Create(checkin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errors.CheckinAlreadyDone
		}
		return err
	}
	return nil
}

func (s *CheckinStore) ExistsForDay(ctx context.Context, employeeID int64, day time.Time) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.MoodCheckin{}).
		Where("employee_id = ? AND checkin_date = ?", employeeID, utils.StartOfDay(day)).
		Count(&count).Error
	return count > 0, err
}

// ListByOrganization returns check-ins inside [from, to] for exports and
// the dashboard, newest first.
func (s *CheckinStore) ListByOrganization(ctx context.Context, orgID int64, from, to time.Time) ([]model.MoodCheckin, error) {
	var checkins []model.MoodCheckin
	err := s.db.WithContext(ctx).
		Where("organization_id = ? AND checkin_date BETWEEN ? AND ?",
			orgID, utils.StartOfDay(from), utils.StartOfDay(to)).
		Order("checkin_date DESC, employee_id").
		Find(&checkins).Error
	if err != nil {
		return nil, err
	}
	return checkins, nil
}

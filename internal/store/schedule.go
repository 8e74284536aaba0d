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

// ScheduleStore is the gorm adapter over scheduled_checkins.
type ScheduleStore struct {
	db *gorm.DB
}

var (
	scheduleStore     *ScheduleStore
	scheduleStoreOnce sync.Once
)

func GetScheduleStore() *ScheduleStore {
	scheduleStoreOnce.Do(func() {
		scheduleStore = &ScheduleStore{db: database.DB()}
	})
	return scheduleStore
}

func NewScheduleStore(db *gorm.DB) *ScheduleStore {
	return &ScheduleStore{db: db}
}

// FindDue returns pending records that are due at now and have not
// already fired within the current UTC calendar day.
func (s *ScheduleStore) FindDue(ctx context.Context, now time.Time) ([]model.ScheduledCheckin, error) {
	startOfDay := utils.StartOfDay(now)

	var records []model.ScheduledCheckin
	err := s.db.WithContext(ctx).
		Where("status = ?", model.ScheduleStatusPending).
		Where("sent_at IS NULL OR sent_at < ?", startOfDay).
		Where(
			s.db.Where("recurrence = ? AND scheduled_at <= ?", model.RecurrenceOnce, now).
				Or("recurrence = ? AND day_of_week = ? AND (scheduled_at AT TIME ZONE 'UTC')::time <= ?::time",
					model.RecurrenceWeekly, int16(now.UTC().Weekday()), utils.TimeOfDay(now)),
		).
		Order("scheduled_at").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

// Claim is the linearization point. The conditional UPDATE sets sent_at
// so that of any number of concurrent callers exactly one sees a row
// affected; everyone else observes sent_at already inside today.
func (s *ScheduleStore) Claim(ctx context.Context, id int64, now time.Time) (bool, error) {
	startOfDay := utils.StartOfDay(now)

	result := s.db.WithContext(ctx).
		Model(&model.ScheduledCheckin{}).
		Where("id = ?", id).
		Where("status = ?", model.ScheduleStatusPending).
		Where("sent_at IS NULL OR sent_at < ?", startOfDay).
		Update("sent_at", now)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}

// MarkSent finalizes a delivered occurrence. A once record becomes
// terminal; a weekly record stays pending so it re-arms next week.
func (s *ScheduleStore) MarkSent(ctx context.Context, id int64, sentAt time.Time) error {
	return s.db.WithContext(ctx).
		Model(&model.ScheduledCheckin{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status": gorm.Expr("CASE WHEN recurrence = ? THEN ? ELSE status END",
				model.RecurrenceOnce, model.ScheduleStatusSent),
			"sent_at":    sentAt,
			"last_error": nil,
		}).Error
}

// MarkFailed records a record-level failure. A once record becomes
// terminal; a weekly record keeps its status and has sent_at cleared so
// the next invocation can retry.
func (s *ScheduleStore) MarkFailed(ctx context.Context, id int64, reason string) error {
	return s.db.WithContext(ctx).
		Model(&model.ScheduledCheckin{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status": gorm.Expr("CASE WHEN recurrence = ? THEN ? ELSE status END",
				model.RecurrenceOnce, model.ScheduleStatusFailed),
			"sent_at":    gorm.Expr("CASE WHEN recurrence = ? THEN NULL ELSE sent_at END", model.RecurrenceWeekly),
			"last_error": reason,
		}).Error
}

func (s *ScheduleStore) Create(ctx context.Context, record *model.ScheduledCheckin) error {
	return s.db.WithContext(ctx).Create(record).Error
}

func (s *ScheduleStore) GetByPublicID(ctx context.Context, orgID int64, publicID string) (*model.ScheduledCheckin, error) {
	var record model.ScheduledCheckin
	err := s.db.WithContext(ctx).
		Where("organization_id = ? AND public_id = ?", orgID, publicID).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ScheduleNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (s *ScheduleStore) ListByOrganization(ctx context.Context, orgID int64, status string, limit, offset int) ([]model.ScheduledCheckin, int64, error) {
	query := s.db.WithContext(ctx).
		Model(&model.ScheduledCheckin{}).
		Where("organization_id = ?", orgID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []model.ScheduledCheckin
	err := query.Order("scheduled_at DESC").Limit(limit).Offset(offset).Find(&records).Error
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

func (s *ScheduleStore) CountActive(ctx context.Context, orgID int64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.ScheduledCheckin{}).
		Where("organization_id = ? AND status = ?", orgID, model.ScheduleStatusPending).
		Count(&count).Error
	return count, err
}

func (s *ScheduleStore) Delete(ctx context.Context, orgID int64, publicID string) error {
	result := s.db.WithContext(ctx).
		Where("organization_id = ? AND public_id = ?", orgID, publicID).
		Delete(&model.ScheduledCheckin{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.ScheduleNotFound
	}
	return nil
}

package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"staffpulse/internal/model"
	"staffpulse/internal/store"
	"staffpulse/pkg/errors"
	"staffpulse/pkg/logger"
	"staffpulse/pkg/snowflake"
)

type ScheduleService struct {
	schedules *store.ScheduleStore
	employees *store.EmployeeStore
}

var (
	scheduleService     *ScheduleService
	scheduleServiceOnce sync.Once
)

func GetScheduleService() *ScheduleService {
	scheduleServiceOnce.Do(func() {
		scheduleService = &ScheduleService{
			schedules: store.GetScheduleStore(),
			employees: store.GetEmployeeStore(),
		}
	})
	return scheduleService
}

type CreateScheduleRequest struct {
	Department  *string   `json:"department"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Recurrence  string    `json:"recurrence"`
	DayOfWeek   *int16    `json:"day_of_week"`
	Message     *string   `json:"message"`
}

// ValidateScheduleRequest normalizes and checks a creation request,
// returning the effective recurrence.
func ValidateScheduleRequest(req *CreateScheduleRequest) (string, error) {
	if req.ScheduledAt.IsZero() {
		return "", errors.ScheduleInvalid
	}

	recurrence := req.Recurrence
	if recurrence == "" {
		recurrence = model.RecurrenceOnce
	}

	switch recurrence {
	case model.RecurrenceOnce:
		if req.DayOfWeek != nil {
			return "", errors.ScheduleDayOfWeek
		}
	case model.RecurrenceWeekly:
		if req.DayOfWeek == nil || *req.DayOfWeek < 0 || *req.DayOfWeek > 6 {
			return "", errors.ScheduleDayOfWeek
		}
	default:
		return "", errors.ScheduleInvalid
	}

	return recurrence, nil
}

func (s *ScheduleService) Create(ctx context.Context, org *model.Organization, createdBy int64, req *CreateScheduleRequest) (*model.ScheduledCheckin, error) {
	if !org.IsActive() {
		return nil, errors.OrgSuspended
	}

	recurrence, err := ValidateScheduleRequest(req)
	if err != nil {
		return nil, err
	}

	limits := LimitsFor(org.Plan)
	if recurrence == model.RecurrenceWeekly && !limits.WeeklyRecurrence {
		return nil, errors.PlanFeatureUnavailable
	}

	active, err := s.schedules.CountActive(ctx, org.ID)
	if err != nil {
		return nil, err
	}
	if active >= int64(limits.MaxActiveSchedules) {
		return nil, errors.ScheduleLimitReached
	}

	if req.Department != nil {
		exists, err := s.employees.DepartmentExists(ctx, org.ID, *req.Department)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, errors.DepartmentUnknown
		}
	}

	record := &model.ScheduledCheckin{
		PublicID:       uuid.NewString(),
		OrganizationID: org.ID,
		Department:     req.Department,
		ScheduledAt:    req.ScheduledAt.UTC(),
		Recurrence:     recurrence,
		DayOfWeek:      req.DayOfWeek,
		Status:         model.ScheduleStatusPending,
		Message:        req.Message,
		CreatedBy:      createdBy,
	}
	record.ID = snowflake.NextID()

	if err := s.schedules.Create(ctx, record); err != nil {
		return nil, err
	}

	logger.Logger.Info("Schedule created",
		zap.String("public_id", record.PublicID),
		zap.Int64("organization_id", org.ID),
		zap.String("recurrence", record.Recurrence),
	)

	return record, nil
}

func (s *ScheduleService) List(ctx context.Context, orgID int64, status string, limit, offset int) ([]model.ScheduledCheckin, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.schedules.ListByOrganization(ctx, orgID, status, limit, offset)
}

func (s *ScheduleService) Get(ctx context.Context, orgID int64, publicID string) (*model.ScheduledCheckin, error) {
	return s.schedules.GetByPublicID(ctx, orgID, publicID)
}

func (s *ScheduleService) Delete(ctx context.Context, orgID int64, publicID string) error {
	return s.schedules.Delete(ctx, orgID, publicID)
}

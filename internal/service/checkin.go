package service

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"staffpulse/internal/model"
	"staffpulse/internal/store"
	"staffpulse/pkg/errors"
	"staffpulse/pkg/logger"
	"staffpulse/pkg/snowflake"
)

type CheckinService struct {
	checkins  *store.CheckinStore
	employees *store.EmployeeStore
}

var (
	checkinService     *CheckinService
	checkinServiceOnce sync.Once
)

func GetCheckinService() *CheckinService {
	checkinServiceOnce.Do(func() {
		checkinService = &CheckinService{
			checkins:  store.GetCheckinStore(),
			employees: store.GetEmployeeStore(),
		}
	})
	return checkinService
}

// ParseMoodResponse extracts a 1-5 score and optional comment from a
// free-text reply. "4 busy week" becomes (4, "busy week").
func ParseMoodResponse(text string) (int16, string, error) {
	fields := strings.Fields(strings.TrimSpace(text))
	if len(fields) == 0 {
		return 0, "", errors.CheckinMoodInvalid
	}

	score, err := strconv.Atoi(fields[0])
	if err != nil || score < 1 || score > 5 {
		return 0, "", errors.CheckinMoodInvalid
	}

	return int16(score), strings.Join(fields[1:], " "), nil
}

// RecordResponse turns one inbound reply into a mood check-in row.
// Unprocessable replies come back as SkipMessageError so the consumer
// acks instead of requeueing them forever.
func (s *CheckinService) RecordResponse(ctx context.Context, phone, text, channel string, receivedAt time.Time) error {
	employee, err := s.employees.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, errors.EmployeeNotFound) {
			logger.Logger.Warn("Reply from unknown phone, ignoring",
				zap.String("phone", phone),
			)
			return &errors.SkipMessageError{Reason: "unknown sender"}
		}
		return err
	}

	score, comment, err := ParseMoodResponse(text)
	if err != nil {
		logger.Logger.Info("Unparseable mood reply, ignoring",
			zap.Int64("employee_id", employee.ID),
		)
		return &errors.SkipMessageError{Reason: "unparseable mood reply"}
	}

	if receivedAt.IsZero() {
		receivedAt = time.Now().UTC()
	}
	if channel == "" {
		channel = "whatsapp"
	}

	checkin := &model.MoodCheckin{
		OrganizationID: employee.OrganizationID,
		EmployeeID:     employee.ID,
		CheckinDate:    receivedAt,
		MoodScore:      score,
		Comment:        comment,
		Channel:        channel,
	}
	checkin.ID = snowflake.NextID()

	if err := s.checkins.Create(ctx, checkin); err != nil {
		if errors.Is(err, errors.CheckinAlreadyDone) {
			return &errors.SkipMessageError{Reason: "already checked in today"}
		}
		return err
	}

	logger.Logger.Info("Mood check-in recorded",
		zap.Int64("employee_id", employee.ID),
		zap.Int16("mood_score", score),
	)

	return nil
}

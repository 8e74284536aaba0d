package service

import (
	"testing"
	"time"

	"staffpulse/internal/model"
	"staffpulse/pkg/errors"
)

func int16p(v int16) *int16 { return &v }

func TestValidateScheduleRequest(t *testing.T) {
	at := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		req            CreateScheduleRequest
		wantRecurrence string
		wantErr        error
	}{
		{
			name:           "once with explicit recurrence",
			req:            CreateScheduleRequest{ScheduledAt: at, Recurrence: model.RecurrenceOnce},
			wantRecurrence: model.RecurrenceOnce,
		},
		{
			name:           "recurrence defaults to once",
			req:            CreateScheduleRequest{ScheduledAt: at},
			wantRecurrence: model.RecurrenceOnce,
		},
		{
			name:           "valid weekly",
			req:            CreateScheduleRequest{ScheduledAt: at, Recurrence: model.RecurrenceWeekly, DayOfWeek: int16p(1)},
			wantRecurrence: model.RecurrenceWeekly,
		},
		{
			name:    "missing scheduled_at",
			req:     CreateScheduleRequest{Recurrence: model.RecurrenceOnce},
			wantErr: errors.ScheduleInvalid,
		},
		{
			name:    "unknown recurrence",
			req:     CreateScheduleRequest{ScheduledAt: at, Recurrence: "monthly"},
			wantErr: errors.ScheduleInvalid,
		},
		{
			name:    "weekly without day_of_week",
			req:     CreateScheduleRequest{ScheduledAt: at, Recurrence: model.RecurrenceWeekly},
			wantErr: errors.ScheduleDayOfWeek,
		},
		{
			name:    "weekly with day_of_week out of range",
			req:     CreateScheduleRequest{ScheduledAt: at, Recurrence: model.RecurrenceWeekly, DayOfWeek: int16p(7)},
			wantErr: errors.ScheduleDayOfWeek,
		},
		{
			name:    "once with day_of_week set",
			req:     CreateScheduleRequest{ScheduledAt: at, Recurrence: model.RecurrenceOnce, DayOfWeek: int16p(2)},
			wantErr: errors.ScheduleDayOfWeek,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateScheduleRequest(&tt.req)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.wantRecurrence {
				t.Fatalf("recurrence = %q, want %q", got, tt.wantRecurrence)
			}
		})
	}
}

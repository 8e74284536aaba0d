package service

import "staffpulse/internal/model"

// PlanLimits describes what a subscription plan may use. The table is
// static; billing lives in a separate system.
type PlanLimits struct {
	MaxEmployees       int
	MaxActiveSchedules int
	WeeklyRecurrence   bool
	CSVExport          bool
	SMSFallback        bool
}

var planLimits = map[string]PlanLimits{
	model.PlanFree: {
		MaxEmployees:       25,
		MaxActiveSchedules: 3,
		WeeklyRecurrence:   false,
		CSVExport:          false,
		SMSFallback:        false,
	},
	model.PlanStarter: {
		MaxEmployees:       200,
		MaxActiveSchedules: 25,
		WeeklyRecurrence:   true,
		CSVExport:          true,
		SMSFallback:        false,
	},
	model.PlanPremium: {
		MaxEmployees:       5000,
		MaxActiveSchedules: 500,
		WeeklyRecurrence:   true,
		CSVExport:          true,
		SMSFallback:        true,
	},
}

// LimitsFor returns the limits of a plan; unknown plans get free limits.
func LimitsFor(plan string) PlanLimits {
	if limits, ok := planLimits[plan]; ok {
		return limits
	}
	return planLimits[model.PlanFree]
}

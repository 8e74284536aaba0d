package service

import (
	"testing"

	"staffpulse/internal/model"
)

func TestLimitsForKnownPlans(t *testing.T) {
	free := LimitsFor(model.PlanFree)
	if free.WeeklyRecurrence || free.CSVExport || free.SMSFallback {
		t.Errorf("free plan has gated features enabled: %+v", free)
	}

	starter := LimitsFor(model.PlanStarter)
	if !starter.WeeklyRecurrence || !starter.CSVExport {
		t.Errorf("starter plan missing expected features: %+v", starter)
	}
	if starter.SMSFallback {
		t.Error("starter plan should not have SMS fallback")
	}

	premium := LimitsFor(model.PlanPremium)
	if !premium.WeeklyRecurrence || !premium.CSVExport || !premium.SMSFallback {
		t.Errorf("premium plan missing expected features: %+v", premium)
	}

	if !(free.MaxEmployees < starter.MaxEmployees && starter.MaxEmployees < premium.MaxEmployees) {
		t.Error("employee limits should grow with the plan")
	}
}

func TestLimitsForUnknownPlanFallsBackToFree(t *testing.T) {
	if LimitsFor("enterprise-trial") != LimitsFor(model.PlanFree) {
		t.Error("unknown plan should get free limits")
	}
}

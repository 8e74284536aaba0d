package errors

import "errors"

// stdlib passthroughs so callers only import this package
var (
	Is     = errors.Is
	As     = errors.As
	New    = errors.New
	Unwrap = errors.Unwrap
)

func (d Definition) Error() string {
	return d.Message
}

// Definition is a business error code plus its default message.
type Definition struct {
	Code    string
	Message string
}

// auth
var (
	Unauthorized      = Definition{Code: "UNAUTHORIZED", Message: "Unauthorized"}
	InvalidAPIKey     = Definition{Code: "INVALID_API_KEY", Message: "Invalid admin API key"}
	InvalidAdminID    = Definition{Code: "INVALID_ADMIN_ID", Message: "Invalid admin ID format"}
	RateLimitExceeded = Definition{Code: "RATE_LIMIT_EXCEEDED", Message: "Too many requests, slow down"}
)

// tenancy
var (
	OrgNotFound       = Definition{Code: "ORG_NOT_FOUND", Message: "Organization not found"}
	OrgSuspended      = Definition{Code: "ORG_SUSPENDED", Message: "Organization is suspended"}
	EmployeeNotFound  = Definition{Code: "EMPLOYEE_NOT_FOUND", Message: "Employee not found"}
	DepartmentUnknown = Definition{Code: "DEPARTMENT_UNKNOWN", Message: "Department is not known to this organization"}
)

// schedules
var (
	ScheduleNotFound       = Definition{Code: "SCHEDULE_NOT_FOUND", Message: "Schedule not found"}
	ScheduleInvalid        = Definition{Code: "SCHEDULE_INVALID", Message: "Schedule is missing required fields"}
	ScheduleDayOfWeek      = Definition{Code: "SCHEDULE_DAY_OF_WEEK", Message: "day_of_week is required for weekly schedules and must be 0-6"}
	ScheduleLimitReached   = Definition{Code: "SCHEDULE_LIMIT_REACHED", Message: "Active schedule limit reached for this plan"}
	PlanFeatureUnavailable = Definition{Code: "PLAN_FEATURE_UNAVAILABLE", Message: "Feature not available on the current plan"}
)

// check-ins / webhook
var (
	CheckinAlreadyDone      = Definition{Code: "CHECKIN_ALREADY_DONE", Message: "Check-in already recorded for today"}
	CheckinMoodInvalid      = Definition{Code: "CHECKIN_MOOD_INVALID", Message: "Mood score must be between 1 and 5"}
	WebhookSignatureInvalid = Definition{Code: "WEBHOOK_SIGNATURE_INVALID", Message: "Webhook signature verification failed"}
)

// employees / limits
var (
	EmployeeInvalid      = Definition{Code: "EMPLOYEE_INVALID", Message: "Employee is missing required fields"}
	EmployeeLimitReached = Definition{Code: "EMPLOYEE_LIMIT_REACHED", Message: "Employee limit reached for this plan"}
)

// channel providers
var (
	ErrSignNameRequired     = Definition{Code: "SMS_SIGN_NAME_REQUIRED", Message: "SMS sign name is required"}
	ErrTemplateCodeRequired = Definition{Code: "SMS_TEMPLATE_CODE_REQUIRED", Message: "SMS template code is required"}
	ChannelNotAccepted      = Definition{Code: "CHANNEL_NOT_ACCEPTED", Message: "Provider did not accept the message"}
)

// Lookup maps codes back to their definitions.
var Lookup = map[string]Definition{
	Unauthorized.Code:            Unauthorized,
	InvalidAPIKey.Code:           InvalidAPIKey,
	InvalidAdminID.Code:          InvalidAdminID,
	RateLimitExceeded.Code:       RateLimitExceeded,
	OrgNotFound.Code:             OrgNotFound,
	OrgSuspended.Code:            OrgSuspended,
	EmployeeNotFound.Code:        EmployeeNotFound,
	DepartmentUnknown.Code:       DepartmentUnknown,
	ScheduleNotFound.Code:        ScheduleNotFound,
	ScheduleInvalid.Code:         ScheduleInvalid,
	ScheduleDayOfWeek.Code:       ScheduleDayOfWeek,
	ScheduleLimitReached.Code:    ScheduleLimitReached,
	PlanFeatureUnavailable.Code:  PlanFeatureUnavailable,
	CheckinAlreadyDone.Code:      CheckinAlreadyDone,
	CheckinMoodInvalid.Code:      CheckinMoodInvalid,
	WebhookSignatureInvalid.Code: WebhookSignatureInvalid,
	EmployeeInvalid.Code:         EmployeeInvalid,
	EmployeeLimitReached.Code:    EmployeeLimitReached,
	ErrSignNameRequired.Code:     ErrSignNameRequired,
	ErrTemplateCodeRequired.Code: ErrTemplateCodeRequired,
	ChannelNotAccepted.Code:      ChannelNotAccepted,
}

// Get returns the Definition for a code, or a generic one if unknown.
func Get(code string) Definition {
	if def, ok := Lookup[code]; ok {
		return def
	}
	return Definition{Code: code, Message: "Unexpected error"}
}

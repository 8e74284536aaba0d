package response

import (
	"context"
	"net/http"

	"github.com/cloudwego/hertz/pkg/app"

	"staffpulse/pkg/errors"
)

// ErrorResponse is the envelope for all error replies.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Details map[string]interface{} `json:"details,omitempty"`
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
}

// SuccessResponse is the envelope for all success replies.
type SuccessResponse struct {
	Data interface{}            `json:"data"`
	Meta map[string]interface{} `json:"meta,omitempty"`
}

func errorToHTTPStatus(err error) int {
	def, ok := err.(errors.Definition)
	if !ok {
		return http.StatusInternalServerError
	}

	switch def.Code {
	case "RATE_LIMIT_EXCEEDED":
		return http.StatusTooManyRequests
	case "UNAUTHORIZED", "INVALID_API_KEY":
		return http.StatusUnauthorized
	case "ORG_SUSPENDED", "PLAN_FEATURE_UNAVAILABLE",
		"SCHEDULE_LIMIT_REACHED", "EMPLOYEE_LIMIT_REACHED":
		return http.StatusForbidden
	case "ORG_NOT_FOUND", "EMPLOYEE_NOT_FOUND", "SCHEDULE_NOT_FOUND":
		return http.StatusNotFound
	case "SCHEDULE_INVALID", "SCHEDULE_DAY_OF_WEEK", "DEPARTMENT_UNKNOWN", "EMPLOYEE_INVALID",
		"CHECKIN_MOOD_INVALID", "CHECKIN_ALREADY_DONE", "INVALID_ADMIN_ID",
		"INVALID_REQUEST", "WEBHOOK_SIGNATURE_INVALID":
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Error writes an error response with the mapped status code.
func Error(ctx context.Context, c *app.RequestContext, err error) {
	statusCode := errorToHTTPStatus(err)

	var code, message string
	if def, ok := err.(errors.Definition); ok {
		code = def.Code
		message = def.Message
	} else {
		code = "INTERNAL_ERROR"
		message = err.Error()
	}

	c.JSON(statusCode, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}

func ErrorWithDetails(ctx context.Context, c *app.RequestContext, err error, details map[string]interface{}) {
	statusCode := errorToHTTPStatus(err)

	var code, message string
	if def, ok := err.(errors.Definition); ok {
		code = def.Code
		message = def.Message
	} else {
		code = "INTERNAL_ERROR"
		message = err.Error()
	}

	c.JSON(statusCode, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

func Success(ctx context.Context, c *app.RequestContext, data interface{}) {
	c.JSON(http.StatusOK, SuccessResponse{
		Data: data,
	})
}

func SuccessWithMeta(ctx context.Context, c *app.RequestContext, data interface{}, meta map[string]interface{}) {
	c.JSON(http.StatusOK, SuccessResponse{
		Data: data,
		Meta: meta,
	})
}

func BindError(ctx context.Context, c *app.RequestContext, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error: ErrorDetail{
			Code:    "INVALID_REQUEST",
			Message: err.Error(),
		},
	})
}

// NoContent writes 204, used by DELETE handlers.
func NoContent(ctx context.Context, c *app.RequestContext) {
	c.Status(http.StatusNoContent)
}

package models

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error codes returned in the API failure envelope.
const (
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeInvalidInput      = "INVALID_INPUT"
	CodePlanRestriction   = "PLAN_RESTRICTION"
	CodeUsageLimit        = "USAGE_LIMIT_EXCEEDED"
	CodeNotFound          = "NOT_FOUND"
	CodeGenerationFailed  = "GENERATION_FAILED"
	CodePersistenceFailed = "PERSISTENCE_FAILED"
	CodeInternal          = "INTERNAL_ERROR"
)

// ErrorResponse is the standardized API failure envelope.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// AppError represents a custom application error
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Predefined error constructors
func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    CodeUnauthorized,
		Message: message,
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeInvalidInput,
		Message: message,
	}
}

func NewPlanRestrictionError(message string) *AppError {
	return &AppError{
		Code:    CodePlanRestriction,
		Message: message,
	}
}

func NewUsageLimitError(message string) *AppError {
	return &AppError{
		Code:    CodeUsageLimit,
		Message: message,
	}
}

func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

func NewGenerationError(err error) *AppError {
	return &AppError{
		Code:    CodeGenerationFailed,
		Message: "Content generation failed",
		Err:     err,
	}
}

func NewPersistenceError(err error) *AppError {
	return &AppError{
		Code:    CodePersistenceFailed,
		Message: "Failed to save creation",
		Err:     err,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "Internal server error",
		Err:     err,
	}
}

// RespondWithError creates a standardized error response
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	var response ErrorResponse

	if appErr, ok := err.(*AppError); ok {
		response = ErrorResponse{
			Message: appErr.Message,
			Code:    appErr.Code,
		}
	} else {
		response = ErrorResponse{
			Message: err.Error(),
		}
	}

	return c.Status(status).JSON(response)
}

package models

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// ErrorEnvelope is the wire shape of every error response.
type ErrorEnvelope struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody carries the machine-readable code, a human message, and
// optional structured details.
type ErrorBody struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details"`
}

// AppError represents a custom application error
type AppError struct {
	Code    string
	Message string
	Details map[string]any
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

func NewAuthRequiredError() *AppError {
	return &AppError{Code: "AUTH_REQUIRED", Message: "Missing Bearer token"}
}

func NewInvalidTokenError(message string) *AppError {
	return &AppError{Code: "INVALID_TOKEN", Message: message}
}

func NewInvalidCredentialsError() *AppError {
	return &AppError{Code: "INVALID_CREDENTIALS", Message: "Email or password is incorrect"}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{Code: "FORBIDDEN", Message: message}
}

func NewNotFoundError(resource string) *AppError {
	return &AppError{Code: "NOT_FOUND", Message: fmt.Sprintf("%s not found", resource)}
}

func NewEmailInUseError() *AppError {
	return &AppError{Code: "EMAIL_IN_USE", Message: "That email address is already registered"}
}

func NewValidationError(message string, details map[string]any) *AppError {
	return &AppError{Code: "VALIDATION_ERROR", Message: message, Details: details}
}

func NewBadPagingError() *AppError {
	return &AppError{Code: "BAD_PAGING", Message: "page must be >= 1 and pageSize must be 1..100"}
}

func NewInvalidOfferError(message string) *AppError {
	return &AppError{Code: "INVALID_OFFER", Message: message}
}

func NewOfferAlreadyDecidedError() *AppError {
	return &AppError{Code: "OFFER_ALREADY_DECIDED", Message: "This offer has already been decided"}
}

func NewInternalError(err error) *AppError {
	return &AppError{Code: "INTERNAL_ERROR", Message: "Internal server error", Err: err}
}

// RespondWithError writes err as a standardized error envelope.
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	body := ErrorBody{Details: map[string]any{}}

	if appErr, ok := err.(*AppError); ok {
		body.Code = appErr.Code
		body.Message = appErr.Message
		if appErr.Details != nil {
			body.Details = appErr.Details
		}
	} else {
		body.Code = "INTERNAL_ERROR"
		body.Message = err.Error()
	}

	return c.Status(status).JSON(ErrorEnvelope{Error: body})
}

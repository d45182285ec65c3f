package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ValidationError carries the ordered, human-readable messages collected
// while validating user input. All applicable checks are evaluated before
// the error is returned; nothing is persisted when it is.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// NewValidationError builds a ValidationError from one or more messages.
func NewValidationError(messages ...string) *ValidationError {
	return &ValidationError{Messages: messages}
}

// AppError is a coded application error for non-validation failures.
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

// Error codes used across repositories and handlers.
const (
	CodeNotFound     = "NOT_FOUND"
	CodeForbidden    = "FORBIDDEN"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeInternal     = "INTERNAL_ERROR"
)

// NewNotFoundError reports a missing or malformed-id entity.
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// NewPermissionError reports that the acting user does not own the target.
func NewPermissionError() *AppError {
	return &AppError{
		Code:    CodeForbidden,
		Message: "You do not have permission to perform that action.",
	}
}

// NewUnauthorizedError reports a failed authentication attempt.
func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    CodeUnauthorized,
		Message: message,
	}
}

// NewInternalError wraps an infrastructure failure. The cause is retained
// for logging but is never serialized to the caller.
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "Please try again later.",
		Err:     err,
	}
}

// ErrorResponse is the standardized JSON error payload.
type ErrorResponse struct {
	Error  string   `json:"error"`
	Code   string   `json:"code,omitempty"`
	Errors []string `json:"errors,omitempty"`
}

// StatusForError maps an application error to an HTTP status code.
func StatusForError(err error) int {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return fiber.StatusBadRequest
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case CodeNotFound:
			return fiber.StatusNotFound
		case CodeForbidden:
			return fiber.StatusForbidden
		case CodeUnauthorized:
			return fiber.StatusUnauthorized
		}
	}
	return fiber.StatusInternalServerError
}

// RespondWithError writes the standardized error response. Internal causes
// are deliberately omitted from the payload.
func RespondWithError(c *fiber.Ctx, err error) error {
	status := StatusForError(err)

	var verr *ValidationError
	if errors.As(err, &verr) {
		return c.Status(status).JSON(ErrorResponse{
			Error:  verr.Error(),
			Code:   "VALIDATION_ERROR",
			Errors: verr.Messages,
		})
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return c.Status(status).JSON(ErrorResponse{
			Error: appErr.Message,
			Code:  appErr.Code,
		})
	}

	return c.Status(status).JSON(ErrorResponse{
		Error: "Please try again later.",
		Code:  CodeInternal,
	})
}

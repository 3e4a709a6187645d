package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrNotFound           = NewAppError("NOT_FOUND", "Resource not found", http.StatusNotFound)
	ErrForbidden          = NewAppError("FORBIDDEN", "Access denied", http.StatusForbidden)
	ErrBadRequest         = NewAppError("BAD_REQUEST", "Invalid request", http.StatusBadRequest)
	ErrInternalServer     = NewAppError("INTERNAL_SERVER_ERROR", "Internal server error", http.StatusInternalServerError)
	ErrConflict           = NewAppError("CONFLICT", "Resource conflict", http.StatusConflict)
	ErrAlreadyExists      = NewAppError("ALREADY_EXISTS", "Resource already exists", http.StatusConflict)
	ErrValidation         = NewAppError("VALIDATION_ERROR", "Validation error", http.StatusBadRequest)
	ErrInvalidID          = NewAppError("INVALID_ID", "Invalid identifier", http.StatusBadRequest)
	ErrDatabase           = NewAppError("DATABASE_ERROR", "Database error", http.StatusInternalServerError)
	ErrStorageUnavailable = NewAppError("STORAGE_UNAVAILABLE", "Storage backend is not configured", http.StatusServiceUnavailable)
	ErrUserNotFound       = NewAppError("USER_NOT_FOUND", "User not found", http.StatusNotFound)
	ErrAccountNotFound    = NewAppError("ACCOUNT_NOT_FOUND", "Account not found", http.StatusNotFound)
	ErrCategoryNotFound   = NewAppError("CATEGORY_NOT_FOUND", "Category not found", http.StatusNotFound)
	ErrBudgetNotFound     = NewAppError("BUDGET_NOT_FOUND", "Budget not found", http.StatusNotFound)
	ErrResourceNotOwned   = NewAppError("RESOURCE_NOT_OWNED", "Resource does not belong to the user", http.StatusForbidden)
	ErrTooManyRequests    = NewAppError("RATE_LIMIT_EXCEEDED", "Too many requests, try again in a few minutes", http.StatusTooManyRequests)
)

type AppError struct {
	Code       string
	Message    string
	StatusCode int
	Details    map[string]interface{}
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s - %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches on Code so that clones produced by WithError / WithDetails
// still satisfy errors.Is against the package level sentinels.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Code == t.Code
}

func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	clone := e.clone()
	if details == nil {
		clone.Details = make(map[string]interface{})
		return clone
	}
	clone.Details = make(map[string]interface{}, len(details))
	for k, v := range details {
		clone.Details[k] = v
	}
	return clone
}

func (e *AppError) WithError(err error) *AppError {
	clone := e.clone()
	clone.Err = err
	return clone
}

func NewAppError(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    make(map[string]interface{}),
	}
}

func WrapError(err error, code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Err:        err,
		Details:    make(map[string]interface{}),
	}
}

func (e *AppError) clone() *AppError {
	if e == nil {
		return nil
	}
	clone := *e
	if e.Details != nil {
		clone.Details = make(map[string]interface{}, len(e.Details))
		for k, v := range e.Details {
			clone.Details[k] = v
		}
	} else {
		clone.Details = make(map[string]interface{})
	}
	return &clone
}

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	ok := errors.As(err, &appErr)
	return appErr, ok
}

func FromError(err error) *AppError {
	if appErr, ok := AsAppError(err); ok {
		return appErr
	}

	if errors.Is(err, context.Canceled) {
		return WrapError(err, "REQUEST_CANCELED", "Request canceled by the client", http.StatusRequestTimeout)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return WrapError(err, "REQUEST_TIMEOUT", "Request timed out", http.StatusGatewayTimeout)
	}

	return WrapError(err, "UNKNOWN_ERROR", "Unknown error", http.StatusInternalServerError)
}

func NewValidationError(field, message string) *AppError {
	return &AppError{
		Code:       "VALIDATION_ERROR",
		Message:    fmt.Sprintf("%s %s", field, message),
		StatusCode: http.StatusBadRequest,
		Details: map[string]interface{}{
			"field": field,
		},
	}
}

func NewDatabaseError(err error) *AppError {
	return WrapError(err, "DATABASE_ERROR", "Failed to execute database operation", http.StatusInternalServerError)
}

func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		StatusCode: http.StatusNotFound,
		Details: map[string]interface{}{
			"resource": resource,
		},
	}
}

func NewConflictError(resource string) *AppError {
	return &AppError{
		Code:       "CONFLICT",
		Message:    fmt.Sprintf("%s already exists", resource),
		StatusCode: http.StatusConflict,
		Details: map[string]interface{}{
			"resource": resource,
		},
	}
}

// NewAlreadyExistsError reports a uniqueness violation on resource. details
// carries the identifying values that collided (id, email, period...).
func NewAlreadyExistsError(resource string, details map[string]interface{}) *AppError {
	err := ErrAlreadyExists.WithDetails(details)
	err.Message = fmt.Sprintf("%s already exists", resource)
	err.Details["resource"] = resource
	return err
}

func ParseValidationErrors(err error) *AppError {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return ErrBadRequest.WithError(err)
	}

	fieldErrors := make([]map[string]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		fieldErrors = append(fieldErrors, map[string]string{
			"field":   toSnakeCase(fieldErr.Field()),
			"message": translateValidationError(fieldErr),
		})
	}

	return &AppError{
		Code:       "VALIDATION_ERROR",
		Message:    "Invalid fields",
		StatusCode: http.StatusBadRequest,
		Details: map[string]interface{}{
			"fields": fieldErrors,
		},
	}
}

func toSnakeCase(field string) string {
	var b strings.Builder
	for i, r := range field {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

func translateValidationError(fe validator.FieldError) string {
	fieldName := toSnakeCase(fe.Field())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fieldName)
	case "email":
		return "invalid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s", fieldName, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fieldName, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", fieldName, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", fieldName, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fieldName, fe.Param())
	case "len":
		return fmt.Sprintf("%s must have exactly %s characters", fieldName, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fieldName, fe.Param())
	case "hexadecimal":
		return fmt.Sprintf("%s must be hexadecimal", fieldName)
	case "uppercase":
		return fmt.Sprintf("%s must be uppercase", fieldName)
	default:
		return fmt.Sprintf("validation '%s' failed for %s", fe.Tag(), fieldName)
	}
}

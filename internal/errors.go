package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
)

type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden    ErrorType = "FORBIDDEN"
	ErrorTypeConflict     ErrorType = "CONFLICT"
	ErrorTypeInternal     ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	ErrCodeNotAuthorized      ErrorCode = "NOT_AUTHORIZED"
	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodePendingApproval    ErrorCode = "PENDING_APPROVAL"
	ErrCodeInvalidOldPassword ErrorCode = "INVALID_OLD_PASSWORD"
	ErrCodeTokenMalformed     ErrorCode = "TOKEN_MALFORMED"
	ErrCodeTokenInvalid       ErrorCode = "TOKEN_INVALID"
	ErrCodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"

	ErrCodeUserNotFound    ErrorCode = "USER_NOT_FOUND"
	ErrCodeCompanyNotFound ErrorCode = "COMPANY_NOT_FOUND"
	ErrCodeExpenseNotFound ErrorCode = "EXPENSE_NOT_FOUND"
	ErrCodeDeleteFailed    ErrorCode = "DELETE_FAILED"
	ErrCodeEmailTaken      ErrorCode = "EMAIL_TAKEN"

	ErrCodeInternalError ErrorCode = "INTERNAL_ERROR"
)

type AppError struct {
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	return &AppError{
		Type:       e.Type,
		Code:       e.Code,
		Message:    e.Message,
		Details:    e.Details,
		StatusCode: e.StatusCode,
		Cause:      cause,
	}
}

// Is lets errors.Is match a wrapped copy against its sentinel by code.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewUnauthorizedError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func NewForbiddenError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeForbidden,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

func NewConflictError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       ErrCodeInternalError,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// Sentinel errors returned by services. Authorization failures happen before
// any storage access, so ErrNotAuthorized always means no side effect occurred.
var (
	ErrNotAuthorized = NewForbiddenError("not authorized", ErrCodeNotAuthorized)

	// Login deliberately merges "no such user" and "wrong password" so the
	// response carries no account-enumeration signal.
	ErrInvalidCredentials = NewUnauthorizedError("invalid credentials", ErrCodeInvalidCredentials)
	ErrPendingApproval    = NewForbiddenError("account is pending approval", ErrCodePendingApproval)
	ErrInvalidOldPassword = NewValidationError("invalid old password", ErrCodeInvalidOldPassword)

	ErrTokenMalformed = NewUnauthorizedError("malformed token", ErrCodeTokenMalformed)
	ErrTokenInvalid   = NewUnauthorizedError("invalid token", ErrCodeTokenInvalid)
	ErrTokenExpired   = NewUnauthorizedError("token has expired", ErrCodeTokenExpired)

	ErrUserNotFound    = NewNotFoundError("user not found", ErrCodeUserNotFound)
	ErrCompanyNotFound = NewNotFoundError("company not found", ErrCodeCompanyNotFound)
	ErrExpenseNotFound = NewNotFoundError("expense not found", ErrCodeExpenseNotFound)
	ErrDeleteFailed    = NewNotFoundError("delete affected no rows", ErrCodeDeleteFailed)
	ErrEmailTaken      = NewConflictError("email already in use", ErrCodeEmailTaken)
)

func IsAppError(err error) (*AppError, bool) {
	if appErr, ok := err.(*AppError); ok {
		return appErr, true
	}
	return nil, false
}

type Response struct {
	Error *AppError `json:"error"`
}

func (e *AppError) ToHTTPResponse() (int, interface{}) {
	return e.StatusCode, Response{Error: e}
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType   `json:"type"`
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}

package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound            = errors.New("resource not found")
	ErrAlreadyExists       = errors.New("resource already exists")
	ErrInvalidInput        = errors.New("invalid input")
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrTokenExpired        = errors.New("token expired")
	ErrPartnerNotActive    = errors.New("partner not active")
	ErrAmbiguousTenant     = errors.New("more than one active partner matches host")
	ErrInvalidDependency   = errors.New("invalid conditional display dependency")
	ErrIncompleteStep      = errors.New("step has unanswered required questions")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrIntegrationMissing  = errors.New("crm integration not connected")
	ErrUpstream            = errors.New("upstream service failed")
	ErrDomainNotVerifiable = errors.New("domain verification record not found")
)

// Error codes
const (
	CodeBadRequest    = "BAD_REQUEST"
	CodeInvalidInput  = "INVALID_INPUT"
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeForbidden     = "FORBIDDEN"
	CodeNotFound      = "NOT_FOUND"
	CodeConflict      = "CONFLICT"
	CodeUnprocessable = "UNPROCESSABLE_ENTITY"
	CodeBadGateway    = "BAD_GATEWAY"
	CodeInternalError = "INTERNAL_ERROR"
)

// AppError represents application error with HTTP status
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, CodeNotFound, message, ErrNotFound)
}

func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeInvalidInput, message, ErrInvalidInput)
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, CodeUnauthorized, message, ErrUnauthorized)
}

func Forbidden(message string) *AppError {
	return NewAppError(http.StatusForbidden, CodeForbidden, message, ErrForbidden)
}

func Conflict(message string) *AppError {
	return NewAppError(http.StatusConflict, CodeConflict, message, ErrAlreadyExists)
}

// Unprocessable wraps a domain error that is well-formed but cannot be applied.
func Unprocessable(message string, err error) *AppError {
	return NewAppError(http.StatusUnprocessableEntity, CodeUnprocessable, message, err)
}

func BadGateway(message string, err error) *AppError {
	if err == nil {
		err = ErrUpstream
	}
	return NewAppError(http.StatusBadGateway, CodeBadGateway, message, err)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeInternalError, "internal server error", err)
}

func InternalServerError(message string) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeInternalError, message, nil)
}

// NewError creates a new error with a custom message wrapping an existing error
func NewError(message string, err error) error {
	return NewAppError(http.StatusBadRequest, CodeBadRequest, message, err)
}

// From converts well-known sentinel errors into AppErrors. Unknown errors become 500s.
func From(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return NewAppError(http.StatusNotFound, CodeNotFound, "resource not found", err)
	case errors.Is(err, ErrIntegrationMissing):
		return NewAppError(http.StatusNotFound, CodeNotFound, err.Error(), err)
	case errors.Is(err, ErrAlreadyExists):
		return NewAppError(http.StatusConflict, CodeConflict, "resource already exists", err)
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrBadRequest), errors.Is(err, ErrInvalidDependency):
		return NewAppError(http.StatusBadRequest, CodeInvalidInput, err.Error(), err)
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrTokenExpired):
		return NewAppError(http.StatusUnauthorized, CodeUnauthorized, "unauthorized", err)
	case errors.Is(err, ErrForbidden), errors.Is(err, ErrPartnerNotActive):
		return NewAppError(http.StatusForbidden, CodeForbidden, err.Error(), err)
	case errors.Is(err, ErrIncompleteStep), errors.Is(err, ErrInvalidTransition), errors.Is(err, ErrDomainNotVerifiable):
		return NewAppError(http.StatusUnprocessableEntity, CodeUnprocessable, err.Error(), err)
	case errors.Is(err, ErrUpstream):
		return NewAppError(http.StatusBadGateway, CodeBadGateway, "upstream service failed", err)
	}
	return InternalError(err)
}

// Package apperr defines the business-rule failures returned by the domain
// services and their mapping onto HTTP errors.
package apperr

import (
	"errors"
	"fmt"
)

// Code is the machine-readable kind of a business failure.
type Code string

const (
	CodeNotFound            Code = "not_found"
	CodeDuplicateMembership Code = "duplicate_membership"
	CodeNotEnrolled         Code = "not_enrolled"
	CodeRewardInactive      Code = "reward_inactive"
	CodeOutOfStock          Code = "out_of_stock"
	CodeInsufficientPoints  Code = "insufficient_points"
	CodeInvalidStatus       Code = "invalid_status"
	CodeValidation          Code = "validation_error"
	CodeUnauthorized        Code = "unauthorized"
	CodeForbidden           Code = "forbidden"
)

// Error carries a Code plus a message suitable for the API caller.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error with the same Code, so the sentinels below work with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

var (
	ErrNotFound            = New(CodeNotFound, "not found")
	ErrDuplicateMembership = New(CodeDuplicateMembership, "already joined this tournament")
	ErrNotEnrolled         = New(CodeNotEnrolled, "not enrolled in this tournament")
	ErrRewardInactive      = New(CodeRewardInactive, "reward is not active")
	ErrOutOfStock          = New(CodeOutOfStock, "reward is out of stock")
	ErrInsufficientPoints  = New(CodeInsufficientPoints, "insufficient points")
	ErrInvalidStatus       = New(CodeInvalidStatus, "invalid status")
	ErrValidation          = New(CodeValidation, "validation error")
	ErrUnauthorized        = New(CodeUnauthorized, "unauthorized")
	ErrForbidden           = New(CodeForbidden, "forbidden")
)

// CodeOf returns the Code of the first *Error in err's chain.
func CodeOf(err error) (Code, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Code, true
	}
	return "", false
}

// Package fault defines the typed errors returned by the hydra library
// functions and their mapping to API fault codes.
package fault

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an Error.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindPermission
)

// Fault codes reported to API clients.
const (
	CodeHydra       = "HydraError"
	CodeNotFound    = "ResourceNotFoundError"
	CodePermission  = "PermissionError"
	CodeInternal    = "InternalError"
	CodeRateLimited = "RateLimitError"
)

// Error is a typed library error.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Code returns the API fault code for the error kind.
func (e *Error) Code() string {
	switch e.Kind {
	case KindValidation:
		return CodeHydra
	case KindNotFound:
		return CodeNotFound
	case KindPermission:
		return CodePermission
	default:
		return CodeInternal
	}
}

// NotFound reports a missing resource.
func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Permission reports a denied permission or ownership check.
func Permission(format string, args ...interface{}) *Error {
	return &Error{Kind: KindPermission, Message: fmt.Sprintf(format, args...)}
}

// Validation reports a business rule violation, e.g. a duplicate name.
func Validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps err as an internal error. Typed errors pass through unchanged.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	var fe *Error
	if errors.As(err, &fe) {
		return err
	}
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

func kindOf(err error) (Kind, bool) {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind, true
	}
	return KindInternal, false
}

func IsNotFound(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindNotFound
}

func IsPermission(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindPermission
}

func IsValidation(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindValidation
}

// Code returns the fault code of err, or CodeInternal for untyped errors.
func Code(err error) string {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Code()
	}
	return CodeInternal
}

// HTTPStatus maps err to the HTTP status used by the REST transport.
func HTTPStatus(err error) int {
	k, _ := kindOf(err)
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindPermission:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

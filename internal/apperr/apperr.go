// Package apperr defines the error values the API surfaces to callers. Every
// user-visible failure carries a stable reason code so clients can branch
// without parsing messages.
package apperr

import "net/http"

// Reason codes returned in error payloads.
const (
	CodeMissingValue       = "MissingValue"
	CodeInvalidValue       = "InvalidValue"
	CodeInvalidUnit        = "InvalidUnit"
	CodeValidationError    = "ValidationError"
	CodeDuplicateError     = "DuplicateError"
	CodeUnknownUser        = "UnknownUser"
	CodeInvalidCredentials = "InvalidCredentials"
	CodeNotFound           = "NotFound"
	CodeInternalError      = "InternalError"
)

// Error is a caller-visible failure: an HTTP status, a machine-checkable
// reason code and a human-readable message. The wrapped error is logged
// internally and never serialized.
type Error struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches two apperr values by reason code, so errors.Is works against
// code-only sentinels.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

func New(status int, code, message string) *Error {
	return &Error{Status: status, Code: code, Message: message}
}

func Validation(code, message string) *Error {
	return New(http.StatusBadRequest, code, message)
}

func Conflict(message string) *Error {
	return New(http.StatusConflict, CodeDuplicateError, message)
}

func Unauthorized(code, message string) *Error {
	return New(http.StatusUnauthorized, code, message)
}

// NotFound covers both genuinely absent entities and entities owned by
// someone else; the two are deliberately indistinguishable to the caller.
func NotFound(message string) *Error {
	return New(http.StatusNotFound, CodeNotFound, message)
}

func Internal(err error) *Error {
	return &Error{
		Status:  http.StatusInternalServerError,
		Code:    CodeInternalError,
		Message: "Internal service error",
		Err:     err,
	}
}

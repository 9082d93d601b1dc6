package pkgerror

import (
	"fmt"
	"net/http"
)

// Type classifies errors into high-level buckets used by the application.
type Type int

const (
	TypeServer     Type = iota // Infrastructure failures (I/O, transport).
	TypeValidation             // Caller supplied something unusable.
)

func (t Type) String() string {
	switch t {
	case TypeValidation:
		return "ERROR_TYPE_VALIDATION"
	case TypeServer:
		return "ERROR_TYPE_SERVER"
	default:
		return "ERROR_TYPE_UNKNOWN"
	}
}

// Code is a stable identifier used for mapping errors to HTTP status codes.
type Code int

const (
	CodeInternal      Code = iota
	CodeInvalidFormat      // request body could not be read as expected
	CodeInvalidCSV         // CSV payload failed to parse
	CodeNotFound
)

func (c Code) String() string {
	switch c {
	case CodeInvalidFormat:
		return "ERROR_CODE_INVALID_FORMAT"
	case CodeInvalidCSV:
		return "ERROR_CODE_INVALID_CSV"
	case CodeNotFound:
		return "ERROR_CODE_NOT_FOUND"
	default:
		return "ERROR_CODE_INTERNAL"
	}
}

// Error is a structured error used across the application.
type Error struct {
	err     error
	msg     string
	errType Type
	code    Code
}

// Error implements the error interface. The wrapped error wins over the
// user-facing message so logs keep the root cause.
func (e *Error) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	if e.msg != "" {
		return e.msg
	}
	if e.errType == TypeValidation {
		return "Validation violation"
	}
	return "Internal error"
}

// String returns a verbose representation of the error for debugging/logging.
func (e *Error) String() string {
	return fmt.Sprintf("Error Type: %s, Code: %s, Message: %s, Underlying Error: %v",
		e.errType, e.code, e.msg, e.err)
}

// Msg returns the user-facing error message.
func (e *Error) Msg() string { return e.msg }

// Type returns the high-level error type.
func (e *Error) Type() Type { return e.errType }

// Code returns the stable error code.
func (e *Error) Code() Code { return e.code }

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error { return e.err }

// StatusCode maps the error code to an HTTP status code.
func (e *Error) StatusCode() int {
	switch e.code {
	case CodeInvalidFormat, CodeInvalidCSV:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// NewServer wraps an infrastructure failure. The message never leaks err.
func NewServer(err error) error {
	return &Error{err: err, msg: "Internal server error", errType: TypeServer, code: CodeInternal}
}

// NewInvalidFormat reports a request body that is not in the expected shape.
func NewInvalidFormat(err error) error {
	return &Error{err: err, msg: "invalid request body", errType: TypeValidation, code: CodeInvalidFormat}
}

// NewInvalidCSV reports a CSV payload that could not be parsed. The parser
// detail is part of the user-facing message.
func NewInvalidCSV(err error) error {
	return &Error{
		err:     err,
		msg:     "CSV Parse Error: " + err.Error(),
		errType: TypeValidation,
		code:    CodeInvalidCSV,
	}
}

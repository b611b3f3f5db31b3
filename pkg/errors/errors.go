package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Reader errors
	ErrUnexpectedElement   ErrorCode = "UNEXPECTED_ELEMENT"
	ErrReaderUnknown       ErrorCode = "READER_UNKNOWN"
	ErrUnsupportedEncoding ErrorCode = "UNSUPPORTED_ENCODING"

	// Parser errors
	ErrInvalidDirectory    ErrorCode = "INVALID_DIRECTORY"
	ErrBinaryFile          ErrorCode = "BINARY_FILE"
	ErrInvalidTag          ErrorCode = "INVALID_TAG"
	ErrUnknownParse        ErrorCode = "UNKNOWN_PARSE"
	ErrUnterminatedElement ErrorCode = "UNTERMINATED_ELEMENT"
	ErrVariableResolve     ErrorCode = "VARIABLE_RESOLVE"

	// Command errors
	ErrCommandInvalidInput ErrorCode = "COMMAND_INVALID_INPUT"
	ErrCommandCreation     ErrorCode = "COMMAND_CREATION"
	ErrCommandFailed       ErrorCode = "COMMAND_FAILED"

	// Template errors
	ErrTemplateNotFound ErrorCode = "TEMPLATE_NOT_FOUND"
	ErrTemplateInvalid  ErrorCode = "TEMPLATE_INVALID"
	ErrGitExecute       ErrorCode = "GIT_EXECUTE"

	// FileSystem errors
	ErrFileAccess ErrorCode = "FILE_ACCESS"
	ErrFileWrite  ErrorCode = "FILE_WRITE"
	ErrDirCreate  ErrorCode = "DIR_CREATE"
)

// MktError represents a structured error with code and details
type MktError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *MktError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *MktError) Unwrap() error {
	return e.Wrapped
}

// Is matches any MktError carrying the same code
func (e *MktError) Is(target error) bool {
	var targetErr *MktError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new MktError with the given code and message
func New(code ErrorCode, message string) *MktError {
	return &MktError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new MktError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *MktError {
	return &MktError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a MktError
func Wrap(err error, code ErrorCode, message string) *MktError {
	if err == nil {
		return nil
	}
	return &MktError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *MktError {
	if err == nil {
		return nil
	}
	return &MktError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *MktError) WithDetail(key string, value interface{}) *MktError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var mktErr *MktError
	if errors.As(err, &mktErr) {
		return mktErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a MktError
func GetErrorCode(err error) ErrorCode {
	var mktErr *MktError
	if errors.As(err, &mktErr) {
		return mktErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a MktError
func GetErrorDetails(err error) map[string]interface{} {
	var mktErr *MktError
	if errors.As(err, &mktErr) {
		return mktErr.Details
	}
	return nil
}

// WithDetails adds several details to the error
func (e *MktError) WithDetails(details map[string]interface{}) *MktError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

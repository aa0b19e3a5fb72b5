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
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Configuration errors
	ErrConfigLoad        ErrorCode = "CONFIG_LOAD"
	ErrConfigValid       ErrorCode = "CONFIG_INVALID"
	ErrEntryPointMissing ErrorCode = "ENTRY_POINT_MISSING"
	ErrDuplicateDest     ErrorCode = "DUPLICATE_DESTINATION"

	// Build errors
	ErrSourceRead       ErrorCode = "SOURCE_READ"
	ErrSourceWalk       ErrorCode = "SOURCE_WALK"
	ErrVersionLoad      ErrorCode = "VERSION_LOAD"
	ErrVersionSave      ErrorCode = "VERSION_SAVE"
	ErrUnknownIncrement ErrorCode = "UNKNOWN_INCREMENT"
	ErrArtifactWrite    ErrorCode = "ARTIFACT_WRITE"
	ErrManifestWrite    ErrorCode = "MANIFEST_WRITE"
	ErrTemplateRender   ErrorCode = "TEMPLATE_RENDER"
	ErrLiteralDecode    ErrorCode = "LITERAL_DECODE"

	// Install errors
	ErrInstallDelete ErrorCode = "INSTALL_DELETE"
	ErrInstallWrite  ErrorCode = "INSTALL_WRITE"
)

// configurationCodes are the codes an operator fixes by editing the project
// rather than by retrying.
var configurationCodes = map[ErrorCode]bool{
	ErrConfigValid:       true,
	ErrEntryPointMissing: true,
	ErrDuplicateDest:     true,
}

// LuapackError represents a structured error with code and details
type LuapackError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *LuapackError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *LuapackError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *LuapackError) Is(target error) bool {
	var targetErr *LuapackError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new LuapackError with the given code and message
func New(code ErrorCode, message string) *LuapackError {
	return &LuapackError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new LuapackError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *LuapackError {
	return &LuapackError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a LuapackError
func Wrap(err error, code ErrorCode, message string) *LuapackError {
	if err == nil {
		return nil
	}
	return &LuapackError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *LuapackError {
	if err == nil {
		return nil
	}
	return &LuapackError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *LuapackError) WithDetail(key string, value interface{}) *LuapackError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var luapackErr *LuapackError
	if errors.As(err, &luapackErr) {
		return luapackErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a LuapackError
func GetErrorCode(err error) ErrorCode {
	var luapackErr *LuapackError
	if errors.As(err, &luapackErr) {
		return luapackErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a LuapackError
func GetErrorDetails(err error) map[string]interface{} {
	var luapackErr *LuapackError
	if errors.As(err, &luapackErr) {
		return luapackErr.Details
	}
	return nil
}

// IsConfigurationError reports whether err belongs to the configuration
// class: the build stops, nothing is written and the operator fixes the
// project before running again.
func IsConfigurationError(err error) bool {
	return configurationCodes[GetErrorCode(err)]
}

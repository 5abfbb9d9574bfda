package errors

import (
	"errors"
	"fmt"
	"strings"
)

// AppError is the unified error type for module lifecycle failures.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message. It always names the
	// offending module identifier(s).
	Message string `json:"message"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// CodeOf extracts the ErrorCode from err, or ErrCodeInternal if err is not
// an AppError.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrCodeInternal
}

// HasCode reports whether err is an AppError carrying the given code.
func HasCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// --- Module lifecycle constructors ---

// SelfImport creates an error for a module that declares itself in its own
// imports list.
func SelfImport(module string) *AppError {
	return &AppError{
		Code:    ErrCodeConfiguration,
		Message: fmt.Sprintf("module %q imports itself", module),
		Details: map[string]any{"module": module},
	}
}

// DuplicateImport creates an error for a module declaring the same import twice.
func DuplicateImport(module, imported string) *AppError {
	return &AppError{
		Code:    ErrCodeConfiguration,
		Message: fmt.Sprintf("module %q declares duplicate import %q", module, imported),
		Details: map[string]any{"module": module, "import": imported},
	}
}

// CircularDependency creates an error carrying the full cycle path,
// e.g. "user -> profile -> user".
func CircularDependency(path []string) *AppError {
	joined := strings.Join(path, " -> ")
	return &AppError{
		Code:    ErrCodeCircularDependency,
		Message: fmt.Sprintf("circular module dependency: %s", joined),
		Details: map[string]any{"path": path},
	}
}

// ModuleNotFound creates an error for a missing module. The requester is the
// module (or operation) that asked for it; it may be empty.
func ModuleNotFound(module, requester string) *AppError {
	e := &AppError{
		Code:    ErrCodeModuleNotFound,
		Message: fmt.Sprintf("module %q is not registered", module),
		Details: map[string]any{"module": module},
	}
	if requester != "" {
		e.Message = fmt.Sprintf("module %q imported by %q is not registered", module, requester)
		e.Details["requester"] = requester
	}
	return e
}

// ModuleNotInitialized creates an error for a module whose container is absent.
func ModuleNotInitialized(module, requester string) *AppError {
	e := &AppError{
		Code:    ErrCodeModuleNotInitialized,
		Message: fmt.Sprintf("module %q is not initialized", module),
		Details: map[string]any{"module": module},
	}
	if requester != "" {
		e.Message = fmt.Sprintf("module %q required by %q is not initialized", module, requester)
		e.Details["requester"] = requester
	}
	return e
}

// BindingNotFound creates an error for a type key that no container in the
// fallback chain can resolve.
func BindingNotFound(typeKey, module string) *AppError {
	e := &AppError{
		Code:    ErrCodeBindingNotFound,
		Message: fmt.Sprintf("no binding for %q in any registered module", typeKey),
		Details: map[string]any{"type": typeKey},
	}
	if module != "" {
		e.Message = fmt.Sprintf("no binding for %q in module %q or its imports", typeKey, module)
		e.Details["module"] = module
	}
	return e
}

// ContainerCommitted creates an error for a registration attempted after commit.
func ContainerCommitted(module string) *AppError {
	return &AppError{
		Code:    ErrCodeContainerCommitted,
		Message: fmt.Sprintf("container of module %q is committed; no further registrations accepted", module),
		Details: map[string]any{"module": module},
	}
}

// InvalidProvider creates an error for an unsupported binding provider.
func InvalidProvider(typeKey, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeInvalidProvider,
		Message: fmt.Sprintf("invalid provider for %q: %s", typeKey, reason),
		Details: map[string]any{"type": typeKey},
	}
}

// Validation creates an error for a value that failed validation.
func Validation(message string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: message,
	}
}

// Internal creates a new AppError for an unexpected failure.
func Internal(cause error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: "an unexpected error occurred",
		Cause:   cause,
	}
}

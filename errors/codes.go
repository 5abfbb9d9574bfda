package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Configuration errors, detected at validation time before any container exists.
const (
	// ErrCodeConfiguration indicates an invalid module declaration
	// (self-import or duplicate imports).
	ErrCodeConfiguration ErrorCode = "CONFIGURATION_ERROR"
	// ErrCodeCircularDependency indicates a cycle in the declared import graph.
	ErrCodeCircularDependency ErrorCode = "CIRCULAR_DEPENDENCY"
	// ErrCodeValidation indicates a value failed field or struct validation.
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"
)

// Lookup errors
const (
	// ErrCodeModuleNotFound indicates an operation referenced a module
	// identifier not present in the registry.
	ErrCodeModuleNotFound ErrorCode = "MODULE_NOT_FOUND"
	// ErrCodeModuleNotInitialized indicates an operation required a module's
	// container but it is absent.
	ErrCodeModuleNotInitialized ErrorCode = "MODULE_NOT_INITIALIZED"
	// ErrCodeBindingNotFound indicates a type key could not be resolved by a
	// container or any of its wired imports.
	ErrCodeBindingNotFound ErrorCode = "BINDING_NOT_FOUND"
)

// Container state errors
const (
	// ErrCodeContainerCommitted indicates a registration was attempted on a
	// container that has already been committed.
	ErrCodeContainerCommitted ErrorCode = "CONTAINER_COMMITTED"
	// ErrCodeInvalidProvider indicates a binding provider had an unsupported
	// signature or returned an invalid result.
	ErrCodeInvalidProvider ErrorCode = "INVALID_PROVIDER"
)

// Internal errors
const (
	// ErrCodeInternal indicates an unexpected failure.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

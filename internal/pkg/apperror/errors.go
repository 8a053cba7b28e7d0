package apperror

import "fmt"

// ValidationError is malformed caller input. Caught at the boundary and
// returned as a failure response, never allowed past it.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidation(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// UnauthorizedError: no authenticated user, or the authenticated user does
// not own the target resource.
type UnauthorizedError struct {
	Message string
}

func (e *UnauthorizedError) Error() string { return e.Message }

func NewUnauthorized(format string, args ...any) *UnauthorizedError {
	return &UnauthorizedError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError: the referenced resource does not exist.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

func NewNotFound(format string, args ...any) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// UpstreamGenerationError: the LLM gateway call failed or returned content
// that failed structural validation.
type UpstreamGenerationError struct {
	Message string
	Cause   error
}

func (e *UpstreamGenerationError) Error() string { return e.Message }
func (e *UpstreamGenerationError) Unwrap() error { return e.Cause }

func NewUpstream(cause error) *UpstreamGenerationError {
	return &UpstreamGenerationError{Message: cause.Error(), Cause: cause}
}

// PersistenceError: the datastore rejected a read or write.
type PersistenceError struct {
	Message string
	Cause   error
}

func (e *PersistenceError) Error() string { return e.Message }
func (e *PersistenceError) Unwrap() error { return e.Cause }

func NewPersistence(cause error) *PersistenceError {
	return &PersistenceError{Message: cause.Error(), Cause: cause}
}

package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("already exists")
	ErrValidation = errors.New("validation failed")

	// ErrSyncInProgress rejects a push while another one holds the
	// single-flight gate.
	ErrSyncInProgress = errors.New("sync already in progress")

	// ErrBodyTooLarge is returned when a request body exceeds the
	// configured size cap before it is parsed.
	ErrBodyTooLarge = errors.New("request body too large")

	// ErrMalformedBody is returned when a request body is not valid JSON.
	ErrMalformedBody = errors.New("invalid JSON body")
)

// InvalidPathError indicates a vault path that failed traversal/absoluteness
// validation. The permissive sanitizer never produces one of these; only the
// hard validation layer does.
type InvalidPathError struct {
	Path   string
	Reason string
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("invalid path: %s", e.Reason)
}

// ConflictError indicates folder creation blocked by an existing file at the
// same path.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// PortInUseError indicates the listener could not bind because the port is
// already taken. Reported distinctly so the caller can suggest a port change.
type PortInUseError struct {
	Port int
}

func (e *PortInUseError) Error() string {
	return fmt.Sprintf("port %d is already in use", e.Port)
}

package models

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a media record or physical file does not exist.
// Owner-scoped lookups also return it for records that belong to another user,
// so the existence of foreign records is never revealed.
var ErrNotFound = errors.New("not found")

// ValidationError reports a client-correctable problem with an uploaded file,
// such as an oversized payload or a disallowed MIME type.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a validation error with a formatted message
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ConfigurationError reports that the requested operation is incompatible with
// the currently active storage configuration (e.g. presigning while the local
// provider is active, or missing S3 fields for a connection test).
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

// NewConfigurationError creates a configuration error with a formatted message
func NewConfigurationError(format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Message: fmt.Sprintf(format, args...)}
}

// ExternalServiceError wraps a failure from a storage backend (disk or S3)
type ExternalServiceError struct {
	Op  string
	Err error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Err
}

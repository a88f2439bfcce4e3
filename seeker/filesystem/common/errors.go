package common

import (
	"errors"
	"fmt"
)

// Common error types used across filesystem packages
var (
	ErrNoRoots          = errors.New("at least one root directory is required")
	ErrNilCriteria      = errors.New("criteria cannot be nil")
	ErrInvalidPattern   = errors.New("invalid pattern")
	ErrInvalidDate      = errors.New("date does not exist in the calendar")
	ErrInvalidRange     = errors.New("minimum is greater than maximum")
	ErrPolarityRequired = errors.New("relative time limit requires an explicit newer/older polarity")
	ErrNegativeDuration = errors.New("duration must not be negative")
	ErrUnknownUnit      = errors.New("unknown time unit")
	ErrUnknownSortField = errors.New("unknown sort field")
	ErrUnknownFormat    = errors.New("unknown export format")
	ErrDepthOutOfRange  = errors.New("search depth must be between 0 and 255")
	ErrUnknownTimeMode  = errors.New("time limit mode must be relative or absolute")
	ErrInvalidSelection = errors.New("invalid selection")
	ErrTrailingData     = errors.New("unexpected data after document")
)

// ConfigError reports criteria or settings that cannot be turned into a search.
// It is raised before any traversal starts.
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("config: %v", e.Err)
	}
	return fmt.Sprintf("config: %s: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// NewConfigError wraps err as a ConfigError for field.
func NewConfigError(field string, err error) *ConfigError {
	return &ConfigError{Field: field, Err: err}
}

// IoError is a per-entry filesystem failure. It is recorded and counted, never
// allowed to abort a whole walk or batch.
type IoError struct {
	Op   string
	Path string
	Err  error
}

func (e *IoError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IoError) Unwrap() error { return e.Err }

// NewIoError wraps err as an IoError for op on path.
func NewIoError(op, path string, err error) *IoError {
	return &IoError{Op: op, Path: path, Err: err}
}

// SerializationError reports a malformed import document.
type SerializationError struct {
	Format string
	Err    error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Format, e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }

// IsConfigError reports whether err carries a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// IsIoError reports whether err carries an IoError.
func IsIoError(err error) bool {
	var ie *IoError
	return errors.As(err, &ie)
}

// IsSerializationError reports whether err carries a SerializationError.
func IsSerializationError(err error) bool {
	var se *SerializationError
	return errors.As(err, &se)
}

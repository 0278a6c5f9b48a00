package entities

import (
	"errors"
	"fmt"
)

// ValidationError reports a bad request field. It is raised before any external call.
type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// NotFoundError reports an unknown voice or a missing artifact
type NotFoundError struct {
	Kind string // "voice" or "artifact"
	Name string
}

func NewNotFoundError(kind, name string) *NotFoundError {
	return &NotFoundError{Kind: kind, Name: name}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Name)
}

// SynthesisReason classifies a failed call to the remote synthesis backend
type SynthesisReason string

const (
	ReasonNetwork         SynthesisReason = "network"
	ReasonBackendRejected SynthesisReason = "backend-rejected"
	ReasonTimeout         SynthesisReason = "timeout"
)

// SynthesisError is returned when the remote backend could not produce audio
type SynthesisError struct {
	Reason SynthesisReason
	Err    error
}

func NewSynthesisError(reason SynthesisReason, err error) *SynthesisError {
	return &SynthesisError{Reason: reason, Err: err}
}

func (e *SynthesisError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("synthesis failed (%s)", e.Reason)
	}
	return fmt.Sprintf("synthesis failed (%s): %v", e.Reason, e.Err)
}

func (e *SynthesisError) Unwrap() error {
	return e.Err
}

// Retryable reports whether repeating the same call may succeed
func (e *SynthesisError) Retryable() bool {
	return e.Reason == ReasonNetwork || e.Reason == ReasonTimeout
}

// StorageReason classifies a failed artifact write
type StorageReason string

const (
	ReasonDiskFull         StorageReason = "disk-full"
	ReasonPermissionDenied StorageReason = "permission-denied"
	ReasonIO               StorageReason = "io"
)

// StorageError is returned when an artifact could not be persisted
type StorageError struct {
	Reason StorageReason
	Err    error
}

func NewStorageError(reason StorageReason, err error) *StorageError {
	return &StorageError{Reason: reason, Err: err}
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failed (%s): %v", e.Reason, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsRetryable reports whether err is a SynthesisError worth repeating
func IsRetryable(err error) bool {
	var synthErr *SynthesisError
	return errors.As(err, &synthErr) && synthErr.Retryable()
}

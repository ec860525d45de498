package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Domain errors classify pipeline failures. Every error returned by the
// pipeline wraps exactly one of the kind sentinels and can be checked with
// errors.Is.
var (
	// ErrValidation is returned when a required request identifier is missing.
	ErrValidation = errors.New("urlship: validation failed")

	// ErrResolution is returned when the device lookup is unreachable or malformed.
	ErrResolution = errors.New("urlship: device resolution failed")

	// ErrStorage is returned when listing or signing stored objects fails.
	ErrStorage = errors.New("urlship: storage failure")

	// ErrPublish is returned when the message transport rejects a batch.
	ErrPublish = errors.New("urlship: publish failed")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("urlship: invalid configuration")
)

// StageError records the pipeline stage that failed and the failure kind.
type StageError struct {
	Stage Stage
	Kind  error
	Err   error
}

// NewStageError wraps err as a failure of the given kind at stage.
func NewStageError(stage Stage, kind, err error) *StageError {
	return &StageError{Stage: stage, Kind: kind, Err: err}
}

func (e *StageError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Stage, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Stage, e.Kind, e.Err)
}

// Unwrap exposes both the kind sentinel and the underlying cause.
func (e *StageError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// HTTPStatus maps an error to the response status code.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrResolution):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

package tasks

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrNoData is returned when the Tasks sheet holds nothing below its header.
var ErrNoData = errors.New("No task data found in the sheet.")

// ErrTaskNotFound matches every *NotFoundError.
var ErrTaskNotFound = errors.New("task not found")

// NotFoundError reports a task id with no stored row carrying it.
type NotFoundError struct {
	ID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Task %d not found.", e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrTaskNotFound
}

// ErrValidation matches every *ValidationError.
var ErrValidation = errors.New("validation failed")

// ValidationError reports a request that is missing or misusing fields. It is
// always returned before the store is touched.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// UpstreamError wraps a failed store call.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func upstream(op string, err error) error {
	return &UpstreamError{Op: op, Err: err}
}

package service

import (
	"errors"
	"fmt"

	"github.com/siteplan/duration-planner/internal/model"
)

// ErrUndefinedDuration is returned together with a partial estimate when the
// workforce capacity is zero. It unwraps to model.ErrUndefinedDuration.
type ErrUndefinedDuration struct {
	error
}

func NewErrUndefinedDuration(input model.ProjectInput) *ErrUndefinedDuration {
	return &ErrUndefinedDuration{fmt.Errorf("%w (workers=%g, hours/day=%g)", model.ErrUndefinedDuration, input.WorkerCount, input.HoursPerDay)}
}

func (e *ErrUndefinedDuration) Unwrap() error {
	return e.error
}

// ErrOutOfRange is returned when the inputs are finite but a derived quantity
// overflows. It unwraps to model.ErrOutOfRange.
type ErrOutOfRange struct {
	error
}

func NewErrOutOfRange(cause error) *ErrOutOfRange {
	if errors.Is(cause, model.ErrOutOfRange) {
		return &ErrOutOfRange{cause}
	}
	return &ErrOutOfRange{fmt.Errorf("%w: %v", model.ErrOutOfRange, cause)}
}

func (e *ErrOutOfRange) Unwrap() error {
	return e.error
}

type ErrInvalidInput struct {
	error
}

func NewErrInvalidInput(format string, args ...any) *ErrInvalidInput {
	return &ErrInvalidInput{fmt.Errorf(format, args...)}
}

func (e *ErrInvalidInput) Unwrap() error {
	return e.error
}

type ErrUnsupportedFormat struct {
	error
}

func NewErrUnsupportedFormat(kind, format string) *ErrUnsupportedFormat {
	return &ErrUnsupportedFormat{fmt.Errorf("unsupported %s format: %q", kind, format)}
}

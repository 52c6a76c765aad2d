package form

import (
	"errors"
	"strings"
)

const MissingIdentityMessage = "Please enter Employee ID and Name."

var (
	ErrUnknownField         = errors.New("unknown form field")
	ErrMissingIdentity      = errors.New("employee id and name are required")
	ErrGenerationInProgress = errors.New("a payslip is already being generated")
	ErrGenerateFailed       = errors.New("failed to generate payslip")
)

type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return MissingIdentityMessage + " (missing: " + strings.Join(e.Missing, ", ") + ")"
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrMissingIdentity
}

// GenerateError carries the step failure that stopped a generation.
type GenerateError struct {
	Err error
}

func (e *GenerateError) Error() string {
	if e.Err == nil {
		return ErrGenerateFailed.Error()
	}
	return e.Err.Error()
}

func (e *GenerateError) Unwrap() error {
	return e.Err
}

func (e *GenerateError) Is(target error) bool {
	return target == ErrGenerateFailed
}

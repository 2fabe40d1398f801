package app

import (
	"errors"
	"fmt"
	"runtime"
)

var (
	ErrNilFactory  = errors.New("app: no factory registered")
	ErrNilInstance = errors.New("app: factory returned no instance")
)

// AllocationError is returned when a subsystem instance could not be created.
type AllocationError struct {
	Subsystem string
	Err       error
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("app: could not create the %s subsystem: %v", e.Subsystem, e.Err)
}

func (e *AllocationError) Unwrap() error {
	return e.Err
}

// InitError is returned when a subsystem fails to initialize. File and Line
// point at the call site inside the lifecycle manager.
type InitError struct {
	Subsystem string
	File      string
	Line      int
	Err       error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("app: could not initialize the %s subsystem: %v\n[File] %s\n[Line] %d", e.Subsystem, e.Err, e.File, e.Line)
}

func (e *InitError) Unwrap() error {
	return e.Err
}

// Build an InitError whose origin is the caller of this function.
func initError(subsystem string, err error) error {
	_, file, line, _ := runtime.Caller(1)
	return &InitError{
		Subsystem: subsystem,
		File:      file,
		Line:      line,
		Err:       err,
	}
}

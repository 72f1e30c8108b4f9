package shader

import (
	"errors"
	"fmt"
)

var (
	// ErrFileNotFound is returned when the shader file does not exist.
	ErrFileNotFound = errors.New("shader file not found")
	// ErrMalformedSource is returned for content that precedes any stage marker.
	ErrMalformedSource = errors.New("shader content before stage marker")
	// ErrUnknownStage is returned for a marker line that names no known stage.
	ErrUnknownStage = errors.New("unknown shader stage")
	// ErrUniformNotFound is returned when a uniform is missing or inactive.
	ErrUniformNotFound = errors.New("uniform not found")
)

// ParseError reports the line at which a shader file could not be split.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v (%q)", e.Line, e.Err, e.Text)
}

func (e *ParseError) Unwrap() error { return e.Err }

// CompileError carries the driver's info log for a stage that failed to compile.
type CompileError struct {
	Stage Stage
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compile %s shader: %s", e.Stage, e.Log)
}

// LinkError carries the driver's info log for a program that failed to link.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return "link program: " + e.Log
}

// ValidateError carries the driver's info log for a program that failed validation.
type ValidateError struct {
	Log string
}

func (e *ValidateError) Error() string {
	return "validate program: " + e.Log
}

package errs

import (
	"errors"
	"fmt"
)

type Code string

const (
	Configuration     Code = "CONFIGURATION"
	Network           Code = "NETWORK"
	MalformedResponse Code = "MALFORMED_RESPONSE"
	ExternalProcess   Code = "EXTERNAL_PROCESS"
)

var messages = map[Code]string{
	Configuration: `Invalid configuration: %[1]s

Usage:
  - pass the stage as an action input:
      with:
        stage: current
  - or run locally:
      gradle-updater --stage current`,

	Network: `Unable to reach the versions endpoint: %[1]s`,

	MalformedResponse: `Unexpected response from the versions endpoint: %[1]s`,

	ExternalProcess: `Gradle wrapper task failed: %[1]s

The working tree may be partially updated (gradle-wrapper.properties
changed, wrapper scripts not regenerated).`,
}

// Error is the error type returned by every fallible step of a run.
type Error struct {
	Code Code
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Code)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is makes errors.Is(err, errs.Network) work on wrapped *Error values.
func (e *Error) Is(target error) bool {
	if c, ok := target.(Code); ok {
		return e.Code == c
	}
	return false
}

// Error lets a bare Code be used as an errors.Is target.
func (c Code) Error() string { return string(c) }

func New(code Code, op string, err error) *Error {
	return &Error{Code: code, Op: op, Err: err}
}

func Newf(code Code, op, format string, a ...any) *Error {
	return &Error{Code: code, Op: op, Err: fmt.Errorf(format, a...)}
}

// CodeOf returns the code of the first *Error in the chain, or "".
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

func Msg(code Code, a ...any) string {
	msg := messages[code]
	if msg == "" {
		msg = string(code) + ": %[1]s"
	}
	return fmt.Sprintf(msg, a...)
}

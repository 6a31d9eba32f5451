/*
NAME
  ifferr.go

DESCRIPTION
  ifferr provides the five-code error contract that the IFF decoding core
  exposes to callers, alongside normal Go error wrapping via pkg/errors.

AUTHOR
  iffimage contributors

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package ifferr provides the stable error-code contract for the IFF
// decoding core: every fallible core operation resolves to one of five
// codes, each with a fixed numeric value that any caller persisting it
// across a process boundary may rely on.
package ifferr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Code is one of the five stable error codes named in spec.md §6. Values
// are fixed and must not be renumbered.
type Code int

const (
	// Ok indicates success. It is never wrapped in an *Error; it exists so
	// that a caller comparing Code(0) against a handle's LastCode sees the
	// same zero-value meaning spec.md §6 assigns it.
	Ok Code = 0

	// Error is the catch-all: the environment refused a required
	// operation (e.g. chunk-role registration failed).
	Error Code = -1

	// NoMem indicates an allocation failure.
	NoMem Code = -2

	// BadFile indicates the byte stream does not conform to IFF or to a
	// sub-format's layout/size expectations. Fatal for the handle.
	BadFile Code = -3

	// Unsupported indicates structurally well-formed input reaching a
	// code path that is not implemented. Fatal for the handle.
	Unsupported Code = -4

	// Invalid indicates a caller precondition was violated (nil handle,
	// operation before parse, parse before open). Does not mutate file
	// state.
	Invalid Code = -5
)

// String renders the code the way a short diagnostic message would name
// it.
func (c Code) String() string {
	switch c {
	case Ok:
		return "ok"
	case Error:
		return "error"
	case NoMem:
		return "no memory"
	case BadFile:
		return "bad file"
	case Unsupported:
		return "unsupported"
	case Invalid:
		return "invalid"
	default:
		return fmt.Sprintf("unknown error code %d", int(c))
	}
}

// Error is a typed error carrying one of the stable Codes plus a
// human-readable message. It wraps pkg/errors so that %+v formatting still
// yields a stack trace at the point New/Wrap was called.
type Error struct {
	code Code
	msg  string
	err  error // underlying stack-carrying error, may be nil
}

// Code returns the stable numeric code for this error.
func (e *Error) Code() Code { return e.code }

// Error implements the error interface.
func (e *Error) Error() string {
	if e.msg == "" {
		return e.code.String()
	}
	return e.msg
}

// Unwrap allows errors.Is/errors.As to see through to the underlying
// stack-carrying error, if any.
func (e *Error) Unwrap() error { return e.err }

// New creates an *Error with the given code and message, with a stack
// trace attached at the call site.
func New(code Code, msg string) *Error {
	return &Error{code: code, msg: msg, err: errors.New(msg)}
}

// Newf is New with fmt.Sprintf-style formatting.
func Newf(code Code, format string, args ...interface{}) *Error {
	msg := fmt.Sprintf(format, args...)
	return &Error{code: code, msg: msg, err: errors.New(msg)}
}

// Wrap attaches a Code to an existing error, preserving its message and
// adding a stack trace at the call site.
func Wrap(code Code, err error, msg string) *Error {
	if err == nil {
		return nil
	}
	return &Error{code: code, msg: msg + ": " + err.Error(), err: errors.Wrap(err, msg)}
}

// CodeOf extracts the stable Code from err, defaulting to Error if err is
// non-nil but not an *Error, and Ok if err is nil.
func CodeOf(err error) Code {
	if err == nil {
		return Ok
	}
	var e *Error
	if errors.As(err, &e) {
		return e.code
	}
	return Error
}

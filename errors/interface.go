/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package errors provides error values classified by numeric code, with
// parent chaining and source trace information. Code ranges are reserved
// in modules.go; the packages that own error codes register their
// messages from an init() in their own error.go.
package errors

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// DefaultPattern is the layout used to render one error as a string:
// code, message.
const DefaultPattern = "[Error #%d] %s"

// DefaultPatternTrace is the layout used to render one error with its
// source trace: code, message, file, line.
const DefaultPatternTrace = "[Error #%d] %s (%s:%d)"

// FuncMap is a callback function type used for iterating over error
// hierarchies. Return false to stop the iteration.
type FuncMap func(e error) bool

// Error is the main interface extending Go's standard error with code
// classification, parent chaining and trace information.
//
// Modification methods (Add, SetParent) are not safe for concurrent use;
// all read methods are.
type Error interface {
	error

	// IsCode checks if the error's own code matches the given code.
	// Parent errors are not checked.
	IsCode(code CodeError) bool
	// HasCode checks if the current error or any parent has the given code.
	HasCode(code CodeError) bool
	// GetCode returns the CodeError value of the current error.
	GetCode() CodeError

	// Is implements compatibility with the standard errors.Is function.
	Is(e error) bool

	// HasParent checks if the current Error has any valid parent.
	HasParent() bool
	// GetParent returns a slice of error for each parent, optionally
	// prefixed with the current error itself.
	GetParent(withMainError bool) []error
	// Map runs a function on the current error and each parent. If the
	// function returns false, the loop stops and Map returns false.
	Map(fct FuncMap) bool
	// ContainsString returns true if the main or any parent error message
	// contains the given part string.
	ContainsString(s string) bool

	// Add appends all non-empty given errors to the parents of the
	// current Error.
	Add(parent ...error)
	// SetParent replaces all parents with the given error list.
	SetParent(parent ...error)

	// Code returns the code of the current Error as an uint16.
	Code() uint16
	// CodeSlice returns the codes of the current Error and all parents.
	CodeSlice() []uint16

	// CodeError renders the current error with the given pattern
	// (code, message). An empty pattern uses DefaultPattern.
	CodeError(pattern string) string
	// CodeErrorTrace renders the current error with the given pattern
	// (code, message, file, line). An empty pattern uses DefaultPatternTrace.
	CodeErrorTrace(pattern string) string

	// Error implements the standard error interface: the rendered current
	// error followed by each parent.
	Error() string

	// StringError returns the message of the current error only.
	StringError() string
	// StringErrorSlice returns the messages of the current error and all
	// parents.
	StringErrorSlice() []string

	// GetError returns a new standard error based on the current error only.
	GetError() error
	// Unwrap sets compliance with the standard errors Is/As functions.
	Unwrap() []error

	// GetTrace returns the file:line source trace of the current Error,
	// or an empty string when unknown.
	GetTrace() string
}

// Is checks if the given error wraps or is an Error of this package.
func Is(e error) bool {
	var err Error
	return errors.As(e, &err)
}

// Get returns the Error of this package wrapped into the given error,
// or nil when there is none.
func Get(e error) Error {
	var err Error
	if errors.As(e, &err) {
		return err
	}
	return nil
}

// Has checks if the given error carries the given code, directly or in
// any parent.
func Has(e error, code CodeError) bool {
	if err := Get(e); err != nil {
		return err.HasCode(code)
	}
	return false
}

// IsCode checks if the given error's own code equals the given code.
func IsCode(e error, code CodeError) bool {
	if err := Get(e); err != nil {
		return err.IsCode(code)
	}
	return false
}

// ContainsString checks if the given error or any parent message
// contains the given part string.
func ContainsString(e error, s string) bool {
	if e == nil {
		return false
	}
	if err := Get(e); err != nil {
		return err.ContainsString(s)
	}
	return strings.Contains(e.Error(), s)
}

// New creates a new Error with the given code and message, attaching the
// given parents.
func New(code uint16, message string, parent ...error) Error {
	var t runtime.Frame

	if pc, fil, lin, ok := runtime.Caller(1); ok {
		t = runtime.Frame{
			PC:   pc,
			File: fil,
			Line: lin,
		}
	}

	e := &ers{
		c: code,
		e: message,
		p: make([]Error, 0),
		t: t,
	}

	e.Add(parent...)

	return e
}

// Newf creates a new Error with the given code and a formatted message.
func Newf(code uint16, pattern string, args ...any) Error {
	return New(code, fmt.Sprintf(pattern, args...))
}

// IfError creates a new Error only when at least one given parent is a
// valid error, otherwise returns nil.
func IfError(code uint16, message string, parent ...error) Error {
	var found bool

	for _, p := range parent {
		if p != nil {
			found = true
			break
		}
	}

	if !found {
		return nil
	}

	return New(code, message, parent...)
}

// Make wraps the given standard error into an Error with UnknownError
// code. A nil input returns nil; an input already implementing Error is
// returned unchanged.
func Make(e error) Error {
	if e == nil {
		return nil
	}

	if err, ok := e.(Error); ok {
		return err
	}

	return New(UnknownError.Uint16(), e.Error())
}

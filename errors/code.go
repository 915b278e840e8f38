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

package errors

import (
	"math"
	"runtime"
	"strconv"
)

// idMsgFct stores the mapping between error codes and their message functions.
var idMsgFct = make(map[CodeError]Message)

// Message is a function type that generates error messages based on error codes.
type Message func(code CodeError) (message string)

// CodeError represents a numeric error code. It is a uint16 allowing codes
// from 0 to 65535. Each package reserves a range in modules.go.
type CodeError uint16

const (
	// UnknownError represents an error with no specific code (0).
	UnknownError CodeError = 0

	// UnknownMessage is the default message for UnknownError.
	UnknownMessage = "unknown error"

	// NullMessage represents an empty error message.
	NullMessage = ""
)

// ParseCodeError returns a CodeError value based on the input int64 value,
// clamped into the valid uint16 range.
func ParseCodeError(i int64) CodeError {
	if i < 0 {
		return UnknownError
	} else if i >= int64(math.MaxUint16) {
		return math.MaxUint16
	} else {
		return CodeError(i)
	}
}

// NewCodeError returns a CodeError value based on the input uint16 value.
func NewCodeError(code uint16) CodeError {
	return CodeError(code)
}

// Uint16 returns the CodeError value as a uint16.
func (c CodeError) Uint16() uint16 {
	return uint16(c)
}

// Int returns the CodeError value as an int.
func (c CodeError) Int() int {
	return int(c)
}

// String returns the decimal string representation of the CodeError value.
func (c CodeError) String() string {
	return strconv.Itoa(c.Int())
}

// Message returns the message registered for this code, or UnknownMessage
// when no message function covers it.
func (c CodeError) Message() string {
	if c == UnknownError {
		return UnknownMessage
	}

	if f, ok := idMsgFct[c]; ok && f != nil {
		if m := f(c); m != NullMessage {
			return m
		}
	}

	for _, f := range idMsgFct {
		if f == nil {
			continue
		}
		if m := f(c); m != NullMessage {
			return m
		}
	}

	return UnknownMessage
}

// Error builds a new Error for this code, attaching the given parents.
func (c CodeError) Error(parent ...error) Error {
	var t runtime.Frame

	if pc, fil, lin, ok := runtime.Caller(1); ok {
		t = runtime.Frame{
			PC:   pc,
			File: fil,
			Line: lin,
		}
	}

	e := &ers{
		c: c.Uint16(),
		e: c.Message(),
		p: make([]Error, 0),
		t: t,
	}

	e.Add(parent...)

	return e
}

// IfError builds a new Error for this code only when at least one of the
// given parents is a valid error, otherwise returns nil.
func (c CodeError) IfError(parent ...error) Error {
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

	return c.Error(parent...)
}

// ExistInMapMessage reports whether the given code has a registered
// message function.
func ExistInMapMessage(code CodeError) bool {
	if _, ok := idMsgFct[code]; ok {
		return true
	}

	for _, f := range idMsgFct {
		if f == nil {
			continue
		}
		if m := f(code); m != NullMessage {
			return true
		}
	}

	return false
}

// RegisterIdFctMessage registers a message function covering the given
// code and any other code the function knows about.
func RegisterIdFctMessage(minCode CodeError, fct Message) {
	idMsgFct[minCode] = fct
}

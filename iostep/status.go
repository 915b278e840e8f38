/*
 * MIT License
 *
 * Copyright (c) 2023 Nicolas JUHEL
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

// Package iostep implements the deferred I/O steps carried by a
// connection: READ, SEND and SENDFILE. Each step advances with a single
// readiness attempt and surfaces the would-block condition to the
// caller; partial progress is kept in the step payload. Steps are
// queued on a Chain, consumed head-first, appended at the tail.
package iostep

// Status is the outcome of one readiness attempt of a step.
type Status uint8

const (
	// StatusOK means the step fully completed.
	StatusOK Status = iota
	// StatusAgain means the step would block; retry on next readiness.
	StatusAgain
	// StatusError means the step failed; the connection must close.
	StatusError
)

// String returns a short name for the status.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusAgain:
		return "again"
	case StatusError:
		return "error"
	}
	return "unknown"
}

// ConnStatus is the decision returned by a step terminator.
type ConnStatus uint8

const (
	// Continue keeps the connection running.
	Continue ConnStatus = iota
	// Close requests the connection teardown.
	Close
)

// Terminator is the post-completion callback of a step. It runs once,
// after the step's action returned StatusOK and before the step is
// removed from the chain.
type Terminator func() ConnStatus

// Step is one deferred I/O action owned by a connection chain.
type Step interface {
	// Do makes one readiness attempt against the peer socket.
	Do(fd int) Status

	// Terminate runs the optional terminator once Do returned StatusOK.
	// Steps without terminator return Continue.
	Terminate() ConnStatus

	// Release frees the step payload. It is idempotent and runs exactly
	// once per step in practice: either after completion or on chain
	// teardown.
	Release()
}

//go:build linux

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

// Package connection holds the per-peer record: the socket, the
// keep-alive state, the idle timestamp and the owned chain of deferred
// I/O steps, plus the driver consuming that chain on readiness events
// and the dense fd-indexed registry used by the event loop.
package connection

import (
	"time"

	libios "github.com/nabbar/rockepoll/iostep"
	"golang.org/x/sys/unix"
)

// Status is the lifecycle state of a connection.
type Status uint8

const (
	// Running means the connection serves requests.
	Running Status = iota
	// Closing means the connection awaits teardown by the event loop.
	Closing
)

// Conn is one accepted peer. It exclusively owns its socket, its step
// chain and any file descriptor referenced by a queued SENDFILE step.
// A Conn belongs to a single worker and needs no locking.
type Conn struct {
	fd     int
	ip     string
	last   time.Time
	status Status
	ka     bool
	chain  *libios.Chain
}

// New returns a connection record for an accepted socket.
func New(fd int, ip string, keepAlive bool, now time.Time) *Conn {
	return &Conn{
		fd:    fd,
		ip:    ip,
		last:  now,
		ka:    keepAlive,
		chain: libios.NewChain(),
	}
}

// Fd returns the peer socket descriptor.
func (c *Conn) Fd() int {
	return c.fd
}

// IP returns the peer address in presentation form.
func (c *Conn) IP() string {
	return c.ip
}

// KeepAlive reports whether the connection restarts after a response.
func (c *Conn) KeepAlive() bool {
	return c.ka
}

// SetKeepAlive updates the keep-alive flag.
func (c *Conn) SetKeepAlive(ka bool) {
	c.ka = ka
}

// Status returns the lifecycle state.
func (c *Conn) Status() Status {
	return c.status
}

// SetClosing marks the connection for teardown at the next sweep.
func (c *Conn) SetClosing() {
	c.status = Closing
}

// Chain returns the owned step chain.
func (c *Conn) Chain() *libios.Chain {
	return c.chain
}

// Touch refreshes the idle timestamp.
func (c *Conn) Touch(now time.Time) {
	c.last = now
}

// IsIdle reports whether the timestamp last set by Touch is older than
// the given timeout.
func (c *Conn) IsIdle(now time.Time, timeout time.Duration) bool {
	return now.Sub(c.last) > timeout
}

// Process drives the step chain on one readiness event. It loops while
// the chain is non-empty and the head keeps completing:
//   - StatusOK runs the terminator; Close marks the connection Closing
//     and stops, otherwise the head is removed and the loop continues;
//   - StatusAgain stops, preserving the head and its progress;
//   - StatusError marks the connection Closing and stops.
//
// A chain draining to empty with no READ re-appended also transitions
// to Closing. Readiness interest is never re-armed here; edge-triggered
// notification stays level across calls.
func (c *Conn) Process() {
	for c.status == Running && !c.chain.IsEmpty() {
		head := c.chain.Head()

		switch head.Do(c.fd) {
		case libios.StatusOK:
			if head.Terminate() == libios.Close {
				c.status = Closing
				return
			}
			c.chain.Shift()

		case libios.StatusAgain:
			return

		case libios.StatusError:
			c.status = Closing
			return
		}
	}

	if c.chain.IsEmpty() {
		c.status = Closing
	}
}

// Teardown closes the socket and drains the step chain, releasing every
// queued payload. It must run exactly once, right before the record is
// dropped from the registry.
func (c *Conn) Teardown() {
	_ = unix.Close(c.fd)
	c.chain.Drain()
}

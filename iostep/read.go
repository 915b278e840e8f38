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

package iostep

import (
	"errors"

	"golang.org/x/sys/unix"
)

const (
	// MaxReqSize caps the accumulated request bytes. A request filling
	// the buffer exactly is refused.
	MaxReqSize = 4096

	// readChunk is the increment of one read attempt.
	readChunk = 1024
)

// OnRequest is the completion callback of a READ step. It receives the
// accumulated request bytes, which stay valid until the step is
// released, and returns the connection decision.
type OnRequest func(data []byte) ConnStatus

// Read accumulates request bytes from the socket into a fixed-capacity
// buffer.
type Read struct {
	buf  []byte
	size int
	h    OnRequest
}

// NewRead returns a READ step invoking h once a full request burst has
// been received.
func NewRead(h OnRequest) *Read {
	return &Read{
		buf: make([]byte, MaxReqSize),
		h:   h,
	}
}

// Do reads into the tail of the request buffer in readChunk increments
// until the socket would block, the buffer fills, or a short read ends
// the burst.
func (r *Read) Do(fd int) Status {
	var n int

	for {
		lim := r.size + readChunk
		if lim > MaxReqSize {
			lim = MaxReqSize
		}

		var err error
		n, err = unix.Read(fd, r.buf[r.size:lim])

		if n < 1 {
			if n < 0 && (errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EWOULDBLOCK)) {
				return StatusAgain
			}
			return StatusError
		}

		r.size += n

		if n != readChunk || r.size >= MaxReqSize {
			break
		}
	}

	if r.size == 0 || r.size == MaxReqSize {
		return StatusError
	}

	return StatusOK
}

// Terminate hands the accumulated bytes to the completion callback.
func (r *Read) Terminate() ConnStatus {
	if r.h == nil {
		return Continue
	}

	return r.h(r.buf[:r.size])
}

// Release frees the request buffer.
func (r *Read) Release() {
	r.buf = nil
	r.h = nil
}

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

// Send drains an owned byte buffer (headers, optionally an inlined
// small body) to the socket, tracking the offset already sent.
type Send struct {
	data []byte
	off  int
	more bool
	h    Terminator
}

// NewSend returns a SEND step over the given owned buffer. When more is
// set, the kernel is told to expect a following SENDFILE and coalesces
// the TCP write (MSG_MORE).
func NewSend(data []byte, more bool, h Terminator) *Send {
	return &Send{
		data: data,
		more: more,
		h:    h,
	}
}

// Do makes one send attempt over the remaining byte range.
func (s *Send) Do(fd int) Status {
	var flags int
	if s.more {
		flags = unix.MSG_MORE
	}

	n, err := unix.SendmsgN(fd, s.data[s.off:], nil, nil, flags)

	if err != nil {
		if errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EWOULDBLOCK) {
			return StatusAgain
		}
		return StatusError
	}

	if n <= 0 {
		return StatusError
	}

	s.off += n

	if s.off >= len(s.data) {
		return StatusOK
	}

	return StatusAgain
}

// Terminate runs the post-send decision when one is attached.
func (s *Send) Terminate() ConnStatus {
	if s.h == nil {
		return Continue
	}

	return s.h()
}

// Release frees the owned buffer.
func (s *Send) Release() {
	s.data = nil
	s.h = nil
}

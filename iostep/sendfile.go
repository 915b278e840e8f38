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

// SendfileChunk caps the bytes handed to one sendfile call.
const SendfileChunk = 512 * 1024

// Sendfile transmits a byte range of an open input file to the socket
// with zero-copy. The step owns the input descriptor and closes it on
// release.
type Sendfile struct {
	infd   int
	off    int64
	end    int64
	remain int64
	closed bool
	h      Terminator
}

// NewSendfile returns a SENDFILE step over [lower, end) of infd. The
// step takes ownership of infd.
func NewSendfile(infd int, lower, end, size int64, h Terminator) *Sendfile {
	return &Sendfile{
		infd:   infd,
		off:    lower,
		end:    end,
		remain: size,
		h:      h,
	}
}

// Do loops zero-copy transmissions of up to SendfileChunk bytes until
// the range is drained or the socket would block. The kernel updates
// the file offset in place, preserving progress across attempts.
func (s *Sendfile) Do(fd int) Status {
	for {
		cnt := s.remain
		if cnt > SendfileChunk {
			cnt = SendfileChunk
		}

		n, err := unix.Sendfile(fd, s.infd, &s.off, int(cnt))

		if err != nil {
			if errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EWOULDBLOCK) {
				return StatusAgain
			}
			return StatusError
		}

		if n <= 0 {
			return StatusError
		}

		s.remain -= int64(n)

		if s.off >= s.end {
			return StatusOK
		}
	}
}

// Terminate runs the post-send decision when one is attached.
func (s *Sendfile) Terminate() ConnStatus {
	if s.h == nil {
		return Continue
	}

	return s.h()
}

// Release closes the input descriptor exactly once.
func (s *Sendfile) Release() {
	if !s.closed {
		_ = unix.Close(s.infd)
		s.closed = true
	}

	s.h = nil
}

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

package poller

import (
	"errors"

	liberr "github.com/nabbar/rockepoll/errors"
	"golang.org/x/sys/unix"
)

type pol struct {
	fd int
}

func (p *pol) Add(fd int, events uint32) liberr.Error {
	ev := unix.EpollEvent{
		Events: events,
		Fd:     int32(fd),
	}

	if err := unix.EpollCtl(p.fd, unix.EPOLL_CTL_ADD, fd, &ev); err != nil {
		return ErrorAdd.Error(err)
	}

	return nil
}

func (p *pol) Del(fd int) liberr.Error {
	if err := unix.EpollCtl(p.fd, unix.EPOLL_CTL_DEL, fd, nil); err != nil {
		return ErrorDel.Error(err)
	}

	return nil
}

func (p *pol) Wait(evs []unix.EpollEvent, msTimeout int) (int, liberr.Error) {
	n, err := unix.EpollWait(p.fd, evs, msTimeout)

	if err != nil {
		if errors.Is(err, unix.EINTR) {
			return 0, nil
		}
		return 0, ErrorWait.Error(err)
	}

	return n, nil
}

func (p *pol) Close() error {
	return unix.Close(p.fd)
}

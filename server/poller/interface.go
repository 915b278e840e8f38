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

// Package poller wraps the epoll readiness-notification descriptor used
// by each worker. Registrations are edge-triggered; peers are watched
// for read, write and remote shutdown in one registration that is never
// re-armed.
package poller

import (
	liberr "github.com/nabbar/rockepoll/errors"
	"golang.org/x/sys/unix"
)

const (
	// EventsPeer is the registration mask of an accepted peer socket.
	EventsPeer = unix.EPOLLIN | unix.EPOLLOUT | unix.EPOLLRDHUP | unix.EPOLLET

	// EventsListen is the registration mask of a listening socket.
	EventsListen = unix.EPOLLIN | unix.EPOLLET

	// EventsWake is the registration mask of the shutdown wake pipe.
	EventsWake = unix.EPOLLIN | unix.EPOLLET
)

// Poller is one epoll instance, owned by a single worker.
type Poller interface {
	// Add registers the descriptor with the given event mask.
	Add(fd int, events uint32) liberr.Error

	// Del removes the descriptor from the interest set. Closing the
	// descriptor removes it implicitly; Del exists for the rare paths
	// keeping the descriptor open.
	Del(fd int) liberr.Error

	// Wait blocks for readiness events, at most msTimeout milliseconds.
	// Interrupted waits return zero events, not an error.
	Wait(evs []unix.EpollEvent, msTimeout int) (int, liberr.Error)

	// Close releases the epoll descriptor.
	Close() error
}

// IsHangup reports whether the event signals a peer hangup, error or
// remote shutdown.
func IsHangup(ev unix.EpollEvent) bool {
	return ev.Events&(unix.EPOLLHUP|unix.EPOLLERR|unix.EPOLLRDHUP) != 0
}

// New returns a new epoll instance.
func New() (Poller, liberr.Error) {
	fd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, ErrorCreate.Error(err)
	}

	return &pol{fd: fd}, nil
}

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

package server

import (
	"context"
	"errors"
	"sync"
	"time"

	libcon "github.com/nabbar/rockepoll/connection"
	liberr "github.com/nabbar/rockepoll/errors"
	libhdl "github.com/nabbar/rockepoll/handler"
	libpol "github.com/nabbar/rockepoll/server/poller"
	"golang.org/x/sys/unix"
)

// eventBatch bounds the readiness events reported by one wait.
const eventBatch = 256

// worker is one event loop: a listen socket, an epoll instance, a
// dense connection registry and a wake pipe for prompt shutdown. A
// worker never shares mutable state with its siblings.
type worker struct {
	id  int
	lst int
	ka  bool
	pol libpol.Poller
	reg *libcon.Registry
	hdl *libhdl.Handler
	srv *srv

	wakeR    int
	wakeW    int
	stopOnce sync.Once
}

func newWorker(id int, lst int, maxFds int, ka bool, hdl *libhdl.Handler, s *srv) (*worker, liberr.Error) {
	pol, err := libpol.New()
	if err != nil {
		return nil, err
	}

	var p [2]int
	if e := unix.Pipe2(p[:], unix.O_NONBLOCK|unix.O_CLOEXEC); e != nil {
		_ = pol.Close()
		return nil, ErrorPipeCreate.Error(e)
	}

	w := &worker{
		id:    id,
		lst:   lst,
		ka:    ka,
		pol:   pol,
		reg:   libcon.NewRegistry(maxFds),
		hdl:   hdl,
		srv:   s,
		wakeR: p[0],
		wakeW: p[1],
	}

	if err = pol.Add(lst, libpol.EventsListen); err == nil {
		err = pol.Add(p[0], libpol.EventsWake)
	}

	if err != nil {
		// the caller keeps ownership of lst until the worker is built
		_ = pol.Close()
		_ = unix.Close(p[0])
		_ = unix.Close(p[1])
		return nil, err
	}

	return w, nil
}

// stop wakes the event loop for shutdown. Safe to call more than once.
func (w *worker) stop() {
	w.stopOnce.Do(func() {
		_ = unix.Close(w.wakeW)
	})
}

// close releases every descriptor owned by the worker.
func (w *worker) close() {
	_ = w.pol.Close()
	_ = unix.Close(w.wakeR)
	w.stop()
	_ = unix.Close(w.lst)
}

// run is the worker event loop: sample time, sweep idle and closing
// connections, wait for readiness bounded by the keep-alive timeout,
// then dispatch each event.
func (w *worker) run(ctx context.Context) {
	evs := make([]unix.EpollEvent, eventBatch)

	for {
		now := time.Now()
		w.sweep(now)

		if ctx.Err() != nil {
			break
		}

		n, err := w.pol.Wait(evs, int(KeepAliveTimeout.Milliseconds()))
		if err != nil {
			w.srv.logErr("readiness wait failed", err)
			continue
		}

		for i := 0; i < n; i++ {
			ev := evs[i]
			fd := int(ev.Fd)

			switch {
			case fd == w.lst:
				w.accept(now)

			case fd == w.wakeR:
				// shutdown wake; the loop head re-checks the context

			case libpol.IsHangup(ev):
				if c := w.reg.Get(fd); c != nil {
					w.reg.Remove(c)
				}

			default:
				c := w.reg.Get(fd)
				if c == nil {
					continue
				}

				c.Process()

				if c.Status() == libcon.Closing {
					w.reg.Remove(c)
				} else {
					c.Touch(now)
				}
			}
		}

		if ctx.Err() != nil {
			break
		}
	}

	w.reg.Walk(func(c *libcon.Conn) bool {
		w.reg.Remove(c)
		return true
	})

	w.close()
}

// sweep tears down connections marked Closing and those idle beyond
// the keep-alive timeout.
func (w *worker) sweep(now time.Time) {
	w.reg.Walk(func(c *libcon.Conn) bool {
		if c.Status() == libcon.Closing || c.IsIdle(now, KeepAliveTimeout) {
			w.reg.Remove(c)
		}
		return true
	})
}

// accept drains the listen socket: non-blocking accepts with
// TCP_NODELAY, a fresh connection record seeded with one READ step,
// registered edge-triggered. Accepting stops on would-block or when
// the registry refuses the descriptor.
func (w *worker) accept(now time.Time) {
	for {
		nfd, sa, err := unix.Accept4(w.lst, unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC)
		if err != nil {
			if errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EWOULDBLOCK) {
				return
			}
			if errors.Is(err, unix.ECONNABORTED) || errors.Is(err, unix.EINTR) {
				continue
			}
			w.srv.logErr("accept failed", err)
			return
		}

		if err = unix.SetsockoptInt(nfd, unix.IPPROTO_TCP, unix.TCP_NODELAY, 1); err != nil {
			w.srv.logErr("cannot set TCP_NODELAY on peer socket", err)
			_ = unix.Close(nfd)
			continue
		}

		c := libcon.New(nfd, peerIP(sa), w.ka, now)
		c.Chain().Append(w.hdl.NewRead(c))

		if !w.reg.Put(c) {
			c.Teardown()
			return
		}

		if err := w.pol.Add(nfd, libpol.EventsPeer); err != nil {
			w.srv.logErr("cannot register peer socket", err)
			w.reg.Remove(c)
			continue
		}
	}
}

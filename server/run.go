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
	"os"
	"sync"

	libacc "github.com/nabbar/rockepoll/accesslog"
	liberr "github.com/nabbar/rockepoll/errors"
	libhdl "github.com/nabbar/rockepoll/handler"
	libfdc "github.com/nabbar/rockepoll/ioutils/fileDescriptor"
	"golang.org/x/sys/unix"
)

// maxTrackedFds bounds the dense registry size per worker, whatever
// the process rlimit says.
const maxTrackedFds = 65536

func (s *srv) Listen(ctx context.Context) liberr.Error {
	if !s.r.CompareAndSwap(false, true) {
		return ErrorRunning.Error(nil)
	}
	defer s.r.Store(false)

	if ctx == nil {
		ctx = context.Background()
	}

	cfg := s.GetConfig()

	if err := os.Chdir(cfg.RootDir); err != nil {
		return ErrorChdir.Error(err)
	}

	if cfg.Chroot {
		if err := unix.Chroot("."); err != nil {
			return ErrorChroot.Error(err)
		}
		if err := os.Chdir("/"); err != nil {
			return ErrorChdir.Error(err)
		}
	}

	maxFds, _, err := libfdc.SystemFileDescriptor(0)
	if err != nil || maxFds < 1 {
		maxFds = 1024
	}
	if maxFds > maxTrackedFds {
		maxFds = maxTrackedFds
	}

	var (
		nbw = cfg.NbWorkers()
		acc = libacc.New(nil, cfg.Quiet)
		hdl = libhdl.New(acc, s.l)
		wks = make([]*worker, 0, nbw)
	)

	for i := 0; i < nbw; i++ {
		lst, e := newListenSocket(cfg.Listen, cfg.Port, nbw > 1)
		if e != nil {
			for _, w := range wks {
				w.close()
			}
			return e
		}

		w, e := newWorker(i, lst, maxFds, cfg.KeepAlive, hdl, s)
		if e != nil {
			_ = unix.Close(lst)
			for _, p := range wks {
				p.close()
			}
			return e
		}

		wks = append(wks, w)
	}

	s.logInfo("listening on http://%s:%d/ with %d worker(s)", cfg.Listen, cfg.Port, nbw)

	var wg sync.WaitGroup

	for _, w := range wks {
		wg.Add(1)
		go func(w *worker) {
			defer wg.Done()
			w.run(ctx)
		}(w)
	}

	go func() {
		<-ctx.Done()
		for _, w := range wks {
			w.stop()
		}
	}()

	wg.Wait()

	return nil
}

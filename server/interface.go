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

// Package server runs the epoll event loop serving static files: listen
// sockets, worker fan-out, accept loop, idle sweep and connection
// dispatch. Each worker fully owns its listen socket (port reuse), its
// readiness descriptor and its connections; nothing is shared between
// workers but the immutable configuration and the sinks.
package server

import (
	"context"
	"time"

	libatm "github.com/nabbar/rockepoll/atomic"
	liberr "github.com/nabbar/rockepoll/errors"
	liblog "github.com/nabbar/rockepoll/logger"
)

// KeepAliveTimeout is the maximum idle time of a connection before
// unilateral teardown; it also bounds the readiness wait so the sweep
// runs at least that often.
const KeepAliveTimeout = 5 * time.Second

// Server is a static-file origin server instance.
type Server interface {
	// Listen runs the event loop until the context is cancelled or a
	// startup step fails. It blocks the calling goroutine.
	Listen(ctx context.Context) liberr.Error

	// IsRunning reports whether the event loop is active.
	IsRunning() bool

	// GetConfig returns the configuration of the server.
	GetConfig() Config
}

// New validates the configuration and returns a server. The defLog
// function provides the diagnostics logger and may be nil.
func New(cfg Config, defLog liblog.FuncLog) (Server, liberr.Error) {
	if err := cfg.Validate(); err != nil {
		return nil, liberr.Make(err)
	}

	s := &srv{
		l: defLog,
		c: libatm.NewValue[Config](),
		r: libatm.NewValueDefault[bool](false, false),
	}

	s.c.Store(cfg)
	s.r.Store(false)

	return s, nil
}

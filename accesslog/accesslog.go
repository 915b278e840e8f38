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

// Package accesslog writes the single-line record emitted for every
// served request:
//
//	<peer-ip> "<method> /<target> HTTP/<version>" <status> <length> "<user-agent>"
//
// The line format is part of the wire contract; the sink is a raw
// writer, not the structured diagnostics logger.
package accesslog

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Dash is the placeholder used when the request line or the user agent
// is unavailable (parse failure, absent header).
const Dash = "-"

// Logger is the access-log sink of one server.
type Logger interface {
	// Log emits one record. Unavailable fields carry Dash.
	Log(ip string, requestLine string, status int, contentLength int64, userAgent string)
}

// New returns a sink writing to out. A nil out writes to stdout. With
// quiet set, every record is swallowed.
func New(out io.Writer, quiet bool) Logger {
	if out == nil {
		out = os.Stdout
	}

	return &alog{
		w: out,
		q: quiet,
	}
}

type alog struct {
	m sync.Mutex
	w io.Writer
	q bool
}

func (a *alog) Log(ip string, requestLine string, status int, contentLength int64, userAgent string) {
	if a.q {
		return
	}

	if requestLine == "" {
		requestLine = Dash
	}

	if userAgent == "" {
		userAgent = Dash
	}

	a.m.Lock()
	defer a.m.Unlock()

	_, _ = fmt.Fprintf(a.w, "%s \"%s\" %d %d \"%s\"\n", ip, requestLine, status, contentLength, userAgent)
}

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

// Package handler turns a completed request buffer into response steps
// appended to the connection chain: parse, resolve, then a SEND step
// for the header block followed, for large payloads, by a SENDFILE
// step over the requested byte range. Small payloads are inlined into
// the header buffer. Every path ends on the post-send decision driving
// keep-alive or close, and emits one access-log record.
package handler

import (
	"bytes"
	"fmt"

	libacc "github.com/nabbar/rockepoll/accesslog"
	libcon "github.com/nabbar/rockepoll/connection"
	libios "github.com/nabbar/rockepoll/iostep"
	liblog "github.com/nabbar/rockepoll/logger"
	libreq "github.com/nabbar/rockepoll/request"
	libres "github.com/nabbar/rockepoll/resolver"
	"golang.org/x/sys/unix"
)

const (
	// ServerName is the Server header value.
	ServerName = "rockepoll"

	// SendfileMinSize is the payload size from which delivery switches
	// from an inlined body to a SENDFILE step.
	SendfileMinSize = 8 * 1024
)

// Handler builds responses for one server. It is stateless apart from
// its sinks and is shared by every worker.
type Handler struct {
	acc libacc.Logger
	log liblog.FuncLog
}

// New returns a response builder logging served requests to acc and
// diagnostics to log. Both may be nil.
func New(acc libacc.Logger, log liblog.FuncLog) *Handler {
	return &Handler{
		acc: acc,
		log: log,
	}
}

// NewRead returns a fresh READ step wired to this builder for the
// given connection.
func (h *Handler) NewRead(c *libcon.Conn) libios.Step {
	return libios.NewRead(func(data []byte) libios.ConnStatus {
		return h.Build(c, data)
	})
}

// postSend is the terminator shared by every final response step: a
// keep-alive connection restarts on a fresh READ step, any other
// closes.
func (h *Handler) postSend(c *libcon.Conn) libios.Terminator {
	return func() libios.ConnStatus {
		if c.KeepAlive() {
			c.Chain().Append(h.NewRead(c))
			return libios.Continue
		}

		return libios.Close
	}
}

// Build decides the response for the accumulated request bytes and
// appends the resulting steps to the connection chain.
func (h *Handler) Build(c *libcon.Conn, data []byte) libios.ConnStatus {
	req, perr := libreq.Parse(data)
	if perr != nil {
		// no further request is served on this connection
		c.SetKeepAlive(false)
		h.pushStatus(c, StatusBadRequest, nil)
		return libios.Continue
	}

	if req.Version() == libreq.Version20 {
		h.pushStatus(c, StatusVersionNotSupported, req)
		return libios.Continue
	}

	if req.Method() != libreq.MethodGet && req.Method() != libreq.MethodHead {
		h.pushStatus(c, StatusMethodNotAllowed, req)
		return libios.Continue
	}

	if v := req.Header(libreq.HeaderConnection); v != nil && string(v) == "close" {
		c.SetKeepAlive(false)
	}

	meta, st := libres.Resolve(req.Target())

	switch st {
	case libres.Forbidden:
		h.pushStatus(c, StatusForbidden, req)
		return libios.Continue
	case libres.NotFound:
		h.pushStatus(c, StatusNotFound, req)
		return libios.Continue
	case libres.InternalError:
		h.pushStatus(c, StatusInternalError, req)
		return libios.Continue
	}

	if meta.IsDir() {
		_ = unix.Close(meta.Fd())
		h.pushStatus(c, StatusNotFound, req)
		return libios.Continue
	}

	if m := req.Header(libreq.HeaderIfMatch); m != nil && etagMatch(m, meta.ETag()) {
		_ = unix.Close(meta.Fd())
		h.pushStatus(c, StatusNotModified, req)
		return libios.Continue
	}

	rng := parseRange(req.Header(libreq.HeaderRange), meta.Size())

	switch rng.status {
	case StatusBadRequest, StatusRangeNotSatisfiable:
		_ = unix.Close(meta.Fd())
		h.pushStatus(c, rng.status, req)
		return libios.Continue
	}

	var buf bytes.Buffer
	buf.Grow(256 + inlineSize(rng.length))

	_, _ = fmt.Fprintf(&buf,
		"HTTP/1.1 %d %s\r\n"+
			"Server: %s\r\n"+
			"Accept-Ranges: bytes\r\n"+
			"Content-Type: %s\r\n"+
			"Content-Length: %d\r\n"+
			"ETag: \"%s\"\r\n"+
			"Connection: %s\r\n",
		rng.status, StatusText(rng.status),
		ServerName,
		meta.MimeType(),
		rng.length,
		meta.ETag(),
		connectionToken(c.KeepAlive()),
	)

	if rng.status == StatusPartialContent {
		_, _ = fmt.Fprintf(&buf, "Content-Range: bytes %d-%d/%d\r\n", rng.lower, rng.upper, meta.Size())
	}

	buf.WriteString("\r\n")

	switch {
	case req.Method() == libreq.MethodHead:
		_ = unix.Close(meta.Fd())
		c.Chain().Append(libios.NewSend(buf.Bytes(), false, h.postSend(c)))

	case rng.length < SendfileMinSize:
		body, err := preadFull(meta.Fd(), rng.lower, rng.length)
		_ = unix.Close(meta.Fd())

		if err != nil {
			if h.log != nil && h.log() != nil {
				h.log().Error("cannot read file for inline delivery", err)
			}
			h.pushStatus(c, StatusInternalError, req)
			return libios.Continue
		}

		buf.Write(body)
		c.Chain().Append(libios.NewSend(buf.Bytes(), false, h.postSend(c)))

	default:
		c.Chain().Append(libios.NewSend(buf.Bytes(), true, nil))
		c.Chain().Append(libios.NewSendfile(meta.Fd(), rng.lower, rng.upper+1, rng.length, h.postSend(c)))
	}

	h.logRequest(c, req, rng.status, rng.length)

	return libios.Continue
}

// pushStatus appends the single SEND step shared by every non-2xx path
// (and 304): fixed headers, an <h1> body for error statuses, headers
// only for 304.
func (h *Handler) pushStatus(c *libcon.Conn, status int, req *libreq.Request) {
	phrase := StatusText(status)

	var body string
	if status != StatusNotModified {
		body = "<h1>" + phrase + "</h1>"
	}

	var buf bytes.Buffer
	buf.Grow(256)

	_, _ = fmt.Fprintf(&buf,
		"HTTP/1.1 %d %s\r\n"+
			"Server: %s\r\n"+
			"Accept-Ranges: bytes\r\n"+
			"Content-Type: text/html; charset=utf-8\r\n"+
			"Content-Length: %d\r\n"+
			"Connection: %s\r\n"+
			"\r\n",
		status, phrase,
		ServerName,
		len(body),
		connectionToken(c.KeepAlive()),
	)

	buf.WriteString(body)

	c.Chain().Append(libios.NewSend(buf.Bytes(), false, h.postSend(c)))

	h.logRequest(c, req, status, int64(len(body)))
}

func (h *Handler) logRequest(c *libcon.Conn, req *libreq.Request, status int, length int64) {
	if h.acc == nil {
		return
	}

	line := libacc.Dash
	agent := libacc.Dash

	if req != nil {
		line = req.Line()
		if ua := req.Header(libreq.HeaderUserAgent); ua != nil {
			agent = string(ua)
		}
	}

	h.acc.Log(c.IP(), line, status, length, agent)
}

func connectionToken(keepAlive bool) string {
	if keepAlive {
		return "keep-alive"
	}
	return "close"
}

// etagMatch compares an If-Match value with the computed tag, tolerant
// of one level of surrounding quotes so a client echoing the emitted
// ETag header matches.
func etagMatch(value []byte, etag string) bool {
	if len(value) >= 2 && value[0] == '"' && value[len(value)-1] == '"' {
		value = value[1 : len(value)-1]
	}

	return string(value) == etag
}

func inlineSize(length int64) int {
	if length < SendfileMinSize {
		return int(length)
	}
	return 0
}

// preadFull reads exactly size bytes at the given offset.
func preadFull(fd int, off int64, size int64) ([]byte, error) {
	body := make([]byte, size)
	read := 0

	for read < len(body) {
		n, err := unix.Pread(fd, body[read:], off+int64(read))
		if err != nil {
			return nil, err
		}
		if n == 0 {
			break
		}
		read += n
	}

	return body[:read], nil
}

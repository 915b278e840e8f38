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

package handler_test

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/sys/unix"

	libacc "github.com/nabbar/rockepoll/accesslog"
	libcon "github.com/nabbar/rockepoll/connection"
	libhdl "github.com/nabbar/rockepoll/handler"
)

var _ = Describe("Build", func() {
	var (
		root string
		back string
		logs *bytes.Buffer
		hdl  *libhdl.Handler
	)

	newConn := func(keepAlive bool) (*libcon.Conn, int) {
		local, peer := socketPair()
		c := libcon.New(local, "127.0.0.1", keepAlive, time.Now())
		c.Chain().Append(hdl.NewRead(c))
		return c, peer
	}

	BeforeEach(func() {
		var err error

		back, err = os.Getwd()
		Expect(err).ToNot(HaveOccurred())

		root = GinkgoT().TempDir()
		Expect(os.WriteFile(filepath.Join(root, "hello.txt"), []byte("hello"), 0644)).To(Succeed())
		Expect(os.MkdirAll(filepath.Join(root, "pub"), 0755)).To(Succeed())
		Expect(os.WriteFile(filepath.Join(root, "pub", "index.html"), []byte("hi\n"), 0644)).To(Succeed())
		Expect(os.Chdir(root)).To(Succeed())

		logs = &bytes.Buffer{}
		hdl = libhdl.New(libacc.New(logs, false), nil)
	})

	AfterEach(func() {
		Expect(os.Chdir(back)).To(Succeed())
	})

	It("should serve a simple GET", func() {
		c, peer := newConn(false)
		defer unix.Close(peer)

		res := run(c, peer, "GET /hello.txt HTTP/1.1\r\nHost: x\r\n\r\n")

		Expect(statusLine(res)).To(Equal("HTTP/1.1 200 OK"))
		Expect(res).To(ContainSubstring("Content-Length: 5\r\n"))
		Expect(res).To(ContainSubstring("Content-Type: text/plain; charset=utf-8\r\n"))
		Expect(res).To(ContainSubstring("Accept-Ranges: bytes\r\n"))
		Expect(res).To(ContainSubstring("Server: rockepoll\r\n"))
		Expect(res).To(MatchRegexp(`ETag: "\d+-5"`))
		Expect(body(res)).To(Equal("hello"))

		Expect(logs.String()).To(ContainSubstring("127.0.0.1 \"GET /hello.txt HTTP/1.1\" 200 5 \"-\"\n"))

		c.Teardown()
	})

	It("should serve a byte range", func() {
		c, peer := newConn(false)
		defer unix.Close(peer)

		res := run(c, peer, "GET /hello.txt HTTP/1.1\r\nRange: bytes=1-3\r\n\r\n")

		Expect(statusLine(res)).To(Equal("HTTP/1.1 206 Partial Content"))
		Expect(res).To(ContainSubstring("Content-Length: 3\r\n"))
		Expect(res).To(ContainSubstring("Content-Range: bytes 1-3/5\r\n"))
		Expect(body(res)).To(Equal("ell"))

		c.Teardown()
	})

	It("should clamp an open-ended range", func() {
		c, peer := newConn(false)
		defer unix.Close(peer)

		res := run(c, peer, "GET /hello.txt HTTP/1.1\r\nRange: bytes=2-99\r\n\r\n")

		Expect(statusLine(res)).To(Equal("HTTP/1.1 206 Partial Content"))
		Expect(res).To(ContainSubstring("Content-Length: 3\r\n"))
		Expect(res).To(ContainSubstring("Content-Range: bytes 2-4/5\r\n"))
		Expect(body(res)).To(Equal("llo"))

		c.Teardown()
	})

	It("should refuse an unsatisfiable range", func() {
		c, peer := newConn(false)
		defer unix.Close(peer)

		res := run(c, peer, "GET /hello.txt HTTP/1.1\r\nRange: bytes=9-2\r\n\r\n")

		Expect(statusLine(res)).To(Equal("HTTP/1.1 416 Range Not Satisfiable"))
		Expect(body(res)).To(Equal("<h1>Range Not Satisfiable</h1>"))

		c.Teardown()
	})

	It("should refuse a malformed range", func() {
		c, peer := newConn(false)
		defer unix.Close(peer)

		res := run(c, peer, "GET /hello.txt HTTP/1.1\r\nRange: lines=1-2\r\n\r\n")

		Expect(statusLine(res)).To(Equal("HTTP/1.1 400 Bad Request"))

		c.Teardown()
	})

	It("should refuse non GET or HEAD methods", func() {
		c, peer := newConn(false)
		defer unix.Close(peer)

		res := run(c, peer, "POST /hello.txt HTTP/1.1\r\n\r\n")

		Expect(statusLine(res)).To(Equal("HTTP/1.1 405 Method Not Allowed"))
		Expect(body(res)).To(Equal("<h1>Method Not Allowed</h1>"))

		c.Teardown()
	})

	It("should serve the directory index", func() {
		c, peer := newConn(false)
		defer unix.Close(peer)

		res := run(c, peer, "GET /pub/ HTTP/1.1\r\n\r\n")

		Expect(statusLine(res)).To(Equal("HTTP/1.1 200 OK"))
		Expect(res).To(ContainSubstring("Content-Type: text/html; charset=utf-8\r\n"))
		Expect(res).To(ContainSubstring("Content-Length: 3\r\n"))
		Expect(body(res)).To(Equal("hi\n"))

		c.Teardown()
	})

	It("should reject a traversal escape with 400", func() {
		c, peer := newConn(false)
		defer unix.Close(peer)

		res := run(c, peer, "GET /../etc/passwd HTTP/1.1\r\n\r\n")

		Expect(statusLine(res)).To(Equal("HTTP/1.1 400 Bad Request"))
		Expect(body(res)).To(Equal("<h1>Bad Request</h1>"))
		Expect(logs.String()).To(ContainSubstring("\"-\" 400"))

		c.Teardown()
	})

	It("should close after a parse failure even with keep-alive", func() {
		c, peer := newConn(true)
		defer unix.Close(peer)

		res := run(c, peer, "BREW / HTTP/1.1\r\n\r\n")

		Expect(statusLine(res)).To(Equal("HTTP/1.1 400 Bad Request"))
		Expect(res).To(ContainSubstring("Connection: close\r\n"))
		Expect(c.Status()).To(Equal(libcon.Closing))

		c.Teardown()
	})

	It("should answer 404 on a missing file", func() {
		c, peer := newConn(false)
		defer unix.Close(peer)

		res := run(c, peer, "GET /missing.txt HTTP/1.1\r\n\r\n")

		Expect(statusLine(res)).To(Equal("HTTP/1.1 404 Not Found"))
		Expect(body(res)).To(Equal("<h1>Not Found</h1>"))

		c.Teardown()
	})

	It("should answer 505 on version 2.0", func() {
		c, peer := newConn(false)
		defer unix.Close(peer)

		res := run(c, peer, "GET /hello.txt HTTP/2.0\r\n\r\n")

		Expect(statusLine(res)).To(Equal("HTTP/1.1 505 HTTP Version not supported"))

		c.Teardown()
	})

	It("should answer 304 with no body on a matching If-Match", func() {
		c, peer := newConn(false)
		defer unix.Close(peer)

		first := run(c, peer, "GET /hello.txt HTTP/1.1\r\n\r\n")
		c.Teardown()

		var etag string
		for _, l := range strings.Split(headerBlock(first), "\r\n") {
			if strings.HasPrefix(l, "ETag: ") {
				etag = strings.TrimPrefix(l, "ETag: ")
			}
		}
		Expect(etag).ToNot(BeEmpty())

		c2, peer2 := newConn(false)
		defer unix.Close(peer2)

		res := run(c2, peer2, "GET /hello.txt HTTP/1.1\r\nIf-Match: "+etag+"\r\n\r\n")

		Expect(statusLine(res)).To(Equal("HTTP/1.1 304 Not Modified"))
		Expect(res).To(ContainSubstring("Content-Length: 0\r\n"))
		Expect(body(res)).To(BeEmpty())

		c2.Teardown()
	})

	It("should serve HEAD with the full Content-Length and no body", func() {
		c, peer := newConn(false)
		defer unix.Close(peer)

		res := run(c, peer, "HEAD /hello.txt HTTP/1.1\r\n\r\n")

		Expect(statusLine(res)).To(Equal("HTTP/1.1 200 OK"))
		Expect(res).To(ContainSubstring("Content-Length: 5\r\n"))
		Expect(body(res)).To(BeEmpty())

		c.Teardown()
	})

	It("should deliver a large payload through sendfile", func() {
		content := bytes.Repeat([]byte("0123456789abcdef"), 4096) // 64 KiB
		Expect(os.WriteFile(filepath.Join(root, "big.bin"), content, 0644)).To(Succeed())

		c, peer := newConn(false)
		defer unix.Close(peer)

		res := run(c, peer, "GET /big.bin HTTP/1.1\r\n\r\n")

		Expect(statusLine(res)).To(Equal("HTTP/1.1 200 OK"))
		Expect(res).To(ContainSubstring(fmt.Sprintf("Content-Length: %d\r\n", len(content))))
		Expect([]byte(body(res))).To(Equal(content))

		c.Teardown()
	})

	It("should chain keep-alive requests and honor Connection close", func() {
		c, peer := newConn(true)
		defer unix.Close(peer)

		first := run(c, peer, "GET /hello.txt HTTP/1.1\r\n\r\n")
		Expect(statusLine(first)).To(Equal("HTTP/1.1 200 OK"))
		Expect(first).To(ContainSubstring("Connection: keep-alive\r\n"))
		Expect(c.Status()).To(Equal(libcon.Running))

		second := run(c, peer, "GET /pub/ HTTP/1.1\r\nConnection: close\r\n\r\n")
		Expect(statusLine(second)).To(Equal("HTTP/1.1 200 OK"))
		Expect(second).To(ContainSubstring("Connection: close\r\n"))
		Expect(body(second)).To(Equal("hi\n"))
		Expect(c.Status()).To(Equal(libcon.Closing))

		c.Teardown()
	})
})

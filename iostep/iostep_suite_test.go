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

package iostep_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/sys/unix"
)

func TestIOStep(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "IOStep Suite")
}

// socketPair returns a connected non-blocking stream pair: local is the
// server side driven by the steps, peer is the remote end.
func socketPair() (local int, peer int) {
	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	Expect(err).ToNot(HaveOccurred())

	Expect(unix.SetNonblock(fds[0], true)).To(Succeed())
	Expect(unix.SetNonblock(fds[1], true)).To(Succeed())

	return fds[0], fds[1]
}

func readAll(fd int) []byte {
	var res []byte
	buf := make([]byte, 64*1024)

	for {
		n, err := unix.Read(fd, buf)
		if n > 0 {
			res = append(res, buf[:n]...)
			continue
		}
		if err == unix.EAGAIN || err == unix.EWOULDBLOCK || n == 0 {
			return res
		}
		Expect(err).ToNot(HaveOccurred())
	}
}

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
	"bytes"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/sys/unix"

	libios "github.com/nabbar/rockepoll/iostep"
)

var _ = Describe("Read", func() {
	It("should return Again on an idle socket", func() {
		local, peer := socketPair()
		defer unix.Close(local)
		defer unix.Close(peer)

		r := libios.NewRead(nil)
		defer r.Release()

		Expect(r.Do(local)).To(Equal(libios.StatusAgain))
	})

	It("should complete on a short request burst", func() {
		local, peer := socketPair()
		defer unix.Close(local)
		defer unix.Close(peer)

		req := []byte("GET /hello.txt HTTP/1.1\r\n\r\n")
		_, err := unix.Write(peer, req)
		Expect(err).ToNot(HaveOccurred())

		var got []byte
		r := libios.NewRead(func(data []byte) libios.ConnStatus {
			got = append([]byte(nil), data...)
			return libios.Continue
		})
		defer r.Release()

		Expect(r.Do(local)).To(Equal(libios.StatusOK))
		Expect(r.Terminate()).To(Equal(libios.Continue))
		Expect(got).To(Equal(req))
	})

	It("should keep partial progress across attempts", func() {
		local, peer := socketPair()
		defer unix.Close(local)
		defer unix.Close(peer)

		// exactly one chunk: the step keeps reading and hits would-block
		chunk := bytes.Repeat([]byte("a"), 1024)
		_, err := unix.Write(peer, chunk)
		Expect(err).ToNot(HaveOccurred())

		var got []byte
		r := libios.NewRead(func(data []byte) libios.ConnStatus {
			got = append([]byte(nil), data...)
			return libios.Continue
		})
		defer r.Release()

		Expect(r.Do(local)).To(Equal(libios.StatusAgain))

		_, err = unix.Write(peer, []byte("b"))
		Expect(err).ToNot(HaveOccurred())

		Expect(r.Do(local)).To(Equal(libios.StatusOK))
		r.Terminate()
		Expect(got).To(HaveLen(1025))
	})

	It("should error on peer hangup without bytes", func() {
		local, peer := socketPair()
		defer unix.Close(local)

		Expect(unix.Close(peer)).To(Succeed())

		r := libios.NewRead(nil)
		defer r.Release()

		Expect(r.Do(local)).To(Equal(libios.StatusError))
	})

	It("should error when the request fills the buffer", func() {
		local, peer := socketPair()
		defer unix.Close(local)
		defer unix.Close(peer)

		_, err := unix.Write(peer, bytes.Repeat([]byte("x"), libios.MaxReqSize))
		Expect(err).ToNot(HaveOccurred())

		r := libios.NewRead(nil)
		defer r.Release()

		Expect(r.Do(local)).To(Equal(libios.StatusError))
	})
})

var _ = Describe("Send", func() {
	It("should drain the buffer and report completion", func() {
		local, peer := socketPair()
		defer unix.Close(local)
		defer unix.Close(peer)

		var done bool
		s := libios.NewSend([]byte("HTTP/1.1 200 OK\r\n\r\n"), false, func() libios.ConnStatus {
			done = true
			return libios.Close
		})
		defer s.Release()

		Expect(s.Do(local)).To(Equal(libios.StatusOK))
		Expect(s.Terminate()).To(Equal(libios.Close))
		Expect(done).To(BeTrue())
		Expect(string(readAll(peer))).To(Equal("HTTP/1.1 200 OK\r\n\r\n"))
	})

	It("should surface would-block and resume from the offset", func() {
		local, peer := socketPair()
		defer unix.Close(local)
		defer unix.Close(peer)

		// shrink the send buffer so a large payload cannot drain at once
		Expect(unix.SetsockoptInt(local, unix.SOL_SOCKET, unix.SO_SNDBUF, 4096)).To(Succeed())

		payload := bytes.Repeat([]byte("p"), 1<<20)
		s := libios.NewSend(payload, false, nil)
		defer s.Release()

		var got []byte
		for {
			st := s.Do(local)
			if st == libios.StatusOK {
				break
			}
			Expect(st).To(Equal(libios.StatusAgain))
			got = append(got, readAll(peer)...)
		}
		got = append(got, readAll(peer)...)

		Expect(got).To(HaveLen(len(payload)))
	})

	It("should error once the peer is gone", func() {
		local, peer := socketPair()
		defer unix.Close(local)

		Expect(unix.Close(peer)).To(Succeed())

		s := libios.NewSend(bytes.Repeat([]byte("z"), 1<<16), false, nil)
		defer s.Release()

		// the first write may land in the kernel buffer; keep pushing
		var st libios.Status
		for i := 0; i < 8; i++ {
			if st = s.Do(local); st == libios.StatusError {
				break
			}
		}
		Expect(st).To(Equal(libios.StatusError))
	})
})

var _ = Describe("Sendfile", func() {
	var infile string

	BeforeEach(func() {
		infile = filepath.Join(GinkgoT().TempDir(), "payload.bin")
	})

	openIn := func() int {
		fd, err := unix.Open(infile, unix.O_RDONLY, 0)
		Expect(err).ToNot(HaveOccurred())
		return fd
	}

	It("should transmit a full file", func() {
		content := bytes.Repeat([]byte("f"), 3000)
		Expect(os.WriteFile(infile, content, 0644)).To(Succeed())

		local, peer := socketPair()
		defer unix.Close(local)
		defer unix.Close(peer)

		s := libios.NewSendfile(openIn(), 0, int64(len(content)), int64(len(content)), nil)
		defer s.Release()

		var got []byte
		for {
			st := s.Do(local)
			got = append(got, readAll(peer)...)
			if st == libios.StatusOK {
				break
			}
			Expect(st).To(Equal(libios.StatusAgain))
		}

		Expect(got).To(Equal(content))
	})

	It("should transmit only the requested range", func() {
		Expect(os.WriteFile(infile, []byte("hello"), 0644)).To(Succeed())

		local, peer := socketPair()
		defer unix.Close(local)
		defer unix.Close(peer)

		s := libios.NewSendfile(openIn(), 1, 4, 3, nil)
		defer s.Release()

		Expect(s.Do(local)).To(Equal(libios.StatusOK))
		Expect(string(readAll(peer))).To(Equal("ell"))
	})

	It("should close the input descriptor exactly once", func() {
		Expect(os.WriteFile(infile, []byte("x"), 0644)).To(Succeed())

		fd := openIn()
		s := libios.NewSendfile(fd, 0, 1, 1, nil)

		s.Release()
		s.Release()

		Expect(unix.Close(fd)).To(HaveOccurred())
	})
})

var _ = Describe("Chain", func() {
	It("should consume head-first in append order", func() {
		c := libios.NewChain()
		Expect(c.IsEmpty()).To(BeTrue())

		a := libios.NewSend([]byte("a"), false, nil)
		b := libios.NewSend([]byte("b"), false, nil)

		c.Append(a)
		c.Append(b)

		Expect(c.Len()).To(Equal(2))
		Expect(c.Head()).To(BeIdenticalTo(a))

		c.Shift()
		Expect(c.Head()).To(BeIdenticalTo(b))

		c.Shift()
		Expect(c.IsEmpty()).To(BeTrue())
	})

	It("should drain every queued step", func() {
		c := libios.NewChain()
		c.Append(libios.NewSend([]byte("a"), false, nil))
		c.Append(libios.NewSend([]byte("b"), false, nil))

		c.Drain()
		Expect(c.IsEmpty()).To(BeTrue())
		Expect(c.Len()).To(Equal(0))
	})

	It("should ignore nil steps", func() {
		c := libios.NewChain()
		c.Append(nil)
		Expect(c.IsEmpty()).To(BeTrue())
	})
})

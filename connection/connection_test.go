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

package connection_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/sys/unix"

	libcon "github.com/nabbar/rockepoll/connection"
	libios "github.com/nabbar/rockepoll/iostep"
)

func TestConnection(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Connection Suite")
}

func socketPair() (local int, peer int) {
	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	Expect(err).ToNot(HaveOccurred())

	Expect(unix.SetNonblock(fds[0], true)).To(Succeed())
	Expect(unix.SetNonblock(fds[1], true)).To(Succeed())

	return fds[0], fds[1]
}

func drain(fd int) []byte {
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

var _ = Describe("Conn", func() {
	It("should chain read, build and send within one readiness event", func() {
		local, peer := socketPair()
		defer unix.Close(peer)

		c := libcon.New(local, "127.0.0.1", false, time.Now())

		c.Chain().Append(libios.NewRead(func(data []byte) libios.ConnStatus {
			c.Chain().Append(libios.NewSend([]byte("pong"), false, func() libios.ConnStatus {
				return libios.Close
			}))
			return libios.Continue
		}))

		_, err := unix.Write(peer, []byte("ping"))
		Expect(err).ToNot(HaveOccurred())

		c.Process()

		Expect(c.Status()).To(Equal(libcon.Closing))
		Expect(string(drain(peer))).To(Equal("pong"))

		c.Teardown()
	})

	It("should restart a keep-alive connection with a fresh read step", func() {
		local, peer := socketPair()
		defer unix.Close(peer)

		c := libcon.New(local, "127.0.0.1", true, time.Now())

		var appendRead func() libios.ConnStatus
		appendRead = func() libios.ConnStatus {
			c.Chain().Append(libios.NewRead(func(data []byte) libios.ConnStatus {
				c.Chain().Append(libios.NewSend([]byte("ok"), false, func() libios.ConnStatus {
					if c.KeepAlive() {
						_ = appendRead()
						return libios.Continue
					}
					return libios.Close
				}))
				return libios.Continue
			}))
			return libios.Continue
		}
		appendRead()

		_, err := unix.Write(peer, []byte("one"))
		Expect(err).ToNot(HaveOccurred())

		c.Process()

		Expect(c.Status()).To(Equal(libcon.Running))
		Expect(c.Chain().Len()).To(Equal(1))
		Expect(string(drain(peer))).To(Equal("ok"))

		c.Teardown()
	})

	It("should stay put on would-block and keep the head", func() {
		local, peer := socketPair()
		defer unix.Close(peer)

		c := libcon.New(local, "127.0.0.1", false, time.Now())
		c.Chain().Append(libios.NewRead(nil))

		c.Process()

		Expect(c.Status()).To(Equal(libcon.Running))
		Expect(c.Chain().Len()).To(Equal(1))

		c.Teardown()
	})

	It("should transition to Closing on a step error", func() {
		local, peer := socketPair()

		c := libcon.New(local, "127.0.0.1", true, time.Now())
		c.Chain().Append(libios.NewRead(nil))

		Expect(unix.Close(peer)).To(Succeed())

		c.Process()
		Expect(c.Status()).To(Equal(libcon.Closing))

		c.Teardown()
	})

	It("should close when the chain drains without a new read", func() {
		local, peer := socketPair()
		defer unix.Close(peer)

		c := libcon.New(local, "127.0.0.1", false, time.Now())
		c.Chain().Append(libios.NewSend([]byte("bye"), false, nil))

		c.Process()

		Expect(c.Status()).To(Equal(libcon.Closing))
		Expect(c.Chain().IsEmpty()).To(BeTrue())

		c.Teardown()
	})

	It("should track idleness", func() {
		local, peer := socketPair()
		defer unix.Close(peer)

		now := time.Now()
		c := libcon.New(local, "127.0.0.1", false, now)

		Expect(c.IsIdle(now.Add(3*time.Second), 5*time.Second)).To(BeFalse())
		Expect(c.IsIdle(now.Add(6*time.Second), 5*time.Second)).To(BeTrue())

		c.Touch(now.Add(6 * time.Second))
		Expect(c.IsIdle(now.Add(8*time.Second), 5*time.Second)).To(BeFalse())

		c.Teardown()
	})
})

var _ = Describe("Registry", func() {
	It("should register and look up by descriptor", func() {
		local, peer := socketPair()
		defer unix.Close(peer)

		r := libcon.NewRegistry(1024)
		c := libcon.New(local, "127.0.0.1", false, time.Now())

		Expect(r.Put(c)).To(BeTrue())
		Expect(r.Count()).To(Equal(1))
		Expect(r.Get(local)).To(BeIdenticalTo(c))

		r.Remove(c)
		Expect(r.Count()).To(Equal(0))
		Expect(r.Get(local)).To(BeNil())
	})

	It("should refuse descriptors beyond the bound", func() {
		r := libcon.NewRegistry(4)
		c := libcon.New(100, "127.0.0.1", false, time.Now())
		Expect(r.Put(c)).To(BeFalse())
	})

	It("should refuse two records for one descriptor", func() {
		local, peer := socketPair()
		defer unix.Close(peer)

		r := libcon.NewRegistry(1024)
		c := libcon.New(local, "127.0.0.1", false, time.Now())

		Expect(r.Put(c)).To(BeTrue())
		Expect(r.Put(libcon.New(local, "10.0.0.1", false, time.Now()))).To(BeFalse())

		r.Remove(c)
	})

	It("should close the socket exactly once on removal", func() {
		local, peer := socketPair()
		defer unix.Close(peer)

		r := libcon.NewRegistry(1024)
		c := libcon.New(local, "127.0.0.1", false, time.Now())

		Expect(r.Put(c)).To(BeTrue())
		r.Remove(c)

		// slot cleared: a second removal is a no-op
		r.Remove(c)
		Expect(unix.Close(local)).To(HaveOccurred())
	})

	It("should walk live connections during the sweep", func() {
		a, pa := socketPair()
		b, pb := socketPair()
		defer unix.Close(pa)
		defer unix.Close(pb)

		r := libcon.NewRegistry(1024)
		ca := libcon.New(a, "127.0.0.1", false, time.Now())
		cb := libcon.New(b, "127.0.0.1", false, time.Now())

		Expect(r.Put(ca)).To(BeTrue())
		Expect(r.Put(cb)).To(BeTrue())

		var seen int
		r.Walk(func(c *libcon.Conn) bool {
			seen++
			r.Remove(c)
			return true
		})

		Expect(seen).To(Equal(2))
		Expect(r.Count()).To(Equal(0))
	})
})

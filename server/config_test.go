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

package server_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	libsrv "github.com/nabbar/rockepoll/server"
)

var _ = Describe("Config", func() {
	It("should accept a default configuration", func() {
		cfg := libsrv.DefaultConfig(GinkgoT().TempDir())
		Expect(cfg.Validate()).To(Succeed())
		Expect(cfg.Listen).To(Equal("127.0.0.1"))
	})

	It("should refuse a missing document root", func() {
		cfg := libsrv.DefaultConfig("")
		Expect(cfg.Validate()).To(HaveOccurred())
	})

	It("should refuse a document root that is not a directory", func() {
		cfg := libsrv.DefaultConfig("/nonexistent/rockepoll/root")
		Expect(cfg.Validate()).To(HaveOccurred())
	})

	It("should refuse a malformed listen address", func() {
		cfg := libsrv.DefaultConfig(GinkgoT().TempDir())
		cfg.Listen = "not-an-ip"
		Expect(cfg.Validate()).To(HaveOccurred())
	})

	It("should refuse an out-of-range port", func() {
		cfg := libsrv.DefaultConfig(GinkgoT().TempDir())
		cfg.Port = 70000
		Expect(cfg.Validate()).To(HaveOccurred())
	})

	It("should cap the worker fan-out", func() {
		cfg := libsrv.DefaultConfig(GinkgoT().TempDir())
		cfg.Workers = 64
		Expect(cfg.Validate()).To(HaveOccurred())

		cfg.Workers = 0
		Expect(cfg.NbWorkers()).To(Equal(1))

		cfg.Workers = 8
		Expect(cfg.NbWorkers()).To(Equal(8))
	})

	It("should refuse creating a server on an invalid config", func() {
		_, err := libsrv.New(libsrv.Config{}, nil)
		Expect(err).ToNot(BeNil())
	})
})

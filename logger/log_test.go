/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
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

package logger_test

import (
	"errors"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	liblog "github.com/nabbar/rockepoll/logger"
	logcfg "github.com/nabbar/rockepoll/logger/config"
	loglvl "github.com/nabbar/rockepoll/logger/level"
)

var _ = Describe("Logger", func() {
	It("should create a usable logger with defaults", func() {
		log := liblog.New(ctx)
		defer func() { _ = log.Close() }()

		Expect(log.GetLevel()).To(Equal(loglvl.InfoLevel))
		log.Info("hello", nil)
	})

	It("should honor level changes", func() {
		log := liblog.New(ctx)
		defer func() { _ = log.Close() }()

		log.SetLevel(loglvl.ErrorLevel)
		Expect(log.GetLevel()).To(Equal(loglvl.ErrorLevel))

		log.SetLevel(loglvl.NilLevel)
		log.Error("discarded", nil)
	})

	It("should refuse nil options", func() {
		log := liblog.New(ctx)
		defer func() { _ = log.Close() }()

		Expect(log.SetOptions(nil)).To(HaveOccurred())
	})

	It("should write entries into a log file sink", func() {
		dir := GinkgoT().TempDir()
		fp := filepath.Join(dir, "test.log")

		log := liblog.New(ctx)
		defer func() { _ = log.Close() }()

		err := log.SetOptions(&logcfg.Options{
			Stdout: &logcfg.OptionsStd{DisableStandard: true},
			LogFile: []logcfg.OptionsFile{
				{Filepath: fp, Create: true, FileMode: 0644},
			},
		})
		Expect(err).ToNot(HaveOccurred())

		log.Info("file sink entry", nil)
		Expect(log.Close()).ToNot(HaveOccurred())

		buf, err := os.ReadFile(fp)
		Expect(err).ToNot(HaveOccurred())
		Expect(string(buf)).To(ContainSubstring("file sink entry"))
	})

	It("should refuse a file sink without filepath", func() {
		log := liblog.New(ctx)
		defer func() { _ = log.Close() }()

		err := log.SetOptions(&logcfg.Options{
			LogFile: []logcfg.OptionsFile{{Create: true}},
		})
		Expect(err).To(HaveOccurred())
	})

	It("should report logged errors with CheckError", func() {
		log := liblog.New(ctx)
		defer func() { _ = log.Close() }()

		Expect(log.CheckError(loglvl.ErrorLevel, "failure", nil, nil)).To(BeFalse())
		Expect(log.CheckError(loglvl.ErrorLevel, "failure", errors.New("boom"))).To(BeTrue())
	})
})

var _ = Describe("Level", func() {
	It("should parse and render levels", func() {
		Expect(loglvl.Parse("debug")).To(Equal(loglvl.DebugLevel))
		Expect(loglvl.Parse("WARN")).To(Equal(loglvl.WarnLevel))
		Expect(loglvl.Parse("whatever")).To(Equal(loglvl.InfoLevel))
		Expect(loglvl.ErrorLevel.String()).To(Equal("error"))
	})
})

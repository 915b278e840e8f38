/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
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

package errors_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	liberr "github.com/nabbar/rockepoll/errors"
)

var _ = Describe("Error Creation", func() {
	Describe("Creating errors", func() {
		It("should create error from CodeError", func() {
			err := testErrorCode1.Error(nil)
			Expect(err).ToNot(BeNil())
			Expect(err.Code()).To(Equal(uint16(testErrorCode1)))
			Expect(err.Error()).To(ContainSubstring("test error 1"))
		})

		It("should create error with parent", func() {
			parent := errors.New("parent error")
			err := testErrorCode1.Error(parent)
			Expect(err.HasParent()).To(BeTrue())
			Expect(err.GetParent(false)).To(HaveLen(1))
		})

		It("should create error using New function", func() {
			err := liberr.New(100, "custom error")
			Expect(err).ToNot(BeNil())
			Expect(err.Code()).To(Equal(uint16(100)))
			Expect(err.Error()).To(ContainSubstring("custom error"))
		})

		It("should create formatted error using Newf", func() {
			err := liberr.Newf(200, "error: %s, code: %d", "test", 42)
			Expect(err).ToNot(BeNil())
			Expect(err.Error()).To(ContainSubstring("test"))
			Expect(err.Error()).To(ContainSubstring("42"))
		})

		It("should not create error from IfError without parent", func() {
			Expect(testErrorCode1.IfError(nil)).To(BeNil())
			Expect(liberr.IfError(100, "message", nil, nil)).To(BeNil())
		})

		It("should carry a source trace", func() {
			err := testErrorCode2.Error(nil)
			Expect(err.GetTrace()).To(ContainSubstring("creation_test.go"))
		})
	})

	Describe("Hierarchy", func() {
		It("should report codes of parents", func() {
			p := testErrorCode2.Error(nil)
			err := testErrorCode1.Error(p)
			Expect(err.HasCode(testErrorCode2)).To(BeTrue())
			Expect(err.IsCode(testErrorCode2)).To(BeFalse())
			Expect(err.CodeSlice()).To(Equal([]uint16{uint16(testErrorCode1), uint16(testErrorCode2)}))
		})

		It("should be compatible with standard errors helpers", func() {
			p := errors.New("leaf failure")
			err := testErrorCode1.Error(p)
			Expect(liberr.Is(err)).To(BeTrue())
			Expect(liberr.Has(err, testErrorCode1)).To(BeTrue())
			Expect(liberr.ContainsString(err, "leaf failure")).To(BeTrue())
		})

		It("should stop Map when asked", func() {
			err := testErrorCode1.Error(errors.New("one"), errors.New("two"))
			var seen int
			err.Map(func(e error) bool {
				seen++
				return seen < 2
			})
			Expect(seen).To(Equal(2))
		})
	})
})

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

package errors

import (
	"errors"
	"fmt"
	"path"
	"runtime"
	"strings"
)

type ers struct {
	c uint16
	e string
	p []Error
	t runtime.Frame
}

func (e *ers) is(err *ers) bool {
	if e == nil || err == nil {
		return false
	}

	if e.c != err.c {
		return false
	}

	return strings.EqualFold(e.e, err.e)
}

func (e *ers) IsCode(code CodeError) bool {
	return e.c == code.Uint16()
}

func (e *ers) HasCode(code CodeError) bool {
	if e.IsCode(code) {
		return true
	}

	for _, p := range e.p {
		if p == nil {
			continue
		}
		if p.HasCode(code) {
			return true
		}
	}

	return false
}

func (e *ers) GetCode() CodeError {
	return CodeError(e.c)
}

func (e *ers) Is(err error) bool {
	if err == nil {
		return false
	}

	var r *ers
	if errors.As(err, &r) {
		return e.is(r)
	}

	return strings.EqualFold(e.e, err.Error())
}

func (e *ers) HasParent() bool {
	return len(e.p) > 0
}

func (e *ers) GetParent(withMainError bool) []error {
	res := make([]error, 0, len(e.p)+1)

	if withMainError {
		res = append(res, e.GetError())
	}

	for _, p := range e.p {
		if p == nil {
			continue
		}
		res = append(res, p)
	}

	return res
}

func (e *ers) Map(fct FuncMap) bool {
	if fct == nil {
		return false
	}

	if !fct(e.GetError()) {
		return false
	}

	for _, p := range e.p {
		if p == nil {
			continue
		}
		if !fct(p) {
			return false
		}
	}

	return true
}

func (e *ers) ContainsString(s string) bool {
	if strings.Contains(e.e, s) {
		return true
	}

	for _, p := range e.p {
		if p == nil {
			continue
		}
		if p.ContainsString(s) {
			return true
		}
	}

	return false
}

func (e *ers) Add(parent ...error) {
	for _, v := range parent {
		if v == nil {
			continue
		}

		if p, ok := v.(Error); ok {
			e.p = append(e.p, p)
			continue
		}

		e.p = append(e.p, &ers{
			c: UnknownError.Uint16(),
			e: v.Error(),
			p: make([]Error, 0),
		})
	}
}

func (e *ers) SetParent(parent ...error) {
	e.p = make([]Error, 0, len(parent))
	e.Add(parent...)
}

func (e *ers) Code() uint16 {
	return e.c
}

func (e *ers) CodeSlice() []uint16 {
	res := make([]uint16, 0, len(e.p)+1)
	res = append(res, e.c)

	for _, p := range e.p {
		if p == nil {
			continue
		}
		res = append(res, p.Code())
	}

	return res
}

func (e *ers) CodeError(pattern string) string {
	if pattern == "" {
		pattern = DefaultPattern
	}
	return fmt.Sprintf(pattern, e.c, e.e)
}

func (e *ers) CodeErrorTrace(pattern string) string {
	if pattern == "" {
		pattern = DefaultPatternTrace
	}

	return fmt.Sprintf(pattern, e.c, e.e, path.Base(e.t.File), e.t.Line)
}

func (e *ers) Error() string {
	buf := make([]string, 0, len(e.p)+1)
	buf = append(buf, e.CodeError(""))

	for _, p := range e.p {
		if p == nil {
			continue
		}
		buf = append(buf, p.Error())
	}

	return strings.Join(buf, ", ")
}

func (e *ers) StringError() string {
	return e.e
}

func (e *ers) StringErrorSlice() []string {
	res := make([]string, 0, len(e.p)+1)
	res = append(res, e.e)

	for _, p := range e.p {
		if p == nil {
			continue
		}
		res = append(res, p.StringError())
	}

	return res
}

func (e *ers) GetError() error {
	return errors.New(e.e)
}

func (e *ers) Unwrap() []error {
	res := make([]error, 0, len(e.p))

	for _, p := range e.p {
		if p == nil {
			continue
		}
		res = append(res, p)
	}

	return res
}

func (e *ers) GetTrace() string {
	if e.t.File != "" {
		return fmt.Sprintf("%s:%d", path.Base(e.t.File), e.t.Line)
	}

	return ""
}

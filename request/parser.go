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

// Package request decodes HTTP/1.x request lines and a fixed set of
// recognized headers from an accumulated read buffer, without copying the
// header values.
// Header matching is case-sensitive; unrecognized header lines are
// skipped. The target is percent-decoded in place and dot-segment
// normalized against the document root.
package request

import (
	"bytes"

	liberr "github.com/nabbar/rockepoll/errors"
)

// Parse decodes the accumulated request bytes into a Request. The
// returned Request borrows from data; see Request for lifetime rules.
func Parse(data []byte) (*Request, liberr.Error) {
	var (
		r = &Request{}
		p = 0
	)

	m := methodCount
	for i := Method(0); i < methodCount; i++ {
		n := methodNames[i]
		if len(data)-p >= len(n) && string(data[p:p+len(n)]) == n {
			m = i
			p += len(n)
			break
		}
	}

	if m == methodCount {
		return nil, ErrorBadMethod.Error(nil)
	}

	r.m = m

	if p >= len(data) || data[p] != ' ' {
		return nil, ErrorBadRequestLine.Error(nil)
	}
	p++

	// leading / is consumed
	if p >= len(data) {
		return nil, ErrorBadRequestLine.Error(nil)
	}
	p++

	q := bytes.IndexByte(data[p:], ' ')
	if q < 0 {
		return nil, ErrorBadRequestLine.Error(nil)
	}

	if q >= MaxTargetSize {
		return nil, ErrorTargetTooLarge.Error(nil)
	}

	tgt, ok := normalizeTarget(string(decodeTarget(data[p : p+q])))
	if !ok {
		return nil, ErrorTargetEscape.Error(nil)
	}

	r.t = tgt
	p += q + 1

	const prefix = "HTTP/"
	if len(data)-p < len(prefix)+3 || string(data[p:p+len(prefix)]) != prefix {
		return nil, ErrorBadRequestLine.Error(nil)
	}
	p += len(prefix)

	switch {
	case data[p] == '1' && data[p+1] == '.' && data[p+2] == '0':
		r.v = Version10
	case data[p] == '1' && data[p+1] == '.' && data[p+2] == '1':
		r.v = Version11
	case data[p] == '2' && data[p+1] == '.' && data[p+2] == '0':
		r.v = Version20
	default:
		return nil, ErrorBadVersion.Error(nil)
	}
	p += 3

	if len(data)-p < 2 || data[p] != '\r' || data[p+1] != '\n' {
		return nil, ErrorBadRequestLine.Error(nil)
	}
	p += 2

	for {
		if len(data)-p >= 2 && data[p] == '\r' && data[p+1] == '\n' {
			break
		}

		if p >= len(data) {
			return nil, ErrorTruncatedHeaders.Error(nil)
		}

		h := HeaderCount
		for i := Header(0); i < HeaderCount; i++ {
			n := headerNames[i]
			if len(data)-p >= len(n) && string(data[p:p+len(n)]) == n {
				h = i
				p += len(n)
				break
			}
		}

		if h == HeaderCount {
			cr := bytes.IndexByte(data[p:], '\r')
			if cr < 0 {
				return nil, ErrorTruncatedHeaders.Error(nil)
			}

			p += cr + 2
			if p > len(data) {
				return nil, ErrorTruncatedHeaders.Error(nil)
			}

			continue
		}

		// a single colon must follow the field name
		if p >= len(data) || data[p] != ':' {
			return nil, ErrorTruncatedHeaders.Error(nil)
		}
		p++

		for p < len(data) && (data[p] == ' ' || data[p] == '\t') {
			p++
		}

		cr := bytes.IndexByte(data[p:], '\r')
		if cr < 0 {
			return nil, ErrorTruncatedHeaders.Error(nil)
		}

		r.h[h] = data[p : p+cr]

		p += cr + 2
		if p > len(data) {
			return nil, ErrorTruncatedHeaders.Error(nil)
		}
	}

	return r, nil
}

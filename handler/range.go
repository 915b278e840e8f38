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

package handler

import "bytes"

// byteRange is the resolved range of one response.
type byteRange struct {
	lower  int64
	upper  int64
	length int64
	status int
}

var rangePrefix = []byte("bytes=")

// parseRange resolves a Range header value against the resource size.
// Absent header: the whole resource, status 200. Malformed syntax
// (missing "bytes=" or missing "-") maps to 400. A missing bound
// defaults to the resource edge; the upper bound is clamped to size-1,
// and a range whose lower bound then exceeds its upper bound maps to
// 416. Non-digit bound characters read as zero,
// like the original strtoull-based parser.
func parseRange(value []byte, size int64) byteRange {
	r := byteRange{
		lower:  0,
		upper:  size - 1,
		length: size,
		status: StatusOK,
	}

	if value == nil {
		return r
	}

	if !bytes.HasPrefix(value, rangePrefix) {
		r.status = StatusBadRequest
		return r
	}

	value = value[len(rangePrefix):]

	dash := bytes.IndexByte(value, '-')
	if dash < 0 {
		r.status = StatusBadRequest
		return r
	}

	if low := value[:dash]; len(low) > 0 {
		r.lower = parseUint(low)
	}

	if up := value[dash+1:]; len(up) > 0 {
		r.upper = parseUint(up)
	}

	if r.upper > size-1 {
		r.upper = size - 1
	}

	if r.lower > r.upper {
		r.status = StatusRangeNotSatisfiable
		return r
	}

	r.length = r.upper - r.lower + 1
	r.status = StatusPartialContent

	return r
}

// parseUint reads the leading decimal digits of b, stopping at the
// first non-digit.
func parseUint(b []byte) int64 {
	var v int64

	for _, c := range b {
		if c < '0' || c > '9' {
			break
		}
		v = v*10 + int64(c-'0')
	}

	return v
}

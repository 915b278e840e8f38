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

package request

import "strings"

var hexDigitTbl = func() [256]byte {
	var t [256]byte
	for c := byte('0'); c <= '9'; c++ {
		t[c] = c - '0'
	}
	for c := byte('a'); c <= 'f'; c++ {
		t[c] = c - 'a' + 10
	}
	for c := byte('A'); c <= 'F'; c++ {
		t[c] = c - 'A' + 10
	}
	return t
}()

// decodeTarget percent-decodes the raw target in place: two hex digits
// become one byte, '+' becomes space, anything else is copied. A '%'
// with fewer than two bytes left is copied literally.
func decodeTarget(b []byte) []byte {
	d := b[:0]

	for i := 0; i < len(b); i++ {
		switch b[i] {
		case '%':
			if i+2 < len(b) {
				d = append(d, hexDigitTbl[b[i+1]]<<4|hexDigitTbl[b[i+2]])
				i += 2
			} else {
				d = append(d, b[i])
			}
		case '+':
			d = append(d, ' ')
		default:
			d = append(d, b[i])
		}
	}

	return d
}

// normalizeTarget removes "." and ".." segments against the decoded
// path. A path that would traverse above the document root is refused.
func normalizeTarget(s string) (string, bool) {
	if s == "" {
		return "", true
	}

	seg := strings.Split(s, "/")
	out := make([]string, 0, len(seg))

	for _, v := range seg {
		switch v {
		case "", ".":
		case "..":
			if len(out) == 0 {
				return "", false
			}
			out = out[:len(out)-1]
		default:
			out = append(out, v)
		}
	}

	return strings.Join(out, "/"), true
}

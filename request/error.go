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

import liberr "github.com/nabbar/rockepoll/errors"

const (
	ErrorBadMethod liberr.CodeError = iota + liberr.MinPkgRequest
	ErrorBadRequestLine
	ErrorBadVersion
	ErrorTargetTooLarge
	ErrorTargetEscape
	ErrorTruncatedHeaders
)

func init() {
	liberr.RegisterIdFctMessage(ErrorBadMethod, getMessage)
}

func getMessage(code liberr.CodeError) (message string) {
	switch code {
	case ErrorBadMethod:
		return "request method is not supported"
	case ErrorBadRequestLine:
		return "request line is malformed"
	case ErrorBadVersion:
		return "request version token is out of range"
	case ErrorTargetTooLarge:
		return "request target exceeds the allowed size"
	case ErrorTargetEscape:
		return "request target escapes the document root"
	case ErrorTruncatedHeaders:
		return "request headers are malformed or truncated"
	}

	return liberr.NullMessage
}

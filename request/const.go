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

// MaxTargetSize bounds the raw request target, decoded in place.
const MaxTargetSize = 4096

// Method is the request method of a parsed request.
type Method uint8

const (
	MethodGet Method = iota
	MethodHead
	MethodPost
	MethodPatch
	MethodDelete
	MethodOptions
	methodCount
)

var methodNames = [methodCount]string{
	MethodGet:     "GET",
	MethodHead:    "HEAD",
	MethodPost:    "POST",
	MethodPatch:   "PATCH",
	MethodDelete:  "DELETE",
	MethodOptions: "OPTIONS",
}

// String returns the wire name of the method.
func (m Method) String() string {
	if int(m) < len(methodNames) {
		return methodNames[m]
	}
	return ""
}

// Version is the protocol version of a parsed request.
type Version uint8

const (
	Version10 Version = iota
	Version11
	Version20
)

// String returns the wire token of the version.
func (v Version) String() string {
	switch v {
	case Version10:
		return "1.0"
	case Version11:
		return "1.1"
	case Version20:
		return "2.0"
	}
	return ""
}

// Header indexes the recognized request headers. Unrecognized headers
// are skipped during parsing.
type Header uint8

const (
	HeaderRange Header = iota
	HeaderIfMatch
	HeaderConnection
	HeaderUserAgent
	HeaderAcceptEncoding
	HeaderCount
)

var headerNames = [HeaderCount]string{
	HeaderRange:          "Range",
	HeaderIfMatch:        "If-Match",
	HeaderConnection:     "Connection",
	HeaderUserAgent:      "User-Agent",
	HeaderAcceptEncoding: "Accept-Encoding",
}

// String returns the wire name of the header.
func (h Header) String() string {
	if int(h) < len(headerNames) {
		return headerNames[h]
	}
	return ""
}

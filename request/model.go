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

// Request is a parsed request. The header values are views into the
// read buffer handed to Parse: they stay valid only as long as that
// buffer does. Consumers must finish with the Request before the buffer
// is released. The target is decoded in place in that buffer, then
// copied into a string owned by the Request.
type Request struct {
	m Method
	v Version
	t string
	h [HeaderCount][]byte
}

// Method returns the parsed request method.
func (r *Request) Method() Method {
	return r.m
}

// Version returns the parsed protocol version.
func (r *Request) Version() Version {
	return r.v
}

// Target returns the decoded, dot-segment normalized target path,
// relative to the document root. An empty target addresses the root.
func (r *Request) Target() string {
	return r.t
}

// Header returns the raw value of a recognized header, or nil when the
// header was absent from the request.
func (r *Request) Header(h Header) []byte {
	if h < HeaderCount {
		return r.h[h]
	}
	return nil
}

// HasHeader reports whether a recognized header was present.
func (r *Request) HasHeader(h Header) bool {
	return h < HeaderCount && r.h[h] != nil
}

// Line rebuilds the request line for logging purposes.
func (r *Request) Line() string {
	return r.m.String() + " /" + r.t + " HTTP/" + r.v.String()
}

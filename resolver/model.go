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

package resolver

// Status classifies the outcome of a resolution.
type Status uint8

const (
	// Exists means the target resolved to an open descriptor.
	Exists Status = iota
	// Forbidden means the target exists but may not be served.
	Forbidden
	// NotFound means the target does not resolve to a file.
	NotFound
	// InternalError means the target could not be inspected.
	InternalError
)

// Meta describes a resolved file. The descriptor is owned by the
// caller once Resolve returns Exists, including the directory case.
type Meta struct {
	fd    int
	dir   bool
	inode uint64
	size  int64
	mime  string
	etag  string
}

// Fd returns the open read-only, non-blocking file descriptor.
func (m *Meta) Fd() int {
	return m.fd
}

// IsDir reports whether the resolution ended on a directory (the index
// fallback was itself a directory).
func (m *Meta) IsDir() bool {
	return m.dir
}

// Inode returns the inode number of the resolved file.
func (m *Meta) Inode() uint64 {
	return m.inode
}

// Size returns the byte size of the resolved file.
func (m *Meta) Size() int64 {
	return m.size
}

// MimeType returns the MIME string selected by extension.
func (m *Meta) MimeType() string {
	return m.mime
}

// ETag returns the unquoted entity tag, "<mtime_seconds>-<size>".
func (m *Meta) ETag() string {
	return m.etag
}

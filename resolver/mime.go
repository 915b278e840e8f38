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

import "strings"

// DefaultMimeType is served when no extension matches.
const DefaultMimeType = "application/octet-stream"

var mimes = []struct {
	ext string
	typ string
}{
	{"xml", "application/xml; charset=utf-8"},
	{"xhtml", "application/xhtml+xml; charset=utf-8"},
	{"html", "text/html; charset=utf-8"},
	{"htm", "text/html; charset=utf-8"},
	{"css", "text/css; charset=utf-8"},
	{"txt", "text/plain; charset=utf-8"},
	{"vtt", "text/plain; charset=utf-8"},
	{"md", "text/plain; charset=utf-8"},
	{"c", "text/plain; charset=utf-8"},
	{"h", "text/plain; charset=utf-8"},
	{"gz", "application/x-gtar"},
	{"tar", "application/tar"},
	{"pdf", "application/pdf"},
	{"png", "image/png"},
	{"gif", "image/gif"},
	{"jpeg", "image/jpg"},
	{"jpg", "image/jpg"},
	{"iso", "application/x-iso9660-image"},
	{"webp", "image/webp"},
	{"svg", "image/svg+xml; charset=utf-8"},
	{"flac", "audio/flac"},
	{"mp3", "audio/mpeg"},
	{"ogg", "audio/ogg"},
	{"mp4", "video/mp4"},
	{"ogv", "video/ogg"},
	{"webm", "video/webm"},
}

// MimeType selects a MIME string by file extension, scanning the static
// table. Paths without extension, or whose only dot starts the name,
// get DefaultMimeType.
func MimeType(path string) string {
	dot := strings.LastIndexByte(path, '.')
	if dot <= 0 {
		return DefaultMimeType
	}

	if slash := strings.LastIndexByte(path, '/'); dot < slash+1 {
		return DefaultMimeType
	} else if dot == slash+1 {
		return DefaultMimeType
	}

	ext := path[dot+1:]

	for _, m := range mimes {
		if m.ext == ext {
			return m.typ
		}
	}

	return DefaultMimeType
}

//go:build linux

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

// Package resolver maps a normalized request target to an open file
// descriptor with its metadata: size, inode, MIME type and entity tag.
// The process has already chdir'ed into the document root; targets are
// opened relative to it and never contain dot segments (the parser
// removed them).
package resolver

import (
	"errors"
	"strconv"

	"golang.org/x/sys/unix"
)

// IndexPage is appended once when the target resolves to a directory.
const IndexPage = "index.html"

// Resolve opens the given normalized target. An empty target addresses
// the document root itself. When the target is a directory, one level
// of index fallback is attempted; a directory index that is itself a
// directory is returned as Exists with IsDir set, descriptor open.
func Resolve(target string) (*Meta, Status) {
	if target == "" {
		target = "."
	}

	var (
		path    = target
		indexed bool
	)

	for {
		fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK|unix.O_LARGEFILE, 0)
		if err != nil {
			if errors.Is(err, unix.EACCES) {
				return nil, Forbidden
			}
			return nil, NotFound
		}

		var st unix.Stat_t
		if err = unix.Fstat(fd, &st); err != nil {
			_ = unix.Close(fd)
			return nil, InternalError
		}

		dir := st.Mode&unix.S_IFMT == unix.S_IFDIR

		if !dir && st.Mode&unix.S_IFMT != unix.S_IFREG {
			_ = unix.Close(fd)
			return nil, Forbidden
		}

		if dir && !indexed {
			_ = unix.Close(fd)
			path = path + "/" + IndexPage
			indexed = true
			continue
		}

		return &Meta{
			fd:    fd,
			dir:   dir,
			inode: st.Ino,
			size:  st.Size,
			mime:  MimeType(path),
			etag:  strconv.FormatInt(st.Mtim.Sec, 10) + "-" + strconv.FormatInt(st.Size, 10),
		}, Exists
	}
}

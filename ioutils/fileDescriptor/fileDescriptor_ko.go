//go:build windows

/*
 * MIT License
 *
 * Copyright (c) 2019 Nicolas JUHEL
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
 */

package fileDescriptor

const (
	// winDefaultMaxStdio is the default Windows C runtime limit for open files.
	winDefaultMaxStdio = 512

	// winHardLimitMaxStdio is the maximum limit supported by the Windows C runtime.
	winHardLimitMaxStdio = 8192
)

// The epoll core never runs on Windows; this variant only keeps the
// package buildable for tooling.
func systemFileDescriptor(newValue int) (current int, max int, err error) {
	if newValue > winDefaultMaxStdio {
		if newValue > winHardLimitMaxStdio {
			newValue = winHardLimitMaxStdio
		}
		return newValue, winHardLimitMaxStdio, nil
	}

	return winDefaultMaxStdio, winHardLimitMaxStdio, nil
}

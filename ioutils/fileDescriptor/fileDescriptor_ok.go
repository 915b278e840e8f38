//go:build !windows

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

import (
	"math"

	"golang.org/x/sys/unix"
)

func systemFileDescriptor(newValue int) (current int, max int, err error) {
	var rLimit unix.Rlimit

	if err = unix.Getrlimit(unix.RLIMIT_NOFILE, &rLimit); err != nil {
		return 0, 0, err
	}

	cur := rlimToInt(rLimit.Cur)
	hrd := rlimToInt(rLimit.Max)

	if newValue <= 0 || newValue <= cur {
		return cur, hrd, nil
	}

	rLimit.Cur = uint64(newValue)
	if rLimit.Cur > rLimit.Max {
		rLimit.Cur = rLimit.Max
	}

	if err = unix.Setrlimit(unix.RLIMIT_NOFILE, &rLimit); err != nil {
		return cur, hrd, err
	}

	return SystemFileDescriptor(0)
}

func rlimToInt(v uint64) int {
	if v > uint64(math.MaxInt) {
		return math.MaxInt
	}

	return int(v)
}

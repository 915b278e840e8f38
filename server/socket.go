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

package server

import (
	"net"

	liberr "github.com/nabbar/rockepoll/errors"
	"golang.org/x/sys/unix"
)

// newListenSocket creates a non-blocking IPv4 listen socket bound to
// addr:port. With reusePort set, several workers may bind the same
// address and the kernel spreads accepted peers between them.
func newListenSocket(addr string, port int, reusePort bool) (int, liberr.Error) {
	ip := net.ParseIP(addr)
	if ip == nil || ip.To4() == nil {
		return -1, ErrorListenAddress.Error(nil)
	}

	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_STREAM|unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		return -1, ErrorSocketCreate.Error(err)
	}

	if err = unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		_ = unix.Close(fd)
		return -1, ErrorSocketOption.Error(err)
	}

	if reusePort {
		if err = unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEPORT, 1); err != nil {
			_ = unix.Close(fd)
			return -1, ErrorSocketOption.Error(err)
		}
	}

	sa := &unix.SockaddrInet4{Port: port}
	copy(sa.Addr[:], ip.To4())

	if err = unix.Bind(fd, sa); err != nil {
		_ = unix.Close(fd)
		return -1, ErrorSocketBind.Error(err)
	}

	if err = unix.Listen(fd, unix.SOMAXCONN); err != nil {
		_ = unix.Close(fd)
		return -1, ErrorSocketListen.Error(err)
	}

	return fd, nil
}

// peerIP returns the presentation form of an accepted peer address.
func peerIP(sa unix.Sockaddr) string {
	switch a := sa.(type) {
	case *unix.SockaddrInet4:
		return net.IP(a.Addr[:]).String()
	case *unix.SockaddrInet6:
		return net.IP(a.Addr[:]).String()
	}

	return ""
}

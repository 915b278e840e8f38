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

import liberr "github.com/nabbar/rockepoll/errors"

const (
	ErrorParamsEmpty liberr.CodeError = iota + liberr.MinPkgServer
	ErrorValidatorError
	ErrorRootDirInvalid
	ErrorSocketCreate
	ErrorSocketOption
	ErrorSocketBind
	ErrorSocketListen
	ErrorListenAddress
	ErrorChdir
	ErrorChroot
	ErrorPipeCreate
	ErrorRunning
)

func init() {
	liberr.RegisterIdFctMessage(ErrorParamsEmpty, getMessage)
}

func getMessage(code liberr.CodeError) (message string) {
	switch code {
	case ErrorParamsEmpty:
		return "given parameters is empty"
	case ErrorValidatorError:
		return "config server seems to be not valid"
	case ErrorRootDirInvalid:
		return "document root is not an existing directory"
	case ErrorSocketCreate:
		return "cannot create the listen socket"
	case ErrorSocketOption:
		return "cannot set option on socket"
	case ErrorSocketBind:
		return "cannot bind the listen socket"
	case ErrorSocketListen:
		return "cannot listen on the bound socket"
	case ErrorListenAddress:
		return "listen address is not a valid IPv4 address"
	case ErrorChdir:
		return "cannot change into the document root"
	case ErrorChroot:
		return "cannot chroot into the document root"
	case ErrorPipeCreate:
		return "cannot create the shutdown wake pipe"
	case ErrorRunning:
		return "server is still running"
	}

	return liberr.NullMessage
}

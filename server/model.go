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
	libatm "github.com/nabbar/rockepoll/atomic"
	liblog "github.com/nabbar/rockepoll/logger"
	loglvl "github.com/nabbar/rockepoll/logger/level"
)

type srv struct {
	l liblog.FuncLog
	c libatm.Value[Config]
	r libatm.Value[bool]
}

func (s *srv) GetConfig() Config {
	return s.c.Load()
}

func (s *srv) IsRunning() bool {
	return s.r.Load()
}

func (s *srv) logger() liblog.Logger {
	if s.l != nil {
		return s.l()
	}

	return nil
}

func (s *srv) logInfo(message string, args ...interface{}) {
	if l := s.logger(); l != nil {
		l.Info(message, nil, args...)
	}
}

func (s *srv) logErr(message string, err ...error) bool {
	if l := s.logger(); l != nil {
		return l.CheckError(loglvl.ErrorLevel, message, err...)
	}

	for _, e := range err {
		if e != nil {
			return true
		}
	}

	return false
}

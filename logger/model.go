/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
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

package logger

import (
	"context"
	"fmt"
	"sync"
	"time"

	libatm "github.com/nabbar/rockepoll/atomic"
	logcfg "github.com/nabbar/rockepoll/logger/config"
	loglvl "github.com/nabbar/rockepoll/logger/level"
	"github.com/sirupsen/logrus"
)

type lgr struct {
	m sync.Mutex
	x context.Context
	l *logrus.Logger
	c []func() error
	v libatm.Value[loglvl.Level]
	o libatm.Value[logcfg.Options]
}

func (o *lgr) SetLevel(lvl loglvl.Level) {
	o.v.Store(lvl)

	o.m.Lock()
	defer o.m.Unlock()

	if o.l != nil {
		o.l.SetLevel(lvl.Logrus())
	}
}

func (o *lgr) GetLevel() loglvl.Level {
	return o.v.Load()
}

func (o *lgr) GetOptions() *logcfg.Options {
	opt := o.o.Load()
	return &opt
}

func (o *lgr) getLogrus() *logrus.Logger {
	o.m.Lock()
	defer o.m.Unlock()

	return o.l
}

func (o *lgr) Debug(message string, data interface{}, args ...interface{}) {
	o.log(loglvl.DebugLevel, message, data, args...)
}

func (o *lgr) Info(message string, data interface{}, args ...interface{}) {
	o.log(loglvl.InfoLevel, message, data, args...)
}

func (o *lgr) Warning(message string, data interface{}, args ...interface{}) {
	o.log(loglvl.WarnLevel, message, data, args...)
}

func (o *lgr) Error(message string, data interface{}, args ...interface{}) {
	o.log(loglvl.ErrorLevel, message, data, args...)
}

func (o *lgr) Fatal(message string, data interface{}, args ...interface{}) {
	o.log(loglvl.FatalLevel, message, data, args...)
}

func (o *lgr) CheckError(lvl loglvl.Level, message string, err ...error) bool {
	var found bool

	for _, e := range err {
		if e == nil {
			continue
		}

		o.log(lvl, message, e)
		found = true
	}

	return found
}

func (o *lgr) log(lvl loglvl.Level, message string, data interface{}, args ...interface{}) {
	cur := o.GetLevel()

	if cur == loglvl.NilLevel || lvl > cur {
		return
	}

	l := o.getLogrus()
	if l == nil {
		return
	}

	if len(args) > 0 {
		message = fmt.Sprintf(message, args...)
	}

	e := l.WithTime(time.Now())

	if data != nil {
		e = e.WithField("data", data)
	}

	switch lvl {
	case loglvl.PanicLevel:
		e.Panic(message)
	case loglvl.FatalLevel:
		e.Fatal(message)
	case loglvl.ErrorLevel:
		e.Error(message)
	case loglvl.WarnLevel:
		e.Warning(message)
	case loglvl.InfoLevel:
		e.Info(message)
	case loglvl.DebugLevel:
		e.Debug(message)
	}
}

func (o *lgr) Close() error {
	o.m.Lock()
	defer o.m.Unlock()

	var err error

	for _, c := range o.c {
		if c == nil {
			continue
		}
		if e := c(); e != nil {
			err = e
		}
	}

	o.c = nil

	return err
}

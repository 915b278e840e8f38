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

// Package logger provides a logrus-backed structured logger behind a
// small interface, with level filtering and stdout/stderr/file sinks
// driven by a config.Options structure. It carries the server
// diagnostics; the access log has its own dedicated sink.
package logger

import (
	"context"
	"io"
	"sync"

	libatm "github.com/nabbar/rockepoll/atomic"
	logcfg "github.com/nabbar/rockepoll/logger/config"
	loglvl "github.com/nabbar/rockepoll/logger/level"
	"github.com/sirupsen/logrus"
)

// FuncLog is a function type that returns a Logger instance, used for
// dependency injection and lazy initialization.
type FuncLog func() Logger

// Logger is the main interface for structured logging operations.
type Logger interface {
	io.Closer

	// SetLevel changes the minimal level of logged messages.
	SetLevel(lvl loglvl.Level)

	// GetLevel returns the minimal level of logged messages.
	GetLevel() loglvl.Level

	// SetOptions sets or updates the sink options of the logger.
	SetOptions(opt *logcfg.Options) error

	// GetOptions returns the current sink options of the logger.
	GetOptions() *logcfg.Options

	// Debug adds an entry with DebugLevel to the logger.
	Debug(message string, data interface{}, args ...interface{})

	// Info adds an entry with InfoLevel to the logger.
	Info(message string, data interface{}, args ...interface{})

	// Warning adds an entry with WarnLevel to the logger.
	Warning(message string, data interface{}, args ...interface{})

	// Error adds an entry with ErrorLevel to the logger.
	Error(message string, data interface{}, args ...interface{})

	// Fatal adds an entry with FatalLevel to the logger, then breaks the
	// process (os.Exit).
	Fatal(message string, data interface{}, args ...interface{})

	// CheckError logs the given errors with the given level when at least
	// one of them is non-nil, reporting whether it logged.
	CheckError(lvl loglvl.Level, message string, err ...error) bool
}

// New returns a new Logger bound to the given context. The logger is
// usable immediately at InfoLevel, with warning, info and debug entries
// on stdout and error-level entries on stderr; call SetOptions to
// reconfigure sinks.
func New(ctx context.Context) Logger {
	if ctx == nil {
		ctx = context.Background()
	}

	l := &lgr{
		m: sync.Mutex{},
		x: ctx,
		v: libatm.NewValueDefault[loglvl.Level](loglvl.InfoLevel, loglvl.InfoLevel),
		o: libatm.NewValue[logcfg.Options](),
	}

	l.l = l.newLogrus(&logcfg.Options{})

	return l
}

// defaultFormatter returns the logrus formatter applied to every sink.
func defaultFormatter(disableTimestamp, disableColor bool) logrus.Formatter {
	return &logrus.TextFormatter{
		DisableTimestamp: disableTimestamp,
		DisableColors:    disableColor,
		FullTimestamp:    true,
	}
}

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
	"io"
	"os"

	colorable "github.com/mattn/go-colorable"
	logcfg "github.com/nabbar/rockepoll/logger/config"
	"github.com/sirupsen/logrus"
)

// sinkHook forwards formatted entries of the given levels to one writer.
// Every sink (stdout, stderr, file) is a hook; the logrus root output is
// discarded.
type sinkHook struct {
	w io.Writer
	l []logrus.Level
	f logrus.Formatter
}

func (h *sinkHook) Levels() []logrus.Level {
	return h.l
}

func (h *sinkHook) Fire(e *logrus.Entry) error {
	p, err := h.f.Format(e)
	if err != nil {
		return err
	}

	_, err = h.w.Write(p)
	return err
}

func levelsUpTo(max logrus.Level) []logrus.Level {
	res := make([]logrus.Level, 0, int(max)+1)
	for i := logrus.PanicLevel; i <= max; i++ {
		res = append(res, i)
	}
	return res
}

func (o *lgr) newLogrus(opt *logcfg.Options) *logrus.Logger {
	l := logrus.New()
	l.SetLevel(o.GetLevel().Logrus())
	l.SetOutput(io.Discard)

	std := opt.Stdout
	if std == nil {
		std = &logcfg.OptionsStd{}
	}

	if !std.DisableStandard {
		fmtter := defaultFormatter(std.DisableTimestamp, std.DisableColor)

		if std.DisableStderr {
			l.AddHook(&sinkHook{
				w: colorable.NewColorableStdout(),
				l: levelsUpTo(logrus.DebugLevel),
				f: fmtter,
			})
		} else {
			l.AddHook(&sinkHook{
				w: colorable.NewColorableStdout(),
				l: []logrus.Level{logrus.WarnLevel, logrus.InfoLevel, logrus.DebugLevel},
				f: fmtter,
			})
			l.AddHook(&sinkHook{
				w: colorable.NewColorableStderr(),
				l: levelsUpTo(logrus.ErrorLevel),
				f: fmtter,
			})
		}
	}

	return l
}

func (o *lgr) SetOptions(opt *logcfg.Options) error {
	if opt == nil {
		return ErrorParamsEmpty.Error(nil)
	}

	if err := opt.Validate(); err != nil {
		return ErrorValidateConfig.Error(err)
	}

	l := o.newLogrus(opt)

	var closers []func() error

	for _, f := range opt.LogFile {
		flags := os.O_WRONLY | os.O_APPEND
		if f.Create {
			flags |= os.O_CREATE
		}

		mode := f.FileMode
		if mode == 0 {
			mode = 0644
		}

		h, err := os.OpenFile(f.Filepath, flags, mode)
		if err != nil {
			for _, c := range closers {
				_ = c()
			}
			return ErrorFileOpen.Error(err)
		}

		closers = append(closers, h.Close)

		l.AddHook(&sinkHook{
			w: h,
			l: levelsUpTo(logrus.DebugLevel),
			f: defaultFormatter(f.DisableTimestamp, true),
		})
	}

	o.m.Lock()
	old := o.c
	o.l = l
	o.c = closers
	o.m.Unlock()

	for _, c := range old {
		if c != nil {
			_ = c()
		}
	}

	o.o.Store(opt.Clone())

	return nil
}

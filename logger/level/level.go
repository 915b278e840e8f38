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

// Package level defines the severity levels used by the logger package
// and their mapping to logrus levels.
package level

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// Level is the severity of a log entry.
type Level uint8

const (
	// PanicLevel level, highest level of severity.
	PanicLevel Level = iota
	// FatalLevel level. Logs and then calls os.Exit(1).
	FatalLevel
	// ErrorLevel level, used for errors that should definitely be noted.
	ErrorLevel
	// WarnLevel level, non-critical entries that deserve eyes.
	WarnLevel
	// InfoLevel level, general operational entries about what's going on.
	InfoLevel
	// DebugLevel level, usually only enabled when debugging.
	DebugLevel
	// NilLevel level, discards every entry.
	NilLevel
)

// Parse returns the Level matching the given string, defaulting to
// InfoLevel when unknown.
func Parse(l string) Level {
	switch strings.ToLower(l) {
	case "panic":
		return PanicLevel
	case "fatal":
		return FatalLevel
	case "error":
		return ErrorLevel
	case "warning", "warn":
		return WarnLevel
	case "info":
		return InfoLevel
	case "debug":
		return DebugLevel
	case "nil", "none":
		return NilLevel
	}

	return InfoLevel
}

// String returns the lowercase name of the level.
func (l Level) String() string {
	switch l {
	case PanicLevel:
		return "panic"
	case FatalLevel:
		return "fatal"
	case ErrorLevel:
		return "error"
	case WarnLevel:
		return "warning"
	case InfoLevel:
		return "info"
	case DebugLevel:
		return "debug"
	case NilLevel:
		return "nil"
	}

	return "unknown"
}

// Logrus returns the logrus level matching this level. NilLevel maps to
// PanicLevel as logrus has no discard level.
func (l Level) Logrus() logrus.Level {
	switch l {
	case PanicLevel, NilLevel:
		return logrus.PanicLevel
	case FatalLevel:
		return logrus.FatalLevel
	case ErrorLevel:
		return logrus.ErrorLevel
	case WarnLevel:
		return logrus.WarnLevel
	case InfoLevel:
		return logrus.InfoLevel
	case DebugLevel:
		return logrus.DebugLevel
	}

	return logrus.InfoLevel
}

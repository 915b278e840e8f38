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

// Package config holds the logger options structures, suitable for
// direct mapping from a configuration file.
package config

import (
	"os"

	libval "github.com/go-playground/validator/v10"
)

// OptionsStd groups the options for the standard output sink.
type OptionsStd struct {
	// DisableStandard disables the stdout/stderr sink entirely.
	DisableStandard bool `mapstructure:"disableStandard" json:"disableStandard" yaml:"disableStandard"`

	// DisableStderr routes error entries to stdout instead of stderr.
	DisableStderr bool `mapstructure:"disableStderr" json:"disableStderr" yaml:"disableStderr"`

	// DisableTimestamp removes the timestamp from entries.
	DisableTimestamp bool `mapstructure:"disableTimestamp" json:"disableTimestamp" yaml:"disableTimestamp"`

	// DisableColor disables color rendering on terminal output.
	DisableColor bool `mapstructure:"disableColor" json:"disableColor" yaml:"disableColor"`
}

// OptionsFile groups the options for one file sink.
type OptionsFile struct {
	// Filepath is the path of the log file.
	Filepath string `mapstructure:"filepath" json:"filepath" yaml:"filepath" validate:"required"`

	// Create allows creating the file when missing.
	Create bool `mapstructure:"create" json:"create" yaml:"create"`

	// FileMode is the permission applied when creating the file.
	FileMode os.FileMode `mapstructure:"fileMode" json:"fileMode" yaml:"fileMode"`

	// DisableTimestamp removes the timestamp from entries.
	DisableTimestamp bool `mapstructure:"disableTimestamp" json:"disableTimestamp" yaml:"disableTimestamp"`
}

// Options is the full logger configuration.
type Options struct {
	// Stdout configures the standard output sink. Nil enables the sink
	// with defaults.
	Stdout *OptionsStd `mapstructure:"stdout" json:"stdout" yaml:"stdout"`

	// LogFile configures any number of file sinks.
	LogFile []OptionsFile `mapstructure:"logFile" json:"logFile" yaml:"logFile" validate:"omitempty,dive"`
}

// Validate checks the options coherence and returns all violations found.
func (o *Options) Validate() error {
	err := libval.New().Struct(o)

	if e, k := err.(*libval.InvalidValidationError); k && e != nil {
		return err
	}

	if e, k := err.(libval.ValidationErrors); k && len(e) > 0 {
		return err
	}

	return nil
}

// Clone returns a deep copy of the options.
func (o *Options) Clone() Options {
	var c = Options{}

	if o.Stdout != nil {
		s := *o.Stdout
		c.Stdout = &s
	}

	if len(o.LogFile) > 0 {
		c.LogFile = make([]OptionsFile, len(o.LogFile))
		copy(c.LogFile, o.LogFile)
	}

	return c
}

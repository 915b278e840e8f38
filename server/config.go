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
	"os"

	libval "github.com/go-playground/validator/v10"
)

const (
	// DefaultListen is the bind address used when none is given.
	DefaultListen = "127.0.0.1"

	// DefaultPort is the listen port for unprivileged processes.
	DefaultPort = 7887

	// DefaultPortRoot is the listen port when running as root.
	DefaultPortRoot = 80

	// MaxWorkers caps the worker fan-out.
	MaxWorkers = 32
)

// Config is the process-wide server configuration. It is immutable once
// the server starts listening.
type Config struct {
	// Listen is the bind address, in IPv4 presentation form.
	Listen string `mapstructure:"listen" json:"listen" yaml:"listen" validate:"required,ip"`

	// Port is the listen TCP port.
	Port int `mapstructure:"port" json:"port" yaml:"port" validate:"gte=1,lte=65535"`

	// RootDir is the document root; the process chdirs into it before
	// serving.
	RootDir string `mapstructure:"rootDir" json:"rootDir" yaml:"rootDir" validate:"required"`

	// KeepAlive enables keep-alive by default for accepted connections.
	KeepAlive bool `mapstructure:"keepAlive" json:"keepAlive" yaml:"keepAlive"`

	// Chroot confines the process into the document root before serving.
	Chroot bool `mapstructure:"chroot" json:"chroot" yaml:"chroot"`

	// Quiet suppresses the access-log output.
	Quiet bool `mapstructure:"quiet" json:"quiet" yaml:"quiet"`

	// Workers is the worker fan-out; each worker owns a listen socket
	// (port reuse), a readiness descriptor and its connections. Zero
	// means one worker.
	Workers int `mapstructure:"workers" json:"workers" yaml:"workers" validate:"gte=0,lte=32"`
}

// DefaultConfig returns a configuration serving the given document root
// with the package defaults. The port depends on the effective uid.
func DefaultConfig(rootDir string) Config {
	p := DefaultPort
	if os.Geteuid() == 0 {
		p = DefaultPortRoot
	}

	return Config{
		Listen:  DefaultListen,
		Port:    p,
		RootDir: rootDir,
	}
}

// Validate checks the configuration coherence: field constraints plus
// the document root being an existing directory.
func (c Config) Validate() error {
	err := ErrorValidatorError.Error(nil)

	if er := libval.New().Struct(c); er != nil {
		if e, k := er.(*libval.InvalidValidationError); k && e != nil {
			err.Add(er)
		}

		if e, k := er.(libval.ValidationErrors); k {
			for _, v := range e {
				err.Add(v)
			}
		}
	}

	if c.RootDir != "" {
		if inf, er := os.Stat(c.RootDir); er != nil {
			err.Add(ErrorRootDirInvalid.Error(er))
		} else if !inf.IsDir() {
			err.Add(ErrorRootDirInvalid.Error(nil))
		}
	}

	if !err.HasParent() {
		err = nil
	}

	return err
}

// NbWorkers returns the effective worker count, at least one, at most
// MaxWorkers.
func (c Config) NbWorkers() int {
	if c.Workers < 1 {
		return 1
	}

	if c.Workers > MaxWorkers {
		return MaxWorkers
	}

	return c.Workers
}

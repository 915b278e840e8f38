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

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	libfdc "github.com/nabbar/rockepoll/ioutils/fileDescriptor"
	liblog "github.com/nabbar/rockepoll/logger"
	loglvl "github.com/nabbar/rockepoll/logger/level"
	libsrv "github.com/nabbar/rockepoll/server"
)

var (
	cfgFile   string
	flgAddr   string
	flgPort   int
	flgKeep   bool
	flgChroot bool
	flgQuiet  bool
	flgThread int
	flgLevel  string

	rootCmd = &cobra.Command{
		Use:   "rockepoll <document-root>",
		Short: "Static-file HTTP/1.x origin server over an edge-triggered epoll event loop",
		Long: `rockepoll serves regular files beneath a document root over HTTP/1.0
and HTTP/1.1, with byte ranges, keep-alive and zero-copy sendfile
delivery. The process chdirs (and optionally chroots) into the
document root before accepting connections.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          run,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.Flags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.rockepoll.yaml)")
	rootCmd.Flags().StringVar(&flgAddr, "addr", libsrv.DefaultListen, "listen address")
	rootCmd.Flags().IntVar(&flgPort, "port", 0, "listen port (default 7887, 80 when running as root)")
	rootCmd.Flags().BoolVar(&flgKeep, "keep-alive", false, "enable keep-alive by default for accepted connections")
	rootCmd.Flags().BoolVar(&flgChroot, "chroot", false, "chroot into the document root before serving")
	rootCmd.Flags().BoolVar(&flgQuiet, "quiet", false, "suppress access-log output")
	rootCmd.Flags().IntVar(&flgThread, "threads", 0, "worker count, capped at 32")
	rootCmd.Flags().StringVar(&flgLevel, "log-level", loglvl.InfoLevel.String(), "diagnostics log level")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			return
		}

		viper.AddConfigPath(home)
		viper.SetConfigName(".rockepoll")
		viper.SetConfigType("yaml")
	}

	// a missing config file is not an error
	_ = viper.ReadInConfig()
}

// buildConfig merges, by increasing precedence: defaults, config file,
// command line flags.
func buildConfig(cmd *cobra.Command, rootDir string) libsrv.Config {
	cfg := libsrv.DefaultConfig(rootDir)

	if viper.IsSet("listen") {
		cfg.Listen = viper.GetString("listen")
	}
	if viper.IsSet("port") {
		cfg.Port = viper.GetInt("port")
	}
	if viper.IsSet("keepAlive") {
		cfg.KeepAlive = viper.GetBool("keepAlive")
	}
	if viper.IsSet("chroot") {
		cfg.Chroot = viper.GetBool("chroot")
	}
	if viper.IsSet("quiet") {
		cfg.Quiet = viper.GetBool("quiet")
	}
	if viper.IsSet("workers") {
		cfg.Workers = viper.GetInt("workers")
	}

	if cmd.Flags().Changed("addr") {
		cfg.Listen = flgAddr
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = flgPort
	}
	if cmd.Flags().Changed("keep-alive") {
		cfg.KeepAlive = flgKeep
	}
	if cmd.Flags().Changed("chroot") {
		cfg.Chroot = flgChroot
	}
	if cmd.Flags().Changed("quiet") {
		cfg.Quiet = flgQuiet
	}
	if cmd.Flags().Changed("threads") {
		cfg.Workers = flgThread
	}

	return cfg
}

func run(cmd *cobra.Command, args []string) error {
	// a send to a closed peer must surface as an ordinary error
	signal.Ignore(syscall.SIGPIPE)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := liblog.New(ctx)
	defer func() { _ = log.Close() }()

	log.SetLevel(loglvl.Parse(flgLevel))

	cfg := buildConfig(cmd, args[0])

	// raise the descriptor limit toward the hard bound so the registry
	// can track as many peers as the system allows
	if _, max, err := libfdc.SystemFileDescriptor(0); err == nil {
		if _, _, err = libfdc.SystemFileDescriptor(max); err != nil {
			log.Warning("cannot raise the file descriptor limit", err)
		}
	}

	srv, err := libsrv.New(cfg, func() liblog.Logger { return log })
	if err != nil {
		return err
	}

	if !cfg.Quiet {
		color.New(color.FgGreen).Printf("listening on http://%s:%d/\n", cfg.Listen, cfg.Port)
	}

	if err := srv.Listen(ctx); err != nil {
		return err
	}

	return nil
}

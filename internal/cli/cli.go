/*
 * cli.go, part of cycy.
 *
 * Copyright 2024 The cycy authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

//Package cli holds what the cycy commands share: exit codes, logging
//flags and error reporting.
package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/biosys/cycy/logging"
	"go.uber.org/zap"
)

const (
	ExitSuccess = 0
	ExitFailure = 1
	ExitUsage   = 2
)

//LogOptions are the values of the logging flags.
type LogOptions struct {
	Level  string
	Format string
}

//LogFlags registers -log-level and -log-format in fs.
func LogFlags(fs *flag.FlagSet) *LogOptions {
	o := new(LogOptions)
	fs.StringVar(&o.Level, "log-level", "info", "log level: debug, info, warn or error")
	fs.StringVar(&o.Format, "log-format", logging.Console, "log format: console or json")
	return o
}

//Logger builds the logger selected by the flags, exiting with ExitUsage if
//they are wrong.
func (o *LogOptions) Logger() *zap.Logger {
	l, err := logging.New(o.Level, o.Format)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitUsage)
	}
	return l
}

//SetUsage sets the usage message of the default flag set.
func SetUsage(args string) {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] %s\n\n", os.Args[0], args)
		flag.PrintDefaults()
	}
}

//Args parses the command line and checks the number of positional
//arguments, exiting with ExitUsage if it is not n.
func Args(n int) []string {
	flag.Parse()
	if flag.NArg() != n {
		fmt.Fprintf(os.Stderr, "Expected %d arguments. Got %d\n", n, flag.NArg())
		flag.Usage()
		os.Exit(ExitUsage)
	}
	return flag.Args()
}

//Fail prints err to stderr and exits with ExitFailure.
func Fail(logger *zap.Logger, err error) {
	if logger != nil {
		_ = logger.Sync()
	}
	fmt.Fprintln(os.Stderr, err)
	os.Exit(ExitFailure)
}

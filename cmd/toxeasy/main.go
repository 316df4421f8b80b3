/*
 * main.go, part of cycy.
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

/*
Toxeasy writes the 13C and 15N NOESY peak tables exported by CCPNMR as
XEASY peak lists (13C.peaks and 15N.peaks) for CYANA.

Usage:

	toxeasy [options] 13C.csv 15N.csv version outdir

version is the CYANA version, 2 or 3; it only changes the header of the
peak lists. The positions of the 13C table are written in the order F1, F3,
F2.
*/
package main

import (
	"flag"
	"os"
	"strconv"

	"github.com/biosys/cycy"
	"github.com/biosys/cycy/internal/cli"
	"github.com/biosys/cycy/xeasy"
)

func main() {
	logopts := cli.LogFlags(flag.CommandLine)
	cli.SetUsage("13C.csv 15N.csv version outdir")
	args := cli.Args(4)
	logger := logopts.Logger()
	version, err := strconv.Atoi(args[2])
	if err != nil {
		cli.Fail(logger, cycy.NewError(cycy.Unsupported, "", "version must be 2 or 3", true, err, "toxeasy"))
	}
	if _, err := xeasy.WriteFiles(args[0], args[1], version, args[3], logger); err != nil {
		cli.Fail(logger, err)
	}
	_ = logger.Sync()
	os.Exit(cli.ExitSuccess)
}

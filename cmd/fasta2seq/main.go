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
Fasta2seq writes the sequence listing (prot.seq) of a protein given in
one-letter code. Each line of the listing has the three-letter residue
type and the residue number, separated by a tab.

Usage:

	fasta2seq [options] start sequence output

start is the number of the first residue. White space in the sequence is
ignored; any letter that is not one of the 20 standard aminoacids is an
error.
*/
package main

import (
	"flag"
	"os"
	"strconv"

	"github.com/biosys/cycy"
	"github.com/biosys/cycy/internal/cli"
	"github.com/biosys/cycy/seqmap"
	"github.com/biosys/cycy/tabio"
	"go.uber.org/zap"
)

func main() {
	logopts := cli.LogFlags(flag.CommandLine)
	cli.SetUsage("start sequence output")
	args := cli.Args(3)
	logger := logopts.Logger()
	start, err := strconv.Atoi(args[0])
	if err != nil {
		cli.Fail(logger, cycy.NewError(cycy.Malformed, "", "start must be an integer", true, err, "fasta2seq"))
	}
	M, err := seqmap.FromOneLetter(args[1], start)
	if err != nil {
		cli.Fail(logger, err)
	}
	if err := tabio.WriteFile(args[2], M.WriteListing); err != nil {
		cli.Fail(logger, err)
	}
	logger.Info("sequence listing written", zap.String("file", args[2]), zap.Int("residues", M.Len()))
	_ = logger.Sync()
	os.Exit(cli.ExitSuccess)
}

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
Prot2cyana translates the CCPNMR atom names of a .prot intermediate into
CYANA names.

Usage:

	prot2cyana [options] name.prot prot.seq output

The residue type of each atom is found in the sequence listing. Atoms of
ALA, ARG, GLY, HIS, TRP, VAL, ILE and LEU are looked up in their residue
table of the library first, then in its GENERAL table; other atoms only in
GENERAL. Names not in the library are kept. The first three lines of the
input are copied unchanged.

The flags are:

	-library file
		JSON or YAML nomenclature library. Default:
		lib-ccpnmrV3_to_cyana.lib next to name.prot. A missing library is
		an error. "builtin" selects the small library built into
		prot2cyana.
*/
package main

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/biosys/cycy/internal/cli"
	"github.com/biosys/cycy/nomen"
	"github.com/biosys/cycy/pipeline"
	"github.com/biosys/cycy/seqmap"
)

func main() {
	logopts := cli.LogFlags(flag.CommandLine)
	library := flag.String("library", "", "nomenclature library")
	cli.SetUsage("name.prot prot.seq output")
	args := cli.Args(3)
	logger := logopts.Logger()

	if *library == "" {
		*library = filepath.Join(filepath.Dir(args[0]), pipeline.LibraryFile)
	}
	L, err := nomen.Open(*library)
	if err != nil {
		cli.Fail(logger, err)
	}
	M, _ := seqmap.Load(args[1], logger)
	if err := nomen.TranslateFile(L, M, args[0], args[2], logger); err != nil {
		cli.Fail(logger, err)
	}
	_ = logger.Sync()
	os.Exit(cli.ExitSuccess)
}

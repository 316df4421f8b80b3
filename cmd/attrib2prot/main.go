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
Attrib2prot deduplicates a chemical shift attribution table exported by
CCPNMR and writes the .prot intermediate used by prot2cyana.

Usage:

	attrib2prot [options] attrib.csv prot.seq outdir

The attribution table can be CSV (optionally .gz or .zst compressed) or
.xlsx. Rows without peaks are dropped, insertion-coded sequence codes
("45-1") are moved to the preceding residue, missing residue types are
taken from the sequence listing and rows with the same sequence code and
atom name are averaged. Two files are written to outdir:

	attrib_wo_double.csv   the deduplicated table
	name.prot              the .prot intermediate

The flags are:

	-renumber file
		JSON or YAML table of sequence code replacements applied before
		name.prot is written. A missing table is only a warning.
*/
package main

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/biosys/cycy"
	"github.com/biosys/cycy/attrib"
	"github.com/biosys/cycy/internal/cli"
	"github.com/biosys/cycy/pipeline"
	"github.com/biosys/cycy/seqmap"
	"github.com/biosys/cycy/tabio"
	"go.uber.org/zap"
)

func main() {
	logopts := cli.LogFlags(flag.CommandLine)
	renumber := flag.String("renumber", "", "sequence code replacement table")
	cli.SetUsage("attrib.csv prot.seq outdir")
	args := cli.Args(3)
	logger := logopts.Logger()

	M, _ := seqmap.Load(args[1], logger)
	T, err := tabio.ReadTable(args[0])
	if err != nil {
		cli.Fail(logger, err)
	}
	R, err := attrib.Aggregate(T, M, logger)
	if err != nil {
		cli.Fail(logger, err)
	}
	if err := tabio.WriteFile(filepath.Join(args[2], pipeline.AggregatedFile), R.Table().WriteCSV); err != nil {
		cli.Fail(logger, err)
	}
	logger.Info("summary", zap.Int("original_rows", R.Stats.Rows), zap.Int("final_rows", R.Stats.Final), zap.Int("duplicates_removed", R.Stats.Duplicates))
	var ren attrib.Renumbering
	if *renumber != "" {
		ren, err = attrib.LoadRenumbering(*renumber, logger)
		if err != nil && cycy.IsCritical(err) {
			cli.Fail(logger, err)
		}
	}
	P, err := attrib.PrepareProt(R, ren, logger)
	if err != nil {
		cli.Fail(logger, err)
	}
	if err := tabio.WriteFile(filepath.Join(args[2], pipeline.ProtFile), P.Write); err != nil {
		cli.Fail(logger, err)
	}
	_ = logger.Sync()
	os.Exit(cli.ExitSuccess)
}

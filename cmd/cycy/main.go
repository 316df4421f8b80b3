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
Cycy converts the CCPNMR exports of a sample into CYANA input in one go.

Usage:

	cycy [options] workdir
	cycy [options] -batch file

The working directory holds the inputs under their conventional names:
prot.seq (or give -seq), attrib.csv, lib-ccpnmrV3_to_cyana.lib,
proline.txt (optional), 13C.csv and 15N.csv. It receives prot.seq (with
-seq), attrib_wo_double.csv, name.prot, attrib_cya.prot, 13C.peaks and
15N.peaks.

With -batch, the runs described in a YAML (or JSON) file are done
concurrently, and a line per run is printed to standard output:

	workers: 4
	runs:
	  - workdir: sample1
	    version: 3
	  - workdir: sample2
	    sequence: APEKKVLFWYDPMKPD
	    start: 12

The flags are:

	-batch file
		Batch description.
	-library file
		Nomenclature library, relative to workdir. Default:
		lib-ccpnmrV3_to_cyana.lib. "builtin" selects the small library
		built into cycy.
	-no-peaks
		Don't write the peak lists.
	-outdir dir
		Output directory, relative to workdir. Default: workdir.
	-plot name
		Also plot the shifts to this file (png, svg or pdf) in the output
		directory.
	-renumber file
		Sequence code replacement table. Default: proline.txt.
	-seq sequence
		One-letter sequence. prot.seq is written from it.
	-start n
		Number of the first residue of -seq. Default: 1.
	-version n
		CYANA version of the peak lists, 2 or 3. Default: 2.
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/biosys/cycy/internal/cli"
	"github.com/biosys/cycy/pipeline"
	"go.uber.org/zap"
)

func main() {
	logopts := cli.LogFlags(flag.CommandLine)
	batch := flag.String("batch", "", "batch description")
	library := flag.String("library", "", "nomenclature library")
	noPeaks := flag.Bool("no-peaks", false, "don't write the peak lists")
	outdir := flag.String("outdir", "", "output directory")
	plot := flag.String("plot", "", "shift plot file name")
	renumber := flag.String("renumber", pipeline.RenumberFile, "sequence code replacement table")
	seq := flag.String("seq", "", "one-letter sequence")
	start := flag.Int("start", 1, "number of the first residue of -seq")
	version := flag.Int("version", pipeline.DefaultVersion, "CYANA version of the peak lists")
	cli.SetUsage("workdir")
	flag.Parse()

	if *batch != "" {
		if flag.NArg() != 0 {
			fmt.Fprintln(os.Stderr, "-batch takes no workdir")
			flag.Usage()
			os.Exit(cli.ExitUsage)
		}
		logger := logopts.Logger()
		code := runBatch(*batch, logger)
		_ = logger.Sync()
		os.Exit(code)
	}
	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Expected 1 argument. Got %d\n", flag.NArg())
		flag.Usage()
		os.Exit(cli.ExitUsage)
	}
	logger := logopts.Logger()
	C := pipeline.Defaults(flag.Arg(0))
	C.Library = *library
	C.NoPeaks = *noPeaks
	C.Outdir = *outdir
	C.Plot = *plot
	C.Renumbering = *renumber
	C.Sequence = *seq
	C.Start = *start
	C.Version = *version
	if _, err := pipeline.Run(C, logger); err != nil {
		cli.Fail(logger, err)
	}
	_ = logger.Sync()
	os.Exit(cli.ExitSuccess)
}

//runBatch runs the batch in the file name and returns the exit code.
func runBatch(name string, logger *zap.Logger) int {
	B, err := pipeline.LoadBatch(name)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return cli.ExitFailure
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	reports, err := pipeline.RunBatch(ctx, B, logger)
	if serr := pipeline.Summary(os.Stdout, reports); serr != nil && err == nil {
		err = serr
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return cli.ExitFailure
	}
	for _, r := range reports {
		if r != nil && r.Err != nil {
			return cli.ExitFailure
		}
	}
	return cli.ExitSuccess
}

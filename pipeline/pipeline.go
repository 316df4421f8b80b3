/*
 * pipeline.go, part of cycy.
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

//Package pipeline chains the cycy stages into one conversion: sequence
//listing, attribution aggregation, .prot intermediate, nomenclature
//translation, XEASY peak lists and the optional shift plot.
package pipeline

import (
	"context"
	"io"
	"path/filepath"

	"github.com/biosys/cycy"
	"github.com/biosys/cycy/attrib"
	"github.com/biosys/cycy/nomen"
	"github.com/biosys/cycy/seqmap"
	"github.com/biosys/cycy/shiftplot"
	"github.com/biosys/cycy/tabio"
	"github.com/biosys/cycy/xeasy"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

//Report tells what a run did.
type Report struct {
	RunID     string
	Name      string
	Files     []string     //written, in order
	Residues  int          //entries of the sequence map
	Aggregate attrib.Stats //what the aggregation did
	Removed   int          //shifts dropped before translation for their insertion marker
	Atoms     int          //atoms translated
	Err       error        //only set by RunBatch
}

//SeqListing gets the sequence map of a run: built from the one-letter
//sequence of C if it has one, read from the listing file otherwise. A
//missing listing file gives an empty map. Nothing is written.
func SeqListing(C Config, logger *zap.Logger) (*seqmap.Map, error) {
	if C.Sequence == "" {
		//Load always returns a usable map and logs its own warnings.
		M, _ := seqmap.Load(C.path(C.SeqFile), logger)
		return M, nil
	}
	M, err := seqmap.FromOneLetter(C.Sequence, C.Start)
	if err != nil {
		return nil, cycy.ErrDecorate(err, "SeqListing")
	}
	return M, nil
}

//Run performs the conversion described by C. Empty fields of C take the
//values of Defaults(C.Workdir). All the inputs of the .prot stages
//(library, renumbering table, sequence, attributions) are read and checked
//before anything is written. After that Run stops at the first stage that
//fails; the files already written are kept and listed in the report.
func Run(C Config, logger *zap.Logger) (*Report, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	C = C.withDefaults()
	Rep := &Report{Name: C.Name}
	if err := C.Validate(); err != nil {
		return Rep, cycy.ErrDecorate(err, "Run")
	}
	L, err := nomen.Open(C.path(C.Library))
	if err != nil {
		return Rep, cycy.ErrDecorate(err, "Run")
	}
	ren, err := attrib.LoadRenumbering(C.path(C.Renumbering), logger)
	if err != nil && cycy.IsCritical(err) {
		return Rep, cycy.ErrDecorate(err, "Run")
	}
	M, err := SeqListing(C, logger)
	if err != nil {
		return Rep, cycy.ErrDecorate(err, "Run")
	}
	Rep.Residues = M.Len()
	T, err := tabio.ReadTable(C.path(C.Attrib))
	if err != nil {
		return Rep, cycy.ErrDecorate(err, "Run")
	}
	R, err := attrib.Aggregate(T, M, logger)
	if err != nil {
		return Rep, cycy.ErrDecorate(err, "Run")
	}
	Rep.Aggregate = R.Stats
	P, err := attrib.PrepareProt(R, ren, logger)
	if err != nil {
		return Rep, cycy.ErrDecorate(err, "Run")
	}
	Rep.Removed = P.Removed

	if C.Sequence != "" {
		out := C.out(SeqFile)
		if err := tabio.WriteFile(out, M.WriteListing); err != nil {
			return Rep, cycy.ErrDecorate(err, "Run")
		}
		Rep.Files = append(Rep.Files, out)
		logger.Info("sequence listing written", zap.String("file", out), zap.Int("residues", M.Len()))
	}
	out := C.out(AggregatedFile)
	if err := tabio.WriteFile(out, R.Table().WriteCSV); err != nil {
		return Rep, cycy.ErrDecorate(err, "Run")
	}
	Rep.Files = append(Rep.Files, out)
	logger.Info("summary", zap.Int("original_rows", R.Stats.Rows), zap.Int("final_rows", R.Stats.Final), zap.Int("duplicates_removed", R.Stats.Duplicates))

	prot := C.out(ProtFile)
	if err := tabio.WriteFile(prot, P.Write); err != nil {
		return Rep, cycy.ErrDecorate(err, "Run")
	}
	Rep.Files = append(Rep.Files, prot)

	cya := C.out(CyanaProtFile)
	if err := nomen.TranslateFile(L, M, prot, cya, logger); err != nil {
		return Rep, cycy.ErrDecorate(err, "Run")
	}
	Rep.Atoms = len(P.Rows)
	Rep.Files = append(Rep.Files, cya)

	if !C.NoPeaks {
		written, err := xeasy.WriteFiles(C.path(C.C13), C.path(C.N15), C.Version, C.outdir(), logger)
		Rep.Files = append(Rep.Files, written...)
		if err != nil {
			return Rep, cycy.ErrDecorate(err, "Run")
		}
	}

	if C.Plot != "" {
		name := C.out(C.Plot)
		if err := shiftplot.Plot(R.Shifts, C.Name, name); err != nil {
			if cycy.IsCritical(err) {
				return Rep, cycy.ErrDecorate(err, "Run")
			}
			logger.Warn("shift plot skipped", zap.Error(err))
		} else {
			Rep.Files = append(Rep.Files, name)
		}
	}
	logger.Info("conversion completed", zap.String("outdir", C.outdir()), zap.Int("files", len(Rep.Files)))
	return Rep, nil
}

//RunBatch runs the conversions of B, at most B.Workers at a time. Runs are
//independent: a failed run is reported in its Report and does not stop
//the others. Each run logs with its own run id. The error is only set if
//ctx is cancelled, in which case the runs not yet started are skipped.
func RunBatch(ctx context.Context, B *Batch, logger *zap.Logger) ([]*Report, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	workers := B.Workers
	if workers < 1 {
		workers = 1
	}
	reports := make([]*Report, len(B.Runs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, C := range B.Runs {
		if gctx.Err() != nil {
			break
		}
		i, C := i, C
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			id := uuid.NewString()
			l := logger.With(zap.String("run", id), zap.String("workdir", C.Workdir))
			Rep, err := Run(C, l)
			Rep.RunID = id
			if err != nil {
				Rep.Err = err
				l.Error("conversion failed", zap.Error(err))
			}
			reports[i] = Rep
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return reports, err
	}
	return reports, ctx.Err()
}

//Summary writes one line per report: name, run id and either the number
//of files written or the error.
func Summary(w io.Writer, reports []*Report) error {
	for _, r := range reports {
		if r == nil {
			continue
		}
		line := r.Name + "\t" + r.RunID + "\t"
		if r.Err != nil {
			line += "FAILED: " + r.Err.Error()
		} else {
			line += "ok"
			for _, f := range r.Files {
				line += "\t" + filepath.Base(f)
			}
		}
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
	}
	return nil
}

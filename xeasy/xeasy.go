/*
 * xeasy.go, part of cycy.
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

//Package xeasy writes NOE peak tables exported from CCPNMR as XEASY peak
//lists for CYANA 2 or CYANA 3.
package xeasy

import (
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/biosys/cycy"
	"github.com/biosys/cycy/tabio"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
)

//Column labels of a CCPNMR peak table.
const (
	ColObject = "_object"
	ColF1     = "Pos F1"
	ColF2     = "Pos F2"
	ColF3     = "Pos F3"
	ColVolume = "Volume"
)

//Edition is the isotope edition of a NOESY spectrum.
type Edition int

const (
	Carbon Edition = iota
	Nitrogen
)

func (E Edition) String() string {
	if E == Carbon {
		return "13C"
	}
	return "15N"
}

//FileName returns the name of the peak list written for the edition.
func (E Edition) FileName() string {
	return E.String() + ".peaks"
}

const dims = "# Number of dimensions 3\n#FORMAT xeasy3D\n"

var headers = map[int]map[Edition]string{
	3: {
		Nitrogen: dims + "#INAME 1 HN\n#INAME 2 H\n#INAME 3 N\n#SPECTRUM N15NOESY  HN H N\n",
		Carbon:   dims + "#INAME 1 HC\n#INAME 2 H\n#INAME 3 C\n#SPECTRUM C13NOESY  HC H C\n",
	},
	2: {
		Nitrogen: dims + "#INAME 1 HN\n#INAME 2 H\n#INAME 3 N\n#CYANAFORMAT HhN\n",
		Carbon:   dims + "#INAME 1 HC\n#INAME 2 H\n#INAME 3 C\n#CYANAFORMAT HhC\n",
	},
}

//Header returns the literal header of a peak list for the given edition and
//CYANA version. Only versions 2 and 3 are supported.
func Header(edition Edition, version int) (string, error) {
	h, ok := headers[version]
	if !ok {
		return "", cycy.NewError(cycy.Unsupported, "", fmt.Sprintf("CYANA version %d not supported, use 2 or 3", version), true, nil, "Header")
	}
	return h[edition], nil
}

//Peak is one cross-peak: its 1-based index, its three positions in output
//order and its volume. Missing values are NaN.
type Peak struct {
	ID       int
	Pos      [3]float64
	Volume   float64
	Integral [4]bool //the positions and the volume come from integer-only columns
}

//Positions returns a matrix with one row per row of T and the columns
//Pos F1, Pos F2, Pos F3 and Volume. Null-like cells are NaN.
//For the carbon edition the second and third columns are swapped, so the
//rows read Pos F1, Pos F3, Pos F2, Volume.
func Positions(T *tabio.Table, edition Edition) (*mat.Dense, error) {
	S, err := T.Select(ColF1, ColF2, ColF3, ColVolume)
	if err != nil {
		return nil, cycy.ErrDecorate(err, "Positions")
	}
	if len(S.Rows) == 0 {
		return nil, nil
	}
	P := mat.NewDense(len(S.Rows), 4, nil)
	for i, row := range S.Rows {
		for j, cell := range row {
			v, ok := cycy.ParseFloat(cell)
			if !ok && !cycy.IsNullToken(cell) {
				return nil, cycy.NewError(cycy.Malformed, T.Name, fmt.Sprintf("row %d: %q in %s is not a number", i+1, cell, S.Header[j]), true, nil, "Positions")
			}
			P.Set(i, j, v)
		}
	}
	if edition == Carbon {
		f2 := mat.Col(nil, 1, P)
		f3 := mat.Col(nil, 2, P)
		P.SetCol(1, f3)
		P.SetCol(2, f2)
	}
	return P, nil
}

//integerColumns tells, in output order, which of the position and volume
//columns of T have only integers (and null-like cells), with at least one
//integer.
func integerColumns(T *tabio.Table, edition Edition) [4]bool {
	var ret [4]bool
	S, err := T.Select(ColF1, ColF2, ColF3, ColVolume)
	if err != nil {
		return ret
	}
	for j := range S.Header {
		ints := 0
		for _, row := range S.Rows {
			if cycy.IsNullToken(row[j]) {
				continue
			}
			if _, err := strconv.ParseInt(strings.TrimSpace(row[j]), 10, 64); err != nil {
				ints = -1
				break
			}
			ints++
		}
		ret[j] = ints > 0
	}
	if edition == Carbon {
		ret[1], ret[2] = ret[2], ret[1]
	}
	return ret
}

//Peaks returns the peaks of T in output order, numbered from 1.
func Peaks(T *tabio.Table, edition Edition) ([]Peak, error) {
	P, err := Positions(T, edition)
	if err != nil {
		return nil, cycy.ErrDecorate(err, "Peaks")
	}
	if P == nil {
		return nil, nil
	}
	integral := integerColumns(T, edition)
	r, _ := P.Dims()
	ret := make([]Peak, r)
	for i := range ret {
		ret[i] = Peak{
			ID:       i + 1,
			Pos:      [3]float64{P.At(i, 0), P.At(i, 1), P.At(i, 2)},
			Volume:   P.At(i, 3),
			Integral: integral,
		}
	}
	return ret, nil
}

//formatValue writes missing values as 0. Values of integer columns are
//written without a decimal point.
func formatValue(v float64, integral bool) string {
	if math.IsNaN(v) {
		return "0"
	}
	if integral {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return cycy.FormatFloat(v)
}

//trailer is written after the volume of every peak.
var trailer = []string{"0.00e+00", "0", "0", "0", "0", "0"}

//Line returns the peak list line for P, without the line break.
func (P Peak) Line() string {
	fields := make([]string, 0, 13)
	fields = append(fields, strconv.Itoa(P.ID))
	for i, v := range P.Pos {
		fields = append(fields, formatValue(v, P.Integral[i]))
	}
	fields = append(fields, "1", "U", formatValue(P.Volume, P.Integral[3]))
	fields = append(fields, trailer...)
	return strings.Join(fields, "\t")
}

//Write writes the header for edition and version followed by one line
//per peak.
func Write(w io.Writer, peaks []Peak, edition Edition, version int) error {
	h, err := Header(edition, version)
	if err != nil {
		return cycy.ErrDecorate(err, "Write")
	}
	if _, err := io.WriteString(w, h); err != nil {
		return err
	}
	for _, p := range peaks {
		if _, err := io.WriteString(w, p.Line()+"\n"); err != nil {
			return err
		}
	}
	return nil
}

//Format writes the peak table T as an XEASY peak list.
func Format(T *tabio.Table, edition Edition, version int, w io.Writer) error {
	if _, err := Header(edition, version); err != nil {
		return cycy.ErrDecorate(err, "Format")
	}
	peaks, err := Peaks(T, edition)
	if err != nil {
		return cycy.ErrDecorate(err, "Format")
	}
	return Write(w, peaks, edition, version)
}

//WriteFiles reads the 13C and 15N peak tables and writes 13C.peaks and
//15N.peaks to outdir. It returns the paths written. The version is checked
//before anything is read, and a failure on either table leaves its peak
//list unwritten.
func WriteFiles(c13, n15 string, version int, outdir string, logger *zap.Logger) ([]string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if _, ok := headers[version]; !ok {
		_, err := Header(Carbon, version)
		return nil, cycy.ErrDecorate(err, "WriteFiles")
	}
	var written []string
	for _, in := range []struct {
		path    string
		edition Edition
	}{{c13, Carbon}, {n15, Nitrogen}} {
		T, err := tabio.ReadTable(in.path)
		if err != nil {
			return written, cycy.ErrDecorate(err, "WriteFiles")
		}
		peaks, err := Peaks(T, in.edition)
		if err != nil {
			return written, cycy.ErrDecorate(err, "WriteFiles")
		}
		out := filepath.Join(outdir, in.edition.FileName())
		err = tabio.WriteFile(out, func(w io.Writer) error {
			return Write(w, peaks, in.edition, version)
		})
		if err != nil {
			return written, cycy.ErrDecorate(err, "WriteFiles")
		}
		logger.Info("peak list written", zap.String("file", out), zap.Stringer("edition", in.edition), zap.Int("version", version), zap.Int("peaks", len(peaks)))
		written = append(written, out)
	}
	return written, nil
}

/*
 * prot.go, part of cycy.
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

package attrib

import (
	"fmt"
	"io"
	"strings"

	"github.com/biosys/cycy"
	"go.uber.org/zap"
)

//ProtHeader is the header of the .prot intermediate. The value labels keep
//their line breaks, which makes the header exactly three lines long.
const ProtHeader = "Index\t\"Value\n(ppm)\"\t\"Value Error\n(ppm)\"\tAtomName\tSequenceCode\n"

//ProtRow is one line of the .prot intermediate.
type ProtRow struct {
	Index      int
	Value      float64
	ValueError float64
	Atom       string
	SeqCode    string
}

//Prot is the .prot intermediate: Index, value, error, atom name and
//sequence code for each shift, in the order of the aggregated set.
type Prot struct {
	Rows    []ProtRow
	Removed int //rows dropped because their code still had the insertion marker
}

//PrepareProt drops the auxiliary columns of an aggregated set, applies the
//renumbering table (which can be nil), discards the shifts whose sequence
//code still has the insertion marker and numbers the rest from 1.
//It fails if the set has no value or no value error column.
func PrepareProt(R *Result, ren Renumbering, logger *zap.Logger) (*Prot, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !R.HasColumn(cycy.ColValue) || !R.HasColumn(cycy.ColValueError) {
		logger.Warn("could not find value or value error columns", zap.Strings("columns", R.Columns))
		return nil, cycy.NewError(cycy.SchemaDrift, "", "could not find the Value (ppm) and Value Error (ppm) columns", true, nil, "PrepareProt")
	}
	P := &Prot{Rows: make([]ProtRow, 0, len(R.Shifts))}
	for _, s := range R.Shifts {
		code := s.SeqCode
		if len(ren) > 0 {
			code = ren.Apply(code)
		}
		if strings.Contains(code, cycy.InsertionMarker) {
			P.Removed++
			continue
		}
		P.Rows = append(P.Rows, ProtRow{
			Index:      len(P.Rows) + 1,
			Value:      s.Value,
			ValueError: s.ValueError,
			Atom:       s.Atom,
			SeqCode:    code,
		})
	}
	if len(ren) > 0 {
		logger.Info("applied renumbering table", zap.Int("entries", len(ren)))
	}
	if P.Removed > 0 {
		logger.Warn("removed shifts whose sequence code still has the insertion marker", zap.Int("count", P.Removed))
	}
	return P, nil
}

//zeroIfNull writes "0" in place of missing or null-like cells.
func zeroIfNull(s string) string {
	if cycy.IsNullToken(s) {
		return "0"
	}
	return s
}

//Write writes the .prot intermediate, ProtHeader first.
func (P *Prot) Write(w io.Writer) error {
	if _, err := io.WriteString(w, ProtHeader); err != nil {
		return err
	}
	for _, r := range P.Rows {
		_, err := fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", r.Index,
			zeroIfNull(cycy.FormatFloat(r.Value)),
			zeroIfNull(cycy.FormatFloat(r.ValueError)),
			zeroIfNull(r.Atom),
			zeroIfNull(r.SeqCode))
		if err != nil {
			return err
		}
	}
	return nil
}

/*
 * aggregate.go, part of cycy.
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

//Package attrib turns the chemical shift attributions exported by CCPNMR into
//a deduplicated set of shifts, and that set into the .prot intermediate read
//by the nomenclature translator.
package attrib

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/biosys/cycy"
	"github.com/biosys/cycy/seqmap"
	"github.com/biosys/cycy/tabio"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

//OutputColumns is the column order of the aggregated table.
var OutputColumns = []string{
	cycy.ColUniqueID,
	cycy.ColValue,
	cycy.ColValueError,
	cycy.ColSequenceCode,
	cycy.ColResidueType,
	cycy.ColAtomName,
	cycy.ColPeakCount,
}

//Stats summarizes what Aggregate did.
type Stats struct {
	Rows       int            //rows in the input
	Filtered   int            //rows dropped for a zero or unset peak count
	Renumbered int            //sequence codes changed by the insertion rule
	Backfilled int            //residue types taken from the sequence map
	Unresolved int            //residue types that stayed unknown
	Coerced    map[string]int //missing values per numeric column after conversion
	Unkeyed    int            //rows without a sequence code or an atom name
	Grouped    int            //rows that went into the grouping
	Final      int            //shifts in the result
	Duplicates int            //Grouped-Final
}

//Result is the canonical, deduplicated set of shifts.
type Result struct {
	Shifts  []cycy.Shift
	Columns []string //the columns of OutputColumns that the source had
	Stats   Stats
}

//HasColumn returns true if the source table had the given output column.
func (R *Result) HasColumn(label string) bool {
	for _, v := range R.Columns {
		if v == label {
			return true
		}
	}
	return false
}

var labelCleaner = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

//NormalizeLabel replaces the line breaks in a column label by spaces and
//trims it, so "Value\n(ppm)" and "Value (ppm)" are the same column.
func NormalizeLabel(label string) string {
	return strings.TrimSpace(labelCleaner.Replace(label))
}

//obs is one input row after the per-row steps.
type obs struct {
	id         float64
	value      float64
	valueError float64
	code       string
	resType    string
	atom       string
	peaks      float64
}

//group accumulates the observations of one (sequence code, atom) pair.
type group struct {
	code, atom string
	resType    string
	id         float64
	values     []float64
	errs       []float64
	peaks      []float64
}

//Aggregate runs the fixed sequence of steps that turns raw attribution rows
//into unique (sequence code, atom name) shifts: label cleanup, peak count
//filter, insertion renumbering, residue type backfill, numeric coercion,
//grouping and projection. T is not modified. M can be empty or nil.
func Aggregate(T *tabio.Table, M *seqmap.Map, logger *zap.Logger) (*Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("file", T.Name))
	st := Stats{Rows: len(T.Rows), Coerced: map[string]int{}}

	//1. labels
	clean := &tabio.Table{Name: T.Name, Header: make([]string, len(T.Header)), Rows: T.Rows}
	for i, h := range T.Header {
		clean.Header[i] = NormalizeLabel(h)
	}
	for _, req := range []string{cycy.ColSequenceCode, cycy.ColAtomName} {
		if !clean.Has(req) {
			return nil, cycy.NewError(cycy.SchemaDrift, T.Name, "no "+req+" column", true, nil, "Aggregate")
		}
	}
	cCode, cAtom := clean.Col(cycy.ColSequenceCode), clean.Col(cycy.ColAtomName)
	cID, cVal, cErr := clean.Col(cycy.ColUniqueID), clean.Col(cycy.ColValue), clean.Col(cycy.ColValueError)
	cRes, cPeaks := clean.Col(cycy.ColResidueType), clean.Col(cycy.ColPeakCount)

	//2. peak count filter
	rows := clean.Rows
	if cPeaks >= 0 {
		kept := make([][]string, 0, len(rows))
		unparsable := 0
		for _, r := range rows {
			n, ok := cycy.ParseFloat(r[cPeaks])
			if !ok && !cycy.IsNullToken(r[cPeaks]) {
				unparsable++
			}
			if !ok || n == 0 {
				continue
			}
			kept = append(kept, r)
		}
		st.Filtered = len(rows) - len(kept)
		if unparsable > 0 {
			logger.Warn("non-numeric peak counts treated as unset", zap.String("column", cycy.ColPeakCount), zap.Int("count", unparsable))
		}
		logger.Info("filtered rows with zero or unset peak count", zap.Int("count", st.Filtered))
		rows = kept
	} else {
		logger.Warn("no peak count column, no rows filtered", zap.String("column", cycy.ColPeakCount))
	}

	cell := func(r []string, c int) string {
		if c < 0 {
			return ""
		}
		return r[c]
	}
	//the numeric columns that exist, for step 5
	numeric := map[string]int{cycy.ColValue: cVal, cycy.ColValueError: cErr, cycy.ColPeakCount: cPeaks, cycy.ColUniqueID: cID}
	coerce := func(r []string, label string) float64 {
		c := numeric[label]
		if c < 0 {
			return math.NaN()
		}
		f, ok := cycy.ParseFloat(r[c])
		if !ok {
			st.Coerced[label]++
		}
		return f
	}

	if cRes < 0 {
		logger.Warn("no residue type column, all types come from the sequence map", zap.String("column", cycy.ColResidueType))
	}
	observations := make([]obs, 0, len(rows))
	for _, r := range rows {
		//3. renumbering
		code := strings.TrimSpace(r[cCode])
		if nc := Renumber(code); nc != code {
			st.Renumbered++
			code = nc
		}
		//4. backfill. A type that is already there is only upper-cased.
		res := cell(r, cRes)
		if cycy.IsNullToken(res) {
			if t, ok := M.Lookup(code); ok {
				res = t
				st.Backfilled++
			} else {
				res = ""
				st.Unresolved++
			}
		} else {
			res = strings.ToUpper(strings.TrimSpace(res))
		}
		//5. coercion
		o := obs{
			code:       code,
			resType:    res,
			atom:       strings.TrimSpace(r[cAtom]),
			value:      coerce(r, cycy.ColValue),
			valueError: coerce(r, cycy.ColValueError),
			peaks:      coerce(r, cycy.ColPeakCount),
			id:         coerce(r, cycy.ColUniqueID),
		}
		observations = append(observations, o)
	}
	for label, n := range st.Coerced {
		if n > 0 {
			logger.Warn("missing values after numeric conversion", zap.String("column", label), zap.Int("count", n))
		}
	}
	if st.Unresolved > 0 {
		logger.Warn("residue types could not be resolved", zap.Int("count", st.Unresolved))
	}

	//6. grouping
	groups := make([]*group, 0, len(observations))
	index := make(map[[2]string]*group, len(observations))
	for _, o := range observations {
		if o.code == "" || o.atom == "" {
			st.Unkeyed++
			continue
		}
		st.Grouped++
		key := [2]string{o.code, o.atom}
		g, ok := index[key]
		if !ok {
			g = &group{code: o.code, atom: o.atom, id: math.NaN()}
			index[key] = g
			groups = append(groups, g)
		}
		if g.resType == "" {
			g.resType = o.resType
		}
		if !math.IsNaN(o.id) && (math.IsNaN(g.id) || o.id < g.id) {
			g.id = o.id
		}
		g.values = appendNotNaN(g.values, o.value)
		g.errs = appendNotNaN(g.errs, o.valueError)
		g.peaks = appendNotNaN(g.peaks, o.peaks)
	}
	if st.Unkeyed > 0 {
		logger.Warn("rows without sequence code or atom name were dropped", zap.Int("count", st.Unkeyed))
	}
	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].code != groups[j].code {
			return CodeLess(groups[i].code, groups[j].code)
		}
		return groups[i].atom < groups[j].atom
	})
	shifts := make([]cycy.Shift, len(groups))
	for i, g := range groups {
		s := cycy.Shift{
			SeqCode:    g.code,
			Atom:       g.atom,
			ResType:    g.resType,
			Value:      mean(g.values),
			ValueError: mean(g.errs),
			Peaks:      int(math.Round(floats.Sum(g.peaks))),
		}
		if !math.IsNaN(g.id) {
			s.ID = int(g.id)
			s.HasID = true
		}
		shifts[i] = s
	}
	st.Final = len(shifts)
	st.Duplicates = st.Grouped - st.Final

	//7. projection
	cols := make([]string, 0, len(OutputColumns))
	missing := []string{}
	for _, c := range OutputColumns {
		if c == cycy.ColResidueType || clean.Has(c) {
			cols = append(cols, c)
		} else {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		logger.Warn("columns missing in output", zap.Strings("columns", missing))
	}
	logger.Info("aggregated attributions",
		zap.Int("rows", st.Rows),
		zap.Int("final", st.Final),
		zap.Int("duplicates_merged", st.Duplicates),
		zap.Int("renumbered", st.Renumbered),
		zap.Int("backfilled", st.Backfilled))
	return &Result{Shifts: shifts, Columns: cols, Stats: st}, nil
}

func appendNotNaN(s []float64, v float64) []float64 {
	if math.IsNaN(v) {
		return s
	}
	return append(s, v)
}

//mean returns NaN for an empty slice.
func mean(v []float64) float64 {
	if len(v) == 0 {
		return math.NaN()
	}
	return stat.Mean(v, nil)
}

//CodeLess orders sequence codes: integers by value, before any other code,
//which are ordered as strings.
func CodeLess(a, b string) bool {
	na, erra := strconv.Atoi(a)
	nb, errb := strconv.Atoi(b)
	switch {
	case erra == nil && errb == nil:
		return na < nb
	case erra == nil:
		return true
	case errb == nil:
		return false
	}
	return a < b
}

//Table returns the shifts as a table with the columns in R.Columns.
//Missing numbers are empty cells.
func (R *Result) Table() *tabio.Table {
	T := &tabio.Table{Header: append([]string(nil), R.Columns...), Rows: make([][]string, len(R.Shifts))}
	for i, s := range R.Shifts {
		row := make([]string, len(R.Columns))
		for j, c := range R.Columns {
			switch c {
			case cycy.ColUniqueID:
				if s.HasID {
					row[j] = strconv.Itoa(s.ID)
				}
			case cycy.ColValue:
				row[j] = cycy.FormatFloat(s.Value)
			case cycy.ColValueError:
				row[j] = cycy.FormatFloat(s.ValueError)
			case cycy.ColSequenceCode:
				row[j] = s.SeqCode
			case cycy.ColResidueType:
				row[j] = s.ResType
			case cycy.ColAtomName:
				row[j] = s.Atom
			case cycy.ColPeakCount:
				row[j] = strconv.Itoa(s.Peaks)
			}
		}
		T.Rows[i] = row
	}
	return T
}

/*
 * shift.go, part of cycy.
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

package cycy

import (
	"math"
	"strconv"
	"strings"
)

//Column labels of the CCPNMR chemical shift export, as they look after the
//line breaks in them have been replaced by spaces.
const (
	ColUniqueID     = "uniqueId"
	ColValue        = "Value (ppm)"
	ColValueError   = "Value Error (ppm)"
	ColSequenceCode = "SequenceCode"
	ColResidueType  = "ResidueType"
	ColAtomName     = "AtomName"
	ColPeakCount    = "Total Peak Count"
	ColNmrAtom      = "NmrAtom"
	ColIndex        = "Index"
)

//InsertionMarker in a sequence code means that the assignment belongs to
//the previous residue.
const InsertionMarker = "-1"

//Shift is one chemical shift attribution. Missing floating point values
//are NaN.
type Shift struct {
	ID         int //smallest uniqueId among the merged observations
	HasID      bool
	Value      float64
	ValueError float64
	SeqCode    string
	ResType    string //three-letter upper case code, or "" if unknown
	Atom       string
	Peaks      int
}

//Key returns the pair that identifies a shift after deduplication.
func (S *Shift) Key() [2]string {
	return [2]string{S.SeqCode, S.Atom}
}

//IsNullToken returns true for the strings that the CCPNMR exports (and the
//pandas-based scripts around them) use for "no value".
func IsNullToken(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "nan", "null":
		return true
	}
	return false
}

//ParseFloat parses s, returning NaN and false if s is null-like or not a number.
func ParseFloat(s string) (float64, bool) {
	if IsNullToken(s) {
		return math.NaN(), false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN(), false
	}
	return f, true
}

//FormatFloat writes v the way CCPNMR tables show floats: shortest
//representation, always with a decimal point. NaN becomes the empty string.
func FormatFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") && !math.IsInf(v, 0) {
		s += ".0"
	}
	return s
}

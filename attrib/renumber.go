/*
 * renumber.go, part of cycy.
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
	"math"
	"strconv"
	"strings"

	"github.com/biosys/cycy"
	"github.com/biosys/cycy/tabio"
	"go.uber.org/zap"
)

//Renumber applies the insertion-suffix rule to a sequence code: "45-1",
//a second assignment that belongs to residue 44, becomes "44". Codes
//without the marker, or whose leading text is not an integer, are returned
//unchanged.
func Renumber(code string) string {
	if !strings.Contains(code, cycy.InsertionMarker) {
		return code
	}
	head := strings.SplitN(code, "-", 2)[0]
	n, err := strconv.Atoi(strings.TrimSpace(head))
	if err != nil {
		return code
	}
	return strconv.Itoa(n - 1)
}

//Renumbering maps duplicate-coded sequence labels (typically prolines
//assigned under the N-1 convention) to canonical labels.
type Renumbering map[string]string

//Apply returns the canonical label for code, or code itself if the map has
//no entry for it.
func (R Renumbering) Apply(code string) string {
	if c, ok := R[code]; ok {
		return c
	}
	return code
}

//LoadRenumbering reads a renumbering table: a JSON (or YAML, see
//tabio.DecodeKeyed) object whose values are labels or integers.
//The table is optional. If it is missing, LoadRenumbering logs a warning
//and returns an empty map and a non-critical error. A table that exists but
//can't be parsed is a critical error.
func LoadRenumbering(name string, logger *zap.Logger) (Renumbering, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	raw := map[string]interface{}{}
	if err := tabio.DecodeKeyed(name, &raw); err != nil {
		if k, _ := cycy.KindOf(err); k == cycy.MissingInput {
			logger.Warn("no renumbering table, using sequence codes as they are", zap.String("file", name))
			return Renumbering{}, cycy.NewError(cycy.MissingInput, name, "no renumbering table", false, err, "LoadRenumbering")
		}
		return nil, cycy.ErrDecorate(err, "LoadRenumbering")
	}
	R := make(Renumbering, len(raw))
	for k, v := range raw {
		switch val := v.(type) {
		case string:
			R[k] = val
		case int:
			R[k] = strconv.Itoa(val)
		case float64:
			if val != math.Trunc(val) {
				return nil, cycy.NewError(cycy.Malformed, name, fmt.Sprintf("label %q maps to non-integer %v", k, val), true, nil, "LoadRenumbering")
			}
			R[k] = strconv.Itoa(int(val))
		default:
			return nil, cycy.NewError(cycy.Malformed, name, fmt.Sprintf("label %q maps to %v", k, v), true, nil, "LoadRenumbering")
		}
	}
	logger.Info("loaded renumbering table", zap.String("file", name), zap.Int("entries", len(R)))
	return R, nil
}

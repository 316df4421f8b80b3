/*
 * seqmap.go, part of cycy.
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

//Package seqmap holds the map from residue number to residue type of a
//protein, read from (or written to) a two-column listing such as prot.seq:
//
//	ALA 1
//	PRO 2
//	GLY 3
package seqmap

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/biosys/cycy"
	"go.uber.org/zap"
)

//Map maps residue numbers to 3-letter upper case residue types.
//It is not modified after it has been built.
type Map struct {
	types map[int]string
}

//Empty returns a map with no residues.
func Empty() *Map {
	return &Map{types: map[int]string{}}
}

//Len returns the number of residues in the map.
func (M *Map) Len() int {
	if M == nil {
		return 0
	}
	return len(M.types)
}

//Type returns the residue type at position pos.
func (M *Map) Type(pos int) (string, bool) {
	if M == nil {
		return "", false
	}
	t, ok := M.types[pos]
	return t, ok
}

//Lookup returns the residue type for a sequence code, as found in the
//CCPNMR tables. Codes that are not plain integers are never found.
func (M *Map) Lookup(code string) (string, bool) {
	pos, err := strconv.Atoi(strings.TrimSpace(code))
	if err != nil {
		return "", false
	}
	return M.Type(pos)
}

//Positions returns the residue numbers in increasing order.
func (M *Map) Positions() []int {
	if M == nil {
		return nil
	}
	ret := make([]int, 0, len(M.types))
	for k := range M.types {
		ret = append(ret, k)
	}
	sort.Ints(ret)
	return ret
}

//Read parses a sequence listing from r. Blank lines and lines with less
//than two fields are skipped, as are lines whose second field is not an
//integer. name is only used in the log.
func Read(r io.Reader, name string, logger *zap.Logger) (*Map, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	M := Empty()
	var badpos, nonstd int
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		res := strings.ToUpper(fields[0])
		pos, err := strconv.Atoi(fields[1])
		if err != nil {
			badpos++
			continue
		}
		if !cycy.IsStandard(res) {
			nonstd++
		}
		M.types[pos] = res
	}
	if err := scanner.Err(); err != nil {
		return M, cycy.NewError(cycy.KindIO, name, "error reading sequence listing", false, err, "seqmap.Read")
	}
	if badpos > 0 {
		logger.Warn("sequence listing lines with a non-integer residue number were skipped", zap.String("file", name), zap.Int("count", badpos))
	}
	if nonstd > 0 {
		logger.Warn("sequence listing contains non-standard residues", zap.String("file", name), zap.Int("count", nonstd))
	}
	logger.Info("loaded residue mappings", zap.String("file", name), zap.Int("residues", M.Len()))
	return M, nil
}

//Load reads the sequence listing in the file name. The listing is
//optional: if the file is missing or can't be read, Load logs a warning and
//returns an empty map together with a non-critical error, which callers
//are free to ignore.
func Load(name string, logger *zap.Logger) (*Map, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	f, err := os.Open(name)
	if err != nil {
		kind := cycy.KindIO
		if errors.Is(err, fs.ErrNotExist) {
			kind = cycy.MissingInput
		}
		logger.Warn("no sequence listing, proceeding without residue mapping", zap.String("file", name), zap.Error(err))
		return Empty(), cycy.NewError(kind, name, "can't open sequence listing", false, err, "seqmap.Load")
	}
	defer f.Close()
	M, err := Read(f, name, logger)
	if err != nil {
		logger.Warn("sequence listing could not be read, proceeding without residue mapping", zap.String("file", name), zap.Error(err))
		return Empty(), cycy.ErrDecorate(err, "seqmap.Load")
	}
	return M, nil
}

//FromOneLetter builds a map from a one-letter sequence, numbering the first
//residue start. White space in seq is ignored.
func FromOneLetter(seq string, start int) (*Map, error) {
	M := Empty()
	pos := start
	for i, c := range seq {
		if unicode.IsSpace(c) {
			continue
		}
		if c > unicode.MaxASCII {
			return nil, cycy.NewError(cycy.Malformed, "", fmt.Sprintf("position %d: %q is not a standard aminoacid", i, c), true, nil, "FromOneLetter")
		}
		three, err := cycy.ThreeLetter(byte(c))
		if err != nil {
			return nil, cycy.NewError(cycy.Malformed, "", fmt.Sprintf("position %d", i), true, err, "FromOneLetter")
		}
		M.types[pos] = three
		pos++
	}
	if M.Len() == 0 {
		return nil, cycy.NewError(cycy.Malformed, "", "empty sequence", true, nil, "FromOneLetter")
	}
	return M, nil
}

//WriteListing writes the map as "TYPE\tposition" lines, in residue order.
func (M *Map) WriteListing(w io.Writer) error {
	for _, p := range M.Positions() {
		if _, err := fmt.Fprintf(w, "%s\t%d\n", M.types[p], p); err != nil {
			return err
		}
	}
	return nil
}

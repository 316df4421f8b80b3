/*
 * translate.go, part of cycy.
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

package nomen

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/biosys/cycy"
	"github.com/biosys/cycy/seqmap"
	"github.com/biosys/cycy/tabio"
	"go.uber.org/zap"
)

//HeaderLines is the number of lines at the top of a .prot intermediate that
//are copied to the output unchanged.
const HeaderLines = 3

//the atom name and the sequence code are the last two fields of a data line.
const minFields = 5

//splitLines splits s after each line break, keeping the breaks.
func splitLines(s string) []string {
	lines := strings.SplitAfter(s, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

//readProt returns the header and data lines of a .prot intermediate.
func readProt(r io.Reader, name string) ([]string, []string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, cycy.NewError(cycy.KindIO, name, "can't read", true, err, "readProt")
	}
	lines := splitLines(string(b))
	if len(lines) < HeaderLines {
		return nil, nil, cycy.NewError(cycy.Malformed, name, fmt.Sprintf("expected %d header lines, found %d lines", HeaderLines, len(lines)), true, nil, "readProt")
	}
	return lines[:HeaderLines], lines[HeaderLines:], nil
}

//dataFields splits a data line, checking it has enough fields.
func dataFields(line string, lineno int, name string) ([]string, error) {
	parts := strings.Fields(line)
	if len(parts) < minFields {
		return nil, cycy.NewError(cycy.Malformed, name, fmt.Sprintf("line %d: expected %d fields, found %d", lineno, minFields, len(parts)), true, nil)
	}
	return parts, nil
}

//Nomenclature reads a .prot intermediate from r and returns the translated
//atom name of each of its non-blank data lines, in order. The residue type
//of a line is taken from M using the line's sequence code. name is used in
//error messages.
func Nomenclature(L *Library, M *seqmap.Map, r io.Reader, name string) ([]string, error) {
	_, data, err := readProt(r, name)
	if err != nil {
		return nil, cycy.ErrDecorate(err, "Nomenclature")
	}
	ret := make([]string, 0, len(data))
	for i, line := range data {
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts, err := dataFields(line, i+HeaderLines+1, name)
		if err != nil {
			return nil, cycy.ErrDecorate(err, "Nomenclature")
		}
		atom, code := parts[len(parts)-2], parts[len(parts)-1]
		res, _ := M.Lookup(code)
		ret = append(ret, L.Translate(res, atom))
	}
	return ret, nil
}

//Transform copies the .prot intermediate in r to w, replacing the atom
//name of the i-th non-blank data line by translated[i]. The header lines
//and blank lines are copied unchanged. Data lines are written tab
//separated.
func Transform(translated []string, r io.Reader, w io.Writer, name string) error {
	header, data, err := readProt(r, name)
	if err != nil {
		return cycy.ErrDecorate(err, "Transform")
	}
	for _, h := range header {
		if _, err := io.WriteString(w, h); err != nil {
			return err
		}
	}
	n := 0
	for i, line := range data {
		if strings.TrimSpace(line) == "" {
			if _, err := io.WriteString(w, line); err != nil {
				return err
			}
			continue
		}
		parts, err := dataFields(line, i+HeaderLines+1, name)
		if err != nil {
			return cycy.ErrDecorate(err, "Transform")
		}
		if n >= len(translated) {
			return cycy.NewError(cycy.Malformed, name, fmt.Sprintf("%d translations for more data lines", len(translated)), true, nil, "Transform")
		}
		parts[len(parts)-2] = translated[n]
		n++
		if _, err := io.WriteString(w, strings.Join(parts, "\t")+"\n"); err != nil {
			return err
		}
	}
	if n != len(translated) {
		return cycy.NewError(cycy.Malformed, name, fmt.Sprintf("%d translations for %d data lines", len(translated), n), true, nil, "Transform")
	}
	return nil
}

//TranslateFile translates the atom names of the .prot intermediate in prot
//and writes the result to out. If anything fails, out is not written.
func TranslateFile(L *Library, M *seqmap.Map, prot, out string, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	b, err := os.ReadFile(prot)
	if err != nil {
		if os.IsNotExist(err) {
			return cycy.NewError(cycy.MissingInput, prot, "no .prot intermediate", true, err, "TranslateFile")
		}
		return cycy.NewError(cycy.KindIO, prot, "can't read", true, err, "TranslateFile")
	}
	translated, err := Nomenclature(L, M, bytes.NewReader(b), prot)
	if err != nil {
		return cycy.ErrDecorate(err, "TranslateFile")
	}
	err = tabio.WriteFile(out, func(w io.Writer) error {
		return Transform(translated, bytes.NewReader(b), w, prot)
	})
	if err != nil {
		return cycy.ErrDecorate(err, "TranslateFile")
	}
	logger.Info("nomenclature conversion completed", zap.String("file", out), zap.Int("atoms", len(translated)))
	return nil
}

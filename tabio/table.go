/*
 * table.go, part of cycy.
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

//Package tabio reads the tables exported by CCPNMR (CSV, compressed CSV or
//XLSX) and writes output files so that a failed write never leaves a
//truncated file behind.
package tabio

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/biosys/cycy"
	"github.com/xuri/excelize/v2"
)

//Table is a header and rows of string cells. Every row has as many cells
//as the header.
type Table struct {
	Name   string //where the table was read from, for error messages
	Header []string
	Rows   [][]string
}

//Col returns the index of the column with the given label, or -1.
func (T *Table) Col(label string) int {
	for i, v := range T.Header {
		if v == label {
			return i
		}
	}
	return -1
}

//Has returns true if the table has a column with the given label.
func (T *Table) Has(label string) bool {
	return T.Col(label) >= 0
}

//Column returns a copy of the cells of the column with the given label,
//or nil if there is no such column.
func (T *Table) Column(label string) []string {
	c := T.Col(label)
	if c < 0 {
		return nil
	}
	ret := make([]string, len(T.Rows))
	for i, r := range T.Rows {
		ret[i] = r[c]
	}
	return ret
}

//Select returns a new table with only the given columns, in the given
//order. All the columns must exist.
func (T *Table) Select(labels ...string) (*Table, error) {
	idx := make([]int, len(labels))
	for i, l := range labels {
		if idx[i] = T.Col(l); idx[i] < 0 {
			return nil, cycy.NewError(cycy.SchemaDrift, T.Name, fmt.Sprintf("no column %q", l), true, nil, "Select")
		}
	}
	ret := &Table{Name: T.Name, Header: append([]string(nil), labels...), Rows: make([][]string, len(T.Rows))}
	for i, r := range T.Rows {
		row := make([]string, len(idx))
		for j, c := range idx {
			row[j] = r[c]
		}
		ret.Rows[i] = row
	}
	return ret, nil
}

//pad makes all the rows as long as the header, and drops rows that are
//completely empty.
func (T *Table) pad() {
	rows := T.Rows[:0]
	for _, r := range T.Rows {
		empty := true
		for _, c := range r {
			if strings.TrimSpace(c) != "" {
				empty = false
				break
			}
		}
		if empty {
			continue
		}
		if len(r) < len(T.Header) {
			r = append(r, make([]string, len(T.Header)-len(r))...)
		} else if len(r) > len(T.Header) {
			r = r[:len(T.Header)]
		}
		rows = append(rows, r)
	}
	T.Rows = rows
}

//bom is the byte order mark spreadsheet programs put at the start of UTF-8 CSV files.
const bom = "\ufeff"

//ReadCSV reads a comma separated table whose first record is the header.
//Header cells may contain line breaks if they are quoted. A leading byte
//order mark is dropped.
func ReadCSV(r io.Reader, name string) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, cycy.NewError(cycy.Malformed, name, "can't parse CSV", true, err, "ReadCSV")
	}
	if len(records) == 0 {
		return nil, cycy.NewError(cycy.Malformed, name, "empty table", true, nil, "ReadCSV")
	}
	if len(records[0]) > 0 {
		records[0][0] = strings.TrimPrefix(records[0][0], bom)
	}
	T := &Table{Name: name, Header: records[0], Rows: records[1:]}
	T.pad()
	return T, nil
}

//ReadXLSX reads the first sheet of an Excel workbook.
func ReadXLSX(name string) (*Table, error) {
	f, err := excelize.OpenFile(name)
	if err != nil {
		return nil, cycy.NewError(cycy.Malformed, name, "can't open workbook", true, err, "ReadXLSX")
	}
	defer f.Close()
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, cycy.NewError(cycy.Malformed, name, "workbook has no sheets", true, nil, "ReadXLSX")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, cycy.NewError(cycy.Malformed, name, "can't read sheet "+sheets[0], true, err, "ReadXLSX")
	}
	if len(rows) == 0 {
		return nil, cycy.NewError(cycy.Malformed, name, "empty table", true, nil, "ReadXLSX")
	}
	T := &Table{Name: name, Header: rows[0], Rows: rows[1:]}
	T.pad()
	return T, nil
}

//ReadTable reads the table in the file name. The format is chosen from the
//extension: .xlsx workbooks, anything else is CSV, possibly compressed
//(see Open).
func ReadTable(name string) (*Table, error) {
	if strings.EqualFold(filepath.Ext(name), ".xlsx") {
		if err := mustExist(name); err != nil {
			return nil, err
		}
		return ReadXLSX(name)
	}
	r, err := Open(name)
	if err != nil {
		return nil, cycy.ErrDecorate(err, "ReadTable")
	}
	defer r.Close()
	T, err := ReadCSV(r, name)
	if err != nil {
		return nil, cycy.ErrDecorate(err, "ReadTable")
	}
	return T, nil
}

//WriteCSV writes the table, header included, as comma separated values.
func (T *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(T.Header); err != nil {
		return err
	}
	if err := cw.WriteAll(T.Rows); err != nil {
		return err
	}
	return cw.Error()
}

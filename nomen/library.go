/*
 * library.go, part of cycy.
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

//Package nomen translates CCPNMR atom names into the names CYANA expects,
//using a two-tier library: residue specific tables for a few residue types
//and a GENERAL table for everything else.
package nomen

import (
	_ "embed"
	"encoding/json"
	"sort"
	"strings"

	"github.com/biosys/cycy"
	"github.com/biosys/cycy/tabio"
)

//General is the library key of the table used for any residue type.
const General = "GENERAL"

//specific lists the residue types whose residue table is looked up before
//GENERAL. Tables for any other residue type in the library are ignored.
var specific = map[string]bool{
	"ALA": true,
	"ARG": true,
	"GLY": true,
	"HIS": true,
	"TRP": true,
	"VAL": true,
	"ILE": true,
	"LEU": true,
}

//IsSpecific returns true if atoms of residue type res are first looked up in
//the residue's own table.
func IsSpecific(res string) bool {
	return specific[res]
}

//Library maps residue types to tables of atom name translations. It is not
//modified after it is built.
type Library struct {
	tables map[string]map[string]string
}

//NewLibrary builds a library from nested maps. Residue keys are upper-cased.
//The maps are copied.
func NewLibrary(tables map[string]map[string]string) *Library {
	L := &Library{tables: make(map[string]map[string]string, len(tables))}
	for res, t := range tables {
		c := make(map[string]string, len(t))
		for k, v := range t {
			c[k] = v
		}
		L.tables[strings.ToUpper(res)] = c
	}
	return L
}

//LoadLibrary reads a library file: a JSON object (YAML for .yaml and .yml
//files) of residue types to objects of atom name to translated name.
//A missing or malformed library is a critical error.
func LoadLibrary(name string) (*Library, error) {
	var tables map[string]map[string]string
	if err := tabio.DecodeKeyed(name, &tables); err != nil {
		return nil, cycy.ErrDecorate(err, "LoadLibrary")
	}
	if len(tables) == 0 {
		return nil, cycy.NewError(cycy.Malformed, name, "empty nomenclature library", true, nil, "LoadLibrary")
	}
	return NewLibrary(tables), nil
}

//Builtin is the library name that selects DefaultLibrary in Open.
const Builtin = "builtin"

//Open returns the built-in library if name is Builtin, and the library in
//the file name otherwise.
func Open(name string) (*Library, error) {
	if name == Builtin {
		return DefaultLibrary(), nil
	}
	L, err := LoadLibrary(name)
	if err != nil {
		return nil, cycy.ErrDecorate(err, "Open")
	}
	return L, nil
}

//go:embed ccpnmr3_to_cyana.json
var defaultLib []byte

//DefaultLibrary returns the small library shipped with cycy, for CCPNMR
//version 3 names. It covers pseudo-atoms of methyl and methylene groups and
//the x/y names of non-stereospecific assignments. It is only used when
//asked for by name (Builtin); a laboratory library should be preferred.
func DefaultLibrary() *Library {
	var tables map[string]map[string]string
	if err := json.Unmarshal(defaultLib, &tables); err != nil {
		panic("nomen: embedded library is broken: " + err.Error())
	}
	return NewLibrary(tables)
}

//Lookup returns the entry for atom in the table of res, without fallbacks.
func (L *Library) Lookup(res, atom string) (string, bool) {
	t, ok := L.tables[res]
	if !ok {
		return "", false
	}
	v, ok := t[atom]
	return v, ok
}

//Translate returns the CYANA name for atom in a residue of type res.
//For the residue types in the specific set the residue's table is tried
//first, then GENERAL. For every other type (including an unknown one, "")
//only GENERAL is tried. If nothing is found, atom is returned as it is.
func (L *Library) Translate(res, atom string) string {
	if IsSpecific(res) {
		if v, ok := L.Lookup(res, atom); ok {
			return v
		}
	}
	if v, ok := L.Lookup(General, atom); ok {
		return v
	}
	return atom
}

//Residues returns the residue keys of the library, sorted.
func (L *Library) Residues() []string {
	ret := make([]string, 0, len(L.tables))
	for k := range L.tables {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}

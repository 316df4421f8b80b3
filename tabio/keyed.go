/*
 * keyed.go, part of cycy.
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

package tabio

import (
	"encoding/json"
	"io"
	"path/filepath"
	"strings"

	"github.com/biosys/cycy"
	"gopkg.in/yaml.v3"
)

//IsYAML returns true if name ends in .yaml or .yml, ignoring a compression suffix.
func IsYAML(name string) bool {
	lname := strings.ToLower(name)
	for _, c := range []string{".gz", ".zst", ".zstd"} {
		lname = strings.TrimSuffix(lname, c)
	}
	ext := filepath.Ext(lname)
	return ext == ".yaml" || ext == ".yml"
}

//DecodeKeyed decodes the structured file name into v. YAML is used for
//.yaml and .yml files, JSON for everything else (renumbering tables are
//JSON files with any extension, such as proline.txt).
func DecodeKeyed(name string, v interface{}) error {
	r, err := Open(name)
	if err != nil {
		return cycy.ErrDecorate(err, "DecodeKeyed")
	}
	defer r.Close()
	b, err := io.ReadAll(r)
	if err != nil {
		return cycy.NewError(cycy.KindIO, name, "can't read", true, err, "DecodeKeyed")
	}
	if IsYAML(name) {
		err = yaml.Unmarshal(b, v)
	} else {
		err = json.Unmarshal(b, v)
	}
	if err != nil {
		return cycy.NewError(cycy.Malformed, name, "malformed structured file", true, err, "DecodeKeyed")
	}
	return nil
}

/*
 * residues.go, part of cycy.
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
	"fmt"
	"strings"
)

//A map between 1-letter names of the standard aminoacidic residues and
//the corresponding 3-letter names.
var one2ThreeLetter = map[byte]string{
	'S': "SER",
	'T': "THR",
	'N': "ASN",
	'Q': "GLN",
	'C': "CYS",
	'G': "GLY",
	'P': "PRO",
	'A': "ALA",
	'V': "VAL",
	'I': "ILE",
	'L': "LEU",
	'M': "MET",
	'F': "PHE",
	'Y': "TYR",
	'W': "TRP",
	'R': "ARG",
	'H': "HIS",
	'K': "LYS",
	'D': "ASP",
	'E': "GLU",
}

//ThreeLetter returns the 3-letter upper case name for the 1-letter residue
//code c. It accepts lower case codes.
func ThreeLetter(c byte) (string, error) {
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	three, ok := one2ThreeLetter[c]
	if !ok {
		return "", fmt.Errorf("%q is not a standard aminoacid", c)
	}
	return three, nil
}

//IsStandard returns true if name is the 3-letter code of one of the 20
//standard aminoacids. Case is ignored.
func IsStandard(name string) bool {
	name = strings.ToUpper(name)
	for _, v := range one2ThreeLetter {
		if v == name {
			return true
		}
	}
	return false
}

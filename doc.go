/*
 * doc.go, part of cycy.
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

/***Dedicated to the people who still assign their spectra by hand***/

/*
Package cycy converts CCPNMR chemical-shift attributions and NOE peak tables
into the text inputs read by CYANA and XEASY.

	**cycy capabilities**

    Reads CCPNMR attribution exports (CSV, optionally gzip or zstd
	compressed, or XLSX), merges repeated observations of the same atom
	and renumbers insertion-coded duplicate residues ("45-1").

    Backfills residue types from a sequence listing (prot.seq) and
	builds that listing from a one-letter sequence.

    Translates CCPNMR atom names into the CYANA vocabulary through a
	two-tier library (residue specific, then GENERAL) and writes .prot
	files.

    Writes 13C and 15N edited NOESY peak lists in the XEASY format used
	by CYANA 2 and CYANA 3.

    Runs the whole conversion for one sample, or for many samples in
	parallel.

The root package holds the types shared by the subpackages: the chemical
shift record, the column labels of the CCPNMR export, residue tables and the
error type. The work is done in seqmap, attrib, nomen, xeasy and pipeline.
*/
package cycy

/*
 * config.go, part of cycy.
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

package pipeline

import (
	"fmt"
	"path/filepath"

	"github.com/biosys/cycy"
	"github.com/biosys/cycy/nomen"
	"github.com/biosys/cycy/tabio"
)

//Conventional file names in a working directory.
const (
	SeqFile        = "prot.seq"
	RenumberFile   = "proline.txt"
	AttribFile     = "attrib.csv"
	C13File        = "13C.csv"
	N15File        = "15N.csv"
	AggregatedFile = "attrib_wo_double.csv"
	ProtFile       = "name.prot"
	CyanaProtFile  = "attrib_cya.prot"
	LibraryFile    = "lib-ccpnmrV3_to_cyana.lib"
)

//DefaultVersion is the CYANA version of the peak lists when none is given.
const DefaultVersion = 2

//Config describes one conversion. Relative paths are taken from Workdir.
type Config struct {
	Name        string `yaml:"name" json:"name"`
	Workdir     string `yaml:"workdir" json:"workdir"`
	Outdir      string `yaml:"outdir" json:"outdir"`           //Workdir if empty
	Sequence    string `yaml:"sequence" json:"sequence"`       //one-letter sequence, written to prot.seq if given
	Start       int    `yaml:"start" json:"start"`             //number of the first residue of Sequence
	SeqFile     string `yaml:"seq" json:"seq"`                 //sequence listing, used when Sequence is empty
	Attrib      string `yaml:"attrib" json:"attrib"`           //CCPNMR attribution table
	Renumbering string `yaml:"renumbering" json:"renumbering"` //optional
	Library     string `yaml:"library" json:"library"`         //nomen.Builtin for the embedded library
	C13         string `yaml:"c13" json:"c13"`                 //13C NOESY peak table
	N15         string `yaml:"n15" json:"n15"`                 //15N NOESY peak table
	Version     int    `yaml:"version" json:"version"`         //CYANA version of the peak lists, 2 or 3
	NoPeaks     bool   `yaml:"no_peaks" json:"no_peaks"`       //skip the peak lists
	Plot        string `yaml:"plot" json:"plot"`               //shift plot file name, no plot if empty
}

//Defaults returns the configuration of the conventional layout: every
//input and output in workdir, under the names used by CCPNMR users of the
//conversion scripts.
func Defaults(workdir string) Config {
	return Config{
		Name:        filepath.Base(workdir),
		Workdir:     workdir,
		Start:       1,
		SeqFile:     SeqFile,
		Attrib:      AttribFile,
		Renumbering: RenumberFile,
		Library:     LibraryFile,
		C13:         C13File,
		N15:         N15File,
		Version:     DefaultVersion,
	}
}

//withDefaults fills the empty fields of C from Defaults(C.Workdir).
func (C Config) withDefaults() Config {
	if C.Workdir == "" {
		C.Workdir = "."
	}
	D := Defaults(C.Workdir)
	fill := func(s *string, d string) {
		if *s == "" {
			*s = d
		}
	}
	fill(&C.Name, D.Name)
	fill(&C.SeqFile, D.SeqFile)
	fill(&C.Attrib, D.Attrib)
	fill(&C.Renumbering, D.Renumbering)
	fill(&C.Library, D.Library)
	fill(&C.C13, D.C13)
	fill(&C.N15, D.N15)
	if C.Start == 0 && C.Sequence != "" {
		C.Start = D.Start
	}
	if C.Version == 0 {
		C.Version = D.Version
	}
	return C
}

//path resolves name against the working directory.
func (C Config) path(name string) string {
	if name == "" || name == nomen.Builtin || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(C.Workdir, name)
}

//outdir returns the output directory.
func (C Config) outdir() string {
	if C.Outdir == "" {
		return C.Workdir
	}
	return C.path(C.Outdir)
}

//out returns the path of an output file.
func (C Config) out(name string) string {
	return filepath.Join(C.outdir(), name)
}

//Validate checks the fields that can't be defaulted.
func (C Config) Validate() error {
	if !C.NoPeaks && C.Version != 2 && C.Version != 3 {
		return cycy.NewError(cycy.Unsupported, "", fmt.Sprintf("CYANA version %d not supported, use 2 or 3", C.Version), true, nil, "Validate")
	}
	if C.Plot != "" && filepath.Base(C.Plot) != C.Plot {
		return cycy.NewError(cycy.Unsupported, C.Plot, "the plot is written to the output directory, give a file name only", true, nil, "Validate")
	}
	return nil
}

//Batch is a set of independent conversions.
type Batch struct {
	Workers int      `yaml:"workers" json:"workers"` //concurrent runs, 1 if less than 1
	Runs    []Config `yaml:"runs" json:"runs"`
}

//LoadBatch reads a batch description (YAML, or JSON for other extensions).
//Relative working directories are taken from the directory of the file.
func LoadBatch(name string) (*Batch, error) {
	B := new(Batch)
	if err := tabio.DecodeKeyed(name, B); err != nil {
		return nil, cycy.ErrDecorate(err, "LoadBatch")
	}
	if len(B.Runs) == 0 {
		return nil, cycy.NewError(cycy.Malformed, name, "no runs in batch", true, nil, "LoadBatch")
	}
	base := filepath.Dir(name)
	for i := range B.Runs {
		w := B.Runs[i].Workdir
		if w == "" {
			return nil, cycy.NewError(cycy.Malformed, name, fmt.Sprintf("run %d has no working directory", i+1), true, nil, "LoadBatch")
		}
		if !filepath.IsAbs(w) {
			B.Runs[i].Workdir = filepath.Join(base, w)
		}
	}
	if B.Workers < 1 {
		B.Workers = 1
	}
	return B, nil
}

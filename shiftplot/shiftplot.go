/*
 * shiftplot.go, part of cycy.
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

//Package shiftplot draws the aggregated chemical shifts against the
//residue number, one series per nucleus.
package shiftplot

import (
	"fmt"
	"image/color"
	"math"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/biosys/cycy"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

//Nucleus names the series of a plot.
const (
	Hydrogen = "H"
	Carbon   = "C"
	Nitrogen = "N"
	Other    = "other"
)

var order = []string{Hydrogen, Carbon, Nitrogen, Other}

//Nucleus returns the series an atom name belongs to, from its first letter.
//Pseudo-atoms (Q...) are hydrogens.
func Nucleus(atom string) string {
	if atom == "" {
		return Other
	}
	switch strings.ToUpper(atom[:1]) {
	case "H", "Q":
		return Hydrogen
	case "C":
		return Carbon
	case "N":
		return Nitrogen
	}
	return Other
}

//Points returns the (residue number, shift) points of each nucleus. Shifts
//with a non-numeric sequence code or no value are skipped, as is any
//series left empty. Points are sorted by residue number.
func Points(shifts []cycy.Shift) map[string]plotter.XYs {
	ret := make(map[string]plotter.XYs)
	for _, s := range shifts {
		pos, err := strconv.Atoi(strings.TrimSpace(s.SeqCode))
		if err != nil || math.IsNaN(s.Value) {
			continue
		}
		n := Nucleus(s.Atom)
		ret[n] = append(ret[n], plotter.XY{X: float64(pos), Y: s.Value})
	}
	for _, v := range ret {
		sort.SliceStable(v, func(i, j int) bool { return v[i].X < v[j].X })
	}
	return ret
}

//colors returns a color for the key-th of steps series, going around the hue circle.
func colors(key, steps int) color.RGBA {
	h := 300.0 * float64(key) / float64(steps)
	i := math.Floor(h / 60)
	f := h/60 - i
	q := 1 - f
	var r, g, b float64
	switch int(i) {
	case 0:
		r, g, b = 1, f, 0
	case 1:
		r, g, b = q, 1, 0
	case 2:
		r, g, b = 0, 1, f
	case 3:
		r, g, b = 0, q, 1
	case 4:
		r, g, b = f, 0, 1
	default:
		r, g, b = 1, 0, q
	}
	return color.RGBA{R: uint8(r * 200), G: uint8(g * 200), B: uint8(b * 200), A: 255}
}

var glyphs = []draw.GlyphDrawer{draw.CircleGlyph{}, draw.SquareGlyph{}, draw.TriangleGlyph{}, draw.CrossGlyph{}}

var formats = map[string]bool{".png": true, ".svg": true, ".pdf": true, ".eps": true, ".jpg": true, ".jpeg": true, ".tif": true, ".tiff": true}

//Plot draws the shifts and saves the plot to filename. The format is
//given by the extension of filename (png, svg, pdf, eps, jpg or tiff).
func Plot(shifts []cycy.Shift, title, filename string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if !formats[ext] {
		return cycy.NewError(cycy.Unsupported, filename, fmt.Sprintf("can't plot to %q files", ext), true, nil, "Plot")
	}
	pts := Points(shifts)
	if len(pts) == 0 {
		return cycy.NewError(cycy.Malformed, filename, "no shift with a numeric sequence code to plot", false, nil, "Plot")
	}
	p := plot.New()
	p.Title.Text = title
	p.Title.Padding = 3 * vg.Millimeter
	p.X.Label.Text = "Residue"
	p.Y.Label.Text = "Shift (ppm)"
	p.Legend.Top = true
	p.Add(plotter.NewGrid())
	for i, n := range order {
		xy, ok := pts[n]
		if !ok {
			continue
		}
		s, err := plotter.NewScatter(xy)
		if err != nil {
			return cycy.NewError(cycy.Malformed, filename, "can't build "+n+" series", true, err, "Plot")
		}
		s.GlyphStyle.Shape = glyphs[i]
		s.GlyphStyle.Color = colors(i, len(order))
		s.GlyphStyle.Radius = vg.Points(2)
		p.Add(s)
		p.Legend.Add(n, s)
	}
	if err := p.Save(8*vg.Inch, 5*vg.Inch, filename); err != nil {
		return cycy.NewError(cycy.KindIO, filename, "can't save plot", true, err, "Plot")
	}
	return nil
}

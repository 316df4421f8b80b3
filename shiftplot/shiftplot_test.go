package shiftplot

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/biosys/cycy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var shifts = []cycy.Shift{
	{SeqCode: "3", Atom: "H", Value: 8.2},
	{SeqCode: "1", Atom: "HA", Value: 4.3},
	{SeqCode: "1", Atom: "CA", Value: 52.1},
	{SeqCode: "2", Atom: "N", Value: 120.4},
	{SeqCode: "2", Atom: "QB", Value: 1.4},
	{SeqCode: "@12", Atom: "H", Value: 7.9},
	{SeqCode: "4", Atom: "CB", Value: math.NaN()},
	{SeqCode: "4", Atom: "SG", Value: 1.0},
}

func TestNucleus(Te *testing.T) {
	assert.Equal(Te, Hydrogen, Nucleus("HB2"))
	assert.Equal(Te, Hydrogen, Nucleus("QG1"))
	assert.Equal(Te, Carbon, Nucleus("CA"))
	assert.Equal(Te, Nitrogen, Nucleus("NE2"))
	assert.Equal(Te, Other, Nucleus("OD1"))
	assert.Equal(Te, Other, Nucleus(""))
}

func TestPoints(Te *testing.T) {
	pts := Points(shifts)
	require.Len(Te, pts[Hydrogen], 3)
	assert.Equal(Te, 1.0, pts[Hydrogen][0].X)
	assert.Equal(Te, 3.0, pts[Hydrogen][2].X)
	assert.Len(Te, pts[Carbon], 1)
	assert.Len(Te, pts[Nitrogen], 1)
	assert.Len(Te, pts[Other], 1)
}

func TestPlot(Te *testing.T) {
	dir := Te.TempDir()
	name := filepath.Join(dir, "shifts.png")
	require.NoError(Te, Plot(shifts, "test", name))
	info, err := os.Stat(name)
	require.NoError(Te, err)
	assert.NotZero(Te, info.Size())

	err = Plot(shifts, "test", filepath.Join(dir, "shifts.txt"))
	k, _ := cycy.KindOf(err)
	assert.Equal(Te, cycy.Unsupported, k)

	err = Plot(nil, "test", name)
	require.Error(Te, err)
	assert.False(Te, cycy.IsCritical(err))
}

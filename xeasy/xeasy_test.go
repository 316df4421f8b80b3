package xeasy

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/biosys/cycy"
	"github.com/biosys/cycy/tabio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const peakCSV = `_object,Pos F1,Pos F2,Pos F3,Volume
NOE:1,8.21,4.35,120.5,15000
NOE:2,7.95,None,118.25,None
`

func table(Te *testing.T) *tabio.Table {
	T, err := tabio.ReadCSV(strings.NewReader(peakCSV), "15N.csv")
	require.NoError(Te, err)
	return T
}

func dataLines(s string) []string {
	var ret []string
	for _, l := range strings.Split(strings.TrimSuffix(s, "\n"), "\n") {
		if !strings.HasPrefix(l, "#") {
			ret = append(ret, l)
		}
	}
	return ret
}

func TestFormatNitrogen(Te *testing.T) {
	var out bytes.Buffer
	require.NoError(Te, Format(table(Te), Nitrogen, 3, &out))
	assert.True(Te, strings.HasPrefix(out.String(), "# Number of dimensions 3\n#FORMAT xeasy3D\n#INAME 1 HN\n#INAME 2 H\n#INAME 3 N\n#SPECTRUM N15NOESY  HN H N\n"))
	lines := dataLines(out.String())
	require.Len(Te, lines, 2)
	assert.Equal(Te, "1\t8.21\t4.35\t120.5\t1\tU\t15000\t0.00e+00\t0\t0\t0\t0\t0", lines[0])
	assert.Equal(Te, "2\t7.95\t0\t118.25\t1\tU\t0\t0.00e+00\t0\t0\t0\t0\t0", lines[1])
}

func TestFormatCarbonReorders(Te *testing.T) {
	var out bytes.Buffer
	require.NoError(Te, Format(table(Te), Carbon, 2, &out))
	assert.True(Te, strings.HasSuffix(strings.SplitN(out.String(), "1\t", 2)[0], "#CYANAFORMAT HhC\n"))
	lines := dataLines(out.String())
	require.Len(Te, lines, 2)
	assert.Equal(Te, "1\t8.21\t120.5\t4.35\t1\tU\t15000\t0.00e+00\t0\t0\t0\t0\t0", lines[0])
	assert.Equal(Te, "2\t7.95\t118.25\t0\t1\tU\t0\t0.00e+00\t0\t0\t0\t0\t0", lines[1])
}

func TestFormatKeepsIntegerColumns(Te *testing.T) {
	T, err := tabio.ReadCSV(strings.NewReader("_object,Pos F1,Pos F2,Pos F3,Volume\nNOE:1,8.2,4.0,120,15000\nNOE:2,7.9,4.5,None,2.5e3\n"), "13C.csv")
	require.NoError(Te, err)
	var out bytes.Buffer
	require.NoError(Te, Format(T, Carbon, 3, &out))
	lines := dataLines(out.String())
	require.Len(Te, lines, 2)
	//Pos F3 has only integers, Volume has a float.
	assert.Equal(Te, "1\t8.2\t120\t4.0\t1\tU\t15000.0\t0.00e+00\t0\t0\t0\t0\t0", lines[0])
	assert.Equal(Te, "2\t7.9\t0\t4.5\t1\tU\t2500.0\t0.00e+00\t0\t0\t0\t0\t0", lines[1])
}

func TestVersionSelection(Te *testing.T) {
	var v2, v3 bytes.Buffer
	require.NoError(Te, Format(table(Te), Nitrogen, 2, &v2))
	require.NoError(Te, Format(table(Te), Nitrogen, 3, &v3))
	assert.Equal(Te, dataLines(v2.String()), dataLines(v3.String()))
	assert.Contains(Te, v2.String(), "#CYANAFORMAT HhN\n")
	assert.NotContains(Te, v2.String(), "#SPECTRUM")
	assert.Contains(Te, v3.String(), "#SPECTRUM N15NOESY  HN H N\n")
}

func TestUnsupportedVersion(Te *testing.T) {
	var out bytes.Buffer
	err := Format(table(Te), Nitrogen, 4, &out)
	require.Error(Te, err)
	k, _ := cycy.KindOf(err)
	assert.Equal(Te, cycy.Unsupported, k)
	assert.Zero(Te, out.Len())

	dir := Te.TempDir()
	_, err = WriteFiles(filepath.Join(dir, "13C.csv"), filepath.Join(dir, "15N.csv"), 1, dir, nil)
	k, _ = cycy.KindOf(err)
	assert.Equal(Te, cycy.Unsupported, k)
}

func TestFormatBadCell(Te *testing.T) {
	T, err := tabio.ReadCSV(strings.NewReader("_object,Pos F1,Pos F2,Pos F3,Volume\nNOE:1,8.2,x,1,1\n"), "13C.csv")
	require.NoError(Te, err)
	var out bytes.Buffer
	err = Format(T, Carbon, 3, &out)
	require.Error(Te, err)
	assert.True(Te, cycy.IsCritical(err))
}

func TestWriteFiles(Te *testing.T) {
	dir := Te.TempDir()
	c13 := filepath.Join(dir, "13C.csv")
	n15 := filepath.Join(dir, "15N.csv")
	require.NoError(Te, os.WriteFile(c13, []byte(peakCSV), 0644))
	require.NoError(Te, os.WriteFile(n15, []byte(peakCSV), 0644))
	out := filepath.Join(dir, "out")
	written, err := WriteFiles(c13, n15, 3, out, nil)
	require.NoError(Te, err)
	assert.Equal(Te, []string{filepath.Join(out, "13C.peaks"), filepath.Join(out, "15N.peaks")}, written)
	b, err := os.ReadFile(filepath.Join(out, "13C.peaks"))
	require.NoError(Te, err)
	assert.Contains(Te, string(b), "#SPECTRUM C13NOESY  HC H C\n")
}

package attrib

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/biosys/cycy"
	"github.com/biosys/cycy/seqmap"
	"github.com/biosys/cycy/tabio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func table(Te *testing.T, csv string) *tabio.Table {
	T, err := tabio.ReadCSV(strings.NewReader(csv), "attrib.csv")
	require.NoError(Te, err)
	return T
}

func seq(Te *testing.T, s string) *seqmap.Map {
	M, err := seqmap.Read(strings.NewReader(s), "prot.seq", nil)
	require.NoError(Te, err)
	return M
}

func find(R *Result, code, atom string) *cycy.Shift {
	for i := range R.Shifts {
		if R.Shifts[i].SeqCode == code && R.Shifts[i].Atom == atom {
			return &R.Shifts[i]
		}
	}
	return nil
}

func TestRenumber(Te *testing.T) {
	cases := map[string]string{
		"45-1":  "44",
		"45":    "45",
		"101-1": "100",
		"abc-1": "abc-1",
		"-1":    "-1",
		"-10":   "-10",
		"12":    "12",
	}
	for in, want := range cases {
		assert.Equal(Te, want, Renumber(in), in)
	}
}

const threeDup = `uniqueId,Value (ppm),Value Error (ppm),SequenceCode,ResidueType,AtomName,Total Peak Count
11,7.10,0.01,12,Ser,H,3
7,7.12,0.03,12,Ser,H,2
9,7.14,0.02,12,Ser,H,1
12,120.5,0.1,12,Ser,N,0
13,120.6,0.1,12,Ser,N,
`

func TestAggregationArithmetic(Te *testing.T) {
	R, err := Aggregate(table(Te, threeDup), nil, nil)
	require.NoError(Te, err)
	require.Len(Te, R.Shifts, 1, "rows with zero or unset counts are filtered")
	s := R.Shifts[0]
	assert.InDelta(Te, 7.12, s.Value, 1e-9)
	assert.InDelta(Te, 0.02, s.ValueError, 1e-9)
	assert.Equal(Te, 6, s.Peaks)
	assert.Equal(Te, 7, s.ID)
	assert.True(Te, s.HasID)
	assert.Equal(Te, "SER", s.ResType)
	assert.Equal(Te, 2, R.Stats.Filtered)
	assert.Equal(Te, 2, R.Stats.Duplicates)
	assert.Equal(Te, OutputColumns, R.Columns)
}

const messy = "uniqueId,\"Value\n(ppm)\",\"Value Error\n(ppm)\",SequenceCode,ResidueType,AtomName,\"Total\nPeak Count\"\n" +
	"1,3.80,0.01,3-1,None,HA,2\n" +
	"2,3.82,0.01,3-1,nan,HA,1\n" +
	"3,63.0,0.2,2,,CA,5\n" +
	"4,52.1,0.2,1,gly,CA,1\n" +
	"5,4.1,0.1,1,,HA,1\n" +
	"6,8.0,abc,7,,H,1\n" +
	"7,176.1,0.1,10,,C,1\n"

func TestAggregateBackfillAndRenumber(Te *testing.T) {
	M := seq(Te, "ALA 1\nPRO 2\nGLY 3\n")
	R, err := Aggregate(table(Te, messy), M, nil)
	require.NoError(Te, err)

	ha := find(R, "2", "HA")
	require.NotNil(Te, ha)
	assert.InDelta(Te, 3.81, ha.Value, 1e-9)
	assert.Equal(Te, 3, ha.Peaks)
	assert.Equal(Te, "PRO", ha.ResType, "backfilled from the renumbered code")

	ca := find(R, "2", "CA")
	require.NotNil(Te, ca)
	assert.Equal(Te, 5, ca.Peaks)
	assert.Equal(Te, 63.0, ca.Value)

	assert.Equal(Te, "GLY", find(R, "1", "CA").ResType, "existing types are upper-cased, not looked up")
	assert.Equal(Te, "ALA", find(R, "1", "HA").ResType)
	assert.Equal(Te, "", find(R, "7", "H").ResType, "unresolvable types stay unset")
	assert.True(Te, math.IsNaN(find(R, "7", "H").ValueError))
	assert.Equal(Te, 1, R.Stats.Coerced[cycy.ColValueError])
	assert.Equal(Te, 2, R.Stats.Renumbered)

	var codes []string
	for _, s := range R.Shifts {
		codes = append(codes, s.SeqCode+"/"+s.Atom)
	}
	assert.Equal(Te, []string{"1/CA", "1/HA", "2/CA", "2/HA", "7/H", "10/C"}, codes)
}

func TestAggregateLabelConventions(Te *testing.T) {
	oneLine := strings.Replace(messy, "\"Value\n(ppm)\",\"Value Error\n(ppm)\"", "Value (ppm),Value Error (ppm)", 1)
	oneLine = strings.Replace(oneLine, "\"Total\nPeak Count\"", "Total Peak Count", 1)
	require.NotEqual(Te, messy, oneLine)
	M := seq(Te, "ALA 1\nPRO 2\nGLY 3\n")
	a, err := Aggregate(table(Te, messy), M, nil)
	require.NoError(Te, err)
	b, err := Aggregate(table(Te, oneLine), M, nil)
	require.NoError(Te, err)
	assert.Equal(Te, a.Table().Rows, b.Table().Rows)
}

func TestAggregateUniqueAndIdempotent(Te *testing.T) {
	M := seq(Te, "ALA 1\nPRO 2\nGLY 3\n")
	once, err := Aggregate(table(Te, messy), M, nil)
	require.NoError(Te, err)
	seen := map[[2]string]bool{}
	for _, s := range once.Shifts {
		assert.False(Te, seen[s.Key()], "duplicate %v", s.Key())
		seen[s.Key()] = true
	}

	var buf bytes.Buffer
	require.NoError(Te, once.Table().WriteCSV(&buf))
	twice, err := Aggregate(table(Te, buf.String()), M, nil)
	require.NoError(Te, err)
	assert.Equal(Te, once.Table().Rows, twice.Table().Rows)
	assert.Equal(Te, once.Columns, twice.Columns)
	assert.Equal(Te, 0, twice.Stats.Duplicates)
}

func TestAggregateSchemaDrift(Te *testing.T) {
	_, err := Aggregate(table(Te, "AtomName,Value (ppm)\nHA,4.1\n"), nil, nil)
	require.Error(Te, err)
	k, _ := cycy.KindOf(err)
	assert.Equal(Te, cycy.SchemaDrift, k)
	assert.True(Te, cycy.IsCritical(err))

	core, logs := observer.New(zapcore.WarnLevel)
	R, err := Aggregate(table(Te, "SequenceCode,AtomName,Value (ppm)\n5,HA,4.1\n5,HA,4.3\n"), nil, zap.New(core))
	require.NoError(Te, err)
	assert.Equal(Te, []string{cycy.ColValue, cycy.ColSequenceCode, cycy.ColResidueType, cycy.ColAtomName}, R.Columns)
	require.Len(Te, R.Shifts, 1)
	assert.InDelta(Te, 4.2, R.Shifts[0].Value, 1e-9)
	assert.Equal(Te, 1, logs.FilterMessage("columns missing in output").Len())
	assert.Equal(Te, 1, logs.FilterMessage("no peak count column, no rows filtered").Len())
}

func TestPrepareProt(Te *testing.T) {
	M := seq(Te, "ALA 1\nPRO 2\nGLY 3\n")
	in := messy + "8,4.4,0.1,x-1,,HA,1\n9,4.5,0.1,P5,,HA,1\n"
	R, err := Aggregate(table(Te, in), M, nil)
	require.NoError(Te, err)
	P, err := PrepareProt(R, Renumbering{"P5": "5"}, nil)
	require.NoError(Te, err)
	assert.Equal(Te, 1, P.Removed, "x-1 can't be renumbered and is dropped")
	for i, r := range P.Rows {
		assert.Equal(Te, i+1, r.Index)
		assert.NotContains(Te, r.SeqCode, "-1")
	}
	assert.Equal(Te, "5", P.Rows[len(P.Rows)-1].SeqCode)

	var buf bytes.Buffer
	require.NoError(Te, P.Write(&buf))
	lines := strings.Split(buf.String(), "\n")
	assert.Equal(Te, "Index\t\"Value", lines[0])
	assert.Equal(Te, "(ppm)\"\t\"Value Error", lines[1])
	assert.Equal(Te, "(ppm)\"\tAtomName\tSequenceCode", lines[2])
	assert.Equal(Te, "1\t52.1\t0.2\tCA\t1", lines[3])
	assert.Contains(Te, buf.String(), "\t8.0\t0\tH\t7\n", "missing values are written as 0")
}

func TestPrepareProtNeedsValues(Te *testing.T) {
	R, err := Aggregate(table(Te, "SequenceCode,AtomName,Total Peak Count\n5,HA,1\n"), nil, nil)
	require.NoError(Te, err)
	_, err = PrepareProt(R, nil, nil)
	require.Error(Te, err)
	assert.True(Te, cycy.IsCritical(err))
}

func TestLoadRenumbering(Te *testing.T) {
	dir := Te.TempDir()
	js := filepath.Join(dir, "proline.txt")
	require.NoError(Te, os.WriteFile(js, []byte(`{"23-1": 22, "P41": "41"}`), 0o644))
	R, err := LoadRenumbering(js, nil)
	require.NoError(Te, err)
	assert.Equal(Te, Renumbering{"23-1": "22", "P41": "41"}, R)
	assert.Equal(Te, "22", R.Apply("23-1"))
	assert.Equal(Te, "7", R.Apply("7"))

	ym := filepath.Join(dir, "proline.yaml")
	require.NoError(Te, os.WriteFile(ym, []byte("23-1: 22\n"), 0o644))
	R, err = LoadRenumbering(ym, nil)
	require.NoError(Te, err)
	assert.Equal(Te, "22", R.Apply("23-1"))

	R, err = LoadRenumbering(filepath.Join(dir, "none.txt"), nil)
	require.Error(Te, err)
	assert.False(Te, cycy.IsCritical(err))
	assert.Empty(Te, R)

	bad := filepath.Join(dir, "bad.txt")
	require.NoError(Te, os.WriteFile(bad, []byte(`{"23-1": [1]}`), 0o644))
	_, err = LoadRenumbering(bad, nil)
	require.Error(Te, err)
	assert.True(Te, cycy.IsCritical(err))
}

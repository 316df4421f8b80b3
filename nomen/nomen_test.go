package nomen

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/biosys/cycy"
	"github.com/biosys/cycy/attrib"
	"github.com/biosys/cycy/seqmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLib() *Library {
	return NewLibrary(map[string]map[string]string{
		"GENERAL": {"HA2": "QA", "CB": "CB_gen"},
		"ser":     {"CB": "CB_ser"},
		"ALA":     {"HB%": "QB"},
	})
}

func testSeq(Te *testing.T) *seqmap.Map {
	M, err := seqmap.Read(strings.NewReader("GLY 1\nSER 2\nALA 3\n"), "prot.seq", nil)
	require.NoError(Te, err)
	return M
}

func TestTranslate(Te *testing.T) {
	L := testLib()
	assert.Equal(Te, "QA", L.Translate("GLY", "HA2"))
	//SER is not in the specific set, so its table is never used.
	assert.Equal(Te, "CB_gen", L.Translate("SER", "CB"))
	assert.Equal(Te, "QB", L.Translate("ALA", "HB%"))
	assert.Equal(Te, "HX", L.Translate("ALA", "HX"))
	assert.Equal(Te, "CB_gen", L.Translate("", "CB"))
	assert.Equal(Te, []string{"ALA", "GENERAL", "SER"}, L.Residues())
}

const prot = attrib.ProtHeader + `0	4.1	0.0	HA2	1
1	60.2	0.1	CB	2

2	1.4	0	HB%	3
3	8.2	0	H	99
`

func TestNomenclatureAndTransform(Te *testing.T) {
	L, M := testLib(), testSeq(Te)
	tr, err := Nomenclature(L, M, strings.NewReader(prot), "name.prot")
	require.NoError(Te, err)
	assert.Equal(Te, []string{"QA", "CB_gen", "QB", "H"}, tr)
	var out bytes.Buffer
	require.NoError(Te, Transform(tr, strings.NewReader(prot), &out, "name.prot"))
	want := attrib.ProtHeader + "0\t4.1\t0.0\tQA\t1\n1\t60.2\t0.1\tCB_gen\t2\n\n2\t1.4\t0\tQB\t3\n3\t8.2\t0\tH\t99\n"
	assert.Equal(Te, want, out.String())
}

func TestTransformCountMismatch(Te *testing.T) {
	var out bytes.Buffer
	err := Transform([]string{"QA"}, strings.NewReader(prot), &out, "name.prot")
	require.Error(Te, err)
	assert.True(Te, cycy.IsCritical(err))
}

func TestNomenclatureMalformed(Te *testing.T) {
	_, err := Nomenclature(testLib(), testSeq(Te), strings.NewReader(attrib.ProtHeader+"0 4.1 HA2 1\n"), "name.prot")
	require.Error(Te, err)
	k, ok := cycy.KindOf(err)
	require.True(Te, ok)
	assert.Equal(Te, cycy.Malformed, k)
	assert.Contains(Te, err.Error(), "line 4")
	_, err = Nomenclature(testLib(), testSeq(Te), strings.NewReader("Index\n"), "name.prot")
	require.Error(Te, err)
}

func TestTranslateFile(Te *testing.T) {
	dir := Te.TempDir()
	in := filepath.Join(dir, "name.prot")
	out := filepath.Join(dir, "attrib_cya.prot")
	require.NoError(Te, os.WriteFile(in, []byte(prot), 0644))
	require.NoError(Te, TranslateFile(testLib(), testSeq(Te), in, out, nil))
	b, err := os.ReadFile(out)
	require.NoError(Te, err)
	assert.True(Te, strings.HasPrefix(string(b), attrib.ProtHeader))
	assert.Contains(Te, string(b), "\tQB\t3\n")

	err = TranslateFile(testLib(), testSeq(Te), filepath.Join(dir, "nope.prot"), filepath.Join(dir, "x.prot"), nil)
	require.Error(Te, err)
	k, _ := cycy.KindOf(err)
	assert.Equal(Te, cycy.MissingInput, k)
	_, err = os.Stat(filepath.Join(dir, "x.prot"))
	assert.True(Te, os.IsNotExist(err))
}

func TestLoadLibrary(Te *testing.T) {
	dir := Te.TempDir()
	js := filepath.Join(dir, "lib.json")
	require.NoError(Te, os.WriteFile(js, []byte(`{"general": {"HA2": "QA"}}`), 0644))
	L, err := LoadLibrary(js)
	require.NoError(Te, err)
	assert.Equal(Te, "QA", L.Translate("GLY", "HA2"))

	ym := filepath.Join(dir, "lib.yaml")
	require.NoError(Te, os.WriteFile(ym, []byte("GENERAL:\n  HB%: QB\nLEU:\n  HD1%: QD1\n"), 0644))
	L, err = LoadLibrary(ym)
	require.NoError(Te, err)
	assert.Equal(Te, "QD1", L.Translate("LEU", "HD1%"))

	bad := filepath.Join(dir, "bad.json")
	require.NoError(Te, os.WriteFile(bad, []byte(`{"GENERAL": [`), 0644))
	_, err = LoadLibrary(bad)
	require.Error(Te, err)
	assert.True(Te, cycy.IsCritical(err))

	_, err = LoadLibrary(filepath.Join(dir, "missing.json"))
	require.Error(Te, err)
	assert.True(Te, cycy.IsCritical(err))
}

func TestDefaultLibrary(Te *testing.T) {
	L := DefaultLibrary()
	assert.Contains(Te, L.Residues(), General)
	assert.Equal(Te, "QA", L.Translate("GLY", "HA%"))
	assert.Equal(Te, "QB", L.Translate("SER", "HB%"))
	assert.Equal(Te, "QQD", L.Translate("LEU", "HD%"))
	assert.Equal(Te, "N", L.Translate("LEU", "N"))
}

func TestOpen(Te *testing.T) {
	L, err := Open(Builtin)
	require.NoError(Te, err)
	assert.Equal(Te, DefaultLibrary().Residues(), L.Residues())
	_, err = Open(filepath.Join(Te.TempDir(), "lib-ccpnmrV3_to_cyana.lib"))
	require.Error(Te, err)
	k, _ := cycy.KindOf(err)
	assert.Equal(Te, cycy.MissingInput, k)
	assert.True(Te, cycy.IsCritical(err))
}

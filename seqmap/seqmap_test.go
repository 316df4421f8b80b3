package seqmap

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/biosys/cycy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRead(Te *testing.T) {
	in := "Ala 1\n\nPRO\t2\nGLY 3 extra\nX\nSER two\n"
	core, logs := observer.New(zapcore.WarnLevel)
	M, err := Read(strings.NewReader(in), "prot.seq", zap.New(core))
	require.NoError(Te, err)
	assert.Equal(Te, 3, M.Len())
	assert.Equal(Te, []int{1, 2, 3}, M.Positions())
	t, ok := M.Type(1)
	assert.True(Te, ok)
	assert.Equal(Te, "ALA", t)
	t, ok = M.Lookup(" 3")
	assert.True(Te, ok)
	assert.Equal(Te, "GLY", t)
	_, ok = M.Lookup("3-1")
	assert.False(Te, ok)
	assert.Equal(Te, 1, logs.FilterMessageSnippet("non-integer").Len())
}

func TestLoadMissingIsNotFatal(Te *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	M, err := Load(filepath.Join(Te.TempDir(), "prot.seq"), zap.New(core))
	require.Error(Te, err)
	assert.False(Te, cycy.IsCritical(err))
	require.NotNil(Te, M)
	assert.Equal(Te, 0, M.Len())
	_, ok := M.Lookup("1")
	assert.False(Te, ok)
	assert.Equal(Te, 1, logs.Len())
}

func TestOneLetterRoundTrip(Te *testing.T) {
	M, err := FromOneLetter("APg\nw", 41)
	require.NoError(Te, err)
	var buf bytes.Buffer
	require.NoError(Te, M.WriteListing(&buf))
	assert.Equal(Te, "ALA\t41\nPRO\t42\nGLY\t43\nTRP\t44\n", buf.String())

	name := filepath.Join(Te.TempDir(), "prot.seq")
	require.NoError(Te, os.WriteFile(name, buf.Bytes(), 0o644))
	M2, err := Load(name, nil)
	require.NoError(Te, err)
	assert.Equal(Te, M.Positions(), M2.Positions())
	for _, p := range M.Positions() {
		a, _ := M.Type(p)
		b, _ := M2.Type(p)
		assert.Equal(Te, a, b)
	}
}

func TestOneLetterRejectsUnknown(Te *testing.T) {
	_, err := FromOneLetter("APXG", 1)
	require.Error(Te, err)
	_, err = FromOneLetter("   ", 1)
	require.Error(Te, err)
}

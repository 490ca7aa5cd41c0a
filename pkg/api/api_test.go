package api

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObfuscateCode(t *testing.T) {
	obf, err := NewObfuscator(Options{Silent: true})
	require.NoError(t, err)

	out, err := obf.ObfuscateCode("int count;\ncount++;\n")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "#define "))
	assert.NotContains(t, strings.SplitN(out, "\n", 2)[1], "count")
}

func TestObfuscateCodeFreshTablePerCall(t *testing.T) {
	obf, err := NewObfuscator(Options{Silent: true})
	require.NoError(t, err)

	src := "int count;\ncount++;\n"
	first, err := obf.ObfuscateCode(src)
	require.NoError(t, err)
	second, err := obf.ObfuscateCode(src)
	require.NoError(t, err)

	// Aliases are drawn from a random source and tables never persist, so
	// two runs over the same input disagree on spelling.
	assert.NotEqual(t, first, second)
}

func TestObfuscateFile(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "in.c")
	outputPath := filepath.Join(dir, "out.c")
	require.NoError(t, os.WriteFile(inputPath, []byte("int x = 42;\n"), 0644))

	obf, err := NewObfuscator(Options{Silent: true})
	require.NoError(t, err)
	require.NoError(t, obf.ObfuscateFile(inputPath, outputPath))

	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "#define ")
}

func TestObfuscateFileWritesAliasMap(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "in.c")
	outputPath := filepath.Join(dir, "out.c")
	mapPath := filepath.Join(dir, "aliases.yaml")
	require.NoError(t, os.WriteFile(inputPath, []byte("int x;\n"), 0644))

	obf, err := NewObfuscator(Options{Silent: true})
	require.NoError(t, err)
	obf.Config.MapFile = mapPath

	require.NoError(t, obf.ObfuscateFile(inputPath, outputPath))

	data, err := os.ReadFile(mapPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "x")
}

func TestObfuscateFileMissingInput(t *testing.T) {
	dir := t.TempDir()
	outputPath := filepath.Join(dir, "out.c")

	obf, err := NewObfuscator(Options{Silent: true})
	require.NoError(t, err)

	err = obf.ObfuscateFile(filepath.Join(dir, "absent.c"), outputPath)
	assert.Error(t, err)

	// The run aborts before touching the output file.
	_, statErr := os.Stat(outputPath)
	assert.True(t, os.IsNotExist(statErr))
}

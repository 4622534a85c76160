package driver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// A valid schema should produce opcode.go, serde.go, and mod.go in the
// target directory, each opening with a generated banner.
func TestCompileWritesArtifacts(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultCodegenConfig()
	cfg.Target = dir
	cfg.Formatter = ""

	err := Compile(`el Path { d: string };`, cfg)
	require.NoError(t, err)

	for _, name := range []string{"opcode.go", "serde.go", "mod.go"} {
		path := filepath.Join(dir, name)
		b, readErr := os.ReadFile(path)
		require.NoError(t, readErr, "reading %s", name)
		require.Contains(t, string(b), "Code generated by")
	}
}

// WithSerde: false must skip serde.go entirely, leaving only opcode.go and
// mod.go.
func TestCompileWithoutSerde(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultCodegenConfig()
	cfg.Target = dir
	cfg.Formatter = ""
	cfg.WithSerde = false

	err := Compile(`el Path { d: string };`, cfg)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "serde.go"))
	require.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "opcode.go"))
	require.NoError(t, err)
}

// A semantic error (duplicate declaration) must abort generation with no
// artifacts written, and surface as an AnalysisError.
func TestCompileAnalysisFailure(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultCodegenConfig()
	cfg.Target = dir
	cfg.Formatter = ""

	err := Compile(`el X{} leaf X{};`, cfg)
	require.Error(t, err)
	var analysisErr *AnalysisError
	require.ErrorAs(t, err, &analysisErr)
	require.Len(t, analysisErr.Diagnostics, 1)

	_, statErr := os.Stat(filepath.Join(dir, "opcode.go"))
	require.True(t, os.IsNotExist(statErr))
}

// A syntax error must abort before analysis ever runs.
func TestCompileParseFailure(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultCodegenConfig()
	cfg.Target = dir

	err := Compile(`el { };`, cfg)
	require.Error(t, err)
}

package repl

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestREPL(t *testing.T) *REPL {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Color = false
	r, err := NewWithConfig("test", cfg)
	require.NoError(t, err)
	t.Cleanup(func() { r.rt.Close() })
	return r
}

func TestEvalPrintsResult(t *testing.T) {
	r := newTestREPL(t)
	var out bytes.Buffer
	r.Eval("1 + 1", &out)
	assert.Equal(t, "=> 2\n", out.String())
}

func TestEvalKeepsStateBetweenInputs(t *testing.T) {
	r := newTestREPL(t)
	var out bytes.Buffer
	r.Eval("x = 2;", &out)
	out.Reset()
	r.Eval("x * 3", &out)
	assert.Equal(t, "=> 6\n", out.String())
}

func TestEvalRendersDiagnostics(t *testing.T) {
	r := newTestREPL(t)
	var out bytes.Buffer
	r.Eval("1 + true", &out)
	assert.Contains(t, out.String(), "CompileError: Type inference error")
	assert.Contains(t, out.String(), "<repl>:1:")
	assert.Contains(t, out.String(), "^")

	// The session stays usable after a bad input.
	out.Reset()
	r.Eval("2 * 2", &out)
	assert.Equal(t, "=> 4\n", out.String())
}

func TestDumpCommand(t *testing.T) {
	r := newTestREPL(t)
	var out bytes.Buffer
	r.Eval("1 + 1", &out)
	out.Reset()
	r.handleCommand(":dump", &out)
	assert.Contains(t, out.String(), "top-level")
}

func TestResetCommandDropsState(t *testing.T) {
	r := newTestREPL(t)
	var out bytes.Buffer
	r.Eval("x = 2;", &out)
	r.handleCommand(":reset", &out)
	out.Reset()
	r.Eval("x", &out)
	assert.Contains(t, out.String(), "Unknown variable")
}

func TestConfigDefaultsAndFile(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "?> ", cfg.Prompt)
	assert.True(t, cfg.Color)
	assert.NotEmpty(t, cfg.HistoryFile)

	// A config file overrides the defaults.
	dir := t.TempDir()
	path := filepath.Join(dir, "flare.yaml")
	require.NoError(t, os.WriteFile(path, []byte("prompt: \"fl> \"\ncolor: false\n"), 0o644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer func() { _ = os.Chdir(wd) }()

	cfg, err = LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "fl> ", cfg.Prompt)
	assert.False(t, cfg.Color)
}

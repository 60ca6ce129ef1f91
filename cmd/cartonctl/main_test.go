package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	settingsPath = ""
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestSceneDefault(t *testing.T) {
	out, _, err := run(t, "", "scene")
	require.NoError(t, err)
	assert.Contains(t, out, "3-Ply")
	assert.Contains(t, out, "panel-front")
	assert.Contains(t, out, "flap-")
	assert.Contains(t, out, "300 mm")
}

func TestSceneExplodedInches(t *testing.T) {
	out, _, err := run(t, "", "scene", "--ply", "5", "--unit", "in", "--exploded")
	require.NoError(t, err)
	assert.Contains(t, out, "layer-4")
	assert.NotContains(t, out, "panel-front")
	assert.Contains(t, out, "11.8 in")
}

func TestSceneJSON(t *testing.T) {
	out, _, err := run(t, "", "scene", "--json")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "{"))
	assert.Contains(t, out, `"descriptors"`)
}

func TestSceneRejectsOutOfRange(t *testing.T) {
	_, _, err := run(t, "", "scene", "--length", "5000")
	assert.Error(t, err)

	_, _, err = run(t, "", "scene", "--ply", "4")
	assert.Error(t, err)

	_, _, err = run(t, "", "scene", "--unit", "ft")
	assert.Error(t, err)
}

func TestStrength(t *testing.T) {
	out, _, err := run(t, "", "strength", "--all")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "3-ply"))
	assert.True(t, strings.HasPrefix(lines[2], "7-ply"))
}

func TestSuggest(t *testing.T) {
	out, _, err := run(t, "", "suggest", "--weight", "50")
	require.NoError(t, err)
	assert.Contains(t, out, "7-Ply")
	assert.Contains(t, out, "22 x 22 x 30 inches")
	assert.Contains(t, out, "under-rated")

	_, _, err = run(t, "", "suggest")
	assert.Error(t, err)
}

func TestExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "box.stl")
	out, _, err := run(t, "", "export", path)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote 9 parts")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestEvalStdin(t *testing.T) {
	out, errOut, err := run(t, "(box :length 500 :ply 7)", "eval", "-")
	require.NoError(t, err)
	assert.Empty(t, errOut)
	assert.Contains(t, out, "7-Ply")
	assert.Contains(t, out, "500 mm")
}

func TestEvalFileWithExport(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "box.carton")
	require.NoError(t, os.WriteFile(script, []byte("(box :exploded true)"), 0o644))
	stl := filepath.Join(dir, "box.stl")

	out, _, err := run(t, "", "eval", script, "--out", stl)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote 3 parts")
	assert.FileExists(t, stl)
}

func TestEvalErrors(t *testing.T) {
	_, errOut, err := run(t, "(box :height 10)", "eval", "-")
	assert.Error(t, err)
	assert.Contains(t, errOut, "error:")

	_, errOut, err = run(t, "(def x 1)", "eval", "-")
	require.NoError(t, err)
	assert.Contains(t, errOut, "warning:")

	_, _, err = run(t, "", "eval", filepath.Join(t.TempDir(), "missing.carton"))
	assert.Error(t, err)
}

func TestSettingsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("limits:\n  length:\n    max: 2000\n"), 0o644))

	_, _, err := run(t, "", "--settings", path, "scene", "--length", "1500")
	require.NoError(t, err)
}

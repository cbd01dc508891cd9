package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runShiftCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newShiftCommand()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestShiftCommandEndToEnd(t *testing.T) {
	dir := t.TempDir()
	fixturePath := filepath.Join(dir, "fixture.json")
	outPath := filepath.Join(dir, "out.json")
	require.NoError(t, os.WriteFile(fixturePath, []byte(
		`[{"model": "app.item", "pk": 1, "fields": {"created": "2023-01-01T00:00:00Z", "name": "x"}}]`,
	), 0o644))

	out, err := runShiftCommand(t,
		fixturePath,
		"-o", outPath,
		"--latest-time", "2024-06-01T00:00:00Z",
	)
	require.NoError(t, err)

	assert.Contains(t, out, "Updated 1 date value(s).")
	assert.Contains(t, out, "New most recent timestamp:      2024-06-01T00:00:00Z")

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)

	var doc []map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	fields := doc[0]["fields"].(map[string]any)
	assert.Equal(t, "2024-06-01T00:00:00Z", fields["created"])
	assert.Equal(t, "x", fields["name"])
}

func TestShiftCommandInvalidLatestTimeRejectedEarly(t *testing.T) {
	// The target is validated before any file is read, so even a missing
	// fixture path reports the format error first.
	_, err := runShiftCommand(t,
		filepath.Join(t.TempDir(), "does-not-exist.json"),
		"--latest-time", "tomorrow",
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "YYYY-MM-DD or YYYY-MM-DDTHH:MM:SS(.fraction)Z")
}

func TestShiftCommandJSONReport(t *testing.T) {
	dir := t.TempDir()
	fixturePath := filepath.Join(dir, "fixture.json")
	require.NoError(t, os.WriteFile(fixturePath, []byte(
		`[{"fields": {"created": "2023-01-01"}}]`,
	), 0o644))

	out, err := runShiftCommand(t,
		fixturePath,
		"-o", filepath.Join(dir, "out.json"),
		"--latest-time", "2024-01-01",
		"--report", "json",
	)
	require.NoError(t, err)

	var report map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, float64(1), report["updated"])
	assert.Equal(t, "2024-01-01", report["latest_after"])
}

func TestShiftCommandNoChange(t *testing.T) {
	dir := t.TempDir()
	fixturePath := filepath.Join(dir, "fixture.json")
	outPath := filepath.Join(dir, "out.json")
	require.NoError(t, os.WriteFile(fixturePath, []byte(
		`[{"fields": {"name": "x"}}]`,
	), 0o644))

	out, err := runShiftCommand(t, fixturePath, "-o", outPath)
	require.NoError(t, err)

	assert.Contains(t, out, "No matching UTC date strings found. No changes made.")
	assert.NoFileExists(t, outPath)
}

func TestShiftCommandRequiresFixtureArgument(t *testing.T) {
	_, err := runShiftCommand(t)
	require.Error(t, err)
}

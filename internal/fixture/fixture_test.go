package fixture

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fopina/fixshift/internal/errors"
)

func TestDecodeValidFixture(t *testing.T) {
	doc, err := Decode(strings.NewReader(`[
		{"model": "app.item", "pk": 1, "fields": {"name": "a"}},
		{"model": "app.item", "pk": 2, "fields": {"name": "b", "nested": {"deep": true}}}
	]`))
	require.NoError(t, err)
	require.Len(t, doc, 2)

	fields := doc.FieldMaps()
	require.Len(t, fields, 2)
	assert.Equal(t, "a", fields[0]["name"])
	assert.Equal(t, "b", fields[1]["name"])
}

func TestDecodeStructuralErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{
			name:    "top level object",
			input:   `{"fields": {}}`,
			wantMsg: "must be an array at the top level",
		},
		{
			name:    "top level string",
			input:   `"hello"`,
			wantMsg: "must be an array at the top level",
		},
		{
			name:    "item not an object",
			input:   `[{"fields": {}}, 42]`,
			wantMsg: "fixture item at index 1 is not an object",
		},
		{
			name:    "missing fields",
			input:   `[{"model": "app.item", "pk": 1}]`,
			wantMsg: `fixture item at index 0 is missing a valid "fields" object`,
		},
		{
			name:    "fields not an object",
			input:   `[{"fields": []}]`,
			wantMsg: `fixture item at index 0 is missing a valid "fields" object`,
		},
		{
			name:    "invalid json",
			input:   `[{`,
			wantMsg: "not valid JSON",
		},
		{
			name:    "trailing data",
			input:   `[] {}`,
			wantMsg: "trailing data",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.ErrorTypeStructural))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestFieldMapsAliasDocument(t *testing.T) {
	doc, err := Decode(strings.NewReader(`[{"fields": {"name": "old"}}]`))
	require.NoError(t, err)

	doc.FieldMaps()[0]["name"] = "new"

	data, err := doc.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"new"`)
}

func TestMarshalIndentation(t *testing.T) {
	doc, err := Decode(strings.NewReader(`[{"fields": {"name": "a"}}]`))
	require.NoError(t, err)

	data, err := doc.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  {")
	assert.Contains(t, string(data), "\n    \"fields\"")
}

func TestMarshalPreservesNumbersAndHTML(t *testing.T) {
	doc, err := Decode(strings.NewReader(`[{"pk": 9007199254740993, "fields": {"url": "a?b=1&c=2", "ratio": 0.1}}]`))
	require.NoError(t, err)

	data, err := doc.Marshal()
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "9007199254740993")
	assert.Contains(t, out, "0.1")
	assert.Contains(t, out, "a?b=1&c=2")
	assert.NotContains(t, out, `\u0026`)
}

func TestLoadAndWrite(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "in.json")
	outPath := filepath.Join(dir, "out.json")
	require.NoError(t, os.WriteFile(inPath, []byte(`[{"fields": {"name": "a"}}]`), 0o644))

	doc, err := Load(inPath)
	require.NoError(t, err)

	require.NoError(t, doc.Write(outPath))

	reloaded, err := Load(outPath)
	require.NoError(t, err)
	assert.Equal(t, "a", reloaded.FieldMaps()[0]["name"])
}

func TestWriteReplacesExistingFile(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "out.json")
	require.NoError(t, os.WriteFile(outPath, []byte("stale"), 0o644))

	doc, err := Decode(strings.NewReader(`[{"fields": {}}]`))
	require.NoError(t, err)
	require.NoError(t, doc.Write(outPath))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "stale")

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

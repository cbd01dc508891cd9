// Package fixture loads, validates, and writes Django fixture JSON files.
// A fixture is a top-level array of objects, each carrying a "fields" object;
// anything else is a structural error reported with the offending index.
package fixture

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fopina/fixshift/internal/errors"
)

// Document is a validated fixture: every element is an object with a valid
// "fields" object. The tree is mutated in place during the apply phase and
// serialized back as a whole.
type Document []map[string]any

// Load reads and validates the fixture at path.
func Load(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Decode(f)
}

// Decode parses a fixture from r. Numbers are decoded as json.Number so they
// survive re-serialization without float rounding.
func Decode(r io.Reader) (Document, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var root any
	if err := dec.Decode(&root); err != nil {
		return nil, errors.New(errors.ErrorTypeStructural, "fixture is not valid JSON").WithCause(err.Error())
	}
	if dec.More() {
		return nil, errors.New(errors.ErrorTypeStructural, "fixture has trailing data after the top-level array")
	}

	items, ok := root.([]any)
	if !ok {
		return nil, errors.New(errors.ErrorTypeStructural, "fixture JSON must be an array at the top level")
	}

	doc := make(Document, 0, len(items))
	for idx, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, errors.Structuralf(idx, "is not an object")
		}
		if _, ok := obj["fields"].(map[string]any); !ok {
			return nil, errors.Structuralf(idx, "is missing a valid %q object", "fields")
		}
		doc = append(doc, obj)
	}

	return doc, nil
}

// FieldMaps returns each record's "fields" subtree, in record order. The
// returned maps alias the document, so writes through them mutate it.
func (d Document) FieldMaps() []map[string]any {
	fields := make([]map[string]any, len(d))
	for i, obj := range d {
		fields[i] = obj["fields"].(map[string]any)
	}
	return fields
}

// Write serializes the document with 2-space indentation and writes it
// atomically: the content goes to a temp file in the target directory first,
// then replaces path via rename.
func (d Document) Write(path string) error {
	data, err := d.Marshal()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}

	return nil
}

// Marshal renders the document as indented JSON without escaping HTML
// characters, matching the fixture files Django itself produces.
func (d Document) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode([]map[string]any(d)); err != nil {
		return nil, fmt.Errorf("failed to marshal fixture: %w", err)
	}
	return buf.Bytes(), nil
}

// Package store persists scan and chat results.
package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
)

// renameFunc is swapped in tests to simulate a failing rename.
//
//nolint:gochecknoglobals // Swapped in tests
var renameFunc = os.Rename

// EncodeJSON writes v to w as two-space indented JSON. Non-ASCII text and
// HTML characters are written as-is.
func EncodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	return nil
}

// WriteJSON replaces the file at path with the JSON encoding of v. The data
// goes to a temporary file in the same directory first and is renamed into
// place, so readers never observe a partial file.
func WriteJSON(path string, v any) error {
	var buf bytes.Buffer
	if err := EncodeJSON(&buf, v); err != nil {
		return err
	}

	if err := writeFileAtomic(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %q: %w", path, err)
	}

	return nil
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir, name := filepath.Split(filepath.Clean(path))
	if dir == "" {
		dir = "."
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+name+".tmp-*")
	if err != nil {
		return err
	}

	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}

	if err := tmp.Chmod(perm); err != nil && runtime.GOOS != "windows" {
		return err
	}

	if err := tmp.Sync(); err != nil {
		return err
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	return renameFunc(tmpName, filepath.Join(dir, name))
}

// Package fs persists scrape sessions and cleaned-markdown artifacts as
// flat JSON files on the local filesystem.
package fs

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// writeJSON writes v as indented JSON, staging through a temp file in
// the same directory and renaming so readers never observe a partial
// write.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// readJSON reads path into v. Missing files are reported via
// os.IsNotExist on the returned error.
func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

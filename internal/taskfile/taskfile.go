// Package taskfile reads task batches from TOML files. Records are returned
// raw so they flow through the same validation gate as records arriving over
// the API; the file format grants no trust.
package taskfile

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// file is the on-disk shape: a list of [[tasks]] tables.
type file struct {
	Tasks []map[string]any `toml:"tasks"`
}

// Load reads the TOML file at path and returns its raw task records.
// Due dates belong in quoted "YYYY-MM-DD" strings.
func Load(path string) ([]map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("taskfile: read %s: %w", path, err)
	}
	var f file
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("taskfile: parse %s: %w", path, err)
	}
	return f.Tasks, nil
}

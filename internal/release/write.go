package release

import (
	"encoding/json"
	"fmt"

	"github.com/ariel-frischer/semrel/internal/fileutil"
)

// WriteJSON writes v as indented JSON to path, creating parent directories.
func WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return WriteFile(path, append(data, '\n'))
}

// WriteFile writes data to path atomically, creating parent directories.
func WriteFile(path string, data []byte) error {
	if err := fileutil.WriteAtomic(path, data); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

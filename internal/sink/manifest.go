package sink

import (
	"encoding/json"
	"fmt"
	"os"
)

// WriteManifest writes a run summary to a JSON file with pretty formatting,
// so downstream consumers can check what a fixture directory contains
// without parsing the tables.
func WriteManifest(path string, summary any) error {
	b, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// Package snapshot loads pre-parsed recruiting data snapshots from disk.
// CSV/Excel parsing and PII handling happen upstream; this package only
// consumes already-structured records.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/hm-insights/internal/schemas"
	"github.com/jonathan/hm-insights/internal/types"
)

// snapshotSchema is the schema file validated against when resolvable.
const snapshotSchema = "schemas/snapshot.schema.json"

// LoadFile reads a snapshot JSON file, validating it against the snapshot
// schema when the schema file can be located. A missing schema file skips
// validation; an invalid document fails.
func LoadFile(path string) (*types.Snapshot, error) {
	if schemaPath := schemas.ResolveSchemaPath(snapshotSchema); schemaPath != "" {
		if err := schemas.ValidateJSON(schemaPath, path); err != nil {
			return nil, fmt.Errorf("snapshot %s failed schema validation: %w", path, err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot file %s: %w", path, err)
	}

	var snap types.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot JSON %s: %w", path, err)
	}
	return &snap, nil
}

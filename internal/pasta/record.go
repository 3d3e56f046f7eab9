// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pasta

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/edi-fetch/pkg/types"
)

// RecordPath returns the sidecar path for an archive: the archive path with ".yaml" appended.
func RecordPath(archivePath string) string {
	return archivePath + ".yaml"
}

// WriteRecord writes a package record to a YAML file.
func WriteRecord(rec *types.PackageRecord, path string) error {
	data, err := yaml.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshaling package record: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing package record %s: %w", path, err)
	}
	return nil
}

// ReadRecord reads a package record from a YAML file.
func ReadRecord(path string) (*types.PackageRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rec types.PackageRecord
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parsing package record %s: %w", path, err)
	}
	return &rec, nil
}

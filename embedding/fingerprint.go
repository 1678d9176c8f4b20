package embedding

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jeffrydegrande/resemble/types"
	"github.com/pelletier/go-toml/v2"
)

// SaveFingerprintFile writes a fingerprint to path as TOML, creating parent
// directories as needed.
func SaveFingerprintFile(fp types.Fingerprint, path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating fingerprint file: %w", err)
	}
	defer file.Close()

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(fp); err != nil {
		return fmt.Errorf("error encoding fingerprint TOML: %w", err)
	}

	return nil
}

// LoadFingerprintFile reads a fingerprint written by SaveFingerprintFile
func LoadFingerprintFile(path string) (types.Fingerprint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Fingerprint{}, fmt.Errorf("error reading fingerprint file: %w", err)
	}

	var fp types.Fingerprint
	if err := toml.Unmarshal(data, &fp); err != nil {
		return types.Fingerprint{}, fmt.Errorf("error parsing fingerprint file: %w", err)
	}

	for label, count := range fp.Features {
		if count < 0 {
			return types.Fingerprint{}, fmt.Errorf("fingerprint %s: negative count %v for %q", path, count, label)
		}
	}

	return fp, nil
}

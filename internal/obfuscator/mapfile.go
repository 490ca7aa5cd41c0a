package obfuscator

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/defmix/defmix/internal/alias"
)

// mapFileVersion guards against loading map files written by an
// incompatible release.
const mapFileVersion = "defmix-map-v1"

type mapFile struct {
	Version string            `yaml:"version"`
	Aliases map[string]string `yaml:"aliases"`
}

// SaveAliasMap writes the run's alias -> original mapping as YAML so a later
// whatis lookup can restore meaning without the obfuscated source.
func SaveAliasMap(path string, t *alias.Table) error {
	data, err := yaml.Marshal(mapFile{
		Version: mapFileVersion,
		Aliases: t.AliasMap(),
	})
	if err != nil {
		return fmt.Errorf("failed to encode alias map: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory for alias map %s: %w", path, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write alias map to %s: %w", path, err)
	}
	return nil
}

// LoadAliasMap reads an alias map written by SaveAliasMap.
func LoadAliasMap(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read alias map %s: %w", path, err)
	}
	var mf mapFile
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("failed to decode alias map %s: %w", path, err)
	}
	if mf.Version != mapFileVersion {
		return nil, fmt.Errorf("incompatible alias map version: file has %q, expected %q", mf.Version, mapFileVersion)
	}
	if mf.Aliases == nil {
		mf.Aliases = make(map[string]string)
	}
	return mf.Aliases, nil
}

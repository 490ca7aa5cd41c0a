package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	Testing = true
	os.Exit(m.Run())
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.False(t, cfg.Silent)
	assert.Equal(t, AliasModeIdentifier, cfg.AliasMode)
	assert.Equal(t, DefaultAliasLength, cfg.AliasLength)
	assert.Equal(t, []string{"cout", "cin", "cerr", "clog"}, cfg.PredefinedIdentifiers)
	assert.True(t, cfg.ObfuscateIntLiterals)
	assert.True(t, cfg.ObfuscateStringLiterals)
	assert.Empty(t, cfg.MapFile)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "defmix.yaml")
	content := `silent: true
alias_mode: hexa
alias_length: 12
predefined_identifiers:
  - cout
ignore_identifiers:
  - keepMe
ignore_identifiers_prefix:
  - dbg
obfuscate_int_literals: false
map_file: out/aliases.yaml
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.True(t, cfg.Silent)
	assert.Equal(t, AliasModeHexa, cfg.AliasMode)
	assert.Equal(t, 12, cfg.AliasLength)
	assert.Equal(t, []string{"cout"}, cfg.PredefinedIdentifiers)
	assert.Equal(t, []string{"keepMe"}, cfg.IgnoreIdentifiers)
	assert.Equal(t, []string{"dbg"}, cfg.IgnoreIdentifiersPrefix)
	assert.False(t, cfg.ObfuscateIntLiterals)
	assert.True(t, cfg.ObfuscateStringLiterals)
	assert.Equal(t, "out/aliases.yaml", cfg.MapFile)
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigNormalizesValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "defmix.yaml")
	content := "alias_mode: bogus\nalias_length: 1000\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, AliasModeIdentifier, cfg.AliasMode)
	assert.Equal(t, MaxAliasLength, cfg.AliasLength)

	content = "alias_length: 1\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	cfg, err = LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, MinAliasLength, cfg.AliasLength)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "defmix.yaml")
	require.NoError(t, SaveConfig(path))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

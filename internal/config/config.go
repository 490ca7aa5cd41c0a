package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Alias generation modes.
const (
	AliasModeIdentifier = "identifier"
	AliasModeHexa       = "hexa"
	AliasModeNumeric    = "numeric"
)

// Bounds for generated alias lengths.
const (
	MinAliasLength = 2
	MaxAliasLength = 32
)

// DefaultAliasLength matches the fixed token length used by the reference
// behavior of the tool.
const DefaultAliasLength = 8

// Config holds all settings for a single obfuscation run.
// Struct tags control how Viper maps config file keys and how the config
// round-trips through YAML.
type Config struct {
	// General behavior
	Silent bool `mapstructure:"silent" yaml:"silent"` // Suppress informational messages

	// Alias generation
	AliasMode   string `mapstructure:"alias_mode" yaml:"alias_mode"`     // 'identifier', 'hexa', 'numeric'
	AliasLength int    `mapstructure:"alias_length" yaml:"alias_length"` // Target length for generated aliases

	// Identifiers treated as always in scope even though their declaration
	// lies outside the file under processing (standard stream objects by
	// default).
	PredefinedIdentifiers []string `mapstructure:"predefined_identifiers" yaml:"predefined_identifiers"`

	// Identifiers never renamed, by exact name or by prefix.
	IgnoreIdentifiers       []string `mapstructure:"ignore_identifiers" yaml:"ignore_identifiers"`
	IgnoreIdentifiersPrefix []string `mapstructure:"ignore_identifiers_prefix" yaml:"ignore_identifiers_prefix"`

	// Literal handling toggles.
	ObfuscateIntLiterals    bool `mapstructure:"obfuscate_int_literals" yaml:"obfuscate_int_literals"`
	ObfuscateStringLiterals bool `mapstructure:"obfuscate_string_literals" yaml:"obfuscate_string_literals"`

	// Optional path for the alias map written after a run (alias -> original,
	// YAML). Empty disables the export.
	MapFile string `mapstructure:"map_file" yaml:"map_file"`
}

var (
	// Testing controls whether informational output is suppressed for tests.
	Testing bool
)

// PrintInfo prints formatted information to stdout, respecting the Testing flag.
func PrintInfo(format string, args ...interface{}) {
	if !Testing {
		fmt.Printf(format, args...)
	}
}

// DefaultConfig returns a configuration with default settings.
func DefaultConfig() *Config {
	return &Config{
		Silent:                  false,
		AliasMode:               AliasModeIdentifier,
		AliasLength:             DefaultAliasLength,
		PredefinedIdentifiers:   []string{"cout", "cin", "cerr", "clog"},
		IgnoreIdentifiers:       []string{},
		IgnoreIdentifiersPrefix: []string{},
		ObfuscateIntLiterals:    true,
		ObfuscateStringLiterals: true,
		MapFile:                 "",
	}
}

// setDefaults registers the default values with a viper instance. Keys are
// lowercase so environment variable binding works automatically.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("silent", d.Silent)
	v.SetDefault("alias_mode", d.AliasMode)
	v.SetDefault("alias_length", d.AliasLength)
	v.SetDefault("predefined_identifiers", d.PredefinedIdentifiers)
	v.SetDefault("ignore_identifiers", d.IgnoreIdentifiers)
	v.SetDefault("ignore_identifiers_prefix", d.IgnoreIdentifiersPrefix)
	v.SetDefault("obfuscate_int_literals", d.ObfuscateIntLiterals)
	v.SetDefault("obfuscate_string_literals", d.ObfuscateStringLiterals)
	v.SetDefault("map_file", d.MapFile)
}

// LoadConfig reads configuration from an optional YAML file and environment
// variables, then returns a filled Config struct. An empty configPath falls
// back to ./defmix.yaml if present; a missing explicit path is an error.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("DEFMIX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configPath, err)
		}
		if !v.GetBool("silent") {
			PrintInfo("Info: Loaded configuration from %s\n", configPath)
		}
	} else {
		v.SetConfigName("defmix")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
			// No config file is fine; defaults apply.
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling configuration: %w", err)
	}
	normalize(cfg)
	return cfg, nil
}

// normalize clamps and repairs settings so downstream components never see
// out-of-range values.
func normalize(cfg *Config) {
	switch strings.ToLower(cfg.AliasMode) {
	case AliasModeIdentifier, AliasModeHexa, AliasModeNumeric:
		cfg.AliasMode = strings.ToLower(cfg.AliasMode)
	default:
		fmt.Fprintf(os.Stderr, "Warning: Invalid alias_mode '%s', using '%s'.\n", cfg.AliasMode, AliasModeIdentifier)
		cfg.AliasMode = AliasModeIdentifier
	}
	if cfg.AliasLength < MinAliasLength {
		cfg.AliasLength = MinAliasLength
	}
	if cfg.AliasLength > MaxAliasLength {
		cfg.AliasLength = MaxAliasLength
	}
}

// SaveConfig writes the default configuration to a YAML file.
func SaveConfig(configPath string) error {
	yamlData, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("error marshalling default config: %w", err)
	}
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating directory for config file %s: %w", configPath, err)
	}
	if err := os.WriteFile(configPath, yamlData, 0644); err != nil {
		return fmt.Errorf("error writing config file %s: %w", configPath, err)
	}
	PrintInfo("Info: Saved default configuration to %s\n", configPath)
	return nil
}

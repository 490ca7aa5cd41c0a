// Package api provides the public API for using the obfuscator as a library.
//
// The API exposes the same pipeline as the command-line interface: assign an
// opaque alias to every renameable occurrence in one translation unit,
// rewrite the text, and prepend a preamble of #define directives restoring
// the original meaning.
//
// Basic usage example:
//
//	obf, err := api.NewObfuscator(api.Options{})
//	if err != nil {
//	    log.Fatalf("Failed to create obfuscator: %v", err)
//	}
//
//	result, err := obf.ObfuscateCode("int count;\ncount++;\n")
//	if err != nil {
//	    log.Fatalf("Failed to obfuscate code: %v", err)
//	}
//
//	fmt.Println(result)
package api

import (
	"fmt"
	"os"

	"github.com/defmix/defmix/internal/config"
	"github.com/defmix/defmix/internal/obfuscator"
)

// Obfuscator encapsulates the configuration shared by obfuscation calls.
// Each call runs with a fresh alias table, so aliases never leak between
// translation units.
type Obfuscator struct {
	Config *config.Config
}

// Options configures a new Obfuscator instance.
type Options struct {
	// ConfigPath is the path to a YAML configuration file. Empty means
	// defaults (plus ./defmix.yaml if present).
	ConfigPath string

	// Silent suppresses informational messages.
	Silent bool
}

// NewObfuscator creates a new Obfuscator using the provided options.
func NewObfuscator(options Options) (*Obfuscator, error) {
	cfg, err := config.LoadConfig(options.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if options.Silent {
		cfg.Silent = true
	}
	return &Obfuscator{Config: cfg}, nil
}

// ObfuscateCode obfuscates a source string and returns preamble plus
// rewritten body.
func (o *Obfuscator) ObfuscateCode(src string) (string, error) {
	octx, err := obfuscator.NewObfuscationContext(o.Config)
	if err != nil {
		return "", fmt.Errorf("failed to create obfuscation context: %w", err)
	}
	return obfuscator.ProcessSource(src, octx)
}

// ObfuscateFile obfuscates inputPath and writes the result to outputPath.
// No output file is created when reading or processing fails.
func (o *Obfuscator) ObfuscateFile(inputPath, outputPath string) error {
	octx, err := obfuscator.NewObfuscationContext(o.Config)
	if err != nil {
		return fmt.Errorf("failed to create obfuscation context: %w", err)
	}
	out, err := obfuscator.ProcessFile(inputPath, octx)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outputPath, []byte(out), 0644); err != nil {
		return fmt.Errorf("error writing to output file %s: %w", outputPath, err)
	}
	if o.Config.MapFile != "" {
		if err := obfuscator.SaveAliasMap(o.Config.MapFile, octx.Table); err != nil {
			return err
		}
	}
	return nil
}

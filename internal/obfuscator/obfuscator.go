// Package obfuscator drives the two-phase collect-then-rewrite protocol and
// owns the state one run shares between its phases.
package obfuscator

import (
	"fmt"
	"os"
	"strings"

	"github.com/defmix/defmix/internal/alias"
	"github.com/defmix/defmix/internal/config"
	"github.com/defmix/defmix/internal/keys"
	"github.com/defmix/defmix/internal/rewrite"
	"github.com/defmix/defmix/internal/scan"
)

// ObfuscationContext holds the shared state of a single run: configuration,
// the alias table, and the identifier filters. It is not reused across runs.
type ObfuscationContext struct {
	Config *config.Config
	Table  *alias.Table
	Silent bool

	allowed    map[string]bool
	ignored    map[string]bool
	ignoredPfx []string
}

// NewObfuscationContext creates a fresh context with an empty alias table.
func NewObfuscationContext(cfg *config.Config) (*ObfuscationContext, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil configuration")
	}
	octx := &ObfuscationContext{
		Config:  cfg,
		Table:   alias.NewTable(alias.NewGenerator(cfg)),
		Silent:  cfg.Silent,
		allowed: make(map[string]bool),
		ignored: make(map[string]bool),
	}
	for _, name := range cfg.PredefinedIdentifiers {
		octx.allowed[name] = true
	}
	for _, name := range cfg.IgnoreIdentifiers {
		octx.ignored[name] = true
	}
	octx.ignoredPfx = append(octx.ignoredPfx, cfg.IgnoreIdentifiersPrefix...)
	return octx, nil
}

// ShouldIgnore reports whether an identifier is exempt from renaming via the
// configured ignore lists.
func (octx *ObfuscationContext) ShouldIgnore(name string) bool {
	if octx.ignored[name] {
		return true
	}
	for _, prefix := range octx.ignoredPfx {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// ProcessSource obfuscates one translation unit. Phase 1 folds every
// occurrence event into the alias table; only after the traversal completes
// does Phase 2 rewrite the text and emit the preamble, so an alias is known
// and stable before any of its occurrences is substituted.
func ProcessSource(src string, octx *ObfuscationContext) (string, error) {
	occs, err := scan.File(src, octx.allowed)
	if err != nil {
		return "", fmt.Errorf("scanning source: %w", err)
	}

	// Phase 1: collection.
	for _, occ := range occs {
		key, ok := canonicalKey(occ, octx)
		if !ok {
			continue
		}
		if _, err := octx.Table.EnsureAlias(key); err != nil {
			return "", err
		}
		if err := octx.Table.Record(key, occ.Offset, len(key)); err != nil {
			return "", err
		}
	}

	// Phase 2: rewrite, then emit.
	var patches []rewrite.Patch
	for _, e := range octx.Table.Entries() {
		for _, pos := range e.Positions {
			patches = append(patches, rewrite.Patch{
				Start: pos.Offset,
				End:   pos.Offset + pos.Length,
				Text:  e.Alias,
			})
		}
	}
	body, err := rewrite.Apply(src, patches)
	if err != nil {
		return "", fmt.Errorf("rewriting source: %w", err)
	}

	var out strings.Builder
	if err := WritePreamble(&out, octx.Table); err != nil {
		return "", err
	}
	out.WriteString(body)
	return out.String(), nil
}

// canonicalKey maps an occurrence event to its canonical key, applying the
// per-class derivation rules and the configured filters.
func canonicalKey(occ scan.Occurrence, octx *ObfuscationContext) (string, bool) {
	switch occ.Kind {
	case scan.Declaration:
		if octx.ShouldIgnore(occ.Text) {
			return "", false
		}
		return keys.ForDeclaration(occ.Text), true
	case scan.Reference:
		if octx.ShouldIgnore(occ.Text) {
			return "", false
		}
		return keys.ForReference(occ.Text), true
	case scan.IntLiteral:
		if !octx.Config.ObfuscateIntLiterals {
			return "", false
		}
		return keys.ForInt(occ.Text), true
	case scan.StringLiteral:
		if !octx.Config.ObfuscateStringLiterals {
			return "", false
		}
		return keys.ForString(occ.Text), true
	default:
		return "", false
	}
}

// ProcessFile reads, obfuscates, and returns the content of a single file.
// Informational messages are suppressed; only errors are returned.
func ProcessFile(filePath string, octx *ObfuscationContext) (string, error) {
	src, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("error reading file %s: %w", filePath, err)
	}
	out, err := ProcessSource(string(src), octx)
	if err != nil {
		return "", fmt.Errorf("error processing file %s: %w", filePath, err)
	}
	return out, nil
}

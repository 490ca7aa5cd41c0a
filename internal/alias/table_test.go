package alias

import (
	"strings"
	"testing"

	"github.com/defmix/defmix/internal/config"
)

// stubSource hands out a fixed sequence of tokens, cycling when exhausted.
// It lets the tests force collisions deterministically.
type stubSource struct {
	tokens []string
	i      int
}

func (s *stubSource) Next() string {
	tok := s.tokens[s.i%len(s.tokens)]
	s.i++
	return tok
}

func TestEnsureAliasStable(t *testing.T) {
	tbl := NewTable(NewGenerator(config.DefaultConfig()))

	first, err := tbl.EnsureAlias("count")
	if err != nil {
		t.Fatalf("EnsureAlias failed: %v", err)
	}
	second, err := tbl.EnsureAlias("count")
	if err != nil {
		t.Fatalf("EnsureAlias failed on second sighting: %v", err)
	}
	if first != second {
		t.Errorf("alias for 'count' not stable: %q != %q", first, second)
	}
	if tbl.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", tbl.Len())
	}
}

func TestEnsureAliasUniqueAcrossKeys(t *testing.T) {
	tbl := NewTable(NewGenerator(config.DefaultConfig()))

	seen := map[string]string{}
	keys := []string{"count", "max", "main", "42", `"hi"`, "+"}
	for _, key := range keys {
		a, err := tbl.EnsureAlias(key)
		if err != nil {
			t.Fatalf("EnsureAlias(%q) failed: %v", key, err)
		}
		if prev, dup := seen[a]; dup {
			t.Errorf("alias %q assigned to both %q and %q", a, prev, key)
		}
		seen[a] = key
	}
}

func TestEnsureAliasRetriesOnCollision(t *testing.T) {
	src := &stubSource{tokens: []string{"aaaaaaaa", "aaaaaaaa", "bbbbbbbb", "cccccccc"}}
	tbl := NewTable(src)

	a1, err := tbl.EnsureAlias("k1")
	if err != nil {
		t.Fatalf("EnsureAlias failed: %v", err)
	}
	a2, err := tbl.EnsureAlias("k2")
	if err != nil {
		t.Fatalf("EnsureAlias failed: %v", err)
	}
	if a1 != "aaaaaaaa" {
		t.Errorf("expected first alias 'aaaaaaaa', got %q", a1)
	}
	if a2 != "bbbbbbbb" {
		t.Errorf("expected collision retry to yield 'bbbbbbbb', got %q", a2)
	}
}

func TestEnsureAliasRejectsReservedWords(t *testing.T) {
	src := &stubSource{tokens: []string{"while", "kkkkkkkk"}}
	tbl := NewTable(src)

	a, err := tbl.EnsureAlias("loopVar")
	if err != nil {
		t.Fatalf("EnsureAlias failed: %v", err)
	}
	if a != "kkkkkkkk" {
		t.Errorf("reserved word was not skipped, got alias %q", a)
	}
}

func TestEnsureAliasRejectsExistingKey(t *testing.T) {
	src := &stubSource{tokens: []string{"pppppppp", "target", "qqqqqqqq"}}
	tbl := NewTable(src)

	if _, err := tbl.EnsureAlias("target"); err != nil {
		t.Fatalf("EnsureAlias failed: %v", err)
	}
	a, err := tbl.EnsureAlias("other")
	if err != nil {
		t.Fatalf("EnsureAlias failed: %v", err)
	}
	if a == "target" {
		t.Error("alias collides with an existing key")
	}
	if a != "qqqqqqqq" {
		t.Errorf("expected 'qqqqqqqq' after skipping the key clash, got %q", a)
	}
}

func TestEnsureAliasExhaustion(t *testing.T) {
	src := &stubSource{tokens: []string{"samesame"}}
	tbl := NewTable(src)

	if _, err := tbl.EnsureAlias("k1"); err != nil {
		t.Fatalf("first EnsureAlias failed: %v", err)
	}
	if _, err := tbl.EnsureAlias("k2"); err == nil {
		t.Error("expected an error when no unique alias can be generated")
	}
}

func TestRecordRequiresEnsureAlias(t *testing.T) {
	tbl := NewTable(NewGenerator(config.DefaultConfig()))

	if err := tbl.Record("ghost", 0, 5); err == nil {
		t.Error("expected an error recording an occurrence for an unknown key")
	}

	if _, err := tbl.EnsureAlias("count"); err != nil {
		t.Fatalf("EnsureAlias failed: %v", err)
	}
	if err := tbl.Record("count", 4, 5); err != nil {
		t.Errorf("Record failed for known key: %v", err)
	}
	if err := tbl.Record("count", 11, 5); err != nil {
		t.Errorf("Record failed for second occurrence: %v", err)
	}

	entries := tbl.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	got := entries[0].Positions
	if len(got) != 2 || got[0] != (Position{4, 5}) || got[1] != (Position{11, 5}) {
		t.Errorf("unexpected positions: %+v", got)
	}
}

func TestEntriesInsertionOrder(t *testing.T) {
	tbl := NewTable(NewGenerator(config.DefaultConfig()))

	keys := []string{"zeta", "alpha", "42", `"hi"`}
	for _, key := range keys {
		if _, err := tbl.EnsureAlias(key); err != nil {
			t.Fatalf("EnsureAlias(%q) failed: %v", key, err)
		}
	}
	entries := tbl.Entries()
	if len(entries) != len(keys) {
		t.Fatalf("expected %d entries, got %d", len(keys), len(entries))
	}
	for i, e := range entries {
		if e.Key != keys[i] {
			t.Errorf("entry %d: expected key %q, got %q", i, keys[i], e.Key)
		}
	}
}

func TestLookupAndAliasMap(t *testing.T) {
	tbl := NewTable(NewGenerator(config.DefaultConfig()))

	a, err := tbl.EnsureAlias("count")
	if err != nil {
		t.Fatalf("EnsureAlias failed: %v", err)
	}

	if orig, ok := tbl.Lookup(a); !ok || orig != "count" {
		t.Errorf("Lookup(%q) = (%q, %v), expected ('count', true)", a, orig, ok)
	}
	if _, ok := tbl.Lookup("noSuchAlias"); ok {
		t.Error("Lookup found a never-issued alias")
	}

	m := tbl.AliasMap()
	if len(m) != 1 || m[a] != "count" {
		t.Errorf("unexpected alias map: %v", m)
	}
}

func TestGeneratorIdentifierShape(t *testing.T) {
	cfg := config.DefaultConfig()
	g := NewGenerator(cfg)

	for i := 0; i < 100; i++ {
		tok := g.Next()
		if len(tok) != cfg.AliasLength {
			t.Fatalf("token %q has length %d, expected %d", tok, len(tok), cfg.AliasLength)
		}
		if !strings.ContainsRune(firstCharsIdentifier, rune(tok[0])) {
			t.Fatalf("token %q does not start with a letter", tok)
		}
		for _, c := range tok[1:] {
			if !strings.ContainsRune(allCharsIdentifier, c) {
				t.Fatalf("token %q contains invalid character %q", tok, c)
			}
		}
	}
}

func TestGeneratorModes(t *testing.T) {
	hexCfg := config.DefaultConfig()
	hexCfg.AliasMode = config.AliasModeHexa
	g := NewGenerator(hexCfg)
	for i := 0; i < 20; i++ {
		tok := g.Next()
		for j := 0; j < len(tok); j++ {
			if !strings.ContainsRune(allCharsHex, rune(tok[j])) {
				t.Fatalf("hexa token %q contains non-hex character %q", tok, tok[j])
			}
		}
	}

	numCfg := config.DefaultConfig()
	numCfg.AliasMode = config.AliasModeNumeric
	g = NewGenerator(numCfg)
	for i := 0; i < 20; i++ {
		tok := g.Next()
		if tok[0] != 'O' {
			t.Fatalf("numeric token %q does not start with 'O'", tok)
		}
	}
}

func TestGeneratorClampsLength(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.AliasLength = 1000
	g := NewGenerator(cfg)
	if got := len(g.Next()); got != config.MaxAliasLength {
		t.Errorf("expected length clamped to %d, got %d", config.MaxAliasLength, got)
	}

	cfg.AliasLength = 0
	g = NewGenerator(cfg)
	if got := len(g.Next()); got != config.MinAliasLength {
		t.Errorf("expected length clamped to %d, got %d", config.MinAliasLength, got)
	}
}

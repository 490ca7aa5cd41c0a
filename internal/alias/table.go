package alias

import (
	"fmt"
	"sync"
)

// maxRegenAttempts bounds the collision-retry loop when assigning an alias.
const maxRegenAttempts = 50

// Position is one recorded appearance of a key: the half-open byte span
// [Offset, Offset+Length) in the original source text.
type Position struct {
	Offset int
	Length int
}

// Entry associates a canonical key with its alias and every position at
// which the key appears.
type Entry struct {
	Key       string
	Alias     string
	Positions []Position
}

// Table is the bidirectional alias registry for a single run: key -> alias,
// assigned once on first sighting, and key -> ordered positions, appended on
// every sighting. Entries iterate in first-insertion order so the rewrite
// pass and the preamble see the same sequence.
type Table struct {
	src     TokenSource
	mu      sync.Mutex
	entries []*Entry
	byKey   map[string]*Entry
	issued  map[string]bool
}

// NewTable creates an empty table drawing candidate tokens from src.
func NewTable(src TokenSource) *Table {
	return &Table{
		src:    src,
		byKey:  make(map[string]*Entry),
		issued: make(map[string]bool),
	}
}

// EnsureAlias returns the alias for key, assigning one on the first sighting
// and never reassigning it afterwards. A candidate token is rejected and
// regenerated when it was already issued to another key, collides with a key
// seen so far, or is a reserved word. Two distinct keys sharing an alias
// would make the emitted preamble ambiguous, so exhausting the retry budget
// is an error rather than a silent fallback.
func (t *Table) EnsureAlias(key string) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if e, ok := t.byKey[key]; ok {
		return e.Alias, nil
	}

	for attempt := 0; attempt < maxRegenAttempts; attempt++ {
		candidate := t.src.Next()
		if t.issued[candidate] || isReserved(candidate) {
			continue
		}
		if _, clash := t.byKey[candidate]; clash {
			continue
		}
		e := &Entry{Key: key, Alias: candidate}
		t.byKey[key] = e
		t.issued[candidate] = true
		t.entries = append(t.entries, e)
		return candidate, nil
	}
	return "", fmt.Errorf("failed to generate a unique alias for %q after %d attempts", key, maxRegenAttempts)
}

// Record appends a position to the list for key. EnsureAlias must have been
// called for the key earlier in the same pass.
func (t *Table) Record(key string, offset, length int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.byKey[key]
	if !ok {
		return fmt.Errorf("recording occurrence for unknown key %q", key)
	}
	e.Positions = append(e.Positions, Position{Offset: offset, Length: length})
	return nil
}

// Entries returns the table's entries in first-insertion order.
func (t *Table) Entries() []*Entry {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]*Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len reports the number of distinct keys in the table.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

// Lookup returns the original key for an assigned alias.
func (t *Table) Lookup(alias string) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, e := range t.entries {
		if e.Alias == alias {
			return e.Key, true
		}
	}
	return "", false
}

// AliasMap returns a copy of the alias -> original key mapping.
func (t *Table) AliasMap() map[string]string {
	t.mu.Lock()
	defer t.mu.Unlock()

	m := make(map[string]string, len(t.entries))
	for _, e := range t.entries {
		m[e.Alias] = e.Key
	}
	return m
}

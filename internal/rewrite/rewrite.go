// Package rewrite applies span replacements against immutable original
// coordinates, so an earlier edit can never shift the offsets of a later
// one even when replacement and original lengths differ.
package rewrite

import (
	"fmt"
	"sort"
	"strings"
)

// Patch replaces the half-open byte span [Start, End) of the original text
// with Text.
type Patch struct {
	Start int
	End   int
	Text  string
}

// Apply returns a new string with every patch applied exactly once. Patches
// may arrive in any order; each must lie within src and no two may overlap.
// The input is never mutated.
func Apply(src string, patches []Patch) (string, error) {
	ps := make([]Patch, len(patches))
	copy(ps, patches)
	sort.Slice(ps, func(i, j int) bool { return ps[i].Start < ps[j].Start })

	var b strings.Builder
	b.Grow(len(src))
	last := 0
	for _, p := range ps {
		if p.Start < 0 || p.End > len(src) || p.Start > p.End {
			return "", fmt.Errorf("patch [%d,%d) out of range for %d-byte source", p.Start, p.End, len(src))
		}
		if p.Start < last {
			return "", fmt.Errorf("patch [%d,%d) overlaps a previous replacement", p.Start, p.End)
		}
		b.WriteString(src[last:p.Start])
		b.WriteString(p.Text)
		last = p.End
	}
	b.WriteString(src[last:])
	return b.String(), nil
}

package obfuscator

import (
	"fmt"
	"io"

	"github.com/defmix/defmix/internal/alias"
)

// WritePreamble writes one substitution directive per table entry, mapping
// each alias back to its original text verbatim. Entries come out in the
// table's insertion order, so the preamble is deterministic within a run and
// consistent with the rewrite pass.
func WritePreamble(w io.Writer, t *alias.Table) error {
	for _, e := range t.Entries() {
		if _, err := fmt.Fprintf(w, "#define %s %s\n", e.Alias, e.Key); err != nil {
			return err
		}
	}
	return nil
}

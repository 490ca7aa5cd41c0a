/*
defmix (Entry Point)

defmix rewrites a single C-family translation unit so that every variable,
function, and literal occurrence reads as an opaque token, while a preamble
of #define directives restores the original meaning at preprocessing time.
*/
package main

import (
	"github.com/defmix/defmix/cmd/defmix/cmd"
)

func main() {
	cmd.Execute()
}

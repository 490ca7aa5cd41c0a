// Package keys derives the canonical key under which all occurrences of the
// same renameable entity are grouped.
package keys

import "strings"

// operatorPrefix is the spelling prefix carried by references to overloaded
// operators.
const operatorPrefix = "operator"

// ForDeclaration returns the key for a declared variable or function name:
// the declared identifier text, scoped to the file under processing.
func ForDeclaration(name string) string {
	return name
}

// ForReference returns the key for a referenced identifier. A reference
// spelled with the operator-overload prefix keys on the bare symbol, so
// "operator+" and a plain use of the overload group together.
func ForReference(name string) string {
	if rest, ok := strings.CutPrefix(name, operatorPrefix); ok && rest != "" && !isIdentByte(rest[0]) {
		return rest
	}
	return name
}

// ForInt returns the key for an integer literal: its decimal spelling,
// without suffixes.
func ForInt(text string) string {
	return text
}

// ForString returns the key for a string literal: the raw contents wrapped
// in double quotes. Equal contents share a key; distinct contents never
// collide because the quoting is fixed.
func ForString(content string) string {
	return `"` + content + `"`
}

func isIdentByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}

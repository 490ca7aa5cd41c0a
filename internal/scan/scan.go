// Package scan tokenizes a single C-family translation unit and reports the
// occurrences the rewriting engine cares about: declarations, references,
// integer literals, and string literals, each carrying a byte offset into
// the original source. The engine itself never sees language grammar; it
// consumes the event stream this package produces.
package scan

import (
	"fmt"
	"strings"
)

// Kind classifies an occurrence event.
type Kind int

const (
	Declaration Kind = iota
	Reference
	IntLiteral
	StringLiteral
)

func (k Kind) String() string {
	switch k {
	case Declaration:
		return "declaration"
	case Reference:
		return "reference"
	case IntLiteral:
		return "int-literal"
	case StringLiteral:
		return "string-literal"
	default:
		return "unknown"
	}
}

// Occurrence is a single observed appearance of a renameable entity.
// Text holds the identifier spelling, the literal digits, or the raw string
// contents without quotes. Offset is the byte position the rewrite engine
// anchors to; for string literals it points at the opening quote, and for
// operator-overload references it points at the operator symbol itself, the
// way a compiler reports the operator token location.
type Occurrence struct {
	Kind   Kind
	Text   string
	Offset int
}

// File scans src and returns its occurrences in source order. References
// are reported only when the referenced name is declared somewhere in the
// file or appears on the always-in-scope allow list; everything else keeps
// its spelling. Preprocessor lines, comments, and character literals are
// skipped entirely.
func File(src string, allowed map[string]bool) ([]Occurrence, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}

	declIdx, declared := classifyDeclarations(toks)

	var occs []Occurrence
	for i, tok := range toks {
		switch tok.kind {
		case tokIdent:
			if declIdx[i] {
				occs = append(occs, Occurrence{Kind: Declaration, Text: tok.text, Offset: tok.offset})
				continue
			}
			if declared[tok.text] || allowed[tok.text] {
				off := tok.offset
				if tok.symOffset > 0 {
					off = tok.symOffset
				}
				occs = append(occs, Occurrence{Kind: Reference, Text: tok.text, Offset: off})
			}
		case tokNumber:
			if isDecimal(tok.text) {
				occs = append(occs, Occurrence{Kind: IntLiteral, Text: tok.text, Offset: tok.offset})
			}
		case tokString:
			occs = append(occs, Occurrence{Kind: StringLiteral, Text: tok.text, Offset: tok.offset})
		}
	}
	return occs, nil
}

// --- Tokenizer ---

type tokKind int

const (
	tokIdent tokKind = iota
	tokKeyword
	tokNumber
	tokString
	tokPunct
)

type token struct {
	kind   tokKind
	text   string
	offset int
	// symOffset is set only for merged operator-overload identifiers such as
	// "operator+": the byte offset of the symbol part.
	symOffset int
}

// operatorSymbols lists the overloadable operator spellings, longest first
// so greedy matching picks "<<" over "<".
var operatorSymbols = []string{
	"<<=", ">>=", "->*", "==", "!=", "<=", ">=", "&&", "||", "<<", ">>",
	"++", "--", "+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "->",
	"()", "[]", "+", "-", "*", "/", "%", "^", "&", "|", "~", "!", "<",
	">", "=", ",",
}

func tokenize(src string) ([]token, error) {
	var toks []token
	i := 0
	atLineStart := true

	for i < len(src) {
		c := src[i]

		switch {
		case c == '\n':
			atLineStart = true
			i++
			continue
		case c == ' ' || c == '\t' || c == '\r':
			i++
			continue
		case c == '/' && i+1 < len(src) && src[i+1] == '/':
			for i < len(src) && src[i] != '\n' {
				i++
			}
			continue
		case c == '/' && i+1 < len(src) && src[i+1] == '*':
			end := strings.Index(src[i+2:], "*/")
			if end < 0 {
				return nil, fmt.Errorf("unterminated block comment at offset %d", i)
			}
			i += 2 + end + 2
			continue
		case c == '#' && atLineStart:
			// Preprocessor line; honor backslash-newline continuations.
			for i < len(src) {
				if src[i] == '\n' {
					if i > 0 && src[i-1] == '\\' {
						i++
						continue
					}
					break
				}
				i++
			}
			continue
		case c == '"':
			start := i
			i++
			for i < len(src) && src[i] != '"' {
				if src[i] == '\\' && i+1 < len(src) {
					i++
				}
				if src[i] == '\n' {
					return nil, fmt.Errorf("unterminated string literal at offset %d", start)
				}
				i++
			}
			if i >= len(src) {
				return nil, fmt.Errorf("unterminated string literal at offset %d", start)
			}
			toks = append(toks, token{kind: tokString, text: src[start+1 : i], offset: start})
			i++ // closing quote
			atLineStart = false
			continue
		case c == '\'':
			start := i
			i++
			for i < len(src) && src[i] != '\'' {
				if src[i] == '\\' && i+1 < len(src) {
					i++
				}
				i++
			}
			if i >= len(src) {
				return nil, fmt.Errorf("unterminated character literal at offset %d", start)
			}
			i++ // closing quote; character literals are never renamed
			atLineStart = false
			continue
		case isDigit(c):
			start := i
			for i < len(src) && (isIdentByte(src[i]) || src[i] == '.') {
				i++
			}
			toks = append(toks, token{kind: tokNumber, text: src[start:i], offset: start})
			atLineStart = false
			continue
		case isIdentStart(c):
			start := i
			for i < len(src) && isIdentByte(src[i]) {
				i++
			}
			text := src[start:i]
			tok := token{kind: tokIdent, text: text, offset: start}
			if keywords[text] {
				tok.kind = tokKeyword
			}
			if text == "operator" {
				// Merge the trailing symbol into one identifier spelling.
				j := i
				for j < len(src) && (src[j] == ' ' || src[j] == '\t') {
					j++
				}
				for _, sym := range operatorSymbols {
					if strings.HasPrefix(src[j:], sym) {
						tok.kind = tokIdent
						tok.text = text + sym
						tok.symOffset = j
						i = j + len(sym)
						break
					}
				}
			}
			toks = append(toks, tok)
			atLineStart = false
			continue
		default:
			toks = append(toks, token{kind: tokPunct, text: string(c), offset: i})
			i++
			atLineStart = false
			continue
		}
	}
	return toks, nil
}

// --- Declaration classification ---

// typeKeywords are the built-in type names that open a declarator.
var typeKeywords = map[string]bool{
	"auto": true, "bool": true, "char": true, "double": true, "float": true,
	"int": true, "long": true, "short": true, "signed": true,
	"unsigned": true, "void": true,
}

var keywords = map[string]bool{
	"alignas": true, "alignof": true, "asm": true, "auto": true, "bool": true,
	"break": true, "case": true, "catch": true, "char": true, "class": true,
	"const": true, "constexpr": true, "continue": true, "default": true,
	"delete": true, "do": true, "double": true, "else": true, "enum": true,
	"explicit": true, "extern": true, "false": true, "float": true,
	"for": true, "friend": true, "goto": true, "if": true, "inline": true,
	"int": true, "long": true, "mutable": true, "namespace": true,
	"new": true, "noexcept": true, "nullptr": true, "private": true,
	"protected": true, "public": true, "register": true, "restrict": true,
	"return": true, "short": true, "signed": true, "sizeof": true,
	"static": true, "struct": true, "switch": true, "template": true,
	"this": true, "throw": true, "true": true, "try": true, "typedef": true,
	"typeid": true, "typename": true, "union": true, "unsigned": true,
	"using": true, "virtual": true, "void": true, "volatile": true,
	"while": true,
}

// classifyDeclarations walks the token stream once and decides which
// identifier tokens introduce a name. An identifier is a declarator when the
// nearest preceding meaningful token is a built-in type keyword, skipping
// pointer and reference punctuation; a comma at the top nesting level of a
// declaration statement re-opens the declarator position (int a, b;).
func classifyDeclarations(toks []token) (map[int]bool, map[string]bool) {
	declIdx := make(map[int]bool)
	declared := make(map[string]bool)

	inDecl := false
	expectDeclarator := false
	parenDepth := 0

	for i, tok := range toks {
		switch tok.kind {
		case tokKeyword:
			if typeKeywords[tok.text] {
				inDecl = true
				expectDeclarator = true
			}
		case tokIdent:
			if expectDeclarator {
				declIdx[i] = true
				declared[tok.text] = true
				expectDeclarator = false
			}
		case tokPunct:
			switch tok.text {
			case "*", "&":
				// Pointer/reference decoration between type and declarator.
			case "(":
				parenDepth++
				expectDeclarator = false
			case ")":
				if parenDepth > 0 {
					parenDepth--
				}
			case ",":
				if inDecl && parenDepth == 0 {
					expectDeclarator = true
				}
			case "=":
				expectDeclarator = false
			case ";", "{", "}":
				inDecl = false
				expectDeclarator = false
				parenDepth = 0
			default:
				expectDeclarator = false
			}
		default:
			expectDeclarator = false
		}
	}
	return declIdx, declared
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentByte(b byte) bool { return isIdentStart(b) || isDigit(b) }

func isDecimal(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

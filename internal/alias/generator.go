// Package alias assigns opaque replacement tokens and tracks every source
// position at which each canonical key occurs.
package alias

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/defmix/defmix/internal/config"
)

const (
	// Character sets for the different alias modes.
	firstCharsIdentifier = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	allCharsIdentifier   = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	firstCharsHex        = "abcdefABCDEF"
	allCharsHex          = "0123456789abcdefABCDEF"
	firstCharsNumeric    = "O"
	allCharsNumeric      = "0123456789"
)

// TokenSource produces fresh candidate tokens on demand. It makes no
// uniqueness guarantee of its own; the Table rejects collisions.
type TokenSource interface {
	Next() string
}

// Generator emits random alias candidates: the first character drawn from
// the letter alphabet, the rest from the alphanumeric alphabet, at a fixed
// length taken from the configuration.
type Generator struct {
	mode   string
	length int
}

// NewGenerator creates a generator using the configured mode and length.
func NewGenerator(cfg *config.Config) *Generator {
	g := &Generator{
		mode:   cfg.AliasMode,
		length: cfg.AliasLength,
	}
	if g.length < config.MinAliasLength {
		g.length = config.MinAliasLength
	}
	if g.length > config.MaxAliasLength {
		g.length = config.MaxAliasLength
	}
	return g
}

// Next returns a fresh candidate token.
func (g *Generator) Next() string {
	var firstChars, allChars string
	switch g.mode {
	case config.AliasModeHexa:
		firstChars = firstCharsHex
		allChars = allCharsHex
	case config.AliasModeNumeric:
		firstChars = firstCharsNumeric
		allChars = allCharsNumeric
	default:
		firstChars = firstCharsIdentifier
		allChars = allCharsIdentifier
	}

	sb := strings.Builder{}
	sb.Grow(g.length)
	sb.WriteByte(firstChars[randInt(len(firstChars))])
	for i := 1; i < g.length; i++ {
		sb.WriteByte(allChars[randInt(len(allChars))])
	}
	return sb.String()
}

// randInt returns a uniform random int in [0, max).
func randInt(max int) int {
	if max <= 0 {
		return 0
	}
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		panic(fmt.Sprintf("crypto/rand failed: %v", err))
	}
	return int(nBig.Int64())
}

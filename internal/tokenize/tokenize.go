// Package tokenize turns raw corpus text into the normalized token stream
// the analyzer counts. Splitting is whitespace based; within each raw token
// only letters survive, lowercased, so "Hello, world!" and "hello world"
// count the same. Digits, punctuation and symbols are dropped entirely.
package tokenize

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/log"
	"github.com/kljensen/snowball"
)

// Options control normalization beyond the default strip-and-lowercase pass.
type Options struct {
	// MinLength drops tokens shorter than this many runes. 0 or 1 keeps all.
	MinLength int
	// Stem folds inflected forms with the snowball English stemmer.
	Stem bool
}

// Tokenize splits text into normalized tokens, preserving stream order.
// Tokens that normalize to the empty string ("42", "#!?") are dropped.
func Tokenize(text string, opts Options) []string {
	fields := strings.Fields(text)
	tokens := make([]string, 0, len(fields))
	var b strings.Builder

	for _, field := range fields {
		b.Reset()
		for _, r := range field {
			if unicode.IsLetter(r) {
				b.WriteRune(unicode.ToLower(r))
			}
		}
		if b.Len() == 0 {
			continue
		}
		token := b.String()
		if opts.MinLength > 1 && len([]rune(token)) < opts.MinLength {
			continue
		}
		if opts.Stem {
			stemmed, err := snowball.Stem(token, "english", false)
			if err != nil {
				log.Debugf("stem failed for %q: %v", token, err)
			} else if stemmed != "" {
				token = stemmed
			}
		}
		tokens = append(tokens, token)
	}
	return tokens
}

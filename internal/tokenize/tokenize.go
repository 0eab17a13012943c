// Package tokenize splits typed text into the words the corrector aligns and
// joins corrected tokens back into display text.
package tokenize

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

var tokenRe = regexp.MustCompile(`[\p{L}\p{M}]+(?:['’][\p{L}\p{M}]+)*|\p{N}+(?:[.,]\p{N}+)*|[^\s\p{L}\p{M}\p{N}]`)

const (
	closingPunct = ".,;:!?)]}»”%…"
	openingPunct = "([{«“¿¡"
)

// Tokenizer is a regex word and punctuation splitter over NFC text.
type Tokenizer struct {
	Lowercase bool
}

func New(lowercase bool) *Tokenizer {
	return &Tokenizer{Lowercase: lowercase}
}

func (t *Tokenizer) normalize(text string) string {
	text = norm.NFC.String(text)
	if t.Lowercase {
		text = strings.ToLower(text)
	}
	return text
}

// Tokenize returns the words and punctuation marks of text. Whitespace only
// separates tokens.
func (t *Tokenizer) Tokenize(text string) []string {
	return tokenRe.FindAllString(t.normalize(text), -1)
}

// IsLastWordComplete reports whether the user has finished the last word of
// text: the text is empty, ends in whitespace or ends in a punctuation mark.
func (t *Tokenizer) IsLastWordComplete(text string) bool {
	if text == "" {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text)
	if unicode.IsSpace(r) {
		return true
	}
	toks := t.Tokenize(text)
	if len(toks) == 0 {
		return true
	}
	return !isWord(toks[len(toks)-1])
}

// Detokenize joins tokens with single spaces, attaching punctuation to the
// neighbouring word.
func (t *Tokenizer) Detokenize(tokens []string) string {
	var sb strings.Builder
	for i, tok := range tokens {
		if i > 0 && !isPunct(closingPunct, tok) && !isPunct(openingPunct, tokens[i-1]) {
			sb.WriteByte(' ')
		}
		sb.WriteString(tok)
	}
	return sb.String()
}

// isPunct reports whether tok is a single rune from set.
func isPunct(set, tok string) bool {
	r, size := utf8.DecodeRuneInString(tok)
	return size > 0 && size == len(tok) && strings.ContainsRune(set, r)
}

func isWord(tok string) bool {
	for _, r := range tok {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			return true
		}
	}
	return false
}

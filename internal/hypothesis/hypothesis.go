// Package hypothesis holds the displayed translation hypothesis of an
// interactive session: target tokens with their provenance and confidence,
// and the phrase segmentation with per-phrase word alignments.
package hypothesis

import (
	"errors"
	"fmt"
	"slices"
)

// ErrInvalidStructure reports a hypothesis whose parallel arrays or phrase
// segmentation are inconsistent.
var ErrInvalidStructure = errors.New("hypothesis: invalid structure")

// Source flags where a target token came from.
type Source uint8

const (
	SourceNone Source = 0
	SourceSmt  Source = 1 << (iota - 1)
	SourceTransfer
	SourcePrefix
)

func (s Source) Has(flag Source) bool { return s&flag != 0 }

// UnknownConfidence marks tokens whose confidence was never estimated.
const UnknownConfidence = -1.0

// Phrase covers the target tokens from the previous phrase's TargetCut up to
// TargetCut, translated from source words [SourceStart, SourceEnd).
type Phrase struct {
	SourceStart int
	SourceEnd   int
	TargetCut   int
	Alignment   Alignment
}

// Hypothesis is a candidate translation. Phrases are ordered by strictly
// increasing TargetCut and partition Tokens.
type Hypothesis struct {
	Tokens      []string
	Sources     []Source
	Confidences []float64
	Phrases     []Phrase
}

// AppendToken adds a token that no phrase covers yet.
func (h *Hypothesis) AppendToken(token string, source Source, confidence float64) {
	h.Tokens = append(h.Tokens, token)
	h.Sources = append(h.Sources, source)
	h.Confidences = append(h.Confidences, confidence)
}

// MarkPhrase closes a phrase over all tokens appended since the last phrase.
func (h *Hypothesis) MarkPhrase(sourceStart, sourceEnd int, alignment Alignment) error {
	span := len(h.Tokens) - h.lastCut()
	if span <= 0 {
		return fmt.Errorf("%w: phrase would be empty", ErrInvalidStructure)
	}
	if alignment.Cols() != span || alignment.Rows() != sourceEnd-sourceStart {
		return fmt.Errorf("%w: alignment %dx%d does not fit phrase %dx%d", ErrInvalidStructure,
			alignment.Rows(), alignment.Cols(), sourceEnd-sourceStart, span)
	}
	h.Phrases = append(h.Phrases, Phrase{
		SourceStart: sourceStart,
		SourceEnd:   sourceEnd,
		TargetCut:   len(h.Tokens),
		Alignment:   alignment,
	})
	return nil
}

// AppendPrefix appends typed words verbatim as prefix tokens and covers them
// with an unaligned phrase. It returns the number of columns added.
func (h *Hypothesis) AppendPrefix(words []string) int {
	for _, w := range words {
		h.AppendToken(w, SourcePrefix, UnknownConfidence)
	}
	h.coverTrailing(len(words))
	return len(words)
}

// coverTrailing closes the n trailing tokens with a phrase that has an empty
// source range, keeping the partition intact.
func (h *Hypothesis) coverTrailing(n int) {
	if n == 0 {
		return
	}
	src := 0
	if len(h.Phrases) > 0 {
		src = h.Phrases[len(h.Phrases)-1].SourceEnd
	}
	h.Phrases = append(h.Phrases, Phrase{
		SourceStart: src,
		SourceEnd:   src,
		TargetCut:   len(h.Tokens),
		Alignment:   NewAlignment(0, n),
	})
}

func (h *Hypothesis) lastCut() int {
	if len(h.Phrases) == 0 {
		return 0
	}
	return h.Phrases[len(h.Phrases)-1].TargetCut
}

// PhraseStart returns the first token index of phrase k.
func (h *Hypothesis) PhraseStart(k int) int {
	if k == 0 {
		return 0
	}
	return h.Phrases[k-1].TargetCut
}

// Validate checks the parallel arrays and the phrase partition.
func (h *Hypothesis) Validate() error {
	n := len(h.Tokens)
	if len(h.Sources) != n || len(h.Confidences) != n {
		return fmt.Errorf("%w: %d tokens, %d sources, %d confidences",
			ErrInvalidStructure, n, len(h.Sources), len(h.Confidences))
	}
	prev := 0
	for k, p := range h.Phrases {
		if p.TargetCut <= prev {
			return fmt.Errorf("%w: phrase %d cut %d does not follow %d", ErrInvalidStructure, k, p.TargetCut, prev)
		}
		if p.Alignment.Cols() != p.TargetCut-prev {
			return fmt.Errorf("%w: phrase %d alignment has %d columns for a span of %d",
				ErrInvalidStructure, k, p.Alignment.Cols(), p.TargetCut-prev)
		}
		prev = p.TargetCut
	}
	if prev != n {
		return fmt.Errorf("%w: phrases cover %d of %d tokens", ErrInvalidStructure, prev, n)
	}
	return nil
}

// Clone returns a deep copy.
func (h *Hypothesis) Clone() *Hypothesis {
	out := &Hypothesis{
		Tokens:      slices.Clone(h.Tokens),
		Sources:     slices.Clone(h.Sources),
		Confidences: slices.Clone(h.Confidences),
		Phrases:     make([]Phrase, len(h.Phrases)),
	}
	for k, p := range h.Phrases {
		p.Alignment = p.Alignment.Clone()
		out.Phrases[k] = p
	}
	return out
}

func (h *Hypothesis) insertToken(j int, token string, source Source, confidence float64) {
	h.Tokens = slices.Insert(h.Tokens, j, token)
	h.Sources = slices.Insert(h.Sources, j, source)
	h.Confidences = slices.Insert(h.Confidences, j, confidence)
}

func (h *Hypothesis) removeToken(j int) {
	h.Tokens = slices.Delete(h.Tokens, j, j+1)
	h.Sources = slices.Delete(h.Sources, j, j+1)
	h.Confidences = slices.Delete(h.Confidences, j, j+1)
}

package hypothesis

import (
	"errors"
	"fmt"
	"strings"

	"prefixcorrector/internal/editdist"
)

// ErrInvalidScript reports an edit script that does not fit the hypothesis or
// the typed prefix it is applied with.
var ErrInvalidScript = errors.New("hypothesis: invalid edit script")

// CorrectPrefix applies wordOps, which align the leading tokens against the
// typed prefix words, to h in place. charOps patches the last prefix word at
// the character level when it is still being typed and ends on a hit.
//
// Phrases outside the edited region keep their alignments; phrases whose
// columns changed get a remapped alignment, and phrases that lose all their
// tokens are dropped. It returns how many trailing columns no phrase covered;
// those are closed by a new unaligned phrase. Nothing is modified when an
// error is returned.
func (h *Hypothesis) CorrectPrefix(wordOps, charOps []editdist.Op, prefix []string, isLastWordComplete bool) (int, error) {
	if err := h.Validate(); err != nil {
		return 0, err
	}
	boundary, err := h.checkScript(wordOps, charOps, prefix, isLastWordComplete)
	if err != nil {
		return 0, err
	}

	var (
		cols   []int // per column of the current phrase: old column index, or -1 if inserted
		oldCol int
		j, p   int
		k      int
	)
	finish := func() {
		h.resizeAlignment(k, cols)
		cols = cols[:0]
		oldCol = 0
		k++
	}

	for _, op := range wordOps {
		switch op {
		case editdist.Insert:
			h.insertToken(j, prefix[p], SourcePrefix, UnknownConfidence)
			cols = append(cols, -1)
			for l := k; l < len(h.Phrases); l++ {
				h.Phrases[l].TargetCut++
			}
			j++
			p++

		case editdist.Delete:
			h.removeToken(j)
			oldCol++
			if k >= len(h.Phrases) {
				break
			}
			for l := k; l < len(h.Phrases); l++ {
				h.Phrases[l].TargetCut--
			}
			if cut := h.Phrases[k].TargetCut; cut <= 0 || (k > 0 && cut == h.Phrases[k-1].TargetCut) {
				h.Phrases = append(h.Phrases[:k], h.Phrases[k+1:]...)
				cols = cols[:0]
				oldCol = 0
			} else if j >= cut {
				finish()
			}

		case editdist.Hit, editdist.Substitute:
			if op == editdist.Substitute || p < len(prefix)-1 || isLastWordComplete {
				h.Tokens[j] = prefix[p]
			} else {
				h.Tokens[j] = boundary
			}
			if op == editdist.Substitute {
				h.Sources[j] = SourcePrefix
				h.Confidences[j] = UnknownConfidence
			} else {
				h.Sources[j] |= SourcePrefix
			}
			cols = append(cols, oldCol)
			oldCol++
			j++
			p++
			if k < len(h.Phrases) && j >= h.Phrases[k].TargetCut {
				finish()
			}
		}
	}

	for j < len(h.Tokens) {
		cols = append(cols, oldCol)
		oldCol++
		j++
		if k < len(h.Phrases) && j >= h.Phrases[k].TargetCut {
			finish()
		}
	}

	trailing := len(cols)
	h.coverTrailing(trailing)
	return trailing, nil
}

// resizeAlignment rebuilds phrase k's alignment for the given column mapping
// unless the mapping is the identity.
func (h *Hypothesis) resizeAlignment(k int, cols []int) {
	cur := h.Phrases[k].Alignment
	if len(cols) == cur.Cols() {
		identity := true
		for c, old := range cols {
			if c != old {
				identity = false
				break
			}
		}
		if identity {
			return
		}
	}
	h.Phrases[k].Alignment = cur.remap(cols)
}

// checkScript walks the script without touching h and returns the patched
// boundary word, if the script ends on a hit of an unfinished word. orig
// indexes the unedited tokens: inserts do not consume one.
func (h *Hypothesis) checkScript(wordOps, charOps []editdist.Op, prefix []string, isLastWordComplete bool) (string, error) {
	var boundary string
	orig, p := 0, 0
	for idx, op := range wordOps {
		switch op {
		case editdist.Insert:
			if p >= len(prefix) {
				return "", fmt.Errorf("%w: insert at op %d runs past %d prefix words", ErrInvalidScript, idx, len(prefix))
			}
			p++
		case editdist.Delete:
			if orig >= len(h.Tokens) {
				return "", fmt.Errorf("%w: delete at op %d runs past %d tokens", ErrInvalidScript, idx, len(h.Tokens))
			}
			orig++
		case editdist.Hit, editdist.Substitute:
			if orig >= len(h.Tokens) || p >= len(prefix) {
				return "", fmt.Errorf("%w: %s at op %d out of range (token %d/%d, prefix %d/%d)",
					ErrInvalidScript, op, idx, orig, len(h.Tokens), p, len(prefix))
			}
			if op == editdist.Hit && p == len(prefix)-1 && !isLastWordComplete {
				w, err := patchWord(charOps, h.Tokens[orig], prefix[p])
				if err != nil {
					return "", err
				}
				boundary = w
			}
			orig++
			p++
		default:
			return "", fmt.Errorf("%w: unexpected %s at op %d", ErrInvalidScript, op, idx)
		}
	}
	if p != len(prefix) {
		return "", fmt.Errorf("%w: script consumes %d of %d prefix words", ErrInvalidScript, p, len(prefix))
	}
	return boundary, nil
}

// patchWord rewrites the start of word to follow the typed prefix, keeping
// whatever suffix of word the character script did not reach.
func patchWord(charOps []editdist.Op, word, prefix string) (string, error) {
	w, pf := []rune(word), []rune(prefix)
	var sb strings.Builder
	i, j := 0, 0
	for _, op := range charOps {
		switch op {
		case editdist.Hit:
			if i >= len(w) || j >= len(pf) {
				return "", fmt.Errorf("%w: char hit out of range in %q/%q", ErrInvalidScript, word, prefix)
			}
			sb.WriteRune(w[i])
			i++
			j++
		case editdist.Insert:
			if j >= len(pf) {
				return "", fmt.Errorf("%w: char insert out of range in %q", ErrInvalidScript, prefix)
			}
			sb.WriteRune(pf[j])
			j++
		case editdist.Delete:
			if i >= len(w) {
				return "", fmt.Errorf("%w: char delete out of range in %q", ErrInvalidScript, word)
			}
			i++
		case editdist.Substitute:
			if i >= len(w) || j >= len(pf) {
				return "", fmt.Errorf("%w: char substitution out of range in %q/%q", ErrInvalidScript, word, prefix)
			}
			sb.WriteRune(pf[j])
			i++
			j++
		default:
			return "", fmt.Errorf("%w: unexpected char %s", ErrInvalidScript, op)
		}
	}
	sb.WriteString(string(w[i:]))
	return sb.String(), nil
}

package editdist

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// emptyWordDiscount keeps substituting into an empty hypothesis word slightly
// cheaper than a full substitution of every typed character.
const emptyWordDiscount = 0.99

// SegmentDistance is the word-level edit distance between two segments. Word
// substitutions are priced by a nested character-level distance so that a
// near miss costs less than an unrelated word.
type SegmentDistance struct {
	Weights
	word *WordDistance
}

func NewSegmentDistance(w Weights) *SegmentDistance {
	return &SegmentDistance{Weights: w, word: NewWordDistance(w)}
}

// SetWeights installs w on the segment distance and its nested word distance.
func (d *SegmentDistance) SetWeights(w Weights) {
	d.Weights = w
	d.word.Weights = w
}

// Word returns the nested character-level distance.
func (d *SegmentDistance) Word() *WordDistance { return d.word }

func runeLen(s string) float64 { return float64(utf8.RuneCountInString(s)) }

func (d *SegmentDistance) HitCost(_, y string, _ bool) float64 {
	return d.Hit * runeLen(y)
}

func (d *SegmentDistance) InsertionCost(y string) float64 {
	return d.Insertion * runeLen(y)
}

func (d *SegmentDistance) DeletionCost(x string) float64 {
	return d.Deletion * max(runeLen(x), 1)
}

func (d *SegmentDistance) SubstitutionCost(x, y string, isComplete bool) float64 {
	if x == "" {
		return d.Substitution * emptyWordDiscount * runeLen(y)
	}
	var ops []Op
	if isComplete {
		_, ops = d.word.Align(x, y)
	} else {
		_, ops = d.word.ComputePrefix(x, y, true, true)
	}
	c := CountOps(ops)
	return d.Hit*float64(c.Hits) +
		d.Insertion*float64(c.Insertions) +
		d.Substitution*float64(c.Substitutions) +
		d.Deletion*float64(c.Deletions)
}

// IsHit treats a hypothesis word as matched when it equals the typed word or,
// while the typed word is unfinished, when it could still complete to it.
func (d *SegmentDistance) IsHit(x, y string, isComplete bool) bool {
	return x == y || (!isComplete && strings.HasPrefix(x, y))
}

// Compute returns the full distance between segments x and y.
func (d *SegmentDistance) Compute(x, y []string) float64 {
	return Distance[string](d, x, y)
}

// ComputePrefix aligns hypothesis words x against typed words y. When the last
// typed word is incomplete and ends on a hit, charOps patches that word at the
// character level; otherwise charOps is empty.
func (d *SegmentDistance) ComputePrefix(x, y []string, isLastItemComplete, usePrefixDelOp bool) (dist float64, wordOps, charOps []Op) {
	mat := fill[string](d, x, y, isLastItemComplete, usePrefixDelOp)
	steps := trace[string](d, x, y, mat, isLastItemComplete, usePrefixDelOp)
	for _, s := range steps {
		if s.op == Hit && s.j == len(y) && !isLastItemComplete {
			_, charOps = d.word.ComputePrefix(x[s.i-1], y[s.j-1], true, true)
		}
	}
	return mat.At(len(x), len(y)), script(steps), charOps
}

// IncrComputePrefixFirstRow extends the row of the empty hypothesis: scores is
// reset to prevScores and one entry is appended per word of yIncr.
func (d *SegmentDistance) IncrComputePrefixFirstRow(scores, prevScores []float64, yIncr []string) []float64 {
	scores = append(scores[:0], prevScores...)
	if len(scores) == 0 {
		scores = append(scores, 0)
	}
	for _, w := range yIncr {
		scores = append(scores, scores[len(scores)-1]+d.InsertionCost(w))
	}
	return scores
}

// IncrComputePrefix fills the columns of yIncr in the row of hypothesis word
// xWord. prevScores is the parent row already covering the whole prefix and
// scores is this row up to the start of the increment. It returns the extended
// row and the operation chosen for each new column. Work is proportional to
// len(yIncr).
func (d *SegmentDistance) IncrComputePrefix(scores, prevScores []float64, xWord string, yIncr []string, isLastItemComplete bool) ([]float64, []Op, error) {
	start := len(prevScores) - len(yIncr)
	if start < 1 || len(scores) != start {
		return scores, nil, fmt.Errorf("%w: row %d, parent row %d, increment %d",
			ErrRowMismatch, len(scores), len(prevScores), len(yIncr))
	}

	x := []string{xWord}
	y := make([]string, len(prevScores)-1)
	copy(y[start-1:], yIncr)

	mat := NewMatrix(2, len(prevScores))
	for j, s := range prevScores {
		mat.Set(0, j, s)
	}
	for j, s := range scores {
		mat.Set(1, j, s)
	}

	ops := make([]Op, len(yIncr))
	for k := range yIncr {
		j := start + k
		c, op, _, _ := cell[string](d, x, y, mat, false, isComplete(j, len(y), isLastItemComplete), 1, j)
		mat.Set(1, j, c)
		scores = append(scores, c)
		ops[k] = op
	}
	return scores, ops, nil
}

package ecm

import (
	"slices"

	"prefixcorrector/internal/editdist"
)

// ScoreInfo is one row of incremental alignment state attached to a node of a
// hypothesis search: Scores[j] is the cost of the node's path against the
// first j prefix words, and Operations[j-1] the step that reached column j.
// The initial row carries no operations.
type ScoreInfo struct {
	Scores     []float64
	Operations []editdist.Op
}

// Clone returns an independent copy, for branching a search path.
func (s *ScoreInfo) Clone() *ScoreInfo {
	return &ScoreInfo{
		Scores:     slices.Clone(s.Scores),
		Operations: slices.Clone(s.Operations),
	}
}

// LastScore returns the cost against the whole prefix seen so far.
func (s *ScoreInfo) LastScore() float64 {
	return s.Scores[len(s.Scores)-1]
}

// RemoveLast drops the last prefix column, keeping column 0.
func (s *ScoreInfo) RemoveLast() {
	if len(s.Scores) > 1 {
		s.Truncate(len(s.Scores) - 2)
	}
}

// Truncate keeps the columns for the first cols prefix words.
func (s *ScoreInfo) Truncate(cols int) {
	if cols+1 < len(s.Scores) {
		s.Scores = s.Scores[:cols+1]
	}
	if cols < len(s.Operations) {
		s.Operations = s.Operations[:cols]
	}
}

// SetupInitial seeds the row of the empty hypothesis against the empty prefix.
func (m *Model) SetupInitial(esi *ScoreInfo) {
	esi.Scores = append(esi.Scores[:0], m.segment.Compute(nil, nil))
	esi.Operations = esi.Operations[:0]
}

// Setup seeds the row of a node extending prev with word, before any prefix
// word is matched.
func (m *Model) Setup(esi, prev *ScoreInfo, word string) {
	cost := m.segment.Compute([]string{word}, nil)
	esi.Scores = append(esi.Scores[:0], prev.Scores[0]+cost)
	esi.Operations = esi.Operations[:0]
}

// ExtendInitial appends the columns of prefixDiff to the initial row.
func (m *Model) ExtendInitial(esi, prev *ScoreInfo, prefixDiff []string) {
	esi.Scores = m.segment.IncrComputePrefixFirstRow(esi.Scores, prev.Scores, prefixDiff)
}

// Extend appends the columns of prefixDiff to the row of a node for word,
// given its parent row prev already covering the whole prefix.
func (m *Model) Extend(esi, prev *ScoreInfo, word string, prefixDiff []string, isLastWordComplete bool) error {
	scores, ops, err := m.segment.IncrComputePrefix(esi.Scores, prev.Scores, word, prefixDiff, isLastWordComplete)
	if err != nil {
		return err
	}
	esi.Scores = scores
	esi.Operations = append(esi.Operations, ops...)
	return nil
}

// Package ecm is the error correction model of interactive prefix correction.
// It turns a small probabilistic model of typing errors into edit costs and
// exposes the streaming score updates a hypothesis search performs as the
// user types, along with the one-shot correction of a displayed hypothesis.
package ecm

import (
	"errors"
	"fmt"
	"math"

	"prefixcorrector/internal/editdist"
	"prefixcorrector/internal/hypothesis"
	"prefixcorrector/pkg/options"
)

var (
	// ErrInvalidParameters rejects parameterizations that yield non-finite costs.
	ErrInvalidParameters = errors.New("ecm: invalid error model parameters")
	// ErrOutOfRange reports an uncorrected prefix longer than the hypothesis.
	ErrOutOfRange = errors.New("ecm: uncorrected prefix out of range")
)

// Model owns the segment distance whose costs it derives.
type Model struct {
	params  options.ErrorModelOptions
	segment *editdist.SegmentDistance
}

// New builds a model from DefaultOptions with opts applied.
func New(opts ...options.Options) (*Model, error) {
	p := options.DefaultOptions
	for _, o := range opts {
		o.Apply(&p)
	}
	m := &Model{segment: editdist.NewSegmentDistance(editdist.UnitWeights)}
	if err := m.SetParameters(p); err != nil {
		return nil, err
	}
	return m, nil
}

// SetParameters derives and installs the edit costs for p. The model is left
// unchanged when p is rejected.
func (m *Model) SetParameters(p options.ErrorModelOptions) error {
	w, err := Costs(p)
	if err != nil {
		return err
	}
	m.params = p
	m.segment.SetWeights(w)
	return nil
}

func (m *Model) Parameters() options.ErrorModelOptions { return m.params }

func (m *Model) Weights() editdist.Weights { return m.segment.Weights }

// Segment returns the model's segment distance.
func (m *Model) Segment() *editdist.SegmentDistance { return m.segment }

// Costs converts error probabilities into negative log costs.
//
//	e = (1-pHit) / (fIns*V + fSub*(V-1) + fDel)
//	e = (1-pHit) / (fIns + fSub + fDel)            when V == 0
//	cost(op) = -ln(e * f(op)),  cost(hit) = -ln(pHit)
func Costs(p options.ErrorModelOptions) (editdist.Weights, error) {
	if p.VocabularySize < 0 {
		return editdist.Weights{}, fmt.Errorf("%w: vocabulary size %d", ErrInvalidParameters, p.VocabularySize)
	}
	if !(p.HitProbability > 0 && p.HitProbability < 1) {
		return editdist.Weights{}, fmt.Errorf("%w: hit probability %v not in (0, 1)", ErrInvalidParameters, p.HitProbability)
	}
	for name, f := range map[string]float64{
		"insertion":    p.InsertionFactor,
		"substitution": p.SubstitutionFactor,
		"deletion":     p.DeletionFactor,
	} {
		if !(f > 0) || math.IsInf(f, 0) {
			return editdist.Weights{}, fmt.Errorf("%w: %s factor %v must be positive", ErrInvalidParameters, name, f)
		}
	}

	var denom float64
	if v := float64(p.VocabularySize); p.VocabularySize != 0 {
		denom = p.InsertionFactor*v + p.SubstitutionFactor*(v-1) + p.DeletionFactor
	} else {
		denom = p.InsertionFactor + p.SubstitutionFactor + p.DeletionFactor
	}
	e := (1 - p.HitProbability) / denom

	w := editdist.Weights{
		Hit:          -math.Log(p.HitProbability),
		Insertion:    -math.Log(e * p.InsertionFactor),
		Substitution: -math.Log(e * p.SubstitutionFactor),
		Deletion:     -math.Log(e * p.DeletionFactor),
	}
	for _, c := range []float64{w.Hit, w.Insertion, w.Substitution, w.Deletion} {
		if math.IsNaN(c) || math.IsInf(c, 0) || c < 0 {
			return editdist.Weights{}, fmt.Errorf("%w: derived cost %v", ErrInvalidParameters, c)
		}
	}
	return w, nil
}

// CorrectPrefix re-derives hypothesis h against the typed prefix words. The
// first uncorrectedPrefixLen tokens of h are aligned with the prefix; tokens
// the user has not reached yet are dropped from the alignment for free and
// kept in h. It returns the number of trailing columns no phrase covered
// before the call.
func (m *Model) CorrectPrefix(h *hypothesis.Hypothesis, uncorrectedPrefixLen int, prefix []string, isLastWordComplete bool) (int, error) {
	c, err := m.Correct(h, uncorrectedPrefixLen, prefix, isLastWordComplete)
	return c.TrailingColumns, err
}

// Correction describes one applied prefix correction.
type Correction struct {
	TrailingColumns int
	Distance        float64
	WordOps         []editdist.Op
	CharOps         []editdist.Op
}

// Correct is CorrectPrefix that also reports the scripts it applied.
func (m *Model) Correct(h *hypothesis.Hypothesis, uncorrectedPrefixLen int, prefix []string, isLastWordComplete bool) (Correction, error) {
	if uncorrectedPrefixLen < 0 || uncorrectedPrefixLen > len(h.Tokens) {
		return Correction{}, fmt.Errorf("%w: %d of %d tokens", ErrOutOfRange, uncorrectedPrefixLen, len(h.Tokens))
	}
	if uncorrectedPrefixLen == 0 {
		if err := h.Validate(); err != nil {
			return Correction{}, err
		}
		ops := make([]editdist.Op, len(prefix))
		for i := range ops {
			ops[i] = editdist.Insert
		}
		return Correction{
			TrailingColumns: h.AppendPrefix(prefix),
			Distance:        m.segment.Compute(nil, prefix),
			WordOps:         ops,
		}, nil
	}

	dist, wordOps, charOps := m.segment.ComputePrefix(h.Tokens[:uncorrectedPrefixLen], prefix, isLastWordComplete, true)
	n, err := h.CorrectPrefix(wordOps, charOps, prefix, isLastWordComplete)
	if err != nil {
		return Correction{}, err
	}
	return Correction{TrailingColumns: n, Distance: dist, WordOps: wordOps, CharOps: charOps}, nil
}

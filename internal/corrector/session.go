// Package corrector drives one displayed hypothesis through the keystrokes of
// an interactive session.
package corrector

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"prefixcorrector/internal/ecm"
	"prefixcorrector/internal/hypothesis"
)

// Tokenizer splits typed text into prefix words and joins tokens for display.
type Tokenizer interface {
	Tokenize(text string) []string
	Detokenize(tokens []string) string
	IsLastWordComplete(text string) bool
}

// Session keeps the hypothesis produced by the search layer untouched and
// re-derives the displayed one from it on every prefix change, so a prefix
// that shrinks is handled the same way as one that grows.
type Session struct {
	ID uuid.UUID

	model   *ecm.Model
	tok     Tokenizer
	log     logrus.FieldLogger
	metrics *Metrics

	mu      sync.Mutex
	base    *hypothesis.Hypothesis
	current *hypothesis.Hypothesis
	arena   *ecm.Arena
	leaves  []ecm.NodeID // leaves[i] scores base.Tokens[:i]
	last    Result
}

// NewSession starts a session on base. log and metrics may be nil.
func NewSession(model *ecm.Model, tok Tokenizer, base *hypothesis.Hypothesis, log logrus.FieldLogger, metrics *Metrics) (*Session, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	s := &Session{
		ID:      uuid.New(),
		model:   model,
		tok:     tok,
		metrics: metrics,
	}
	s.log = log.WithField("session", s.ID.String())
	if err := s.Reset(base); err != nil {
		return nil, err
	}
	return s, nil
}

// Reset installs a fresh hypothesis from the search layer and forgets the
// typed prefix.
func (s *Session) Reset(base *hypothesis.Hypothesis) error {
	if err := base.Validate(); err != nil {
		return err
	}
	arena := s.model.NewArena()
	leaves := []ecm.NodeID{ecm.Root}
	for _, w := range base.Tokens {
		id, err := arena.Add(leaves[len(leaves)-1], w)
		if err != nil {
			return err
		}
		leaves = append(leaves, id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.base = base.Clone()
	s.current = base.Clone()
	s.arena = arena
	s.leaves = leaves
	s.last = s.result(s.current, 0, 0, 0)
	s.log.WithField("tokens", len(base.Tokens)).Debug("session reset")
	return nil
}

// SetPrefix corrects the displayed hypothesis against the whole typed text.
// On error the previously displayed result is returned along with it.
func (s *Session) SetPrefix(text string) (Result, error) {
	start := time.Now()
	words := s.tok.Tokenize(text)
	complete := s.tok.IsLastWordComplete(text)

	s.mu.Lock()
	defer s.mu.Unlock()

	log := s.log.WithField("prefix_words", len(words))
	h := s.base.Clone()
	c, err := s.model.Correct(h, len(h.Tokens), words, complete)
	if err == nil {
		err = s.arena.SetPrefix(words, complete)
	}
	s.metrics.observe(start, c.WordOps, err)
	if err != nil {
		log.WithError(err).Warn("prefix correction rejected")
		return s.last, err
	}

	s.current = h
	s.last = s.result(h, c.TrailingColumns, c.Distance, s.matched())
	log.WithFields(logrus.Fields{
		"trailing_cols": c.TrailingColumns,
		"cost":          c.Distance,
		"matched":       s.last.Matched,
	}).Debug("prefix corrected")
	return s.last, nil
}

// matched returns how many base tokens the typed prefix covers: the depth of
// the cheapest scored prefix of the hypothesis.
func (s *Session) matched() int {
	best, cost := 0, 0.0
	for depth, id := range s.leaves {
		c, err := s.arena.Score(id)
		if err != nil {
			continue
		}
		if depth == 0 || c < cost {
			best, cost = depth, c
		}
	}
	return best
}

func (s *Session) result(h *hypothesis.Hypothesis, trailing int, cost float64, matched int) Result {
	return Result{
		Tokens:          append([]string(nil), h.Tokens...),
		Text:            s.tok.Detokenize(h.Tokens),
		Sources:         append([]hypothesis.Source(nil), h.Sources...),
		TrailingColumns: trailing,
		Cost:            cost,
		Matched:         matched,
	}
}

// Hypothesis returns a copy of the displayed hypothesis.
func (s *Session) Hypothesis() *hypothesis.Hypothesis {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Clone()
}

// Last returns the most recent result.
func (s *Session) Last() Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

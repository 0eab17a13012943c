// Package editdist implements a weighted edit distance over arbitrary item
// sequences, with a prefix mode for matching a full sequence against a
// partially typed one, and its two specializations: characters of a word and
// words of a segment.
package editdist

import (
	"errors"
	"slices"
)

// ErrRowMismatch reports incremental score rows whose lengths do not line up
// with the increment being applied.
var ErrRowMismatch = errors.New("editdist: score rows do not match increment")

// CostModel supplies the per-item costs of the recurrence. isComplete is false
// only for the last item of y when the caller said it is still being typed.
type CostModel[T any] interface {
	HitCost(x, y T, isComplete bool) float64
	SubstitutionCost(x, y T, isComplete bool) float64
	DeletionCost(x T) float64
	InsertionCost(y T) float64
	IsHit(x, y T, isComplete bool) bool
}

// step is one backtracked transition arriving at cell (i, j).
type step struct {
	op   Op
	i, j int
}

// Distance computes the full edit distance of x against y.
func Distance[T any](cm CostModel[T], x, y []T) float64 {
	mat := fill(cm, x, y, true, false)
	return mat.At(len(x), len(y))
}

// Align computes the full edit distance and the script achieving it.
func Align[T any](cm CostModel[T], x, y []T) (float64, []Op) {
	return Prefix(cm, x, y, true, false)
}

// Prefix computes the distance of x against y in prefix mode and the script
// achieving it. With usePrefixDelOp, items of x left over once y is consumed
// are dropped at no cost; with isLastItemComplete unset the cost model may
// relax its behavior for the last item of y.
func Prefix[T any](cm CostModel[T], x, y []T, isLastItemComplete, usePrefixDelOp bool) (float64, []Op) {
	mat := fill(cm, x, y, isLastItemComplete, usePrefixDelOp)
	steps := trace(cm, x, y, mat, isLastItemComplete, usePrefixDelOp)
	return mat.At(len(x), len(y)), script(steps)
}

// Table fills and returns the whole cost matrix of x against y.
func Table[T any](cm CostModel[T], x, y []T, isLastItemComplete, usePrefixDelOp bool) *Matrix {
	return fill(cm, x, y, isLastItemComplete, usePrefixDelOp)
}

func isComplete(j, n int, isLastItemComplete bool) bool {
	return j != n || isLastItemComplete
}

func fill[T any](cm CostModel[T], x, y []T, isLastItemComplete, usePrefixDelOp bool) *Matrix {
	mat := NewMatrix(len(x)+1, len(y)+1)
	for i := 1; i <= len(x); i++ {
		mat.Set(i, 0, mat.At(i-1, 0)+cm.DeletionCost(x[i-1]))
	}
	for j := 1; j <= len(y); j++ {
		mat.Set(0, j, mat.At(0, j-1)+cm.InsertionCost(y[j-1]))
	}
	for i := 1; i <= len(x); i++ {
		for j := 1; j <= len(y); j++ {
			c, _, _, _ := cell(cm, x, y, mat, usePrefixDelOp, isComplete(j, len(y), isLastItemComplete), i, j)
			mat.Set(i, j, c)
		}
	}
	return mat
}

// cell evaluates the recurrence at (i, j) and returns the winning cost, the
// operation that produced it and the predecessor cell. Ties prefer
// hit/substitution, then deletion, then insertion.
func cell[T any](cm CostModel[T], x, y []T, mat *Matrix, usePrefixDelOp, complete bool, i, j int) (float64, Op, int, int) {
	switch {
	case i == 0 && j == 0:
		return 0, None, 0, 0
	case j == 0:
		return mat.At(i-1, 0) + cm.DeletionCost(x[i-1]), Delete, i - 1, 0
	case i == 0:
		return mat.At(0, j-1) + cm.InsertionCost(y[j-1]), Insert, 0, j - 1
	}

	xi, yj := x[i-1], y[j-1]
	var cost float64
	op := Substitute
	if cm.IsHit(xi, yj, complete) {
		cost = mat.At(i-1, j-1) + cm.HitCost(xi, yj, complete)
		op = Hit
	} else {
		cost = mat.At(i-1, j-1) + cm.SubstitutionCost(xi, yj, complete)
	}
	pi, pj := i-1, j-1

	delOp, delCost := Delete, 0.0
	if usePrefixDelOp && j == len(y) {
		delOp = PrefixDelete
	} else {
		delCost = cm.DeletionCost(xi)
	}
	if c := mat.At(i-1, j) + delCost; c < cost {
		cost, op, pi, pj = c, delOp, i-1, j
	}
	if c := mat.At(i, j-1) + cm.InsertionCost(yj); c < cost {
		cost, op, pi, pj = c, Insert, i, j-1
	}
	return cost, op, pi, pj
}

// trace walks back from (|x|, |y|) re-deriving each winning transition.
func trace[T any](cm CostModel[T], x, y []T, mat *Matrix, isLastItemComplete, usePrefixDelOp bool) []step {
	steps := make([]step, 0, len(x)+len(y))
	i, j := len(x), len(y)
	for i > 0 || j > 0 {
		_, op, pi, pj := cell(cm, x, y, mat, usePrefixDelOp, isComplete(j, len(y), isLastItemComplete), i, j)
		steps = append(steps, step{op: op, i: i, j: j})
		i, j = pi, pj
	}
	slices.Reverse(steps)
	return steps
}

func script(steps []step) []Op {
	ops := make([]Op, 0, len(steps))
	for _, s := range steps {
		if s.op != PrefixDelete {
			ops = append(ops, s.op)
		}
	}
	return ops
}

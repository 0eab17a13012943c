package editdist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWordDistanceLevenshtein(t *testing.T) {
	d := NewWordDistance(UnitWeights)

	tests := []struct {
		x, y string
		want float64
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"ёлка", "елка", 1},
	}
	for _, tt := range tests {
		t.Run(tt.x+"/"+tt.y, func(t *testing.T) {
			assert.Equal(t, tt.want, d.Compute(tt.x, tt.y))
		})
	}
}

func TestWordDistanceAlignScript(t *testing.T) {
	d := NewWordDistance(UnitWeights)

	dist, ops := d.Align("kitten", "sitting")
	assert.Equal(t, 3.0, dist)
	assert.Equal(t, []Op{Substitute, Hit, Hit, Hit, Substitute, Hit, Insert}, ops)
}

func TestPrefixModeDegeneratesToFull(t *testing.T) {
	w := Weights{Hit: 0.1, Insertion: 1.3, Substitution: 0.7, Deletion: 2}
	word := NewWordDistance(w)
	seg := NewSegmentDistance(w)

	pairs := [][2]string{
		{"kitten", "sitting"},
		{"", "abc"},
		{"prefix", "pre"},
		{"teh", "the"},
	}
	for _, p := range pairs {
		dist, ops := word.ComputePrefix(p[0], p[1], true, false)
		assert.InDelta(t, word.Compute(p[0], p[1]), dist, 1e-9, p)
		assert.NotContains(t, ops, PrefixDelete)
	}

	x := []string{"this", "is", "a", "test"}
	y := []string{"this", "was", "test", "!"}
	dist, _, charOps := seg.ComputePrefix(x, y, true, false)
	assert.InDelta(t, seg.Compute(x, y), dist, 1e-9)
	assert.Empty(t, charOps)
}

func TestWordPrefixDeleteIsFreeAndStripped(t *testing.T) {
	d := NewWordDistance(UnitWeights)

	dist, ops := d.ComputePrefix("beginning", "begi", true, true)
	assert.Equal(t, 0.0, dist)
	assert.Equal(t, []Op{Hit, Hit, Hit, Hit}, ops)

	dist, ops = d.ComputePrefix("beginning", "begx", true, true)
	assert.Equal(t, 1.0, dist)
	assert.Equal(t, []Op{Hit, Hit, Hit, Substitute}, ops)
}

func TestSegmentIsHit(t *testing.T) {
	d := NewSegmentDistance(UnitWeights)

	assert.True(t, d.IsHit("beginning", "beginning", true))
	assert.False(t, d.IsHit("beginning", "begi", true))
	assert.True(t, d.IsHit("beginning", "begi", false))
	assert.False(t, d.IsHit("beginning", "bex", false))
}

func TestSegmentCosts(t *testing.T) {
	d := NewSegmentDistance(Weights{Hit: 0.5, Insertion: 2, Substitution: 3, Deletion: 4})

	assert.Equal(t, 2.0, d.HitCost("test", "test", true))
	assert.Equal(t, 8.0, d.InsertionCost("test"))
	assert.Equal(t, 16.0, d.DeletionCost("test"))
	assert.Equal(t, 4.0, d.DeletionCost(""))
	assert.InDelta(t, 3*0.99*4, d.SubstitutionCost("", "test", true), 1e-9)
	// "tent" -> "test": three hits and one substitution.
	assert.InDelta(t, 3*0.5+3, d.SubstitutionCost("tent", "test", true), 1e-9)
}

func TestSegmentPrefixBoundaryWord(t *testing.T) {
	d := NewSegmentDistance(UnitWeights)

	x := []string{"in", "the", "beginning", "was"}
	y := []string{"in", "the", "begi"}
	dist, wordOps, charOps := d.ComputePrefix(x, y, false, true)
	assert.Equal(t, 0.0, dist)
	assert.Equal(t, []Op{Hit, Hit, Hit}, wordOps)
	assert.Equal(t, []Op{Hit, Hit, Hit, Hit}, charOps)
}

func TestSegmentIdenticalSegmentsOnlyHit(t *testing.T) {
	d := NewSegmentDistance(Weights{Hit: 0.2, Insertion: 7, Substitution: 7, Deletion: 7})

	x := []string{"this", "is", "a", "test"}
	_, ops, charOps := d.ComputePrefix(x, x, true, true)
	assert.Equal(t, []Op{Hit, Hit, Hit, Hit}, ops)
	assert.Empty(t, charOps)
}

func TestIncrComputePrefixFirstRowMatchesFullRow(t *testing.T) {
	d := NewSegmentDistance(Weights{Hit: 0.2, Insertion: 7.1, Substitution: 6.9, Deletion: 7.4})
	prefix := []string{"this", "is", ",", "a", "test"}

	var row []float64
	row = d.IncrComputePrefixFirstRow(row, nil, nil)
	require.Equal(t, []float64{0}, row)

	for n := 1; n <= len(prefix); n++ {
		row = d.IncrComputePrefixFirstRow(row, row, prefix[n-1:n])
		want := Table[string](d, nil, prefix[:n], true, false).Row(0)
		require.Len(t, row, len(want))
		for j := range want {
			assert.InDelta(t, want[j], row[j], 1e-9, "n=%d j=%d", n, j)
		}
	}
}

func TestIncrComputePrefixMatchesFullTable(t *testing.T) {
	d := NewSegmentDistance(Weights{Hit: 0.2, Insertion: 7.1, Substitution: 6.9, Deletion: 7.4})
	x := []string{"this", "is", "a"}
	prefix := []string{"this", "was", "an", "apple"}

	rows := make([][]float64, len(x)+1)
	rows[0] = d.IncrComputePrefixFirstRow(nil, nil, nil)
	for i := 1; i <= len(x); i++ {
		rows[i] = []float64{rows[i-1][0] + d.DeletionCost(x[i-1])}
	}

	for n := 1; n <= len(prefix); n++ {
		incr := prefix[n-1 : n]
		rows[0] = d.IncrComputePrefixFirstRow(rows[0], rows[0], incr)
		for i := 1; i <= len(x); i++ {
			var ops []Op
			var err error
			rows[i], ops, err = d.IncrComputePrefix(rows[i], rows[i-1], x[i-1], incr, true)
			require.NoError(t, err)
			require.Len(t, ops, 1)
		}

		want := Table[string](d, x, prefix[:n], true, false)
		for i := range rows {
			for j := range rows[i] {
				assert.InDelta(t, want.At(i, j), rows[i][j], 1e-9, "n=%d i=%d j=%d", n, i, j)
			}
		}
	}
}

func TestIncrComputePrefixRowMismatch(t *testing.T) {
	d := NewSegmentDistance(UnitWeights)

	_, _, err := d.IncrComputePrefix([]float64{1, 2}, []float64{0, 1}, "a", []string{"b"}, true)
	assert.ErrorIs(t, err, ErrRowMismatch)

	_, _, err = d.IncrComputePrefix(nil, []float64{0}, "a", []string{"b"}, true)
	assert.ErrorIs(t, err, ErrRowMismatch)
}

func TestCountOps(t *testing.T) {
	c := CountOps([]Op{Hit, Hit, Insert, Delete, Substitute, PrefixDelete, None})
	assert.Equal(t, Counts{Hits: 2, Insertions: 1, Substitutions: 1, Deletions: 1}, c)
}

package hypothesis

// Alignment is a word alignment between the source and target spans of a
// phrase: one row per source word, one column per target word.
type Alignment struct {
	rows, cols int
	bits       []bool
}

// NewAlignment returns an all-unaligned rows x cols matrix.
func NewAlignment(rows, cols int) Alignment {
	return Alignment{rows: rows, cols: cols, bits: make([]bool, rows*cols)}
}

// Diagonal aligns source word k with target word k for every k in range.
func Diagonal(rows, cols int) Alignment {
	a := NewAlignment(rows, cols)
	for k := 0; k < rows && k < cols; k++ {
		a.Set(k, k, true)
	}
	return a
}

func (a Alignment) Rows() int { return a.rows }

func (a Alignment) Cols() int { return a.cols }

func (a Alignment) At(i, j int) bool { return a.bits[i*a.cols+j] }

func (a Alignment) Set(i, j int, aligned bool) { a.bits[i*a.cols+j] = aligned }

// Clone returns an independent copy.
func (a Alignment) Clone() Alignment {
	out := Alignment{rows: a.rows, cols: a.cols, bits: make([]bool, len(a.bits))}
	copy(out.bits, a.bits)
	return out
}

// remap builds a matrix with len(cols) columns where column c copies old
// column cols[c], or stays unaligned when cols[c] is negative.
func (a Alignment) remap(cols []int) Alignment {
	out := NewAlignment(a.rows, len(cols))
	for c, old := range cols {
		if old < 0 {
			continue
		}
		for i := 0; i < a.rows; i++ {
			out.Set(i, c, a.At(i, old))
		}
	}
	return out
}

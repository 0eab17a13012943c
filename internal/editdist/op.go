package editdist

// Op is a single step of an edit script.
type Op uint8

const (
	None Op = iota
	Hit
	Insert
	Delete
	// PrefixDelete drops an item of x for free once y has been fully consumed.
	// It never appears in scripts handed back to callers.
	PrefixDelete
	Substitute
)

func (o Op) String() string {
	switch o {
	case None:
		return "none"
	case Hit:
		return "hit"
	case Insert:
		return "insert"
	case Delete:
		return "delete"
	case PrefixDelete:
		return "prefix-delete"
	case Substitute:
		return "substitute"
	}
	return "unknown"
}

// Counts tallies the operations of a script.
type Counts struct {
	Hits          int
	Insertions    int
	Substitutions int
	Deletions     int
}

// CountOps returns how many of each operation ops contains.
func CountOps(ops []Op) Counts {
	var c Counts
	for _, op := range ops {
		switch op {
		case Hit:
			c.Hits++
		case Insert:
			c.Insertions++
		case Substitute:
			c.Substitutions++
		case Delete:
			c.Deletions++
		}
	}
	return c
}

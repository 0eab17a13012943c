package editdist

// Weights are the flat per-operation costs of a distance. The segment distance
// scales them by word length.
type Weights struct {
	Hit          float64
	Insertion    float64
	Substitution float64
	Deletion     float64
}

// UnitWeights is the classic Levenshtein parameterization.
var UnitWeights = Weights{Hit: 0, Insertion: 1, Substitution: 1, Deletion: 1}

// WordDistance is the character-level edit distance between two words.
type WordDistance struct {
	Weights
}

// NewWordDistance returns a character distance with weights w.
func NewWordDistance(w Weights) *WordDistance {
	return &WordDistance{Weights: w}
}

// HitCost is the flat hit weight.
func (d *WordDistance) HitCost(_, _ rune, _ bool) float64 { return d.Hit }

// SubstitutionCost is the flat substitution weight.
func (d *WordDistance) SubstitutionCost(_, _ rune, _ bool) float64 { return d.Substitution }

// DeletionCost is the flat deletion weight.
func (d *WordDistance) DeletionCost(_ rune) float64 { return d.Deletion }

// InsertionCost is the flat insertion weight.
func (d *WordDistance) InsertionCost(_ rune) float64 { return d.Insertion }

// IsHit matches equal characters.
func (d *WordDistance) IsHit(x, y rune, _ bool) bool { return x == y }

// Compute returns the full distance between x and y.
func (d *WordDistance) Compute(x, y string) float64 {
	return Distance[rune](d, []rune(x), []rune(y))
}

// Align returns the full distance between x and y with its script.
func (d *WordDistance) Align(x, y string) (float64, []Op) {
	return Align[rune](d, []rune(x), []rune(y))
}

// ComputePrefix returns the prefix-mode distance of x against y with its script.
func (d *WordDistance) ComputePrefix(x, y string, isLastItemComplete, usePrefixDelOp bool) (float64, []Op) {
	return Prefix[rune](d, []rune(x), []rune(y), isLastItemComplete, usePrefixDelOp)
}

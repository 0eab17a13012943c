package ecm

import (
	"errors"
	"fmt"
	"slices"

	"prefixcorrector/internal/editdist"
)

// ErrUnknownNode reports a node id that the arena never handed out.
var ErrUnknownNode = errors.New("ecm: unknown arena node")

// NodeID identifies a search node within an Arena.
type NodeID int

// Root is the node of the empty hypothesis.
const Root NodeID = 0

type arenaNode struct {
	parent NodeID
	word   string
	esi    ScoreInfo
}

// Arena keeps one independent score row per search node. Nodes form a tree of
// hypothesis prefixes; each node's row is derived from its parent's, so rows
// are updated in creation order whenever the typed prefix changes.
type Arena struct {
	model        *Model
	nodes        []arenaNode
	prefix       []string
	lastComplete bool
}

// NewArena returns an arena holding only the root node, set against the empty
// prefix.
func (m *Model) NewArena() *Arena {
	a := &Arena{model: m, lastComplete: true}
	root := arenaNode{parent: -1}
	m.SetupInitial(&root.esi)
	a.nodes = append(a.nodes, root)
	return a
}

// Add creates a node extending parent with word and scores it against the
// current prefix.
func (a *Arena) Add(parent NodeID, word string) (NodeID, error) {
	if !a.valid(parent) {
		return 0, fmt.Errorf("%w: %d", ErrUnknownNode, parent)
	}
	n := arenaNode{parent: parent, word: word}
	prev := &a.nodes[parent].esi
	a.model.Setup(&n.esi, prev, word)
	if len(a.prefix) > 0 {
		if err := a.model.Extend(&n.esi, prev, word, a.prefix, a.lastComplete); err != nil {
			return 0, err
		}
	}
	a.nodes = append(a.nodes, n)
	return NodeID(len(a.nodes) - 1), nil
}

// AddPath adds one node per word below parent and returns the deepest.
func (a *Arena) AddPath(parent NodeID, words []string) (NodeID, error) {
	id := parent
	for _, w := range words {
		var err error
		if id, err = a.Add(id, w); err != nil {
			return 0, err
		}
	}
	return id, nil
}

// SetPrefix moves every row to the new typed prefix. Columns shared with the
// previous prefix are kept; an unfinished last word is always recomputed since
// its cost depends on whether it is still the last one.
func (a *Arena) SetPrefix(prefix []string, isLastWordComplete bool) error {
	keep := 0
	for keep < len(a.prefix) && keep < len(prefix) && a.prefix[keep] == prefix[keep] {
		keep++
	}
	if keep > 0 && keep == len(a.prefix) && !a.lastComplete {
		keep--
	}
	if keep > 0 && keep == len(prefix) && !isLastWordComplete {
		keep--
	}
	diff := prefix[keep:]

	for i := range a.nodes {
		n := &a.nodes[i]
		n.esi.Truncate(keep)
		if n.parent < 0 {
			a.model.ExtendInitial(&n.esi, &n.esi, diff)
			continue
		}
		if err := a.model.Extend(&n.esi, &a.nodes[n.parent].esi, n.word, diff, isLastWordComplete); err != nil {
			return fmt.Errorf("node %d: %w", i, err)
		}
	}
	a.prefix = slices.Clone(prefix)
	a.lastComplete = isLastWordComplete
	return nil
}

// Score returns the cost of the node's path against the whole prefix.
func (a *Arena) Score(id NodeID) (float64, error) {
	if !a.valid(id) {
		return 0, fmt.Errorf("%w: %d", ErrUnknownNode, id)
	}
	return a.nodes[id].esi.LastScore(), nil
}

// Row returns a copy of the node's score row and operations.
func (a *Arena) Row(id NodeID) (*ScoreInfo, error) {
	if !a.valid(id) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownNode, id)
	}
	return a.nodes[id].esi.Clone(), nil
}

// Path returns the words from the root to the node.
func (a *Arena) Path(id NodeID) ([]string, error) {
	if !a.valid(id) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownNode, id)
	}
	var words []string
	for ; id != Root; id = a.nodes[id].parent {
		words = append(words, a.nodes[id].word)
	}
	slices.Reverse(words)
	return words, nil
}

// Best returns the node whose path matches the current prefix most cheaply.
func (a *Arena) Best() (NodeID, float64) {
	best, cost := Root, a.nodes[Root].esi.LastScore()
	for i := 1; i < len(a.nodes); i++ {
		if c := a.nodes[i].esi.LastScore(); c < cost {
			best, cost = NodeID(i), c
		}
	}
	return best, cost
}

// Ops returns the operations of the node's row.
func (a *Arena) Ops(id NodeID) []editdist.Op {
	if !a.valid(id) {
		return nil
	}
	return slices.Clone(a.nodes[id].esi.Operations)
}

func (a *Arena) Len() int { return len(a.nodes) }

func (a *Arena) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(a.nodes)
}

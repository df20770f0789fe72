package searcher

import "time"

// Budget bounds one depth iteration of the search: a node ceiling and an
// optional absolute deadline. The driver creates a fresh budget per depth
// and shares it by reference through the whole recursive descent.
type Budget struct {
	nodes    int
	maxNodes int
	deadline time.Time
}

// NewBudget returns a budget with the given node ceiling (0 means unlimited)
// and deadline (zero time means unlimited).
func NewBudget(maxNodes int, deadline time.Time) *Budget {
	return &Budget{maxNodes: maxNodes, deadline: deadline}
}

// Nodes reports how many nodes the search has expanded against this budget.
func (b *Budget) Nodes() int {
	return b.nodes
}

func (b *Budget) countNode() {
	b.nodes++
}

func (b *Budget) nodesExhausted() bool {
	return b.maxNodes > 0 && b.nodes >= b.maxNodes
}

func (b *Budget) deadlinePassed() bool {
	return !b.deadline.IsZero() && time.Now().After(b.deadline)
}

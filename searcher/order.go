package searcher

import (
	"sort"

	"gambit/game"
)

// Orderer reorders candidate moves so that promising captures are searched
// first, which tightens alpha-beta bounds early. It reads only the
// evaluator's material table.
type Orderer struct {
	eval *Evaluator
}

func NewOrderer(eval *Evaluator) *Orderer {
	if eval == nil {
		panic("orderer needs an evaluator")
	}
	return &Orderer{eval: eval}
}

// Order returns a permutation of moves sorted non-increasing by the capture
// heuristic. The sort is stable, so ties keep the collaborator's generation
// order.
func (o *Orderer) Order(moves []game.Move) []game.Move {
	ordered := make([]game.Move, len(moves))
	copy(ordered, moves)
	sort.SliceStable(ordered, func(i, j int) bool {
		return o.heuristic(ordered[i]) > o.heuristic(ordered[j])
	})
	return ordered
}

// heuristic prefers capturing the most value with the least valuable
// attacker; non-captures score only the negated mover value.
func (o *Orderer) heuristic(m game.Move) int {
	return 10*o.eval.MaterialValue(m.Captured) - o.eval.MaterialValue(m.Piece)
}

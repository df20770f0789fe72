package searcher

import (
	"gambit/game"

	"github.com/rs/zerolog/log"
)

// infinity bounds alpha/beta windows; it dominates every reachable score
// including the mate sentinel.
const infinity = 1 << 30

// Core is the recursive depth-first alpha-beta minimax search. It mutates
// the shared position through apply/undo pairs and restores it on every exit
// path, including pruning breaks and budget cutoffs.
type Core struct {
	eval  *Evaluator
	order *Orderer
}

func NewCore(eval *Evaluator, order *Orderer) *Core {
	if eval == nil || order == nil {
		panic("search core needs an evaluator and an orderer")
	}
	return &Core{eval: eval, order: order}
}

// Search scores the position for the maximizing side (White). Exhausted
// budgets, expired deadlines, zero depth, terminal positions and empty move
// lists all degrade to a static evaluation; none of them are errors.
func (c *Core) Search(pos game.Position, depth, alpha, beta int, maximizing bool, budget *Budget) int {
	if budget.nodesExhausted() {
		return c.eval.Evaluate(pos)
	}
	if budget.deadlinePassed() {
		return c.eval.Evaluate(pos)
	}
	if depth <= 0 || pos.GameOver() {
		return c.eval.Evaluate(pos)
	}
	moves := legalMoves(pos)
	if len(moves) == 0 {
		return c.eval.Evaluate(pos)
	}

	budget.countNode()
	moves = c.order.Order(moves)

	if maximizing {
		best := -infinity
		for _, m := range moves {
			if !pos.Apply(m) {
				continue
			}
			score := c.Search(pos, depth-1, alpha, beta, false, budget)
			pos.Undo()
			if score > best {
				best = score
			}
			if best > alpha {
				alpha = best
			}
			if alpha >= beta {
				break
			}
		}
		return best
	}

	best := infinity
	for _, m := range moves {
		if !pos.Apply(m) {
			continue
		}
		score := c.Search(pos, depth-1, alpha, beta, true, budget)
		pos.Undo()
		if score < best {
			best = score
		}
		if best < beta {
			beta = best
		}
		if alpha >= beta {
			break
		}
	}
	return best
}

// legalMoves treats a collaborator failure as an empty move list.
func legalMoves(pos game.Position) (moves []game.Move) {
	defer func() {
		if r := recover(); r != nil {
			log.Warn().Msgf("move enumeration failed, treating as no moves: %v", r)
			moves = nil
		}
	}()
	return pos.LegalMoves()
}

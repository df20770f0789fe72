package searcher

import (
	"sort"
	"time"

	"gambit/game"

	"github.com/notnil/chess"
	"golang.org/x/exp/rand"
)

// ScoredMove pairs a root move with its search score.
type ScoredMove struct {
	Move  game.Move
	Score int
}

// Result is the outcome of one root search. Move is nil when the game is
// already decided or no legal move exists. Ranked holds every root move with
// its score at the deepest fully completed iteration, best for the searching
// side first.
type Result struct {
	Move    *game.Move
	Score   int
	Depth   int
	Nodes   int
	Ranked  []ScoredMove
	Elapsed time.Duration
}

// Driver runs the iterative-deepening loop over root moves and hands the
// ranked candidates to the difficulty policy for the final pick.
type Driver struct {
	eval  *Evaluator
	order *Orderer
	core  *Core
}

func NewDriver() *Driver {
	eval := NewEvaluator()
	order := NewOrderer(eval)
	return &Driver{eval: eval, order: order, core: NewCore(eval, order)}
}

// FindBestMove looks up the named difficulty profile, searches, and applies
// the profile's randomized selection among the top-ranked candidates. A nil
// result means the game is already decided or there is no legal move.
func (d *Driver) FindBestMove(pos game.Position, difficulty string, rng *rand.Rand) *game.Move {
	profile := LookupProfile(difficulty)
	result := d.Search(pos, profile)
	if result.Move == nil {
		return nil
	}
	if pick := profile.Pick(result.Ranked, rng); pick != nil {
		return pick
	}
	return result.Move
}

// Search runs the full iterative-deepening root search under the given
// profile. The position is restored to its entry state before returning.
func (d *Driver) Search(pos game.Position, profile Profile) Result {
	start := time.Now()
	if pos.Checkmated() || pos.Drawn() {
		return Result{Elapsed: time.Since(start)}
	}
	rootMoves := d.order.Order(legalMoves(pos))
	if len(rootMoves) == 0 {
		return Result{Elapsed: time.Since(start)}
	}

	// The root optimizes for whichever side is to move.
	maximizing := pos.Turn() == chess.White

	// A move that mates on the spot short-circuits any deeper search.
	for _, m := range rootMoves {
		if !pos.Apply(m) {
			continue
		}
		mate := pos.Checkmated()
		pos.Undo()
		if mate {
			mv := m
			score := MateScore
			if !maximizing {
				score = -MateScore
			}
			return Result{
				Move:    &mv,
				Score:   score,
				Depth:   1,
				Ranked:  []ScoredMove{{Move: m, Score: score}},
				Elapsed: time.Since(start),
			}
		}
	}

	var deadline time.Time
	if profile.TimeMs > 0 {
		deadline = start.Add(time.Duration(profile.TimeMs) * time.Millisecond)
	}

	result := Result{}
	var best *game.Move
	bestScore := 0

	for depth := 1; depth <= profile.Depth; depth++ {
		budget := NewBudget(profile.NodeLimit, deadline)
		scored := make([]ScoredMove, 0, len(rootMoves))

		// The incumbent for this depth is seeded from the previous
		// depth, so a mid-depth timeout never discards a decision that
		// a completed depth already validated.
		incumbent, incumbentScore := best, bestScore
		aborted := false
		for _, m := range rootMoves {
			if budget.deadlinePassed() {
				aborted = true
				break
			}
			if !pos.Apply(m) {
				continue
			}
			score := d.core.Search(pos, depth-1, -infinity, infinity, !maximizing, budget)
			pos.Undo()
			scored = append(scored, ScoredMove{Move: m, Score: score})
			if incumbent == nil || better(maximizing, score, incumbentScore) {
				mv := m
				incumbent, incumbentScore = &mv, score
			}
		}
		result.Nodes += budget.Nodes()
		if aborted {
			best, bestScore = incumbent, incumbentScore
			break
		}

		rank(scored, maximizing)
		mv := scored[0].Move
		best, bestScore = &mv, scored[0].Score
		result.Ranked = scored
		result.Depth = depth

		if budget.deadlinePassed() {
			break
		}
	}

	if best == nil {
		// Deadline fired before the first depth scored anything; any
		// legal move beats resigning by silence.
		mv := rootMoves[0]
		best = &mv
	}
	result.Move = best
	result.Score = bestScore
	result.Elapsed = time.Since(start)
	return result
}

func better(maximizing bool, score, incumbent int) bool {
	if maximizing {
		return score > incumbent
	}
	return score < incumbent
}

// rank sorts scored moves best-for-the-searching-side first, stable so that
// equal scores keep the ordering heuristic's preference.
func rank(scored []ScoredMove, maximizing bool) {
	sort.SliceStable(scored, func(i, j int) bool {
		if maximizing {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Score < scored[j].Score
	})
}

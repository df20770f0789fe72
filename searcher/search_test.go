package searcher

import (
	"testing"
	"time"

	"gambit/game"

	"github.com/stretchr/testify/require"
)

func newCore() *Core {
	eval := NewEvaluator()
	return NewCore(eval, NewOrderer(eval))
}

func unlimited() *Budget {
	return NewBudget(0, time.Time{})
}

func TestSearchDepthZeroEqualsEvaluate(t *testing.T) {
	core := newCore()
	eval := NewEvaluator()
	fens := []string{
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"r1bqkbnr/pppp1ppp/2n5/4p3/2B1P3/5N2/PPPP1PPP/RNBQK1NR b KQkq - 3 3",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBN1 w Qkq - 0 1",
	}

	for _, fen := range fens {
		gs := mustFEN(t, fen)
		want := eval.Evaluate(gs)
		for _, maximizing := range []bool{true, false} {
			got := core.Search(gs, 0, -infinity, infinity, maximizing, unlimited())
			require.Equal(t, want, got, "fen %s maximizing=%v", fen, maximizing)

			got = core.Search(gs, 0, 5, 7, maximizing, unlimited())
			require.Equal(t, want, got, "depth 0 ignores the alpha/beta window")
		}
	}
}

func TestSearchRestoresPosition(t *testing.T) {
	core := newCore()

	t.Run("full search", func(t *testing.T) {
		gs := mustFEN(t, "r1bqkbnr/pppp1ppp/2n5/4p3/2B1P3/5N2/PPPP1PPP/RNBQK1NR b KQkq - 3 3")
		before := gs.FEN()

		core.Search(gs, 2, -infinity, infinity, false, unlimited())

		require.Equal(t, before, gs.FEN(),
			"every exploratory move must be undone")
	})

	t.Run("narrow window forces pruning breaks", func(t *testing.T) {
		gs := mustFEN(t, "r1bqkbnr/pppp1ppp/2n5/4p3/2B1P3/5N2/PPPP1PPP/RNBQK1NR b KQkq - 3 3")
		before := gs.FEN()

		core.Search(gs, 3, -10, 10, true, NewBudget(200, time.Time{}))

		require.Equal(t, before, gs.FEN(),
			"undo must also run on pruning and budget exits")
	})

	t.Run("expired deadline", func(t *testing.T) {
		gs := game.NewGameState()
		before := gs.FEN()

		core.Search(gs, 4, -infinity, infinity, true, NewBudget(0, time.Now().Add(-time.Second)))

		require.Equal(t, before, gs.FEN())
	})
}

func TestSearchRespectsNodeCeiling(t *testing.T) {
	core := newCore()
	gs := game.NewGameState()

	for _, limit := range []int{1, 10, 50} {
		budget := NewBudget(limit, time.Time{})
		core.Search(gs, 4, -infinity, infinity, true, budget)
		require.LessOrEqual(t, budget.Nodes(), limit,
			"the visited-node counter must never exceed the ceiling")
	}
}

func TestSearchExhaustedBudgetReturnsStaticEval(t *testing.T) {
	core := newCore()
	eval := NewEvaluator()
	gs := game.NewGameState()

	budget := NewBudget(1, time.Time{})
	budget.countNode()

	got := core.Search(gs, 3, -infinity, infinity, true, budget)
	require.Equal(t, eval.Evaluate(gs), got)
	require.Equal(t, 1, budget.Nodes())
}

func TestSearchTerminalPosition(t *testing.T) {
	core := newCore()

	got := core.Search(mustFEN(t, foolsMateFEN), 3, -infinity, infinity, true, unlimited())
	require.Equal(t, -MateScore, got)

	got = core.Search(mustFEN(t, stalemateFEN), 3, -infinity, infinity, false, unlimited())
	require.Equal(t, 0, got)
}

func TestSearchFindsHangingQueen(t *testing.T) {
	core := newCore()
	// White queen en prise on d5, Black to move: the minimizing side
	// should bank the capture.
	gs := mustFEN(t, "rnbqkbnr/pp2pppp/2p5/3Q4/8/8/PPPP1PPP/RNB1KBNR b KQkq - 0 3")
	before := gs.FEN()

	score := core.Search(gs, 1, -infinity, infinity, false, unlimited())

	require.Less(t, score, -500,
		"black to move should win at least the queen for a pawn pair")
	require.Equal(t, before, gs.FEN())
}

func TestSearchDegradesOnEnumerationFailure(t *testing.T) {
	core := newCore()
	eval := NewEvaluator()
	pos := &flakyPosition{inner: game.NewGameState(), panicMoves: true}

	require.NotPanics(t, func() {
		got := core.Search(pos, 3, -infinity, infinity, true, unlimited())
		require.Equal(t, eval.Evaluate(pos), got,
			"a broken enumerator degrades to a static evaluation")
	})
}

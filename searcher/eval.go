package searcher

import (
	"gambit/game"

	"github.com/notnil/chess"
)

// MateScore is the sentinel magnitude for forced checkmate, strictly larger
// than any attainable material, positional and mobility sum.
const MateScore = 100000

const mobilityWeight = 5

// pieceTable is a per-square positional bonus keyed [rank][file], written
// here from White's side with rank 8 on the first row. Lookups mirror the
// table vertically so both colors read it from their own side.
type pieceTable [8][8]int

// Hand-tuned tables, centipawn scale.
var (
	pawnTable = pieceTable{
		{0, 0, 0, 0, 0, 0, 0, 0},
		{50, 50, 50, 50, 50, 50, 50, 50},
		{10, 10, 20, 30, 30, 20, 10, 10},
		{5, 5, 10, 25, 25, 10, 5, 5},
		{0, 0, 0, 20, 20, 0, 0, 0},
		{5, -5, -10, 0, 0, -10, -5, 5},
		{5, 10, 10, -20, -20, 10, 10, 5},
		{0, 0, 0, 0, 0, 0, 0, 0},
	}
	knightTable = pieceTable{
		{-50, -40, -30, -30, -30, -30, -40, -50},
		{-40, -20, 0, 0, 0, 0, -20, -40},
		{-30, 0, 10, 15, 15, 10, 0, -30},
		{-30, 5, 15, 20, 20, 15, 5, -30},
		{-30, 0, 15, 20, 20, 15, 0, -30},
		{-30, 5, 10, 15, 15, 10, 5, -30},
		{-40, -20, 0, 5, 5, 0, -20, -40},
		{-50, -40, -30, -30, -30, -30, -40, -50},
	}
	bishopTable = pieceTable{
		{-20, -10, -10, -10, -10, -10, -10, -20},
		{-10, 0, 0, 0, 0, 0, 0, -10},
		{-10, 0, 5, 10, 10, 5, 0, -10},
		{-10, 5, 5, 10, 10, 5, 5, -10},
		{-10, 0, 10, 10, 10, 10, 0, -10},
		{-10, 10, 10, 10, 10, 10, 10, -10},
		{-10, 5, 0, 0, 0, 0, 5, -10},
		{-20, -10, -10, -10, -10, -10, -10, -20},
	}
	rookTable = pieceTable{
		{0, 0, 0, 0, 0, 0, 0, 0},
		{5, 10, 10, 10, 10, 10, 10, 5},
		{-5, 0, 0, 0, 0, 0, 0, -5},
		{-5, 0, 0, 0, 0, 0, 0, -5},
		{-5, 0, 0, 0, 0, 0, 0, -5},
		{-5, 0, 0, 0, 0, 0, 0, -5},
		{-5, 0, 0, 0, 0, 0, 0, -5},
		{0, 0, 0, 5, 5, 0, 0, 0},
	}
	queenTable = pieceTable{
		{-20, -10, -10, -5, -5, -10, -10, -20},
		{-10, 0, 0, 0, 0, 0, 0, -10},
		{-10, 0, 5, 5, 5, 5, 0, -10},
		{-5, 0, 5, 5, 5, 5, 0, -5},
		{0, 0, 5, 5, 5, 5, 0, -5},
		{-10, 5, 5, 5, 5, 5, 0, -10},
		{-10, 0, 5, 0, 0, 0, 0, -10},
		{-20, -10, -10, -5, -5, -10, -10, -20},
	}
	kingTable = pieceTable{
		{-30, -40, -40, -50, -50, -40, -40, -30},
		{-30, -40, -40, -50, -50, -40, -40, -30},
		{-30, -40, -40, -50, -50, -40, -40, -30},
		{-30, -40, -40, -50, -50, -40, -40, -30},
		{-20, -30, -30, -40, -40, -30, -30, -20},
		{-10, -20, -20, -20, -20, -20, -20, -10},
		{20, 20, 0, 0, 0, 0, 20, 20},
		{20, 30, 10, 0, 0, 10, 30, 20},
	}
)

// Evaluator scores a position from White's perspective: positive means White
// is ahead. It owns its material and positional tables and never mutates
// them after construction.
type Evaluator struct {
	material map[chess.PieceType]int
	tables   map[chess.PieceType]*pieceTable
}

func NewEvaluator() *Evaluator {
	return &Evaluator{
		material: map[chess.PieceType]int{
			chess.Pawn:   100,
			chess.Knight: 320,
			chess.Bishop: 330,
			chess.Rook:   500,
			chess.Queen:  900,
			chess.King:   20000,
		},
		tables: map[chess.PieceType]*pieceTable{
			chess.Pawn:   &pawnTable,
			chess.Knight: &knightTable,
			chess.Bishop: &bishopTable,
			chess.Rook:   &rookTable,
			chess.Queen:  &queenTable,
			chess.King:   &kingTable,
		},
	}
}

// MaterialValue returns the centipawn value of a piece type, 0 for none.
func (e *Evaluator) MaterialValue(t chess.PieceType) int {
	return e.material[t]
}

// Evaluate statically scores the position. Checkmate returns the mate
// sentinel signed against the side to move (the mated side); draws and
// repeated positions score 0.
func (e *Evaluator) Evaluate(pos game.Position) int {
	if pos.Checkmated() {
		if pos.Turn() == chess.White {
			return -MateScore
		}
		return MateScore
	}
	if pos.Drawn() || repeated(pos) {
		return 0
	}

	score := 0
	for sq := chess.A1; sq <= chess.H8; sq++ {
		piece := pos.Piece(sq)
		if piece == chess.NoPiece {
			continue
		}
		value := e.material[piece.Type()] + e.squareBonus(piece, sq)
		if piece.Color() == chess.White {
			score += value
		} else {
			score -= value
		}
	}

	score += mobilityWeight * (mobility(pos, chess.White) - mobility(pos, chess.Black))
	return score
}

func (e *Evaluator) squareBonus(piece chess.Piece, sq chess.Square) int {
	table, ok := e.tables[piece.Type()]
	if !ok {
		return 0
	}
	rank, file := int(sq.Rank()), int(sq.File())
	if piece.Color() == chess.White {
		return table[7-rank][file]
	}
	return table[rank][file]
}

// mobility degrades a collaborator failure to zero instead of propagating.
func mobility(pos game.Position, c chess.Color) (n int) {
	defer func() {
		if recover() != nil {
			n = 0
		}
	}()
	return pos.Mobility(c)
}

// The collaborator may report threefold repetition under either of two
// method names, or not at all. The probe lives here and nowhere else; the
// rest of the package only sees the normalized predicate.
type repetitionReporter interface {
	ThreefoldRepetition() bool
}

type legacyRepetitionReporter interface {
	InThreefoldRepetition() bool
}

func repeated(pos game.Position) bool {
	switch r := pos.(type) {
	case repetitionReporter:
		return r.ThreefoldRepetition()
	case legacyRepetitionReporter:
		return r.InThreefoldRepetition()
	}
	return false
}

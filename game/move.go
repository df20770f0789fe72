package game

import (
	"fmt"

	"github.com/notnil/chess"
)

// Move is an immutable record of a single legal move, produced by the rules
// layer and consumed by the searcher. Captured and Promo are NoPieceType when
// the move captures or promotes nothing.
type Move struct {
	From     chess.Square
	To       chess.Square
	Piece    chess.PieceType
	Captured chess.PieceType
	Promo    chess.PieceType
	Notation string
}

func (m Move) IsCapture() bool {
	return m.Captured != chess.NoPieceType
}

func (m Move) IsPromotion() bool {
	return m.Promo != chess.NoPieceType
}

func (m Move) String() string {
	if m.Notation != "" {
		return m.Notation
	}
	return fmt.Sprintf("%s%s", m.From, m.To)
}

// moveRecord converts a rules-engine move into a Move record against the
// position it was generated from.
func moveRecord(pos *chess.Position, m *chess.Move) Move {
	board := pos.Board()
	captured := board.Piece(m.S2()).Type()
	if m.HasTag(chess.EnPassant) {
		captured = chess.Pawn
	}
	return Move{
		From:     m.S1(),
		To:       m.S2(),
		Piece:    board.Piece(m.S1()).Type(),
		Captured: captured,
		Promo:    m.Promo(),
		Notation: chess.AlgebraicNotation{}.Encode(pos, m),
	}
}

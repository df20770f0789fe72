package game

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/notnil/chess"
)

// Position is the contract the searcher requires from the rules engine. The
// searcher mutates a position transiently through Apply/Undo pairs and must
// find it unchanged once a top-level operation returns; everything else is a
// read-only query.
type Position interface {
	// LegalMoves enumerates every legal move for the side to move.
	LegalMoves() []Move
	// MovesFrom enumerates legal moves originating from one square.
	MovesFrom(sq chess.Square) []Move
	// Apply plays a previously enumerated move. It reports false if the
	// rules engine rejects the move.
	Apply(m Move) bool
	// Undo reverts exactly the most recently applied move. Calls must pair
	// with a prior Apply in strict LIFO order.
	Undo()
	Turn() chess.Color
	Checkmated() bool
	Drawn() bool
	GameOver() bool
	Piece(sq chess.Square) chess.Piece
	// Mobility counts the legal moves available to one color, rescinding
	// the turn if necessary.
	Mobility(c chess.Color) int
	FEN() string
}

// GameState is the notnil/chess-backed rules collaborator. Position values
// from the chess library are immutable, so apply/undo is a stack: Apply
// pushes the updated position, Undo pops it.
type GameState struct {
	positions []*chess.Position
	applied   []Move
}

// NewGameState starts a game from the standard initial position.
func NewGameState() *GameState {
	return &GameState{positions: []*chess.Position{chess.NewGame().Position()}}
}

// NewGameStateFEN starts a game from an arbitrary FEN position.
func NewGameStateFEN(fen string) (*GameState, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("failed to parse FEN %q: %w", fen, err)
	}
	return &GameState{positions: []*chess.Position{chess.NewGame(opt).Position()}}, nil
}

func (gs *GameState) current() *chess.Position {
	return gs.positions[len(gs.positions)-1]
}

func (gs *GameState) LegalMoves() []Move {
	pos := gs.current()
	valid := pos.ValidMoves()
	moves := make([]Move, 0, len(valid))
	for _, m := range valid {
		moves = append(moves, moveRecord(pos, m))
	}
	return moves
}

func (gs *GameState) MovesFrom(sq chess.Square) []Move {
	var moves []Move
	for _, m := range gs.LegalMoves() {
		if m.From == sq {
			moves = append(moves, m)
		}
	}
	return moves
}

func (gs *GameState) Apply(m Move) bool {
	_, ok := gs.apply(m.From, m.To, m.Promo)
	return ok
}

// ApplyCoords plays a move given as a from/to/promotion request and returns
// the full move record the rules engine resolved it to.
func (gs *GameState) ApplyCoords(from, to chess.Square, promo chess.PieceType) (Move, bool) {
	return gs.apply(from, to, promo)
}

func (gs *GameState) apply(from, to chess.Square, promo chess.PieceType) (Move, bool) {
	pos := gs.current()
	for _, valid := range pos.ValidMoves() {
		if valid.S1() != from || valid.S2() != to || valid.Promo() != promo {
			continue
		}
		record := moveRecord(pos, valid)
		gs.positions = append(gs.positions, pos.Update(valid))
		gs.applied = append(gs.applied, record)
		return record, true
	}
	return Move{}, false
}

func (gs *GameState) Undo() {
	if len(gs.positions) <= 1 {
		panic("undo without a matching apply")
	}
	gs.positions = gs.positions[:len(gs.positions)-1]
	gs.applied = gs.applied[:len(gs.applied)-1]
}

func (gs *GameState) Turn() chess.Color {
	return gs.current().Turn()
}

func (gs *GameState) Checkmated() bool {
	return gs.current().Status() == chess.Checkmate
}

func (gs *GameState) Drawn() bool {
	return gs.current().Status() == chess.Stalemate ||
		gs.ThreefoldRepetition() ||
		gs.insufficientMaterial() ||
		gs.fiftyMoveRule()
}

// insufficientMaterial reports dead positions no sequence of legal moves can
// win: bare kings, a lone minor piece, or two bishops confined to one shade.
func (gs *GameState) insufficientMaterial() bool {
	board := gs.current().Board()
	knights := 0
	var bishops []chess.Square
	for sq := chess.A1; sq <= chess.H8; sq++ {
		switch board.Piece(sq).Type() {
		case chess.NoPieceType, chess.King:
		case chess.Knight:
			knights++
		case chess.Bishop:
			bishops = append(bishops, sq)
		default:
			return false
		}
	}
	switch {
	case knights == 0 && len(bishops) == 0:
		return true
	case knights+len(bishops) == 1:
		return true
	case knights == 0 && len(bishops) == 2:
		return squareShade(bishops[0]) == squareShade(bishops[1])
	}
	return false
}

func squareShade(sq chess.Square) int {
	return (int(sq.Rank()) + int(sq.File())) % 2
}

// fiftyMoveRule reads the halfmove clock the position already carries in its
// FEN: one hundred halfmoves without a capture or pawn move is a draw.
func (gs *GameState) fiftyMoveRule() bool {
	fields := strings.Fields(gs.current().String())
	if len(fields) < 5 {
		return false
	}
	clock, err := strconv.Atoi(fields[4])
	return err == nil && clock >= 100
}

func (gs *GameState) GameOver() bool {
	return gs.Checkmated() || gs.Drawn()
}

func (gs *GameState) Piece(sq chess.Square) chess.Piece {
	return gs.current().Board().Piece(sq)
}

// Grid returns the full board contents as an 8x8 grid indexed [rank][file].
// Empty squares hold chess.NoPiece.
func (gs *GameState) Grid() [8][8]chess.Piece {
	var grid [8][8]chess.Piece
	board := gs.current().Board()
	for sq := chess.A1; sq <= chess.H8; sq++ {
		grid[int(sq.Rank())][int(sq.File())] = board.Piece(sq)
	}
	return grid
}

func (gs *GameState) FEN() string {
	return gs.current().String()
}

// Mobility counts legal moves for either color. The off-turn side is counted
// through a clone with the turn swapped and any en passant square cleared.
func (gs *GameState) Mobility(c chess.Color) int {
	pos := gs.current()
	if pos.Turn() == c {
		return len(pos.ValidMoves())
	}
	fields := strings.Fields(pos.String())
	if len(fields) < 4 {
		return 0
	}
	fields[1] = "b"
	if c == chess.White {
		fields[1] = "w"
	}
	fields[3] = "-"
	opt, err := chess.FEN(strings.Join(fields, " "))
	if err != nil {
		return 0
	}
	return len(chess.NewGame(opt).Position().ValidMoves())
}

// ThreefoldRepetition reports whether the current position has occurred at
// least three times in this game's history. Move clocks are excluded from the
// comparison.
func (gs *GameState) ThreefoldRepetition() bool {
	count := 0
	key := repetitionKey(gs.current())
	for _, pos := range gs.positions {
		if repetitionKey(pos) == key {
			count++
		}
	}
	return count >= 3
}

func repetitionKey(pos *chess.Position) string {
	// Board layout, turn, castling rights and en passant square; the
	// halfmove clock and move number never match across repetitions.
	fields := strings.Fields(pos.String())
	if len(fields) < 4 {
		return pos.String()
	}
	return strings.Join(fields[:4], " ")
}

// History returns the moves applied so far, oldest first.
func (gs *GameState) History() []Move {
	out := make([]Move, len(gs.applied))
	copy(out, gs.applied)
	return out
}

// Clone returns an independent copy. Position values are immutable, only the
// stacks need copying.
func (gs *GameState) Clone() *GameState {
	positions := make([]*chess.Position, len(gs.positions))
	copy(positions, gs.positions)
	applied := make([]Move, len(gs.applied))
	copy(applied, gs.applied)
	return &GameState{positions: positions, applied: applied}
}

// Outcome returns the game result in standard notation, or "*" while the
// game is still undecided.
func (gs *GameState) Outcome() string {
	switch {
	case gs.Checkmated() && gs.Turn() == chess.White:
		return "0-1"
	case gs.Checkmated():
		return "1-0"
	case gs.Drawn():
		return "1/2-1/2"
	default:
		return "*"
	}
}

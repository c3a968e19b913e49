// Package hexchess models the Glinski hexagonal chess board: its 91 cells,
// the three movement axes, piece destinations and the per-player view.
package hexchess

// Color identifies a side.
type Color string

const (
	White Color = "white"
	Black Color = "black"
)

// Opponent returns the other side.
func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

// Seat returns the seat index for the color (0 = White, 1 = Black).
func (c Color) Seat() int {
	if c == Black {
		return 1
	}
	return 0
}

// ColorForSeat maps a seat index back to its color.
func ColorForSeat(seat int) Color {
	if seat == 1 {
		return Black
	}
	return White
}

// PieceType is the kind of a piece.
type PieceType string

const (
	Pawn   PieceType = "pawn"
	Knight PieceType = "knight"
	Bishop PieceType = "bishop"
	Rook   PieceType = "rook"
	Queen  PieceType = "queen"
	King   PieceType = "king"
)

// Piece is a value; it carries no identity or move history.
type Piece struct {
	Color Color
	Type  PieceType
}

// CellColor is the display tint of a cell.
type CellColor string

const (
	Dark  CellColor = "dark"
	Mid   CellColor = "mid"
	Light CellColor = "light"
)

// Cell is a fixed board location and its optional occupant.
type Cell struct {
	Coords Coords
	Color  CellColor
	Piece  *Piece
}

// Empty reports whether no piece stands on the cell.
func (c *Cell) Empty() bool { return c.Piece == nil }

// AttackableBy reports whether the cell holds a piece of the other side.
func (c *Cell) AttackableBy(player Color) bool {
	return c.Piece != nil && c.Piece.Color != player
}

// Move is a from/to pair. History stores moves in White's frame.
type Move struct {
	From Coords
	To   Coords
}

// MoveSet lists the destinations reachable by the piece on From.
type MoveSet struct {
	From Coords
	To   []Coords
}

// Errors
var (
	ErrNoSeat      = errf("session has no seat")
	ErrNotYourTurn = errf("not your turn")
	ErrOffBoard    = errf("coordinate is off the board")
	ErrNoPiece     = errf("no piece of yours on the source cell")
	ErrOwnPiece    = errf("destination holds your own piece")
	ErrNullMove    = errf("source and destination are the same cell")
)

type staticErr string

func (e staticErr) Error() string { return string(e) }
func errf(s string) error         { return staticErr(s) }

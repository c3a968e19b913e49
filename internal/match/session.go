package match

import (
	"time"

	"github.com/park285/glinski-chess/internal/hexchess"
)

// Session binds a client-chosen id to a seat. A nil Color marks a spectator.
type Session struct {
	ID    string
	Color *hexchess.Color
}

// Spectator reports whether the session holds no seat.
func (s Session) Spectator() bool { return s.Color == nil }

// Role names the seat for logs: "white", "black" or "spectator".
func (s Session) Role() string {
	if s.Color == nil {
		return "spectator"
	}
	return string(*s.Color)
}

// Game is the single shared table. The board and history are always in
// White's frame.
type Game struct {
	board   *hexchess.Board
	history []hexchess.Move
	// seats[0] is White, seats[1] is Black; "" is vacant.
	seats [2]string
}

func newGame() *Game {
	return &Game{board: hexchess.StartingBoard()}
}

// assign seats id when a seat is free: White while both are empty, otherwise
// the one remaining vacancy.
func (g *Game) assign(id string) *hexchess.Color {
	for i, holder := range g.seats {
		if holder == "" {
			g.seats[i] = id
			c := hexchess.ColorForSeat(i)
			return &c
		}
	}
	return nil
}

func (g *Game) nextToMove() hexchess.Color {
	return hexchess.NextToMove(g.board, g.history)
}

// MoveRecord describes one committed move for the journal.
type MoveRecord struct {
	Seq       int
	SessionID string
	Color     hexchess.Color
	Move      hexchess.Move
	Piece     hexchess.Piece
	Captured  *hexchess.Piece
	At        time.Time
}

package match

import "github.com/park285/glinski-chess/internal/hexchess"

// View is the game as one participant sees it. Every coordinate is in the
// viewer's frame; spectators see White's frame.
type View struct {
	Player         *hexchess.Color
	Board          *hexchess.Board
	AvailableMoves []hexchess.MoveSet
	LastMove       *hexchess.Move
	NextToMove     hexchess.Color
	MoveCount      int
}

// Stats summarises the store for health checks.
type Stats struct {
	Sessions    int            `json:"sessions"`
	WhiteSeated bool           `json:"white_seated"`
	BlackSeated bool           `json:"black_seated"`
	Moves       int            `json:"moves"`
	NextToMove  hexchess.Color `json:"next_to_move"`
}

func frameOf(player *hexchess.Color) hexchess.Color {
	if player == nil {
		return hexchess.White
	}
	return *player
}

// viewOf must be called with the store lock held. Moves are offered only when
// player is seated.
func viewOf(g *Game, player *hexchess.Color, frame hexchess.Color) View {
	toMove := g.nextToMove()
	v := View{
		Board:      g.board.ForViewer(frame),
		NextToMove: toMove,
		MoveCount:  len(g.history),
	}
	if player != nil {
		c := *player
		v.Player = &c
		v.AvailableMoves = hexchess.MovesFor(v.Board, c, toMove)
	}
	if n := len(g.history); n > 0 {
		last := g.history[n-1].ForViewer(frame)
		v.LastMove = &last
	}
	return v
}

package hexchess

// StartingBoard returns the canonical Glinski opening position.
func StartingBoard() *Board {
	b := NewBoard()
	for f := 1; f <= 9; f++ {
		b.Place(Coords{f, StartingPawnRank(f)}, &Piece{White, Pawn})
		b.Place(Coords{f, 6}, &Piece{Black, Pawn})
	}
	for _, p := range startingOfficers {
		b.Place(p.at, &Piece{p.color, p.kind})
	}
	return b
}

type placement struct {
	at    Coords
	color Color
	kind  PieceType
}

// Fixed layout; not derived from rules.
var startingOfficers = []placement{
	{Coords{5, 0}, White, Bishop},
	{Coords{5, 1}, White, Bishop},
	{Coords{5, 2}, White, Bishop},
	{Coords{5, 8}, Black, Bishop},
	{Coords{5, 9}, Black, Bishop},
	{Coords{5, 10}, Black, Bishop},
	{Coords{2, 0}, White, Rook},
	{Coords{8, 0}, White, Rook},
	{Coords{2, 7}, Black, Rook},
	{Coords{8, 7}, Black, Rook},
	{Coords{3, 0}, White, Knight},
	{Coords{7, 0}, White, Knight},
	{Coords{3, 8}, Black, Knight},
	{Coords{7, 8}, Black, Knight},
	{Coords{4, 0}, White, Queen},
	{Coords{4, 9}, Black, Queen},
	{Coords{6, 0}, White, King},
	{Coords{6, 9}, Black, King},
}

// Package hexdto holds the JSON shapes exchanged with browser clients.
package hexdto

type Coords struct {
	FileIdx int `json:"file_idx"`
	RankIdx int `json:"rank_idx"`
}

type Piece struct {
	Color string `json:"color"`
	Ptype string `json:"ptype"`
}

type Cell struct {
	Coords Coords `json:"coords"`
	Color  string `json:"color"`
	Piece  *Piece `json:"piece"`
}

type Move struct {
	From Coords `json:"from"`
	To   Coords `json:"to"`
}

// AvailableMove lists every destination of the piece on From.
type AvailableMove struct {
	From Coords   `json:"from"`
	To   []Coords `json:"to"`
}

// Game is the full state pushed to a client after every change. Player is
// null for spectators; coordinates are in the receiving player's frame.
type Game struct {
	Player         *string         `json:"player"`
	Board          [][]Cell        `json:"board"`
	AvailableMoves []AvailableMove `json:"available_moves"`
	LastMove       *Move           `json:"last_move"`
}

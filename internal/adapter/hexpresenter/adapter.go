package hexpresenter

import (
	"github.com/park285/glinski-chess/internal/hexchess"
	"github.com/park285/glinski-chess/internal/match"
	"github.com/park285/glinski-chess/pkg/hexdto"
)

func ToDTOGame(v match.View) *hexdto.Game {
	out := &hexdto.Game{
		Board:          toDTOBoard(v.Board),
		AvailableMoves: make([]hexdto.AvailableMove, 0, len(v.AvailableMoves)),
	}
	if v.Player != nil {
		p := string(*v.Player)
		out.Player = &p
	}
	for _, set := range v.AvailableMoves {
		to := make([]hexdto.Coords, 0, len(set.To))
		for _, c := range set.To {
			to = append(to, ToDTOCoords(c))
		}
		out.AvailableMoves = append(out.AvailableMoves, hexdto.AvailableMove{From: ToDTOCoords(set.From), To: to})
	}
	if v.LastMove != nil {
		m := ToDTOMove(*v.LastMove)
		out.LastMove = &m
	}
	return out
}

func toDTOBoard(b *hexchess.Board) [][]hexdto.Cell {
	if b == nil {
		return [][]hexdto.Cell{}
	}
	files := make([][]hexdto.Cell, len(b.Files))
	for f, file := range b.Files {
		cells := make([]hexdto.Cell, len(file))
		for r, cell := range file {
			cells[r] = hexdto.Cell{Coords: ToDTOCoords(cell.Coords), Color: string(cell.Color)}
			if cell.Piece != nil {
				cells[r].Piece = &hexdto.Piece{Color: string(cell.Piece.Color), Ptype: string(cell.Piece.Type)}
			}
		}
		files[f] = cells
	}
	return files
}

func ToDTOCoords(c hexchess.Coords) hexdto.Coords {
	return hexdto.Coords{FileIdx: c.File, RankIdx: c.Rank}
}

func ToDTOMove(m hexchess.Move) hexdto.Move {
	return hexdto.Move{From: ToDTOCoords(m.From), To: ToDTOCoords(m.To)}
}

// FromDTOMove converts an inbound move. Range is not checked here; the gate
// rejects off-board coordinates.
func FromDTOMove(m hexdto.Move) hexchess.Move {
	return hexchess.Move{
		From: hexchess.Coords{File: m.From.FileIdx, Rank: m.From.RankIdx},
		To:   hexchess.Coords{File: m.To.FileIdx, Rank: m.To.RankIdx},
	}
}

func ToDTOHealth(st match.Stats) hexdto.Health {
	return hexdto.Health{
		Status:      "ok",
		Sessions:    st.Sessions,
		WhiteSeated: st.WhiteSeated,
		BlackSeated: st.BlackSeated,
		Moves:       st.Moves,
		NextToMove:  string(st.NextToMove),
	}
}

package hexchess

// Destinations returns where the piece standing on at can move. It ignores
// whose turn it is and returns nil for an empty or off-board cell.
func Destinations(b *Board, at Coords) []Coords {
	p := b.PieceAt(at)
	if p == nil {
		return nil
	}
	return DestinationsFor(b, *p, at)
}

// DestinationsFor enumerates the cells piece could reach from at on b.
// Check and king safety are not considered.
func DestinationsFor(b *Board, piece Piece, at Coords) []Coords {
	var dest []Coords
	switch piece.Type {
	case Rook:
		dest = slide(b, piece.Color, at, flatDirections, dest)
	case Bishop:
		dest = slide(b, piece.Color, at, diagonalDirections, dest)
	case Queen:
		dest = slide(b, piece.Color, at, royalDirections, dest)
	case King:
		dest = jump(b, piece.Color, at, royalDirections, dest)
	case Knight:
		dest = jump(b, piece.Color, at, knightJumps, dest)
	case Pawn:
		dest = pawnMoves(b, piece.Color, at, dest)
	}
	return dest
}

// slide walks each ray until it leaves the board or meets a piece; an
// opposing piece ends the ray as a capture.
func slide(b *Board, player Color, at Coords, dirs [][]Step, dest []Coords) []Coords {
	for _, steps := range dirs {
		cur := at.Apply(steps)
		for {
			cell, ok := b.Cell(cur)
			if !ok {
				break
			}
			if cell.Empty() {
				dest = append(dest, cell.Coords)
				cur = cur.Apply(steps)
				continue
			}
			if cell.AttackableBy(player) {
				dest = append(dest, cell.Coords)
			}
			break
		}
	}
	return dest
}

func jump(b *Board, player Color, at Coords, dirs [][]Step, dest []Coords) []Coords {
	for _, steps := range dirs {
		cell, ok := b.Cell(at.Apply(steps))
		if !ok {
			continue
		}
		if cell.Empty() || cell.AttackableBy(player) {
			dest = append(dest, cell.Coords)
		}
	}
	return dest
}

func pawnMoves(b *Board, player Color, at Coords, dest []Coords) []Coords {
	fwd := pawnForward(b, player)
	if cell, ok := b.Cell(at.Offset(AxisB, fwd)); ok && cell.Empty() {
		dest = append(dest, cell.Coords)
		if at.Rank == pawnStartRank(b, player, at.File) {
			if cell, ok := b.Cell(at.Offset(AxisB, 2*fwd)); ok && cell.Empty() {
				dest = append(dest, cell.Coords)
			}
		}
	}
	for _, target := range []Coords{at.Offset(AxisA, fwd), at.Offset(AxisC, fwd)} {
		if cell, ok := b.Cell(target); ok && cell.AttackableBy(player) {
			dest = append(dest, cell.Coords)
		}
	}
	return dest
}

// pawnForward is +1 when the pawn's owner is the side the board is oriented
// for, -1 otherwise.
func pawnForward(b *Board, player Color) int {
	if b.Orientation == player {
		return 1
	}
	return -1
}

func pawnStartRank(b *Board, player Color, file int) int {
	if b.Orientation == player {
		return StartingPawnRank(file)
	}
	return FileLength(file) - 1 - StartingPawnRank(file)
}

// AvailableMoves lists a move set for every piece of player on b, in file
// then rank order. Pieces with no destinations still appear with an empty
// list.
func AvailableMoves(b *Board, player Color) []MoveSet {
	var out []MoveSet
	for _, at := range b.Pieces(player) {
		out = append(out, MoveSet{From: at, To: Destinations(b, at)})
	}
	return out
}

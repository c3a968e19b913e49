package hexchess

// NextToMove infers whose turn it is from the canonical board and history:
// White before any move, otherwise the opponent of whoever now stands on the
// last move's destination.
func NextToMove(board *Board, history []Move) Color {
	if len(history) == 0 {
		return White
	}
	last := history[len(history)-1]
	if p := board.PieceAt(last.To); p != nil {
		return p.Color.Opponent()
	}
	// Unreachable through CheckMove; fall back to strict alternation.
	if len(history)%2 == 1 {
		return Black
	}
	return White
}

// CheckMove gates a canonical-frame move submitted by the holder of seat
// (nil for spectators). It checks turn order, board bounds and occupancy only;
// the pair is not compared against Destinations.
func CheckMove(board *Board, history []Move, seat *Color, m Move) error {
	if seat == nil {
		return ErrNoSeat
	}
	if NextToMove(board, history) != *seat {
		return ErrNotYourTurn
	}
	if !m.From.Valid() || !m.To.Valid() {
		return ErrOffBoard
	}
	if m.From == m.To {
		return ErrNullMove
	}
	if p := board.PieceAt(m.From); p == nil || p.Color != *seat {
		return ErrNoPiece
	}
	if p := board.PieceAt(m.To); p != nil && p.Color == *seat {
		return ErrOwnPiece
	}
	return nil
}

// MovesFor returns player's available moves on a board already expressed in
// player's frame, or none when it is not player's turn.
func MovesFor(view *Board, player Color, toMove Color) []MoveSet {
	if player != toMove {
		return nil
	}
	return AvailableMoves(view, player)
}

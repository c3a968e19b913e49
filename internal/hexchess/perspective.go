package hexchess

// Transform maps a White-frame coordinate into viewer's frame. For Black it
// rotates the board half a turn; applying it twice yields c again, so the
// same call maps a viewer-frame coordinate back to White's frame.
func Transform(c Coords, viewer Color) Coords {
	if viewer != Black {
		return c
	}
	file := FileCount - 1 - c.File
	return Coords{File: file, Rank: FileLength(file) - c.Rank - 1}
}

// ForViewer maps both endpoints of m into viewer's frame.
func (m Move) ForViewer(viewer Color) Move {
	return Move{From: Transform(m.From, viewer), To: Transform(m.To, viewer)}
}

// ForViewer returns a copy of b expressed in viewer's frame. Cell colors and
// occupants travel with their physical cell; every cell reports its
// coordinate in the new frame.
func (b *Board) ForViewer(viewer Color) *Board {
	if viewer != Black {
		viewer = White
	}
	if b.Orientation == viewer {
		return b.Clone()
	}
	out := &Board{Orientation: viewer, Files: make([][]Cell, len(b.Files))}
	for f := range b.Files {
		n := FileLength(f)
		file := make([]Cell, n)
		for r := 0; r < n; r++ {
			// Orientations differ, so the rotation maps between the two frames.
			src, _ := b.Cell(Transform(Coords{f, r}, Black))
			file[r] = Cell{Coords: Coords{f, r}, Color: src.Color}
			if src.Piece != nil {
				v := *src.Piece
				file[r].Piece = &v
			}
		}
		out.Files[f] = file
	}
	return out
}

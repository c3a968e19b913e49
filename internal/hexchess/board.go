package hexchess

// Board is 11 files of cells addressed by (file, rank). Orientation names the
// side whose frame the coordinates are expressed in; canonical boards are
// White-oriented.
type Board struct {
	Orientation Color
	Files       [][]Cell
}

// NewBoard builds an empty White-oriented board.
func NewBoard() *Board {
	b := &Board{Orientation: White, Files: make([][]Cell, FileCount)}
	for f := 0; f < FileCount; f++ {
		n := FileLength(f)
		file := make([]Cell, n)
		for r := 0; r < n; r++ {
			file[r] = Cell{Coords: Coords{File: f, Rank: r}, Color: CellColorAt(f, r)}
		}
		b.Files[f] = file
	}
	return b
}

// Cell returns the cell at c, or false when c is off the board.
func (b *Board) Cell(c Coords) (*Cell, bool) {
	if b == nil || c.File < 0 || c.File >= len(b.Files) {
		return nil, false
	}
	file := b.Files[c.File]
	if c.Rank < 0 || c.Rank >= len(file) {
		return nil, false
	}
	return &file[c.Rank], true
}

// PieceAt returns the occupant of c; nil when empty or off the board.
func (b *Board) PieceAt(c Coords) *Piece {
	cell, ok := b.Cell(c)
	if !ok {
		return nil
	}
	return cell.Piece
}

// Place puts p (or nothing, when nil) on c. Off-board coordinates are ignored.
func (b *Board) Place(c Coords, p *Piece) {
	cell, ok := b.Cell(c)
	if !ok {
		return
	}
	if p == nil {
		cell.Piece = nil
		return
	}
	v := *p
	cell.Piece = &v
}

// Apply moves the occupant of m.From onto m.To and clears m.From. It does not
// check legality.
func (b *Board) Apply(m Move) {
	moving := b.PieceAt(m.From)
	b.Place(m.To, moving)
	b.Place(m.From, nil)
}

// Clone returns a deep copy.
func (b *Board) Clone() *Board {
	out := &Board{Orientation: b.Orientation, Files: make([][]Cell, len(b.Files))}
	for f, file := range b.Files {
		cp := make([]Cell, len(file))
		for r, cell := range file {
			cp[r] = cell
			if cell.Piece != nil {
				v := *cell.Piece
				cp[r].Piece = &v
			}
		}
		out.Files[f] = cp
	}
	return out
}

// CellCount returns the total number of cells.
func (b *Board) CellCount() int {
	n := 0
	for _, file := range b.Files {
		n += len(file)
	}
	return n
}

// Pieces returns the coordinates of every piece of the given color, in file
// then rank order.
func (b *Board) Pieces(color Color) []Coords {
	var out []Coords
	for _, file := range b.Files {
		for _, cell := range file {
			if cell.Piece != nil && cell.Piece.Color == color {
				out = append(out, cell.Coords)
			}
		}
	}
	return out
}

package hexchess

import "fmt"

const (
	// FileCount is the number of files on the board.
	FileCount = 11
	// CenterFile is the longest file; lateral corrections pivot on it.
	CenterFile = 5
)

// Coords addresses a cell by file (0..10) and rank within the file.
type Coords struct {
	File int
	Rank int
}

func (c Coords) String() string { return fmt.Sprintf("%d:%d", c.File, c.Rank) }

// FileLength returns the number of cells on a file: 11 - |5 - file|.
// Files outside 0..10 have length 0.
func FileLength(file int) int {
	if file < 0 || file >= FileCount {
		return 0
	}
	return FileCount - abs(CenterFile-file)
}

// Valid reports whether c lies on the board. Out-of-range coordinates are
// never clamped.
func (c Coords) Valid() bool {
	return c.File >= 0 && c.File < FileCount && c.Rank >= 0 && c.Rank < FileLength(c.File)
}

// CellColorAt returns the tint of a cell: (file + rank + max(0, file-5)) mod 3.
func CellColorAt(file, rank int) CellColor {
	switch (file + rank + max(0, file-CenterFile)) % 3 {
	case 0:
		return Dark
	case 1:
		return Mid
	default:
		return Light
	}
}

// StartingPawnRank is the rank a pawn starts on in its owner's frame.
func StartingPawnRank(file int) int {
	return 4 - abs(file-CenterFile)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

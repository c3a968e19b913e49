package hexchess

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func boardWith(pieces map[Coords]Piece) *Board {
	b := NewBoard()
	for c, p := range pieces {
		p := p
		b.Place(c, &p)
	}
	return b
}

func distinct(cs []Coords) map[Coords]struct{} {
	out := make(map[Coords]struct{}, len(cs))
	for _, c := range cs {
		out[c] = struct{}{}
	}
	return out
}

func TestOffsetLateralCorrection(t *testing.T) {
	center := Coords{5, 5}
	require.Equal(t, Coords{4, 5}, center.Offset(AxisA, 1))
	require.Equal(t, Coords{6, 4}, center.Offset(AxisA, -1))
	require.Equal(t, Coords{6, 5}, center.Offset(AxisC, 1))
	require.Equal(t, Coords{4, 4}, center.Offset(AxisC, -1))
	require.Equal(t, Coords{5, 8}, center.Offset(AxisB, 3))
	require.Equal(t, center, center.Offset(AxisA, 0))

	// Right of the center, AxisA gains a rank only until it reaches the center file.
	require.Equal(t, Coords{5, 1}, Coords{6, 0}.Offset(AxisA, 1))
	require.Equal(t, Coords{3, 1}, Coords{6, 0}.Offset(AxisA, 3))
	// Left of the center, AxisC does the same.
	require.Equal(t, Coords{4, 3}, Coords{3, 2}.Offset(AxisC, 1))
	require.Equal(t, Coords{2, 2}, Coords{3, 2}.Offset(AxisA, 1))
}

func TestApplyPassesThroughOffBoardIntermediates(t *testing.T) {
	c := Coords{0, 0}.Apply([]Step{{AxisA, 1}, {AxisC, 1}})
	require.Equal(t, Coords{0, 1}, c)
	require.False(t, Coords{0, 0}.Offset(AxisA, 1).Valid())
}

func TestOffsetsMirrorUnderRotation(t *testing.T) {
	for f := 0; f < FileCount; f++ {
		for r := 0; r < FileLength(f); r++ {
			c := Coords{f, r}
			for _, axis := range []Axis{AxisA, AxisB, AxisC} {
				next := c.Offset(axis, 1)
				if !next.Valid() {
					continue
				}
				require.Equal(t, Transform(next, Black), Transform(c, Black).Offset(axis, -1), "%v axis %d", c, axis)
			}
		}
	}
}

func TestOpenBoardCardinalities(t *testing.T) {
	center := Coords{5, 5}
	cases := []struct {
		kind PieceType
		want int
	}{
		{Knight, 12},
		{King, 12},
		{Rook, 30},
		{Bishop, 12},
		{Queen, 42},
	}
	for _, tc := range cases {
		t.Run(string(tc.kind), func(t *testing.T) {
			b := boardWith(map[Coords]Piece{center: {White, tc.kind}})
			dest := Destinations(b, center)
			require.Len(t, dest, tc.want)
			require.Len(t, distinct(dest), tc.want)
			for _, c := range dest {
				require.True(t, c.Valid())
			}
		})
	}
	require.ElementsMatch(t, []Coords{
		{2, 4}, {3, 6}, {4, 7}, {6, 7}, {7, 6}, {8, 4},
		{8, 3}, {7, 2}, {6, 2}, {4, 2}, {3, 2}, {2, 3},
	}, DestinationsFor(NewBoard(), Piece{White, Knight}, center))
}

func TestBishopStaysOnItsColor(t *testing.T) {
	for _, at := range []Coords{{5, 5}, {5, 0}, {2, 3}, {8, 1}} {
		b := boardWith(map[Coords]Piece{at: {Black, Bishop}})
		own := CellColorAt(at.File, at.Rank)
		for _, c := range Destinations(b, at) {
			require.Equal(t, own, CellColorAt(c.File, c.Rank), "from %v to %v", at, c)
		}
	}
}

func TestEdgeTruncation(t *testing.T) {
	corner := Coords{0, 0}
	knight := boardWith(map[Coords]Piece{corner: {White, Knight}})
	require.ElementsMatch(t, []Coords{{1, 3}, {2, 3}, {3, 2}, {3, 1}}, Destinations(knight, corner))
	king := boardWith(map[Coords]Piece{corner: {White, King}})
	require.ElementsMatch(t, []Coords{{0, 1}, {1, 1}, {1, 0}, {1, 2}, {2, 1}}, Destinations(king, corner))
	require.Nil(t, Destinations(NewBoard(), corner))
	require.Nil(t, Destinations(NewBoard(), Coords{12, 0}))
}

func TestRaysStopAtFirstOccupiedCell(t *testing.T) {
	at := Coords{5, 5}
	b := boardWith(map[Coords]Piece{
		at:     {White, Rook},
		{5, 8}: {White, Pawn},
		{5, 2}: {Black, Pawn},
	})
	dest := distinct(Destinations(b, at))

	require.Contains(t, dest, Coords{5, 6})
	require.Contains(t, dest, Coords{5, 7})
	require.NotContains(t, dest, Coords{5, 8}, "friendly blocker is not a destination")
	require.NotContains(t, dest, Coords{5, 9})

	require.Contains(t, dest, Coords{5, 4})
	require.Contains(t, dest, Coords{5, 3})
	require.Contains(t, dest, Coords{5, 2}, "opposing blocker is a capture")
	require.NotContains(t, dest, Coords{5, 1})
}

func TestStartingPositionSliders(t *testing.T) {
	b := StartingBoard()
	require.Equal(t, []Coords{{3, 1}, {4, 2}, {5, 3}}, Destinations(b, Coords{2, 0}))
	require.Equal(t, []Coords{{7, 1}, {3, 1}}, Destinations(b, Coords{5, 2}))
	require.ElementsMatch(t, []Coords{{4, 1}, {6, 1}}, Destinations(b, Coords{5, 0}))
	require.ElementsMatch(t, []Coords{{1, 1}, {2, 2}, {5, 3}, {6, 1}}, Destinations(b, Coords{3, 0}))
	require.ElementsMatch(t, []Coords{{6, 1}, {7, 1}}, Destinations(b, Coords{6, 0}))
}

func TestPawnAdvances(t *testing.T) {
	b := StartingBoard()
	require.Equal(t, []Coords{{4, 4}, {4, 5}}, Destinations(b, Coords{4, 3}))
	require.Equal(t, []Coords{{1, 1}, {1, 2}}, Destinations(b, Coords{1, 0}))
	// Centre pawn: the double step is blocked by the opposing pawn.
	require.Equal(t, []Coords{{5, 5}}, Destinations(b, Coords{5, 4}))

	moved := boardWith(map[Coords]Piece{{4, 4}: {White, Pawn}})
	require.Equal(t, []Coords{{4, 5}}, Destinations(moved, Coords{4, 4}))

	blocked := boardWith(map[Coords]Piece{
		{4, 3}: {White, Pawn},
		{4, 4}: {Black, Knight},
	})
	require.Empty(t, Destinations(blocked, Coords{4, 3}))

	last := boardWith(map[Coords]Piece{{5, 10}: {White, Pawn}})
	require.Empty(t, Destinations(last, Coords{5, 10}))
}

func TestPawnCaptures(t *testing.T) {
	b := boardWith(map[Coords]Piece{
		{5, 4}: {White, Pawn},
		{4, 4}: {Black, Knight},
		{6, 4}: {Black, Rook},
	})
	require.Equal(t, []Coords{{5, 5}, {5, 6}, {4, 4}, {6, 4}}, Destinations(b, Coords{5, 4}))

	friendly := boardWith(map[Coords]Piece{
		{5, 4}: {White, Pawn},
		{4, 4}: {White, Knight},
	})
	require.NotContains(t, Destinations(friendly, Coords{5, 4}), Coords{4, 4})
}

func TestBlackPawnOnWhiteOrientedBoard(t *testing.T) {
	b := boardWith(map[Coords]Piece{
		{5, 6}: {Black, Pawn},
		{6, 5}: {White, Knight},
	})
	require.Equal(t, []Coords{{5, 5}, {5, 4}, {6, 5}}, Destinations(b, Coords{5, 6}))

	view := b.ForViewer(Black)
	from := Transform(Coords{5, 6}, Black)
	var mirrored []Coords
	for _, c := range Destinations(view, from) {
		mirrored = append(mirrored, Transform(c, Black))
	}
	require.Equal(t, Destinations(b, Coords{5, 6}), mirrored)
}

func TestAvailableMovesCoverEveryPiece(t *testing.T) {
	b := StartingBoard()
	sets := AvailableMoves(b, White)
	require.Len(t, sets, 18)
	total := 0
	for _, s := range sets {
		require.Equal(t, White, b.PieceAt(s.From).Color)
		total += len(s.To)
	}
	require.Equal(t, 51, total)
}

package match

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/park285/glinski-chess/internal/hexchess"
	"github.com/stretchr/testify/require"
)

type countingNotifier struct{ n atomic.Int32 }

func (c *countingNotifier) Notify() int { c.n.Add(1); return 0 }

type memRecorder struct {
	mu   sync.Mutex
	recs []MoveRecord
	err  error
}

func (m *memRecorder) Record(_ context.Context, rec MoveRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recs = append(m.recs, rec)
	return m.err
}

func mv(ff, fr, tf, tr int) hexchess.Move {
	return hexchess.Move{From: hexchess.Coords{File: ff, Rank: fr}, To: hexchess.Coords{File: tf, Rank: tr}}
}

func TestSeatAssignment(t *testing.T) {
	s := NewStore(nil, nil)

	a, err := s.GetOrCreateSession("A")
	require.NoError(t, err)
	require.Equal(t, hexchess.White, *a.Color)

	b, err := s.GetOrCreateSession(" B ")
	require.NoError(t, err)
	require.Equal(t, "B", b.ID)
	require.Equal(t, hexchess.Black, *b.Color)

	c, err := s.GetOrCreateSession("C")
	require.NoError(t, err)
	require.True(t, c.Spectator())
	require.Equal(t, "spectator", c.Role())

	again, err := s.GetOrCreateSession("A")
	require.NoError(t, err)
	require.Equal(t, hexchess.White, *again.Color)

	_, err = s.GetOrCreateSession("   ")
	require.ErrorIs(t, err, ErrEmptySessionID)

	st := s.Stats()
	require.Equal(t, Stats{Sessions: 3, WhiteSeated: true, BlackSeated: true, NextToMove: hexchess.White}, st)
}

func TestInitialViews(t *testing.T) {
	s := NewStore(nil, nil)
	for _, id := range []string{"A", "B", "C"} {
		_, err := s.GetOrCreateSession(id)
		require.NoError(t, err)
	}

	white, err := s.View("A")
	require.NoError(t, err)
	require.Equal(t, hexchess.White, *white.Player)
	require.Len(t, white.AvailableMoves, 18)
	require.Nil(t, white.LastMove)

	black, err := s.View("B")
	require.NoError(t, err)
	require.Equal(t, hexchess.Black, *black.Player)
	require.Empty(t, black.AvailableMoves)
	require.Equal(t, hexchess.Black, black.Board.Orientation)
	require.Equal(t, &hexchess.Piece{Color: hexchess.Black, Type: hexchess.King}, black.Board.PieceAt(hexchess.Coords{File: 4, Rank: 0}))

	watcher, err := s.View("C")
	require.NoError(t, err)
	require.Nil(t, watcher.Player)
	require.Empty(t, watcher.AvailableMoves)
	require.Equal(t, hexchess.White, watcher.Board.Orientation)

	_, err = s.View("nobody")
	require.ErrorIs(t, err, ErrUnknownSession)
}

func TestTurnAlternationAcrossFrames(t *testing.T) {
	notes := &countingNotifier{}
	journal := &memRecorder{}
	s := NewStore(notes, journal)
	ctx := context.Background()
	for _, id := range []string{"A", "B", "C"} {
		_, err := s.GetOrCreateSession(id)
		require.NoError(t, err)
	}

	ok, err := s.ApplyViewerMove(ctx, "A", mv(4, 3, 4, 5))
	require.NoError(t, err)
	require.True(t, ok)
	require.EqualValues(t, 1, notes.n.Load())

	black, err := s.View("B")
	require.NoError(t, err)
	require.Equal(t, &hexchess.Move{From: hexchess.Coords{File: 6, Rank: 6}, To: hexchess.Coords{File: 6, Rank: 4}}, black.LastMove)
	require.NotEmpty(t, black.AvailableMoves)

	white, err := s.View("A")
	require.NoError(t, err)
	require.Equal(t, mv(4, 3, 4, 5), *white.LastMove)
	require.Empty(t, white.AvailableMoves)

	ok, err = s.ApplyViewerMove(ctx, "A", mv(5, 3, 5, 4))
	require.ErrorIs(t, err, hexchess.ErrNotYourTurn)
	require.False(t, ok)
	require.EqualValues(t, 1, notes.n.Load(), "rejected moves are not broadcast")

	ok, err = s.ApplyMove(ctx, "C", mv(5, 6, 5, 5))
	require.ErrorIs(t, err, hexchess.ErrNoSeat)
	require.False(t, ok)

	// Black's centre pawn, (5, 4) in its own frame, steps forward.
	ok, err = s.ApplyViewerMove(ctx, "B", mv(5, 4, 5, 5))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []hexchess.Move{mv(4, 3, 4, 5), mv(5, 6, 5, 5)}, s.History())
	require.Equal(t, hexchess.White, s.Stats().NextToMove)

	require.Len(t, journal.recs, 2)
	require.Equal(t, 1, journal.recs[0].Seq)
	require.Equal(t, hexchess.White, journal.recs[0].Color)
	require.Equal(t, hexchess.Piece{Color: hexchess.White, Type: hexchess.Pawn}, journal.recs[0].Piece)
	require.Equal(t, "B", journal.recs[1].SessionID)
	require.Equal(t, mv(5, 6, 5, 5), journal.recs[1].Move)
}

func TestCaptureIsRecorded(t *testing.T) {
	journal := &memRecorder{}
	s := NewStore(nil, journal)
	ctx := context.Background()
	_, _ = s.GetOrCreateSession("A")
	_, _ = s.GetOrCreateSession("B")

	for _, step := range []struct {
		id string
		m  hexchess.Move
	}{
		{"A", mv(4, 3, 4, 5)},
		{"B", mv(9, 0, 9, 1)}, // canonical (1,6) -> (1,5)
		{"A", mv(4, 5, 5, 6)}, // Axis C forward capture
	} {
		ok, err := s.ApplyViewerMove(ctx, step.id, step.m)
		require.NoError(t, err)
		require.True(t, ok)
	}
	require.Len(t, journal.recs, 3)
	require.Equal(t, &hexchess.Piece{Color: hexchess.Black, Type: hexchess.Pawn}, journal.recs[2].Captured)
	require.Nil(t, journal.recs[0].Captured)
}

func TestRecorderFailureKeepsMove(t *testing.T) {
	journal := &memRecorder{err: errors.New("redis down")}
	s := NewStore(nil, journal)
	_, _ = s.GetOrCreateSession("A")

	ok, err := s.ApplyMove(context.Background(), "A", mv(4, 3, 4, 5))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 1, s.Stats().Moves)
}

func TestUnknownSessionCannotMove(t *testing.T) {
	s := NewStore(nil, nil)
	_, err := s.ApplyMove(context.Background(), "ghost", mv(4, 3, 4, 5))
	require.ErrorIs(t, err, ErrUnknownSession)
}

func TestViewAsWithoutGame(t *testing.T) {
	s := NewStore(nil, nil)
	v := s.ViewAs(hexchess.Black)
	require.Equal(t, hexchess.Black, v.Board.Orientation)
	require.Nil(t, v.Player)
	require.Equal(t, Stats{NextToMove: hexchess.White}, s.Stats())
}

func TestConcurrentPlayersAlternate(t *testing.T) {
	const target = 24
	s := NewStore(&countingNotifier{}, nil)
	ctx := context.Background()
	_, _ = s.GetOrCreateSession("A")
	_, _ = s.GetOrCreateSession("B")

	play := func(id string) {
		for attempts := 0; attempts < 1_000_000 && s.Stats().Moves < target; attempts++ {
			v, err := s.View(id)
			if err != nil {
				return
			}
			var pick *hexchess.Move
			for _, set := range v.AvailableMoves {
				if len(set.To) > 0 {
					pick = &hexchess.Move{From: set.From, To: set.To[0]}
					break
				}
			}
			if pick == nil {
				runtime.Gosched()
				continue
			}
			_, _ = s.ApplyViewerMove(ctx, id, *pick)
		}
	}
	var wg sync.WaitGroup
	for _, id := range []string{"A", "B", "A", "B"} {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			play(id)
		}(id)
	}
	wg.Wait()

	history := s.History()
	require.GreaterOrEqual(t, len(history), target)
	board := hexchess.StartingBoard()
	for i, m := range history {
		p := board.PieceAt(m.From)
		require.NotNil(t, p, "move %d", i)
		want := hexchess.White
		if i%2 == 1 {
			want = hexchess.Black
		}
		require.Equal(t, want, p.Color, "move %d", i)
		board.Apply(m)
	}
}

// Package match holds the one shared game, its seats and the sessions that
// watch it.
package match

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/park285/glinski-chess/internal/hexchess"
	"github.com/park285/glinski-chess/internal/obslog"
	"go.uber.org/zap"
)

// Notifier is told after every committed move.
type Notifier interface {
	Notify() int
}

// Recorder receives committed moves after the lock is released. Failures
// are logged and never undo the move.
type Recorder interface {
	Record(ctx context.Context, rec MoveRecord) error
}

const recordTimeout = 5 * time.Second

var (
	ErrEmptySessionID = errf("session id is empty")
	ErrUnknownSession = errf("unknown session")
)

type staticErr string

func (e staticErr) Error() string { return string(e) }
func errf(s string) error         { return staticErr(s) }

// Store owns the game and the session table behind one mutex.
type Store struct {
	mu       sync.Mutex
	game     *Game
	sessions map[string]*Session

	notifier Notifier
	recorder Recorder
	now      func() time.Time
}

// NewStore returns an empty store. notifier and recorder may be nil.
func NewStore(notifier Notifier, recorder Recorder) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		notifier: notifier,
		recorder: recorder,
		now:      time.Now,
	}
}

// GetOrCreateSession returns the session for id, seating it on first sight:
// White when no seat is taken, Black when only White is, a spectator after
// that. The game itself is created by the first call.
func (s *Store) GetOrCreateSession(id string) (Session, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Session{}, ErrEmptySessionID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.game == nil {
		s.game = newGame()
		obslog.L().Info("game_created")
	}
	if sess, ok := s.sessions[id]; ok {
		return copySession(sess), nil
	}
	sess := &Session{ID: id, Color: s.game.assign(id)}
	s.sessions[id] = sess
	obslog.L().Info("seat_assigned", zap.String("session_id", id), zap.String("role", sess.Role()), zap.Int("sessions", len(s.sessions)))
	return copySession(sess), nil
}

// ApplyMove validates and commits a move given in White's frame.
func (s *Store) ApplyMove(ctx context.Context, id string, m hexchess.Move) (bool, error) {
	return s.apply(ctx, id, m, false)
}

// ApplyViewerMove is ApplyMove for a move expressed in the submitting seat's
// own frame.
func (s *Store) ApplyViewerMove(ctx context.Context, id string, m hexchess.Move) (bool, error) {
	return s.apply(ctx, id, m, true)
}

func (s *Store) apply(ctx context.Context, id string, m hexchess.Move, viewerFrame bool) (bool, error) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	if !ok || s.game == nil {
		s.mu.Unlock()
		return false, ErrUnknownSession
	}
	if viewerFrame && sess.Color != nil {
		m = m.ForViewer(*sess.Color)
	}
	g := s.game
	if err := hexchess.CheckMove(g.board, g.history, sess.Color, m); err != nil {
		s.mu.Unlock()
		obslog.L().Debug("move_rejected", zap.String("session_id", id), zap.String("role", sess.Role()),
			zap.Stringer("from", m.From), zap.Stringer("to", m.To), zap.Error(err))
		return false, err
	}
	mover := *g.board.PieceAt(m.From)
	var captured *hexchess.Piece
	if p := g.board.PieceAt(m.To); p != nil {
		c := *p
		captured = &c
	}
	g.board.Apply(m)
	g.history = append(g.history, m)
	rec := MoveRecord{
		Seq:       len(g.history),
		SessionID: id,
		Color:     *sess.Color,
		Move:      m,
		Piece:     mover,
		Captured:  captured,
		At:        s.now(),
	}
	s.mu.Unlock()

	obslog.L().Info("move_applied", zap.String("session_id", id), zap.String("color", string(rec.Color)),
		zap.Int("seq", rec.Seq), zap.Stringer("from", m.From), zap.Stringer("to", m.To))
	if s.notifier != nil {
		s.notifier.Notify()
	}
	if s.recorder != nil {
		// The move stands even if the submitter disconnects meanwhile.
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
		err := s.recorder.Record(rctx, rec)
		cancel()
		if err != nil {
			obslog.L().Warn("journal_error", zap.Int("seq", rec.Seq), zap.Error(err))
		}
	}
	return true, nil
}

// View returns the game as the session sees it.
func (s *Store) View(id string) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok || s.game == nil {
		return View{}, ErrUnknownSession
	}
	return viewOf(s.game, sess.Color, frameOf(sess.Color)), nil
}

// ViewAs returns the board in viewer's frame without a session, for
// renderers and probes. No moves are offered.
func (s *Store) ViewAs(viewer hexchess.Color) View {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.game == nil {
		// Nothing seated yet; show the opening position without creating the game.
		return viewOf(newGame(), nil, viewer)
	}
	return viewOf(s.game, nil, viewer)
}

// Stats reports seat occupancy and progress.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := Stats{Sessions: len(s.sessions), NextToMove: hexchess.White}
	if s.game == nil {
		return st
	}
	st.WhiteSeated = s.game.seats[0] != ""
	st.BlackSeated = s.game.seats[1] != ""
	st.Moves = len(s.game.history)
	st.NextToMove = s.game.nextToMove()
	return st
}

// History returns a copy of the committed moves in White's frame.
func (s *Store) History() []hexchess.Move {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.game == nil {
		return nil
	}
	return append([]hexchess.Move(nil), s.game.history...)
}

func copySession(sess *Session) Session {
	out := Session{ID: sess.ID}
	if sess.Color != nil {
		c := *sess.Color
		out.Color = &c
	}
	return out
}

// Package journal publishes committed moves to external sinks. It is an
// audit feed only; nothing reads it back into a running game.
package journal

import (
	"context"
	"errors"
	"time"

	"github.com/park285/glinski-chess/internal/adapter/hexpresenter"
	"github.com/park285/glinski-chess/internal/match"
	"github.com/park285/glinski-chess/pkg/hexdto"
)

// Entry is the serialized form of one committed move, in White's frame.
type Entry struct {
	Seq       int           `json:"seq"`
	SessionID string        `json:"session_id"`
	Color     string        `json:"color"`
	Piece     string        `json:"piece"`
	Captured  string        `json:"captured,omitempty"`
	From      hexdto.Coords `json:"from"`
	To        hexdto.Coords `json:"to"`
	At        time.Time     `json:"at"`
}

func NewEntry(rec match.MoveRecord) Entry {
	e := Entry{
		Seq:       rec.Seq,
		SessionID: rec.SessionID,
		Color:     string(rec.Color),
		Piece:     string(rec.Piece.Type),
		From:      hexpresenter.ToDTOCoords(rec.Move.From),
		To:        hexpresenter.ToDTOCoords(rec.Move.To),
		At:        rec.At.UTC(),
	}
	if rec.Captured != nil {
		e.Captured = string(rec.Captured.Type)
	}
	return e
}

// Multi fans a record out to every sink and joins their errors.
type Multi []match.Recorder

func (m Multi) Record(ctx context.Context, rec match.MoveRecord) error {
	var errs []error
	for _, r := range m {
		if r == nil {
			continue
		}
		if err := r.Record(ctx, rec); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

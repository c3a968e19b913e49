package hexpresenter

import (
	"context"

	"github.com/park285/glinski-chess/internal/match"
	"github.com/park285/glinski-chess/pkg/hexdto"
)

// Presenter delivers game views to one client without coupling to the
// transport.
type Presenter struct {
	send func(ctx context.Context, game *hexdto.Game) error
}

func NewPresenter(send func(ctx context.Context, game *hexdto.Game) error) *Presenter {
	return &Presenter{send: send}
}

// Game converts v and hands it to the transport.
func (p *Presenter) Game(ctx context.Context, v match.View) error {
	if p == nil || p.send == nil {
		return nil
	}
	return p.send(ctx, ToDTOGame(v))
}

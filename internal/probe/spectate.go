package probe

import (
	"context"
	"fmt"
)

// ErrSeatsOpen means a seat is still free. Connecting now would seat the
// watcher as a player for the rest of the server's lifetime.
var ErrSeatsOpen = errf("a seat is still open; refusing to take it")

type staticErr string

func (e staticErr) Error() string { return string(e) }
func errf(s string) error         { return staticErr(s) }

// Spectate connects w only when /healthz reports both seats taken, so the
// session it announces can only become a spectator.
func Spectate(ctx context.Context, c *Client, w *Watcher) error {
	h, err := c.Health(ctx)
	if err != nil {
		return fmt.Errorf("health: %w", err)
	}
	if !h.WhiteSeated || !h.BlackSeated {
		return ErrSeatsOpen
	}
	return w.Connect(ctx)
}

package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/park285/glinski-chess/internal/adapter/hexpresenter"
	"github.com/park285/glinski-chess/internal/fanout"
	"github.com/park285/glinski-chess/internal/match"
	"github.com/park285/glinski-chess/internal/obslog"
	"github.com/park285/glinski-chess/pkg/hexdto"
	"go.uber.org/zap"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

// ErrHelloNotText rejects a connection whose first frame is binary.
var ErrHelloNotText = errf("session id must be a text frame")

type staticErr string

func (e staticErr) Error() string { return string(e) }
func errf(s string) error         { return staticErr(s) }

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		Subprotocols: []string{s.cfg.WS.Subprotocol},
	})
	if err != nil {
		obslog.L().Debug("ws_accept_error", zap.String("remote", r.RemoteAddr), zap.Error(err))
		return
	}
	s.conns.Add(1)
	defer s.conns.Done()

	connID := uuid.NewString()
	log := obslog.L().With(zap.String("conn_id", connID))
	if conn.Subprotocol() != s.cfg.WS.Subprotocol {
		log.Debug("ws_subprotocol_missing", zap.String("remote", r.RemoteAddr))
		_ = conn.Close(websocket.StatusPolicyViolation, "subprotocol "+s.cfg.WS.Subprotocol+" required")
		return
	}
	if s.cfg.WS.ReadLimit > 0 {
		conn.SetReadLimit(s.cfg.WS.ReadLimit)
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	sess, err := s.hello(ctx, conn)
	if err != nil {
		switch {
		case errors.Is(err, match.ErrEmptySessionID):
			_ = conn.Close(websocket.StatusPolicyViolation, "session id required")
		case errors.Is(err, ErrHelloNotText):
			_ = conn.Close(websocket.StatusPolicyViolation, "session id must be text")
		default:
			_ = conn.Close(websocket.StatusPolicyViolation, "expected session id")
		}
		log.Debug("ws_hello_failed", zap.Error(err))
		return
	}
	log = log.With(zap.String("session_id", sess.ID), zap.String("role", sess.Role()))
	log.Info("ws_connect", zap.String("remote", r.RemoteAddr))

	sub := s.hub.Register(connID)
	defer s.hub.Unregister(sub)

	presenter := hexpresenter.NewPresenter(func(ctx context.Context, g *hexdto.Game) error {
		wctx, wcancel := context.WithTimeout(ctx, s.cfg.WS.WriteTimeout)
		defer wcancel()
		return wsjson.Write(wctx, conn, g)
	})

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		defer cancel()
		s.writeLoop(ctx, sess.ID, sub, presenter, log)
	}()

	s.readLoop(ctx, sess.ID, conn, log)
	cancel()
	<-writerDone
	_ = conn.Close(websocket.StatusNormalClosure, "")
	log.Info("ws_disconnect")
}

// hello waits for the first text frame, which carries the session id.
func (s *Server) hello(ctx context.Context, conn *websocket.Conn) (match.Session, error) {
	hctx, cancel := context.WithTimeout(ctx, s.cfg.WS.HelloTimeout)
	defer cancel()
	typ, data, err := conn.Read(hctx)
	if err != nil {
		return match.Session{}, err
	}
	if typ != websocket.MessageText {
		return match.Session{}, ErrHelloNotText
	}
	return s.store.GetOrCreateSession(strings.TrimSpace(string(data)))
}

// writeLoop pushes a fresh view every time the subscriber is signalled. Any
// write failure ends the connection.
func (s *Server) writeLoop(ctx context.Context, id string, sub *fanout.Subscriber, p *hexpresenter.Presenter, log *zap.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-sub.Done():
			return
		case <-sub.Signals():
		}
		view, err := s.store.View(id)
		if err != nil {
			log.Warn("ws_view_error", zap.Error(err))
			return
		}
		if err := p.Game(ctx, view); err != nil {
			if ctx.Err() == nil {
				log.Debug("ws_write_error", zap.Error(err))
			}
			return
		}
	}
}

// readLoop applies inbound moves until the connection ends. Frames that are
// not a move are ignored.
func (s *Server) readLoop(ctx context.Context, id string, conn *websocket.Conn, log *zap.Logger) {
	for {
		typ, data, err := conn.Read(ctx)
		if err != nil {
			if status := websocket.CloseStatus(err); status != -1 {
				log.Debug("ws_closed_by_peer", zap.Int("status", int(status)))
			} else if ctx.Err() == nil {
				log.Debug("ws_read_error", zap.Error(err))
			}
			return
		}
		if typ != websocket.MessageText {
			log.Debug("ws_bad_frame", zap.String("reason", "binary"))
			continue
		}
		var m hexdto.Move
		if err := json.Unmarshal(data, &m); err != nil {
			log.Debug("ws_bad_frame", zap.String("reason", "json"), zap.Error(err))
			continue
		}
		if _, err := s.store.ApplyViewerMove(ctx, id, hexpresenter.FromDTOMove(m)); err != nil {
			log.Debug("ws_move_ignored", zap.Error(err))
		}
	}
}

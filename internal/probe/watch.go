package probe

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/park285/glinski-chess/pkg/hexdto"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

type State string

const (
	StateDisconnected State = "disconnected"
	StateConnecting   State = "connecting"
	StateConnected    State = "connected"
	StateReconnecting State = "reconnecting"
	StateFailed       State = "failed"
)

type GameCallback func(game *hexdto.Game)

type StateCallback func(state State)

type gameCallbackEntry struct {
	id       int
	callback GameCallback
}

type stateCallbackEntry struct {
	id       int
	callback StateCallback
}

// Watcher holds one game connection under a fixed session id. It receives
// every state push and reconnects with backoff when the socket drops.
type Watcher struct {
	wsURL       string
	sessionID   string
	subprotocol string

	conn  *websocket.Conn
	connM sync.Mutex

	state  State
	stateM sync.RWMutex

	gameCbs  []gameCallbackEntry
	stateCbs []stateCallbackEntry
	nextCbID int
	cbM      sync.RWMutex

	maxReconnectAttempts int
	pingInterval         time.Duration

	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup

	rootCtx    context.Context
	rootCancel context.CancelFunc
}

func NewWatcher(wsURL, sessionID string, maxReconnectAttempts int) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{
		wsURL:                wsURL,
		sessionID:            sessionID,
		subprotocol:          "chess",
		state:                StateDisconnected,
		maxReconnectAttempts: maxReconnectAttempts,
		pingInterval:         30 * time.Second,
		stopCh:               make(chan struct{}),
		rootCtx:              ctx,
		rootCancel:           cancel,
	}
}

func (w *Watcher) Connect(ctx context.Context) error {
	w.stateM.RLock()
	busy := w.state == StateConnected || w.state == StateConnecting
	w.stateM.RUnlock()
	if busy {
		return nil
	}
	w.setState(StateConnecting)

	dialCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	conn, err := w.dial(dialCtx)
	if err != nil {
		w.setState(StateFailed)
		w.scheduleReconnect()
		return err
	}
	w.start(conn)
	return nil
}

// dial opens the socket and announces the session id.
func (w *Watcher) dial(ctx context.Context) (*websocket.Conn, error) {
	conn, _, err := websocket.Dial(ctx, w.wsURL, &websocket.DialOptions{
		Subprotocols: []string{w.subprotocol},
	})
	if err != nil {
		return nil, err
	}
	if err := conn.Write(ctx, websocket.MessageText, []byte(w.sessionID)); err != nil {
		_ = conn.Close(websocket.StatusInternalError, "hello failed")
		return nil, err
	}
	return conn, nil
}

func (w *Watcher) start(conn *websocket.Conn) {
	w.connM.Lock()
	w.conn = conn
	w.connM.Unlock()
	w.setState(StateConnected)
	w.wg.Add(2)
	go w.listen(conn)
	go w.pingLoop(conn)
}

func (w *Watcher) listen(conn *websocket.Conn) {
	defer w.wg.Done()
	for {
		var game hexdto.Game
		if err := wsjson.Read(w.rootCtx, conn, &game); err != nil {
			if w.isStopping() {
				return
			}
			w.setState(StateDisconnected)
			w.dropConn(conn, websocket.StatusGoingAway, "reconnect")
			if websocket.CloseStatus(err) == websocket.StatusPolicyViolation {
				// The server refused us; retrying would be refused again.
				w.setState(StateFailed)
				return
			}
			w.scheduleReconnect()
			return
		}

		w.cbM.RLock()
		callbacks := make([]gameCallbackEntry, len(w.gameCbs))
		copy(callbacks, w.gameCbs)
		w.cbM.RUnlock()
		for _, entry := range callbacks {
			if entry.callback != nil {
				entry.callback(&game)
			}
		}
	}
}

func (w *Watcher) pingLoop(conn *websocket.Conn) {
	defer w.wg.Done()
	t := time.NewTicker(w.pingInterval)
	defer t.Stop()
	failures := 0
	for {
		select {
		case <-w.stopCh:
			return
		case <-w.rootCtx.Done():
			return
		case <-t.C:
			if w.current() != conn {
				return
			}
			ctx, cancel := context.WithTimeout(w.rootCtx, 3*time.Second)
			err := conn.Ping(ctx)
			cancel()
			if err == nil {
				failures = 0
				continue
			}
			failures++
			if failures >= 2 {
				// listen notices the closed socket and schedules the reconnect.
				w.dropConn(conn, websocket.StatusGoingAway, "ping failure")
				return
			}
		}
	}
}

func (w *Watcher) scheduleReconnect() {
	if w.maxReconnectAttempts <= 0 || w.isStopping() {
		return
	}
	w.setState(StateReconnecting)

	go func() {
		for attempt := 1; attempt <= w.maxReconnectAttempts; attempt++ {
			select {
			case <-w.stopCh:
				return
			case <-time.After(backoffDuration(attempt)):
			}
			dialCtx, cancel := context.WithTimeout(w.rootCtx, 10*time.Second)
			conn, err := w.dial(dialCtx)
			cancel()
			if err != nil {
				continue
			}
			if w.isStopping() {
				_ = conn.Close(websocket.StatusNormalClosure, "close")
				return
			}
			w.start(conn)
			return
		}
		w.setState(StateFailed)
	}()
}

// SendMove submits a move in this session's own frame.
func (w *Watcher) SendMove(ctx context.Context, m hexdto.Move) error {
	conn := w.current()
	if conn == nil {
		return errors.New("watcher not connected")
	}
	return wsjson.Write(ctx, conn, m)
}

func (w *Watcher) OnGame(cb GameCallback) int {
	w.cbM.Lock()
	defer w.cbM.Unlock()
	w.nextCbID++
	w.gameCbs = append(w.gameCbs, gameCallbackEntry{id: w.nextCbID, callback: cb})
	return w.nextCbID
}

func (w *Watcher) RemoveGameCallback(id int) {
	w.cbM.Lock()
	defer w.cbM.Unlock()
	for i, cb := range w.gameCbs {
		if cb.id == id {
			w.gameCbs = append(w.gameCbs[:i], w.gameCbs[i+1:]...)
			break
		}
	}
}

func (w *Watcher) OnStateChange(cb StateCallback) int {
	w.cbM.Lock()
	defer w.cbM.Unlock()
	w.nextCbID++
	w.stateCbs = append(w.stateCbs, stateCallbackEntry{id: w.nextCbID, callback: cb})
	return w.nextCbID
}

func (w *Watcher) State() State {
	w.stateM.RLock()
	defer w.stateM.RUnlock()
	return w.state
}

func (w *Watcher) setState(state State) {
	w.stateM.Lock()
	w.state = state
	w.stateM.Unlock()

	w.cbM.RLock()
	callbacks := make([]stateCallbackEntry, len(w.stateCbs))
	copy(callbacks, w.stateCbs)
	w.cbM.RUnlock()
	for _, entry := range callbacks {
		if entry.callback != nil {
			entry.callback(state)
		}
	}
}

func (w *Watcher) Close(ctx context.Context) error {
	w.stopOnce.Do(func() { close(w.stopCh) })
	if conn := w.current(); conn != nil {
		w.dropConn(conn, websocket.StatusNormalClosure, "close")
	}
	w.rootCancel()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		w.setState(StateDisconnected)
		return nil
	}
}

func (w *Watcher) current() *websocket.Conn {
	w.connM.Lock()
	defer w.connM.Unlock()
	return w.conn
}

func (w *Watcher) dropConn(conn *websocket.Conn, code websocket.StatusCode, reason string) {
	w.connM.Lock()
	if w.conn == conn {
		w.conn = nil
	}
	w.connM.Unlock()
	_ = conn.Close(code, reason)
}

func (w *Watcher) isStopping() bool {
	select {
	case <-w.stopCh:
		return true
	default:
		return false
	}
}

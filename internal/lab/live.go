package lab

import (
	"encoding/json"
	"net/http"
	"net/url"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ziadkadry99/csslab/internal/notify"
	"github.com/ziadkadry99/csslab/internal/session"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: sameOrigin,
}

// sameOrigin accepts connections from pages served by this server and from
// clients that send no Origin header.
func sameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return u.Host == r.Host
}

// liveRequest is the incoming WebSocket message format.
type liveRequest struct {
	Type    string `json:"type"` // "html", "css", "select", "reset" or "complete"
	Content string `json:"content,omitempty"`
	Index   int    `json:"index,omitempty"`
}

// liveResponse is the outgoing WebSocket message format.
type liveResponse struct {
	Type     string            `json:"type"` // "state", "preview", "toast" or "error"
	Document string            `json:"document,omitempty"`
	State    *session.Snapshot `json:"state,omitempty"`
	Toast    *notify.Toast     `json:"toast,omitempty"`
	Content  string            `json:"content,omitempty"`
}

// liveConn serialises writes; gorilla connections allow one writer at a time.
type liveConn struct {
	mu     sync.Mutex
	conn   *websocket.Conn
	logger *zap.Logger
}

func (c *liveConn) send(resp liveResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.WriteJSON(resp); err != nil {
		c.logger.Debug("websocket write failed", zap.String("type", resp.Type), zap.Error(err))
	}
}

func (l *Lab) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		l.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	c := &liveConn{conn: conn, logger: l.logger}
	l.addLive(c)
	defer l.removeLive(c)

	if l.dispatcher != nil {
		unsubscribe := l.dispatcher.Subscribe(func(t notify.Toast) {
			c.send(liveResponse{Type: "toast", Toast: &t})
		})
		defer unsubscribe()
	}

	l.sendState(c)

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				l.logger.Warn("websocket read failed", zap.Error(err))
			}
			return
		}

		var req liveRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			c.send(liveResponse{Type: "error", Content: "invalid message format"})
			continue
		}

		ctx := r.Context()
		switch req.Type {
		case "html":
			c.send(liveResponse{Type: "preview", Document: l.manager.UpdateHTML(ctx, req.Content)})
		case "css":
			c.send(liveResponse{Type: "preview", Document: l.manager.UpdateCSS(ctx, req.Content)})
		case "select":
			if err := l.manager.SelectExercise(ctx, req.Index); err != nil {
				c.send(liveResponse{Type: "error", Content: err.Error()})
				continue
			}
			l.sendState(c)
		case "reset":
			l.manager.ResetCurrent(ctx)
			l.sendState(c)
		case "complete":
			l.manager.MarkCurrentComplete(ctx)
			l.sendState(c)
		default:
			c.send(liveResponse{Type: "error", Content: "unknown message type: " + req.Type})
		}
	}
}

func (l *Lab) addLive(c *liveConn) {
	l.liveMu.Lock()
	defer l.liveMu.Unlock()
	l.live[c] = struct{}{}
}

func (l *Lab) removeLive(c *liveConn) {
	l.liveMu.Lock()
	defer l.liveMu.Unlock()
	delete(l.live, c)
}

// broadcastState pushes the session to every open page, so editors drop
// code that was replaced outside them.
func (l *Lab) broadcastState() {
	l.liveMu.Lock()
	conns := make([]*liveConn, 0, len(l.live))
	for c := range l.live {
		conns = append(conns, c)
	}
	l.liveMu.Unlock()

	for _, c := range conns {
		l.sendState(c)
	}
}

func (l *Lab) sendState(c *liveConn) {
	snap := l.manager.Snapshot()
	c.send(liveResponse{
		Type:     "state",
		State:    &snap,
		Document: l.manager.Preview(),
	})
}

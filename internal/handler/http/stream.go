package http

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/dracma/presale/internal/domain"
)

const (
	streamBuffer = 32
	writeWait    = 10 * time.Second
)

type streamClient struct {
	conn *websocket.Conn
	send chan []byte
}

// StreamHub pushes every flow transition to the connected websocket clients.
// A client that falls behind by more than streamBuffer messages is dropped.
type StreamHub struct {
	upgrader websocket.Upgrader
	logger   *zap.Logger

	mu      sync.Mutex
	clients map[*streamClient]struct{}
}

func NewStreamHub(logger *zap.Logger) *StreamHub {
	return &StreamHub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		logger:  logger.With(zap.String("component", "stream")),
		clients: make(map[*streamClient]struct{}),
	}
}

// Broadcast is subscribed to the event bus
func (h *StreamHub) Broadcast(t domain.Transition) {
	payload, err := json.Marshal(t)
	if err != nil {
		h.logger.Error("encoding transition", zap.Error(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- payload:
		default:
			h.logger.Warn("dropping slow stream client", zap.String("remote_addr", c.conn.RemoteAddr().String()))
			h.removeLocked(c)
		}
	}
}

func (h *StreamHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	c := &streamClient{conn: conn, send: make(chan []byte, streamBuffer)}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	h.logger.Debug("stream client connected", zap.String("remote_addr", conn.RemoteAddr().String()))

	go h.writeLoop(c)

	// the stream is one-way; reading only detects the close
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("stream client closed unexpectedly", zap.Error(err))
			}
			break
		}
	}

	h.mu.Lock()
	h.removeLocked(c)
	h.mu.Unlock()
}

// Close disconnects every client
func (h *StreamHub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		h.removeLocked(c)
	}
}

func (h *StreamHub) clientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *StreamHub) writeLoop(c *streamClient) {
	defer c.conn.Close()
	for msg := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
}

func (h *StreamHub) removeLocked(c *streamClient) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
}

package live

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBufferSize = 256
)

// Messages a viewer may send.
const (
	clientJoinMatch           = "join-match"
	clientLeaveMatch          = "leave-match"
	clientJoinLiveScoreboard  = "join-live-scoreboard"
	clientLeaveLiveScoreboard = "leave-live-scoreboard"
)

type clientMessage struct {
	Event   string          `json:"event"`
	MatchID json.RawMessage `json:"matchId,omitempty"`
}

// matchID accepts the id as a JSON string or number.
func (m clientMessage) matchID() string {
	raw := bytes.TrimSpace(m.MatchID)
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n int64
	if err := json.Unmarshal(raw, &n); err == nil {
		return strconv.FormatInt(n, 10)
	}
	return ""
}

type errorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type Client struct {
	ID   string
	hub  *Hub
	conn *websocket.Conn
	send chan []byte

	// topics is owned by the hub and only touched under hub.mu.
	topics map[string]bool

	mu     sync.Mutex
	closed bool

	logger *slog.Logger
}

func NewClient(hub *Hub, conn *websocket.Conn, logger *slog.Logger) *Client {
	id := uuid.NewString()
	return &Client{
		ID:     id,
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
		topics: make(map[string]bool),
		logger: logger.With("client_id", id),
	}
}

func (c *Client) trySend(message []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- message:
		return true
	default:
		return false
	}
}

func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		close(c.send)
		c.closed = true
	}
}

// ReadPump handles join and leave requests until the connection drops.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg clientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn("ws client closed unexpectedly", "error", err)
			}
			return
		}
		c.handle(msg)
	}
}

func (c *Client) handle(msg clientMessage) {
	switch msg.Event {
	case clientJoinLiveScoreboard:
		c.hub.Join(c, LiveScoreboardTopic)
	case clientLeaveLiveScoreboard:
		c.hub.Leave(c, LiveScoreboardTopic)
	case clientJoinMatch, clientLeaveMatch:
		topic, err := MatchTopicFromRaw(msg.matchID())
		if err != nil {
			c.sendError(err.Error())
			return
		}
		if msg.Event == clientJoinMatch {
			c.hub.Join(c, topic)
		} else {
			c.hub.Leave(c, topic)
		}
	default:
		c.sendError("unknown event " + strconv.Quote(msg.Event))
	}
}

func (c *Client) sendError(message string) {
	data, err := json.Marshal(errorMessage{Type: "error", Message: message})
	if err != nil {
		return
	}
	c.trySend(data)
}

// WritePump writes queued messages one frame each and keeps the connection
// alive with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.logger.Debug("ws write failed", "error", err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

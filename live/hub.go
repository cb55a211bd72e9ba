package live

import (
	"context"
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"
)

type subscription struct {
	client *Client
	topic  string
}

// Hub tracks connected viewers and the topics they follow. Membership changes
// are serialized through Run; broadcasts read the topic table under a read lock.
type Hub struct {
	register    chan *Client
	unregister  chan *Client
	subscribe   chan subscription
	unsubscribe chan subscription
	done        chan struct{}

	clients map[*Client]bool
	topics  map[string]map[*Client]bool
	mu      sync.RWMutex

	logger *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		subscribe:   make(chan subscription),
		unsubscribe: make(chan subscription),
		done:        make(chan struct{}),
		clients:     make(map[*Client]bool),
		topics:      make(map[string]map[*Client]bool),
		logger:      logger,
	}
}

// Run processes membership changes until ctx is cancelled, then disconnects
// every client.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mu.Unlock()
			h.logger.Debug("ws client registered", "client_id", client.ID, "clients", total)

		case client := <-h.unregister:
			h.mu.Lock()
			h.removeLocked(client)
			h.mu.Unlock()

		case sub := <-h.subscribe:
			h.mu.Lock()
			if h.clients[sub.client] {
				if _, ok := h.topics[sub.topic]; !ok {
					h.topics[sub.topic] = make(map[*Client]bool)
				}
				h.topics[sub.topic][sub.client] = true
				sub.client.topics[sub.topic] = true
				h.logger.Debug("ws client joined topic", "client_id", sub.client.ID, "topic", sub.topic, "viewers", len(h.topics[sub.topic]))
			}
			h.mu.Unlock()

		case sub := <-h.unsubscribe:
			h.mu.Lock()
			h.leaveLocked(sub.client, sub.topic)
			h.mu.Unlock()
		}
	}
}

func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
		c.close()
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

func (h *Hub) Join(c *Client, topic string) {
	select {
	case h.subscribe <- subscription{client: c, topic: topic}:
	case <-h.done:
	}
}

func (h *Hub) Leave(c *Client, topic string) {
	select {
	case h.unsubscribe <- subscription{client: c, topic: topic}:
	case <-h.done:
	}
}

// Broadcast queues message for every client following topic and returns how
// many clients accepted it. Slow clients with a full buffer are skipped.
func (h *Hub) Broadcast(topic string, message []byte) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for client := range h.topics[topic] {
		if client.trySend(message) {
			delivered++
		} else {
			h.logger.Warn("ws client buffer full, message dropped", "client_id", client.ID, "topic", topic)
		}
	}
	return delivered
}

// Viewers returns the number of clients following topic.
func (h *Hub) Viewers(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[topic])
}

func (h *Hub) leaveLocked(c *Client, topic string) {
	viewers, ok := h.topics[topic]
	if !ok {
		return
	}
	delete(viewers, c)
	delete(c.topics, topic)
	if len(viewers) == 0 {
		delete(h.topics, topic)
	}
}

func (h *Hub) removeLocked(c *Client) {
	if !h.clients[c] {
		return
	}
	for topic := range c.topics {
		h.leaveLocked(c, topic)
	}
	delete(h.clients, c)
	c.close()
	h.logger.Debug("ws client unregistered", "client_id", c.ID, "clients", len(h.clients))
}

func (h *Hub) shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	close(h.done)
	for c := range h.clients {
		h.removeLocked(c)
	}
	h.logger.Info("ws hub stopped")
}

// Attach registers a freshly upgraded connection, joins it to the given topics
// and starts its pumps.
func (h *Hub) Attach(conn *websocket.Conn, topics ...string) *Client {
	client := NewClient(h, conn, h.logger)
	h.Register(client)
	for _, topic := range topics {
		h.Join(client, topic)
	}

	go client.WritePump()
	go client.ReadPump()
	return client
}

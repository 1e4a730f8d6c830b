package connection

import (
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// sendBufferSize bounds the per-client outbound queue. A client that stops
// reading loses frames instead of blocking the game.
const sendBufferSize = 256

// Client wraps one websocket connection with a buffered outbound queue. All
// writes go through Send and a single write pump, so frames never interleave.
type Client struct {
	ID   string
	Conn *websocket.Conn

	mu     sync.Mutex
	send   chan []byte
	closed bool
}

// NewClient wraps an accepted websocket connection.
func NewClient(conn *websocket.Conn) *Client {
	return &Client{
		ID:   uuid.NewString(),
		Conn: conn,
		send: make(chan []byte, sendBufferSize),
	}
}

// Send enqueues a frame for delivery. It reports false when the client is
// closed or its queue is full; it never blocks.
func (c *Client) Send(message []byte) bool {
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

// WritePump drains the outbound queue onto the socket until the client is
// closed or the socket fails. Run it in its own goroutine.
func (c *Client) WritePump() {
	defer c.Conn.Close()

	for message := range c.send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			log.Printf("client %s: write failed: %v", c.ID, err)
			return
		}
	}
	c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// Close shuts the outbound queue and the socket. It is safe to call more than
// once and concurrently with Send.
func (c *Client) Close() {
	c.mu.Lock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
	c.mu.Unlock()
	if c.Conn != nil {
		c.Conn.Close()
	}
}

// Registry tracks every live client of one session so the server can close
// them all on shutdown.
type Registry struct {
	mu      sync.Mutex
	clients map[string]*Client
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{clients: make(map[string]*Client)}
}

// Register adds a client.
func (r *Registry) Register(client *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[client.ID] = client
}

// Unregister removes a client.
func (r *Registry) Unregister(client *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.clients, client.ID)
}

// Count returns the number of live clients.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.clients)
}

// CloseAll closes every registered client.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	clients := make([]*Client, 0, len(r.clients))
	for _, client := range r.clients {
		clients = append(clients, client)
	}
	r.clients = make(map[string]*Client)
	r.mu.Unlock()

	for _, client := range clients {
		client.Close()
	}
}

// Broadcast fans frames out to subscribed clients in subscription order.
// Delivery is best effort: a full or closed listener is dropped from the set
// without affecting the others.
type Broadcast struct {
	mu        sync.Mutex
	listeners []*Client
}

// NewBroadcast creates a broadcast with no listeners.
func NewBroadcast() *Broadcast {
	return &Broadcast{}
}

// AddListener subscribes a client. Subscribing twice is a no-op.
func (b *Broadcast) AddListener(client *Client) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, listener := range b.listeners {
		if listener.ID == client.ID {
			return
		}
	}
	b.listeners = append(b.listeners, client)
}

// RemoveListener unsubscribes a client.
func (b *Broadcast) RemoveListener(client *Client) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, listener := range b.listeners {
		if listener.ID == client.ID {
			b.listeners = append(b.listeners[:i], b.listeners[i+1:]...)
			return
		}
	}
}

// ListenerCount returns the number of subscribed clients.
func (b *Broadcast) ListenerCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.listeners)
}

// Send delivers the frame to every listener. Listeners that cannot accept the
// frame are dropped.
func (b *Broadcast) Send(message []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()

	alive := b.listeners[:0]
	for _, listener := range b.listeners {
		if listener.Send(message) {
			alive = append(alive, listener)
		} else {
			log.Printf("broadcast: dropping listener %s", listener.ID)
		}
	}
	b.listeners = alive
}

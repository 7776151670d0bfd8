// Package websocket pushes table change events to connected console
// sessions. The feed replaces the hosted realtime subscriptions the console
// previously relied on.
package websocket

import (
	"encoding/json"
	"sync"

	"github.com/smartcowork/cowork-gin/internal/metrics"
)

// ChangeEvent is the wire payload of one change notification. It names the
// table and action only; consumers reload the affected collection.
type ChangeEvent struct {
	Table  string `json:"table"`
	Action string `json:"action"`
}

// Hub tracks connected sessions and fans change events out to all of them.
// WebSocket sessions register as Clients; SSE sessions attach as plain
// subscriber channels.
type Hub struct {
	clients map[*Client]bool

	subscribers map[chan []byte]bool

	Broadcast chan []byte

	Register chan *Client

	Unregister chan *Client

	mu sync.RWMutex
}

// NewHub creates an empty hub. Call Run in its own goroutine.
func NewHub() *Hub {
	return &Hub{
		clients:     make(map[*Client]bool),
		subscribers: make(map[chan []byte]bool),
		Broadcast:   make(chan []byte),
		Register:    make(chan *Client),
		Unregister:  make(chan *Client),
	}
}

// Run owns the clients map. Register, unregister and broadcast all pass
// through here.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			h.clients[client] = true
			metrics.SetWebsocketSessions(len(h.clients))
			h.mu.Unlock()

		case client := <-h.Unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			metrics.SetWebsocketSessions(len(h.clients))
			h.mu.Unlock()

		case message := <-h.Broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					// Slow consumer, drop the session.
					close(client.Send)
					delete(h.clients, client)
				}
			}
			for sub := range h.subscribers {
				select {
				case sub <- message:
				default:
					// Slow subscriber; the event is dropped, not the
					// subscription, since SSE consumers reload on reconnect.
				}
			}
			metrics.SetWebsocketSessions(len(h.clients))
			h.mu.Unlock()
		}
	}
}

// NotifyChange implements service.ChangeNotifier. Marshal failure cannot
// happen for the fixed-shape event, so the error is discarded.
func (h *Hub) NotifyChange(table, action string) {
	payload, err := json.Marshal(ChangeEvent{Table: table, Action: action})
	if err != nil {
		return
	}
	h.Broadcast <- payload
}

// Subscribe attaches a plain channel to the broadcast feed.
func (h *Hub) Subscribe() chan []byte {
	ch := make(chan []byte, 256)
	h.mu.Lock()
	h.subscribers[ch] = true
	h.mu.Unlock()
	return ch
}

// Unsubscribe detaches and closes a subscriber channel.
func (h *Hub) Unsubscribe(ch chan []byte) {
	h.mu.Lock()
	if _, ok := h.subscribers[ch]; ok {
		delete(h.subscribers, ch)
		close(ch)
	}
	h.mu.Unlock()
}

// ClientCount reports the number of connected sessions.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

var Upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type CountMessage struct {
	Type  string `json:"type"`
	Count int64  `json:"count"`
	Label string `json:"label"`
}

// Hub fans attendee count updates out to every connected page.
type Hub struct {
	clients    map[string]*Client
	mu         sync.RWMutex
	label      func(int64) string
	last       []byte
	Register   chan *Client
	Unregister chan *Client
	done       chan struct{}
}

func NewHub(label func(int64) string) *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		label:      label,
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.registerClient(client)
		case client := <-h.Unregister:
			h.unregisterClient(client)
		case <-h.done:
			return
		}
	}
}

func (h *Hub) Stop() {
	close(h.done)
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client.ID] = client
	if h.last != nil {
		client.Queue(h.last)
	}
	log.Printf("Subscriber %s registered", client.ID)
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client.ID]; ok {
		delete(h.clients, client.ID)
		close(client.send)
		log.Printf("Subscriber %s unregistered", client.ID)
	}
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) Encode(count int64) []byte {
	msg, err := json.Marshal(CountMessage{Type: "count", Count: count, Label: h.label(count)})
	if err != nil {
		log.Printf("ERROR: failed to encode count message: %v", err)
		return nil
	}
	return msg
}

// PublishCount broadcasts count and keeps it for subscribers that register
// later.
func (h *Hub) PublishCount(count int64) {
	msg := h.Encode(count)
	if msg == nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = msg
	for id, client := range h.clients {
		select {
		case client.send <- msg:
		default:
			log.Printf("WARN: Subscriber %s send buffer is full. Dropping message.", id)
		}
	}
}

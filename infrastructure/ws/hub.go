package ws

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Hub keys connected clients by user id: one room per user. The relay is a
// delivery optimization only; the durable record is always written through
// the message service.
type Hub struct {
	clients            map[string]*UserClient
	broadcast          chan []byte
	Register           chan *UserClient
	Unregister         chan *UserClient
	mu                 sync.RWMutex
	OnClientUnregister func(client *UserClient) error
}

func NewHub() IHub {
	return &Hub{
		clients:    make(map[string]*UserClient),
		broadcast:  make(chan []byte, 256),
		Register:   make(chan *UserClient),
		Unregister: make(chan *UserClient),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			h.clients[client.UserId] = client
			h.mu.Unlock()
			logrus.WithField("userId", client.UserId).Info("ws: client connected")

		case client := <-h.Unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.UserId]; ok {
				delete(h.clients, client.UserId)
				close(client.send)
				logrus.WithField("userId", client.UserId).Info("ws: client disconnected")
			}
			h.mu.Unlock()

			if h.OnClientUnregister != nil {
				if err := h.OnClientUnregister(client); err != nil {
					logrus.WithError(err).Warn("ws: unregister callback failed")
				}
			}

		case message := <-h.broadcast:
			h.mu.RLock()
			for userId, client := range h.clients {
				select {
				case client.send <- message:
				default:
					close(client.send)
					delete(h.clients, userId)
				}
			}
			h.mu.RUnlock()
		}
	}
}

func (h *Hub) Broadcast(message []byte) {
	h.broadcast <- message
}

// SendToClient delivers to the user's room if connected; a full or absent
// client is dropped silently, the recipient recovers via the next fetch.
func (h *Hub) SendToClient(clientID string, message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	client, exists := h.clients[clientID]
	if exists {
		select {
		case client.send <- message:
		default:
			logrus.WithField("userId", clientID).Warn("ws: send buffer full, dropping")
		}
	}
}

func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) RegisterClient(client *UserClient) {
	h.Register <- client
}

func (h *Hub) UnregisterClient(client *UserClient) {
	h.Unregister <- client
}

func (h *Hub) SetOnClientUnregister(callback func(client *UserClient) error) {
	h.OnClientUnregister = callback
}

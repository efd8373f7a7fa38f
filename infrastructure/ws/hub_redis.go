package ws

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// RedisHub extends the in-memory hub across server instances: local
// connections stay in-process, deliveries to users connected elsewhere go
// through Redis pub/sub on a per-user channel.
type RedisHub struct {
	clients map[string]*UserClient
	mu      sync.RWMutex

	redisClient *redis.Client
	pubsub      *redis.PubSub
	serverID    string

	Register   chan *UserClient
	Unregister chan *UserClient
	broadcast  chan []byte

	OnClientUnregister func(client *UserClient) error
}

type RedisMessage struct {
	FromServerID string `json:"fromServerId"`
	ToUserID     string `json:"toUserId"`
	Payload      []byte `json:"payload"`
}

func NewRedisHub(redisAddr string, serverID string) IHub {
	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})

	hub := &RedisHub{
		clients:     make(map[string]*UserClient),
		redisClient: rdb,
		serverID:    serverID,
		Register:    make(chan *UserClient),
		Unregister:  make(chan *UserClient),
		broadcast:   make(chan []byte, 256),
	}

	hub.pubsub = rdb.PSubscribe(context.Background(), "messages:*")

	return hub
}

func (h *RedisHub) Run() {
	go h.subscribeRedis()

	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			h.clients[client.UserId] = client
			h.mu.Unlock()

			// Announce which server holds this user's connection.
			h.redisClient.Set(
				context.Background(),
				"user:"+client.UserId+":server",
				h.serverID,
				0,
			)

			logrus.WithFields(logrus.Fields{"server": h.serverID, "userId": client.UserId}).Info("ws: client connected")

		case client := <-h.Unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.UserId]; ok {
				delete(h.clients, client.UserId)
				close(client.send)

				h.redisClient.Del(
					context.Background(),
					"user:"+client.UserId+":server",
				)

				logrus.WithFields(logrus.Fields{"server": h.serverID, "userId": client.UserId}).Info("ws: client disconnected")
			}
			h.mu.Unlock()

			if h.OnClientUnregister != nil {
				if err := h.OnClientUnregister(client); err != nil {
					logrus.WithError(err).Warn("ws: unregister callback failed")
				}
			}

		case message := <-h.broadcast:
			h.broadcastLocal(message)
		}
	}
}

func (h *RedisHub) subscribeRedis() {
	ch := h.pubsub.Channel()

	logrus.WithField("server", h.serverID).Info("ws: redis subscriber started")

	for msg := range ch {
		var redisMsg RedisMessage
		if err := json.Unmarshal([]byte(msg.Payload), &redisMsg); err != nil {
			logrus.WithError(err).Warn("ws: bad redis payload")
			continue
		}

		// Skip our own publishes.
		if redisMsg.FromServerID == h.serverID {
			continue
		}

		h.mu.RLock()
		_, existsLocally := h.clients[redisMsg.ToUserID]
		h.mu.RUnlock()
		if !existsLocally {
			continue
		}

		h.SendToClient(redisMsg.ToUserID, redisMsg.Payload)
	}
}

// SendToClient tries the local room first, then publishes for whichever
// server holds the user's connection.
func (h *RedisHub) SendToClient(userID string, message []byte) {
	h.mu.RLock()
	client, existsLocally := h.clients[userID]
	h.mu.RUnlock()

	if existsLocally {
		select {
		case client.send <- message:
		default:
			logrus.WithFields(logrus.Fields{"server": h.serverID, "userId": userID}).Warn("ws: send buffer full, dropping")
		}
	} else {
		h.publishToRedis(userID, message)
	}
}

func (h *RedisHub) publishToRedis(userID string, message []byte) {
	ctx := context.Background()

	redisMsg := RedisMessage{
		FromServerID: h.serverID,
		ToUserID:     userID,
		Payload:      message,
	}

	msgBytes, err := json.Marshal(redisMsg)
	if err != nil {
		logrus.WithError(err).Warn("ws: marshal redis message failed")
		return
	}

	if err := h.redisClient.Publish(ctx, "messages:"+userID, msgBytes).Err(); err != nil {
		logrus.WithError(err).Warn("ws: redis publish failed")
	}
}

func (h *RedisHub) broadcastLocal(message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for userId, client := range h.clients {
		select {
		case client.send <- message:
		default:
			logrus.WithField("userId", userId).Warn("ws: send buffer full, dropping")
		}
	}
}

func (h *RedisHub) Broadcast(message []byte) {
	h.broadcast <- message
}

func (h *RedisHub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *RedisHub) RegisterClient(client *UserClient) {
	h.Register <- client
}

func (h *RedisHub) UnregisterClient(client *UserClient) {
	h.Unregister <- client
}

func (h *RedisHub) SetOnClientUnregister(callback func(client *UserClient) error) {
	h.OnClientUnregister = callback
}

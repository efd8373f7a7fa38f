package websocket

import (
	"context"
	"encoding/json"
	"net/http"

	"kavun/infrastructure/ws"
	"kavun/internal/usecase"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WebsocketHandler struct {
	hub            ws.IHub
	authUc         usecase.AuthUsecase
	userUc         usecase.UserUsecase
	conversationUc usecase.ConversationUsecase
}

func NewWebsocketHandler(hub ws.IHub, authUc usecase.AuthUsecase, userUc usecase.UserUsecase, conversationUc usecase.ConversationUsecase) *WebsocketHandler {
	return &WebsocketHandler{
		hub:            hub,
		authUc:         authUc,
		userUc:         userUc,
		conversationUc: conversationUc,
	}
}

// HandleWebSocket upgrades an authenticated connection and joins the
// client to the room keyed by its own user id. The token travels as a
// query parameter because browsers can't set headers on websocket dials.
func (h *WebsocketHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "token required", http.StatusUnauthorized)
		return
	}

	claims, err := h.authUc.Identify(ctx, token)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logrus.WithError(err).Warn("ws: upgrade failed")
		return
	}

	if err := h.userUc.SetOnline(ctx, claims.UserId, true); err != nil {
		logrus.WithError(err).WithField("userId", claims.UserId).Warn("ws: set online failed")
	}

	client := ws.NewClient(claims.UserId, h.hub, conn)
	h.hub.RegisterClient(client)

	go client.WritePump()
	client.ReadPump(func(data []byte) {
		// The read pump outlives the upgrade request; detach from its
		// cancellation.
		h.handleEvent(context.Background(), client, data)
	})
}

func (h *WebsocketHandler) handleEvent(ctx context.Context, client *ws.UserClient, data []byte) {
	var envelope Envelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		logrus.WithError(err).WithField("userId", client.UserId).Warn("ws: bad frame")
		return
	}

	switch envelope.Event {
	case EventSendMessage:
		h.handleSendMessage(ctx, client, envelope.Data)
	case EventTyping:
		h.handleTyping(client, envelope.Data)
	default:
		logrus.WithField("event", envelope.Event).Debug("ws: unknown event")
	}
}

// handleSendMessage writes the durable record first, then pushes the live
// copy. A relay failure after the write degrades to polling delivery.
func (h *WebsocketHandler) handleSendMessage(ctx context.Context, client *ws.UserClient, data json.RawMessage) {
	var payload SendMessagePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		logrus.WithError(err).Warn("ws: bad send-message payload")
		return
	}

	message, err := h.conversationUc.Send(ctx, client.UserId, payload.Receiver, payload.Content)
	if err != nil {
		logrus.WithError(err).WithField("userId", client.UserId).Warn("ws: send message failed")
		return
	}

	frame, err := EncodeReceiveMessage(message.Sender, message.Receiver, message.Content)
	if err != nil {
		logrus.WithError(err).Warn("ws: encode receive-message failed")
		return
	}

	h.hub.SendToClient(message.Receiver, frame)
}

func (h *WebsocketHandler) handleTyping(client *ws.UserClient, data json.RawMessage) {
	var payload TypingPayload
	if err := json.Unmarshal(data, &payload); err != nil || payload.Receiver == "" {
		return
	}

	frame, err := EncodeTyping(client.UserId, payload.Receiver)
	if err != nil {
		return
	}

	h.hub.SendToClient(payload.Receiver, frame)
}

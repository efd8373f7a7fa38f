package http

import (
	"encoding/json"
	"net/http"

	"kavun/infrastructure/ws"
	"kavun/internal/delivery/websocket"
	"kavun/internal/usecase"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

type HttpHandler struct {
	conversationUc usecase.ConversationUsecase
	userUc         usecase.UserUsecase
	hub            ws.IHub
}

func NewHttpHandler(conversationUc usecase.ConversationUsecase, userUc usecase.UserUsecase, hub ws.IHub) *HttpHandler {
	return &HttpHandler{
		conversationUc: conversationUc,
		userUc:         userUc,
		hub:            hub,
	}
}

// GET /api/conversations
func (h *HttpHandler) ListConversations(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "oturum açmanız gerekiyor")
		return
	}

	summaries, err := h.conversationUc.List(r.Context(), claims.UserId)
	if err != nil {
		writeUsecaseError(w, err, "list conversations failed")
		return
	}

	writeJSON(w, http.StatusOK, summaries)
}

// POST /api/conversations
func (h *HttpHandler) CreateConversation(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "oturum açmanız gerekiyor")
		return
	}

	var req struct {
		Participants []string `json:"participants"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "istek verisi çözümlenemedi")
		return
	}

	conversation, created, err := h.conversationUc.Create(r.Context(), claims.UserId, req.Participants)
	if err != nil {
		writeUsecaseError(w, err, "create conversation failed")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, conversation)
}

// GET /api/messages?receiverId=ID
func (h *HttpHandler) GetMessages(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "oturum açmanız gerekiyor")
		return
	}

	receiverId := r.URL.Query().Get("receiverId")
	if receiverId == "" {
		writeError(w, http.StatusBadRequest, "receiverId parametresi gerekli")
		return
	}

	history, err := h.conversationUc.History(r.Context(), claims.UserId, receiverId)
	if err != nil {
		writeUsecaseError(w, err, "get messages failed")
		return
	}

	writeJSON(w, http.StatusOK, history)
}

// POST /api/messages
func (h *HttpHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "oturum açmanız gerekiyor")
		return
	}

	var req struct {
		Receiver string `json:"receiver"`
		Content  string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "istek verisi çözümlenemedi")
		return
	}

	message, err := h.conversationUc.Send(r.Context(), claims.UserId, req.Receiver, req.Content)
	if err != nil {
		writeUsecaseError(w, err, "send message failed")
		return
	}

	// Live push is best effort; the durable record is already written.
	if payload, err := websocket.EncodeReceiveMessage(message.Sender, message.Receiver, message.Content); err == nil {
		h.hub.SendToClient(message.Receiver, payload)
	} else {
		logrus.WithError(err).Warn("encode relay event failed")
	}

	writeJSON(w, http.StatusCreated, message)
}

// PUT /api/messages
func (h *HttpHandler) MarkMessageRead(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "oturum açmanız gerekiyor")
		return
	}

	var req struct {
		Id string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Id == "" {
		writeError(w, http.StatusBadRequest, "id alanı gerekli")
		return
	}

	if err := h.conversationUc.MarkRead(r.Context(), claims.UserId, req.Id); err != nil {
		writeUsecaseError(w, err, "mark message failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// GET /api/messages/unread
func (h *HttpHandler) UnreadMessages(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "oturum açmanız gerekiyor")
		return
	}

	count, err := h.conversationUc.UnreadTotal(r.Context(), claims.UserId)
	if err != nil {
		writeUsecaseError(w, err, "unread messages failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"count": count})
}

// GET /api/users/{id}
func (h *HttpHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	if _, ok := claimsFromContext(r.Context()); !ok {
		writeError(w, http.StatusUnauthorized, "oturum açmanız gerekiyor")
		return
	}

	userId := chi.URLParam(r, "id")

	user, err := h.userUc.Get(r.Context(), userId)
	if err != nil {
		writeUsecaseError(w, err, "get user failed")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

package http

import (
	"encoding/json"
	"net/http"

	"kavun/internal/entity"
	"kavun/internal/usecase"
)

type NotificationHandler struct {
	notificationUc usecase.NotificationUsecase
}

func NewNotificationHandler(notificationUc usecase.NotificationUsecase) *NotificationHandler {
	return &NotificationHandler{
		notificationUc: notificationUc,
	}
}

// GET /api/notifications
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "oturum açmanız gerekiyor")
		return
	}

	notifications, err := h.notificationUc.List(r.Context(), claims.UserId)
	if err != nil {
		writeUsecaseError(w, err, "list notifications failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"notifications": notifications})
}

// POST /api/notifications
//
// Used by server-side business events (lesson lifecycle, payments); the
// created record always belongs to the userId named in the body.
func (h *NotificationHandler) Create(w http.ResponseWriter, r *http.Request) {
	if _, ok := claimsFromContext(r.Context()); !ok {
		writeError(w, http.StatusUnauthorized, "oturum açmanız gerekiyor")
		return
	}

	var req struct {
		UserId    string `json:"userId"`
		Type      string `json:"type"`
		Title     string `json:"title"`
		Message   string `json:"message"`
		ActionUrl string `json:"actionUrl"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "istek verisi çözümlenemedi")
		return
	}

	notification, err := h.notificationUc.Create(r.Context(), entity.Notification{
		UserId:    req.UserId,
		Type:      req.Type,
		Title:     req.Title,
		Message:   req.Message,
		ActionUrl: req.ActionUrl,
	})
	if err != nil {
		writeUsecaseError(w, err, "create notification failed")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"notification": notification})
}

// PUT /api/notifications
func (h *NotificationHandler) MarkOne(w http.ResponseWriter, r *http.Request) {
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

	if err := h.notificationUc.MarkOne(r.Context(), claims.UserId, req.Id); err != nil {
		writeUsecaseError(w, err, "mark notification failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// PUT /api/notifications/read-all
func (h *NotificationHandler) MarkAll(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "oturum açmanız gerekiyor")
		return
	}

	if err := h.notificationUc.MarkAll(r.Context(), claims.UserId); err != nil {
		writeUsecaseError(w, err, "mark all notifications failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// DELETE /api/notifications
func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.notificationUc.Delete(r.Context(), claims.UserId, req.Id); err != nil {
		writeUsecaseError(w, err, "delete notification failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// GET /api/notifications/unread
func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "oturum açmanız gerekiyor")
		return
	}

	count, err := h.notificationUc.UnreadCount(r.Context(), claims.UserId)
	if err != nil {
		writeUsecaseError(w, err, "unread notifications failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"count": count})
}

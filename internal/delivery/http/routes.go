package http

import (
	"net/http"

	wsDelivery "kavun/internal/delivery/websocket"

	"github.com/go-chi/chi/v5"
)

func MapHttpRoutes(r *chi.Mux, httpHandler *HttpHandler, notificationHandler *NotificationHandler, websocketHandler *wsDelivery.WebsocketHandler, authHandler *AuthHandler, authMiddleware *AuthMiddleware) {
	r.Handle("/ws", http.HandlerFunc(websocketHandler.HandleWebSocket))

	r.Route("/api", func(r chi.Router) {
		// Auth routes (public)
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", http.HandlerFunc(authHandler.Register))
			r.Post("/login", http.HandlerFunc(authHandler.Login))
			r.Post("/refresh", http.HandlerFunc(authHandler.RefreshToken))
			r.Post("/logout", http.HandlerFunc(authHandler.Logout))

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.Authenticate)
				r.Post("/logout-all", http.HandlerFunc(authHandler.LogoutAllDevices))
			})
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Route("/conversations", func(r chi.Router) {
				r.Get("/", http.HandlerFunc(httpHandler.ListConversations))
				r.Post("/", http.HandlerFunc(httpHandler.CreateConversation))
			})

			r.Route("/messages", func(r chi.Router) {
				r.Get("/", http.HandlerFunc(httpHandler.GetMessages))
				r.Post("/", http.HandlerFunc(httpHandler.SendMessage))
				r.Put("/", http.HandlerFunc(httpHandler.MarkMessageRead))
				r.Get("/unread", http.HandlerFunc(httpHandler.UnreadMessages))
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", http.HandlerFunc(notificationHandler.List))
				r.Post("/", http.HandlerFunc(notificationHandler.Create))
				r.Put("/", http.HandlerFunc(notificationHandler.MarkOne))
				r.Put("/read-all", http.HandlerFunc(notificationHandler.MarkAll))
				r.Delete("/", http.HandlerFunc(notificationHandler.Delete))
				r.Get("/unread", http.HandlerFunc(notificationHandler.UnreadCount))
			})

			r.Get("/users/{id}", http.HandlerFunc(httpHandler.GetUser))
		})
	})
}

package routes

import (
	"github.com/go-chi/chi/v5"
	"github.com/tradewinds-bvi/tradewinds-backend/internal/handlers"
)

func SetupRoutes(r *chi.Mux) {
	// Auth routes
	r.Post("/auth/signup", handlers.Signup)
	r.Post("/auth/signin", handlers.Signin)
	r.Post("/auth/signout", handlers.Signout)
	r.Get("/auth/me", handlers.GetMe)

	// Profile routes
	r.Get("/profile", handlers.GetProfile)
	r.Put("/profile", handlers.UpdateProfile)
	r.Post("/profile/avatar", handlers.UploadAvatar)

	// Check-in lifecycle
	r.Post("/connect/checkins", handlers.CreateCheckin)
	r.Get("/connect/checkins/me", handlers.GetMyCheckin)
	r.Delete("/connect/checkins", handlers.Checkout)
	r.Post("/connect/checkins/verify", handlers.VerifyCheckin)
	r.Get("/connect/checkins/activity", handlers.GetCheckinActivity)

	// Presence map
	r.Get("/connect/presence", handlers.GetPresence)
	r.Post("/connect/presence/offline", handlers.GoOffline)

	// Conversations and messages
	r.Get("/connect/conversations", handlers.ListConversations)
	r.Post("/connect/conversations", handlers.CreateConversation)
	r.Get("/connect/conversations/{id}/messages", handlers.ListMessages)
	r.Post("/connect/conversations/{id}/messages", handlers.SendMessage)
	r.Get("/connect/unread", handlers.GetUnreadCount)

	// Block list
	r.Get("/connect/blocked", handlers.ListBlocked)
	r.Post("/connect/blocked", handlers.BlockUser)
	r.Delete("/connect/blocked", handlers.UnblockUser)

	// Web push
	r.Get("/push/vapid-key", handlers.GetVAPIDKey)
	r.Post("/push/subscriptions", handlers.SaveSubscription)
	r.Delete("/push/subscriptions", handlers.DeleteSubscription)
	r.Post("/push/send", handlers.SendPush)

	// WebSocket endpoint for realtime conversation events
	r.Get("/ws/connect", handlers.ConnectWebSocket)
}

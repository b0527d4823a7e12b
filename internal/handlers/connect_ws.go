package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/tradewinds-bvi/tradewinds-backend/internal/services"
)

var connectUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS for WebSocket is handled at the HTTP layer already.
		return true
	},
}

type connectClientMessage struct {
	Type string `json:"type"` // "ping"
}

// ConnectWebSocket streams conversation events to the signed-in user.
// Authentication uses the session token (Authorization: Bearer <token>), with
// a ?token= query fallback for browser WebSocket clients.
func ConnectWebSocket(w http.ResponseWriter, r *http.Request) {
	token := extractBearerToken(r.Header.Get("Authorization"))
	if token == "" {
		token = r.URL.Query().Get("token")
		if token == "" {
			respondError(w, http.StatusUnauthorized, "Missing session token")
			return
		}
	}

	userID, ok, err := services.ValidateSession(token)
	if err != nil || !ok {
		respondError(w, http.StatusUnauthorized, "Invalid session token")
		return
	}

	conn, err := connectUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	services.RegisterConnectConn(userID, conn)
	defer services.UnregisterConnectConn(userID, conn)

	_ = services.TouchLastSeen(userID)

	// Reader loop. The server pushes events; the client only sends pings.
	conn.SetReadLimit(64 * 1024)
	_ = conn.SetReadDeadline(time.Now().Add(90 * time.Second))
	conn.SetPongHandler(func(appData string) error {
		_ = conn.SetReadDeadline(time.Now().Add(90 * time.Second))
		return nil
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var msg connectClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}

		switch msg.Type {
		case "ping":
			_ = conn.SetReadDeadline(time.Now().Add(90 * time.Second))
			_ = services.TouchLastSeen(userID)
		default:
			// Ignore unknown types.
		}
	}
}

package services

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tradewinds-bvi/tradewinds-backend/internal/database"
)

// Event types delivered over the connect WebSocket.
const (
	EventTypeNewMessage = "new_message"
)

// ConnectEvent is the payload broadcast over Redis and WebSocket when
// something happens in one of the recipient's conversations.
type ConnectEvent struct {
	Type           string    `json:"type"`
	ConversationID string    `json:"conversationId,omitempty"`
	MessageID      string    `json:"messageId,omitempty"`
	SenderID       string    `json:"senderId,omitempty"`
	SenderName     string    `json:"senderName,omitempty"`
	Content        string    `json:"content,omitempty"`
	Timestamp      time.Time `json:"timestamp,omitempty"`
}

// ConnectConn is the minimal interface the WebSocket implementation must satisfy.
type ConnectConn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// connectHub is a per-instance registry of user connections. Connections are
// keyed by user; a reconnect replaces the previous entry.
type connectHub struct {
	mu          sync.RWMutex
	connections map[uuid.UUID]ConnectConn
}

var (
	hub          = &connectHub{connections: make(map[uuid.UUID]ConnectConn)}
	redisStarted sync.Once
)

const connectChannelPrefix = "connect:user:"

// RegisterConnectConn registers or replaces a user's WebSocket connection.
func RegisterConnectConn(userID uuid.UUID, conn ConnectConn) {
	hub.mu.Lock()
	hub.connections[userID] = conn
	hub.mu.Unlock()
}

// UnregisterConnectConn removes a user's connection if it is still the
// registered one.
func UnregisterConnectConn(userID uuid.UUID, conn ConnectConn) {
	hub.mu.Lock()
	if hub.connections[userID] == conn {
		delete(hub.connections, userID)
	}
	hub.mu.Unlock()
}

// deliverLocal writes an event to the recipient's local connection, if any.
func deliverLocal(userID uuid.UUID, event ConnectEvent) {
	hub.mu.RLock()
	conn, ok := hub.connections[userID]
	hub.mu.RUnlock()
	if !ok {
		return
	}

	// Non-blocking best-effort send.
	go func(c ConnectConn) {
		if err := c.WriteJSON(event); err != nil {
			log.Printf("error writing connect event to websocket: %v", err)
		}
	}(conn)
}

// PublishMessageEvent publishes an event onto the recipient's Redis channel.
// Best effort; failures are logged and swallowed.
func PublishMessageEvent(recipient uuid.UUID, event ConnectEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("failed to marshal connect event: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	channel := connectChannelPrefix + recipient.String()
	if err := database.RedisClient.Publish(ctx, channel, data).Err(); err != nil {
		log.Printf("failed to publish connect event: %v", err)
	}
}

// StartRedisConnectSubscriber ensures a single shared Redis listener per instance.
func StartRedisConnectSubscriber(ctx context.Context) {
	redisStarted.Do(func() {
		go runRedisSubscriber(ctx)
	})
}

func runRedisSubscriber(ctx context.Context) {
	client := database.RedisClient
	if client == nil {
		log.Println("Redis client not initialized; connect subscriber not started")
		return
	}

	backoff := time.Second

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		func() {
			pubsub := client.PSubscribe(ctx, connectChannelPrefix+"*")
			defer pubsub.Close()

			log.Println("✅ Connect Redis subscriber started (pattern: connect:user:*)")

			for {
				msg, err := pubsub.ReceiveMessage(ctx)
				if err != nil {
					log.Printf("Redis subscriber error: %v", err)
					time.Sleep(backoff)
					backoff *= 2
					if backoff > 30*time.Second {
						backoff = 30 * time.Second
					}
					return
				}

				backoff = time.Second

				userID, err := uuid.Parse(strings.TrimPrefix(msg.Channel, connectChannelPrefix))
				if err != nil {
					continue
				}

				var event ConnectEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					log.Printf("failed to unmarshal connect event: %v", err)
					continue
				}

				deliverLocal(userID, event)
			}
		}()
	}
}

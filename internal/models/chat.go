package models

import (
	"time"

	"github.com/google/uuid"
)

// MaxMessageLength is the longest message content accepted, in characters.
const MaxMessageLength = 2000

// Conversation is the single row for an unordered pair of users.
// User1ID is always the lexicographically smaller UUID.
type Conversation struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	User1ID   uuid.UUID `json:"user1Id"`
	User2ID   uuid.UUID `json:"user2Id"`
}

// ChatMessage is a direct message. ReadAt transitions once from nil to a
// timestamp when the recipient views the conversation; it never reverts.
type ChatMessage struct {
	ID             uuid.UUID  `json:"id"`
	CreatedAt      time.Time  `json:"createdAt"`
	ConversationID uuid.UUID  `json:"conversationId"`
	SenderID       uuid.UUID  `json:"senderId"`
	Content        string     `json:"content"`
	ReadAt         *time.Time `json:"readAt,omitempty"`
}

// ConversationSummary is the inbox view of one conversation.
type ConversationSummary struct {
	ID          uuid.UUID    `json:"id"`
	OtherUser   PresenceUser `json:"otherUser"`
	LastMessage *ChatMessage `json:"lastMessage,omitempty"`
	UnreadCount int          `json:"unreadCount"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

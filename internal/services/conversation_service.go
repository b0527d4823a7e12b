package services

import (
	"database/sql"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/tradewinds-bvi/tradewinds-backend/internal/database"
	"github.com/tradewinds-bvi/tradewinds-backend/internal/models"
)

// NormalizePair orders an unordered user pair so the lexicographically
// smaller UUID comes first. Both orderings of the same pair always map to the
// same (user1, user2) key.
func NormalizePair(a, b uuid.UUID) (uuid.UUID, uuid.UUID) {
	if strings.Compare(a.String(), b.String()) <= 0 {
		return a, b
	}
	return b, a
}

// ValidateMessageContent trims the content and enforces the length rules.
// Returns the trimmed content on success.
func ValidateMessageContent(content string) (string, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return "", ErrEmptyMessage
	}
	if utf8.RuneCountInString(trimmed) > models.MaxMessageLength {
		return "", ErrMessageTooLong
	}
	return trimmed, nil
}

func scanConversation(row *sql.Row) (*models.Conversation, error) {
	var c models.Conversation
	err := row.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt, &c.User1ID, &c.User2ID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// GetConversation loads a conversation and verifies the caller participates.
func GetConversation(conversationID, caller uuid.UUID) (*models.Conversation, error) {
	conv, err := scanConversation(database.PostgresDB.QueryRow(`
		SELECT id, created_at, updated_at, user1_id, user2_id
		FROM conversations WHERE id = $1
	`, conversationID))
	if err != nil {
		return nil, err
	}
	if conv.User1ID != caller && conv.User2ID != caller {
		return nil, ErrNotParticipant
	}
	return conv, nil
}

// Counterpart returns the other participant of a conversation.
func Counterpart(conv *models.Conversation, caller uuid.UUID) uuid.UUID {
	if conv.User1ID == caller {
		return conv.User2ID
	}
	return conv.User1ID
}

// GetOrCreateConversation returns the single conversation for the unordered
// (requester, other) pair, creating it if absent. The unique constraint on the
// normalized pair plus ON CONFLICT makes the lookup-or-create a single-flight
// upsert, so concurrent calls from both participants converge on one row.
// Preconditions: requester != other, neither user blocks the other, and the
// counterpart has an active check-in.
func GetOrCreateConversation(requester, other uuid.UUID) (*models.Conversation, error) {
	if requester == other {
		return nil, ErrSelfTarget
	}

	if _, err := GetPresenceUser(other); err != nil {
		return nil, err
	}

	blocked, err := IsBlocked(requester, other)
	if err != nil {
		return nil, err
	}
	if blocked {
		return nil, ErrBlocked
	}

	checkedIn, err := HasActiveCheckin(other)
	if err != nil {
		return nil, err
	}
	if !checkedIn {
		return nil, ErrNotCheckedIn
	}

	u1, u2 := NormalizePair(requester, other)
	now := time.Now()

	// DO UPDATE instead of DO NOTHING so RETURNING always yields the row.
	row := database.PostgresDB.QueryRow(`
		INSERT INTO conversations (id, created_at, updated_at, user1_id, user2_id)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user1_id, user2_id) DO UPDATE SET user1_id = conversations.user1_id
		RETURNING id, created_at, updated_at, user1_id, user2_id
	`, uuid.New(), now, now, u1, u2)

	return scanConversation(row)
}

// SendMessage validates, gates and appends a message, bumps the
// conversation's updated_at, and fans out notification and realtime events
// without blocking the send.
func SendMessage(conversationID, sender uuid.UUID, content string) (*models.ChatMessage, error) {
	trimmed, err := ValidateMessageContent(content)
	if err != nil {
		return nil, err
	}

	conv, err := GetConversation(conversationID, sender)
	if err != nil {
		return nil, err
	}
	recipient := Counterpart(conv, sender)

	checkedIn, err := HasActiveCheckin(sender)
	if err != nil {
		return nil, err
	}
	if !checkedIn {
		return nil, ErrNotCheckedIn
	}

	blocked, err := IsBlocked(sender, recipient)
	if err != nil {
		return nil, err
	}
	if blocked {
		return nil, ErrBlocked
	}

	msg := models.ChatMessage{
		ID:             uuid.New(),
		CreatedAt:      time.Now(),
		ConversationID: conversationID,
		SenderID:       sender,
		Content:        trimmed,
	}

	_, err = database.PostgresDB.Exec(`
		INSERT INTO chat_messages (id, created_at, conversation_id, sender_id, content)
		VALUES ($1, $2, $3, $4, $5)
	`, msg.ID, msg.CreatedAt, msg.ConversationID, msg.SenderID, msg.Content)
	if err != nil {
		return nil, err
	}

	// Separate write from the insert; a crash in between leaves updated_at
	// stale, which is accepted.
	_, _ = database.PostgresDB.Exec(`
		UPDATE conversations SET updated_at = $1 WHERE id = $2
	`, msg.CreatedAt, conversationID)

	// Best effort: neither push nor realtime fan-out may fail the send.
	senderUser, _ := GetPresenceUser(sender)
	senderName := ""
	if senderUser != nil {
		senderName = senderUser.DisplayName
		if senderName == "" {
			senderName = senderUser.Username
		}
	}
	go NotifyNewMessage(recipient, senderName, trimmed, conversationID)
	go PublishMessageEvent(recipient, ConnectEvent{
		Type:           EventTypeNewMessage,
		ConversationID: conversationID.String(),
		MessageID:      msg.ID.String(),
		SenderID:       sender.String(),
		SenderName:     senderName,
		Content:        trimmed,
		Timestamp:      msg.CreatedAt.UTC(),
	})

	return &msg, nil
}

// ListMessages returns one page of a conversation's history in chronological
// order. Paging walks backwards: `before` is an exclusive upper bound on
// created_at. Viewing the page marks the counterpart's messages read, so this
// read is deliberately not idempotent with respect to unread counts.
func ListMessages(conversationID, caller uuid.UUID, limit int, before *time.Time) ([]models.ChatMessage, bool, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	if _, err := GetConversation(conversationID, caller); err != nil {
		return nil, false, err
	}

	query := `
		SELECT id, created_at, conversation_id, sender_id, content, read_at
		FROM chat_messages
		WHERE conversation_id = $1`
	args := []interface{}{conversationID}
	if before != nil {
		query += ` AND created_at < $2`
		args = append(args, *before)
	}
	query += ` ORDER BY created_at DESC LIMIT ` + strconv.Itoa(limit+1)

	rows, err := database.PostgresDB.Query(query, args...)
	if err != nil {
		return nil, false, err
	}
	defer rows.Close()

	var messages []models.ChatMessage
	for rows.Next() {
		var m models.ChatMessage
		if err := rows.Scan(&m.ID, &m.CreatedAt, &m.ConversationID, &m.SenderID, &m.Content, &m.ReadAt); err != nil {
			continue
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}

	hasMore := len(messages) > limit
	if hasMore {
		messages = messages[:limit]
	}

	// Reverse to chronological ascending for the caller.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	// Viewing the conversation reads everything the counterpart sent.
	_, _ = database.PostgresDB.Exec(`
		UPDATE chat_messages SET read_at = NOW()
		WHERE conversation_id = $1 AND sender_id <> $2 AND read_at IS NULL
	`, conversationID, caller)

	return messages, hasMore, nil
}

// UnreadCount sums unread messages addressed to the user across all of their
// conversations.
func UnreadCount(userID uuid.UUID) (int, error) {
	var count int
	err := database.PostgresDB.QueryRow(`
		SELECT COUNT(*)
		FROM chat_messages m
		JOIN conversations c ON m.conversation_id = c.id
		WHERE (c.user1_id = $1 OR c.user2_id = $1)
		  AND m.sender_id <> $1
		  AND m.read_at IS NULL
	`, userID).Scan(&count)
	return count, err
}

// ListConversations returns the caller's inbox, most recently active first,
// with the counterpart's profile, the latest message and the unread count.
func ListConversations(userID uuid.UUID) ([]models.ConversationSummary, error) {
	rows, err := database.PostgresDB.Query(`
		SELECT c.id, c.updated_at,
		       p.id, p.username, p.display_name, p.avatar_url, p.vessel_name, p.home_port,
		       (SELECT COUNT(*) FROM chat_messages m
		        WHERE m.conversation_id = c.id AND m.sender_id <> $1 AND m.read_at IS NULL)
		FROM conversations c
		JOIN profiles p ON p.id = CASE WHEN c.user1_id = $1 THEN c.user2_id ELSE c.user1_id END
		WHERE c.user1_id = $1 OR c.user2_id = $1
		ORDER BY c.updated_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := []models.ConversationSummary{}
	for rows.Next() {
		var s models.ConversationSummary
		if err := rows.Scan(&s.ID, &s.UpdatedAt,
			&s.OtherUser.ID, &s.OtherUser.Username, &s.OtherUser.DisplayName,
			&s.OtherUser.AvatarURL, &s.OtherUser.VesselName, &s.OtherUser.HomePort,
			&s.UnreadCount); err != nil {
			continue
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// The last message per conversation is an independent lookup; missing
	// rows (empty conversation) just leave LastMessage nil.
	for i := range summaries {
		var m models.ChatMessage
		err := database.PostgresDB.QueryRow(`
			SELECT id, created_at, conversation_id, sender_id, content, read_at
			FROM chat_messages
			WHERE conversation_id = $1
			ORDER BY created_at DESC
			LIMIT 1
		`, summaries[i].ID).Scan(&m.ID, &m.CreatedAt, &m.ConversationID, &m.SenderID, &m.Content, &m.ReadAt)
		if err == nil {
			summaries[i].LastMessage = &m
		}
	}

	return summaries, nil
}

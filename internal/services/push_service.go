package services

import (
	"encoding/json"
	"log"
	"net/http"

	webpush "github.com/SherClockHolmes/webpush-go"
	"github.com/google/uuid"
	"github.com/tradewinds-bvi/tradewinds-backend/internal/config"
	"github.com/tradewinds-bvi/tradewinds-backend/internal/database"
	"github.com/tradewinds-bvi/tradewinds-backend/internal/models"
)

var (
	vapidPublicKey  string
	vapidPrivateKey string
	vapidSubscriber string
)

// InitPush wires the VAPID keys from config. Push delivery is silently
// skipped when the keys are not configured.
func InitPush(cfg *config.Config) {
	vapidPublicKey = cfg.VAPIDPublicKey
	vapidPrivateKey = cfg.VAPIDPrivateKey
	vapidSubscriber = cfg.VAPIDSubscriber
}

// PushConfigured reports whether VAPID keys are present.
func PushConfigured() bool {
	return vapidPublicKey != "" && vapidPrivateKey != ""
}

// VAPIDPublicKey returns the public key clients use to subscribe.
func VAPIDPublicKey() string {
	return vapidPublicKey
}

// SaveSubscription upserts the user's push endpoint (at most one per user).
func SaveSubscription(userID uuid.UUID, sub models.WebPushSubscription) error {
	data, err := json.Marshal(sub)
	if err != nil {
		return err
	}
	_, err = database.PostgresDB.Exec(`
		INSERT INTO push_subscriptions (user_id, subscription, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id) DO UPDATE SET subscription = $2, updated_at = NOW()
	`, userID, data)
	return err
}

// DeleteSubscription removes the user's push endpoint. Idempotent.
func DeleteSubscription(userID uuid.UUID) error {
	_, err := database.PostgresDB.Exec(`
		DELETE FROM push_subscriptions WHERE user_id = $1
	`, userID)
	return err
}

func loadSubscriptions(userID uuid.UUID) ([]models.WebPushSubscription, error) {
	rows, err := database.PostgresDB.Query(`
		SELECT subscription FROM push_subscriptions WHERE user_id = $1
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []models.WebPushSubscription
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			continue
		}
		var sub models.WebPushSubscription
		if err := json.Unmarshal(raw, &sub); err != nil {
			continue
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

// subscriptionGone reports whether a push service status means the endpoint
// no longer exists and the stored subscription should be pruned.
func subscriptionGone(statusCode int) bool {
	return statusCode == http.StatusNotFound || statusCode == http.StatusGone
}

// PushResult counts per-endpoint delivery outcomes.
type PushResult struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

// Notify fans a notification out to all of the recipient's registered push
// endpoints. Endpoints reported gone by the push service are deleted
// (self-healing); other failures are counted and the endpoint retained.
// Never returns an error to the caller; zero subscriptions is a no-op.
func Notify(recipient uuid.UUID, title, body, url, tag string) PushResult {
	var result PushResult

	if !PushConfigured() {
		return result
	}

	subs, err := loadSubscriptions(recipient)
	if err != nil {
		log.Printf("push: failed to load subscriptions for %s: %v", recipient, err)
		return result
	}
	if len(subs) == 0 {
		return result
	}

	payload, err := json.Marshal(map[string]string{
		"title": title,
		"body":  body,
		"url":   url,
		"tag":   tag,
	})
	if err != nil {
		log.Printf("push: failed to marshal payload: %v", err)
		return result
	}

	for _, sub := range subs {
		s := &webpush.Subscription{
			Endpoint: sub.Endpoint,
			Keys: webpush.Keys{
				P256dh: sub.Keys.P256dh,
				Auth:   sub.Keys.Auth,
			},
		}

		resp, err := webpush.SendNotification(payload, s, &webpush.Options{
			Subscriber:      vapidSubscriber,
			VAPIDPublicKey:  vapidPublicKey,
			VAPIDPrivateKey: vapidPrivateKey,
			TTL:             60 * 60 * 24,
		})
		if err != nil {
			result.Failed++
			log.Printf("push: delivery to %s failed: %v", recipient, err)
			continue
		}
		resp.Body.Close()

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			result.Sent++
			continue
		}

		result.Failed++
		if subscriptionGone(resp.StatusCode) {
			if err := DeleteSubscription(recipient); err != nil {
				log.Printf("push: failed to prune gone subscription for %s: %v", recipient, err)
			}
		}
	}

	return result
}

// NotifyNewMessage formats and dispatches the new-message notification.
// Called fire-and-forget from message send.
func NotifyNewMessage(recipient uuid.UUID, senderName, content string, conversationID uuid.UUID) {
	preview := content
	if r := []rune(preview); len(r) > 120 {
		preview = string(r[:117]) + "..."
	}
	title := "New message"
	if senderName != "" {
		title = senderName
	}
	Notify(recipient, title, preview, "/connect/messages/"+conversationID.String(), "tradewinds-message")
}

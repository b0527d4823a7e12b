package services

import (
	"context"
	"time"

	"github.com/tradewinds-bvi/tradewinds-backend/internal/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Check-in lifecycle events recorded in the activity log.
const (
	EventCheckedIn   = "checked_in"
	EventVerified    = "verified"
	EventOutOfBounds = "out_of_bounds"
	EventCheckedOut  = "checked_out"
)

// CheckinEvent is one append-only entry in the check-in activity log.
// Kept in MongoDB; the relational checkins table stays authoritative for
// current state, this log exists for history and analytics.
type CheckinEvent struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    string             `bson:"user_id" json:"userId"`
	Event     string             `bson:"event" json:"event"`
	Lat       float64            `bson:"lat,omitempty" json:"lat,omitempty"`
	Lng       float64            `bson:"lng,omitempty" json:"lng,omitempty"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
}

// EnsureCheckinEventIndexes configures indexes for the checkin_events
// collection. Called on startup from main after Mongo has connected.
func EnsureCheckinEventIndexes(ctx context.Context) error {
	col := database.MongoDB.Collection("checkin_events")

	// Compound index on (user_id, timestamp) to support efficient pagination.
	model := mongo.IndexModel{
		Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "timestamp", Value: -1},
		},
		Options: options.Index().SetName("idx_user_timestamp"),
	}

	_, err := col.Indexes().CreateOne(ctx, model)
	return err
}

// LogCheckinEventAsync appends an event to the activity log asynchronously.
// The caller should NOT block on this; fire-and-forget is acceptable.
func LogCheckinEventAsync(ev CheckinEvent) {
	go func(e CheckinEvent) {
		if database.MongoDB == nil {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if e.Timestamp.IsZero() {
			e.Timestamp = time.Now().UTC()
		}

		col := database.MongoDB.Collection("checkin_events")
		_, _ = col.InsertOne(ctx, e)
	}(ev)
}

// LoadCheckinEvents returns paginated activity-log history for a user.
// Pagination is based on timestamp + limit (newest-first scrolling).
func LoadCheckinEvents(ctx context.Context, userID string, before *time.Time, limit int64) ([]CheckinEvent, bool, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	col := database.MongoDB.Collection("checkin_events")

	filter := bson.M{"user_id": userID}
	if before != nil {
		filter["timestamp"] = bson.M{"$lt": before.UTC()}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(limit + 1)

	cur, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, false, err
	}
	defer cur.Close(ctx)

	var events []CheckinEvent
	for cur.Next(ctx) {
		var e CheckinEvent
		if err := cur.Decode(&e); err != nil {
			continue
		}
		events = append(events, e)
	}
	if err := cur.Err(); err != nil {
		return nil, false, err
	}

	hasMore := int64(len(events)) > limit
	if hasMore {
		events = events[:limit]
	}

	return events, hasMore, nil
}

package database

import (
	"database/sql"
	"log"
	"time"

	_ "github.com/lib/pq"
)

var PostgresDB *sql.DB

// ConnectPostgres connects to PostgreSQL database
func ConnectPostgres(postgresURI string) error {
	var err error

	PostgresDB, err = sql.Open("postgres", postgresURI)
	if err != nil {
		return err
	}

	// Set connection pool settings
	PostgresDB.SetMaxOpenConns(25)
	PostgresDB.SetMaxIdleConns(5)
	PostgresDB.SetConnMaxLifetime(5 * time.Minute)

	// Test connection
	if err = PostgresDB.Ping(); err != nil {
		return err
	}

	log.Println("✅ Connected to PostgreSQL")

	// Initialize tables
	if err = InitPostgresTables(); err != nil {
		return err
	}

	return nil
}

// InitPostgresTables creates all necessary tables if they don't exist
func InitPostgresTables() error {
	queries := []string{
		// Profiles table (one per account; lat/lng cleared on explicit go-offline)
		`CREATE TABLE IF NOT EXISTS profiles (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			username VARCHAR(20) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			display_name VARCHAR(100) NOT NULL DEFAULT '',
			avatar_url TEXT,
			vessel_name VARCHAR(100),
			home_port VARCHAR(100),
			bio TEXT,
			latitude DOUBLE PRECISION,
			longitude DOUBLE PRECISION,
			show_on_map BOOLEAN NOT NULL DEFAULT TRUE,
			last_seen TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		// Check-ins table. Expiry is evaluated lazily at read time via expires_at,
		// so rows are never swept; is_active only flips on checkout.
		`CREATE TABLE IF NOT EXISTS checkins (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			user_id UUID NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
			gps_lat DOUBLE PRECISION NOT NULL,
			gps_lng DOUBLE PRECISION NOT NULL,
			actual_gps_lat DOUBLE PRECISION,
			actual_gps_lng DOUBLE PRECISION,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			expires_at TIMESTAMPTZ NOT NULL,
			last_verified_at TIMESTAMPTZ
		)`,

		// Conversations table. user1_id is always the lexicographically smaller
		// UUID so the unordered pair has a single canonical row; the unique
		// constraint backs the get-or-create upsert.
		`CREATE TABLE IF NOT EXISTS conversations (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			user1_id UUID NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
			user2_id UUID NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
			UNIQUE(user1_id, user2_id)
		)`,

		// Chat messages table
		`CREATE TABLE IF NOT EXISTS chat_messages (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			conversation_id UUID NOT NULL REFERENCES conversations(id) ON DELETE CASCADE,
			sender_id UUID NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
			content TEXT NOT NULL,
			read_at TIMESTAMPTZ
		)`,

		// Blocked users table (directional edge, symmetric effect)
		`CREATE TABLE IF NOT EXISTS blocked_users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			blocker_id UUID NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
			blocked_id UUID NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
			UNIQUE(blocker_id, blocked_id)
		)`,

		// Push subscriptions table (at most one per user, upsert keyed on user_id)
		`CREATE TABLE IF NOT EXISTS push_subscriptions (
			user_id UUID PRIMARY KEY REFERENCES profiles(id) ON DELETE CASCADE,
			subscription JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		// Create indexes for better performance
		`CREATE INDEX IF NOT EXISTS idx_profiles_username ON profiles(username)`,
		`CREATE INDEX IF NOT EXISTS idx_profiles_username_lower ON profiles(LOWER(username))`,
		`CREATE INDEX IF NOT EXISTS idx_profiles_last_seen ON profiles(last_seen)`,
		`CREATE INDEX IF NOT EXISTS idx_profiles_show_on_map ON profiles(show_on_map)`,
		`CREATE INDEX IF NOT EXISTS idx_checkins_user_id ON checkins(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_checkins_active ON checkins(user_id, is_active, expires_at)`,
		`CREATE INDEX IF NOT EXISTS idx_conversations_user1 ON conversations(user1_id)`,
		`CREATE INDEX IF NOT EXISTS idx_conversations_user2 ON conversations(user2_id)`,
		`CREATE INDEX IF NOT EXISTS idx_conversations_updated_at ON conversations(updated_at)`,
		`CREATE INDEX IF NOT EXISTS idx_chat_messages_conversation ON chat_messages(conversation_id, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_chat_messages_unread ON chat_messages(conversation_id, sender_id) WHERE read_at IS NULL`,
		`CREATE INDEX IF NOT EXISTS idx_blocked_users_blocker ON blocked_users(blocker_id)`,
		`CREATE INDEX IF NOT EXISTS idx_blocked_users_blocked ON blocked_users(blocked_id)`,
	}

	for _, query := range queries {
		if _, err := PostgresDB.Exec(query); err != nil {
			return err
		}
	}

	log.Println("✅ PostgreSQL tables initialized")
	return nil
}

// DisconnectPostgres closes the PostgreSQL connection
func DisconnectPostgres() error {
	if PostgresDB != nil {
		return PostgresDB.Close()
	}
	return nil
}

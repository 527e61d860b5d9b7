package db

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// Connect initializes the database connection and runs migrations.
func Connect(dsn string, log *zap.Logger) (*sqlx.DB, error) {
	database, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	if err := runMigrations(database); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	log.Info("database migrations applied")

	return database, nil
}

func runMigrations(database *sqlx.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS friendship_sides (
            owner_id TEXT NOT NULL,
            friend_id TEXT NOT NULL,
            history JSONB NOT NULL DEFAULT '{}'::jsonb,
            streak_active BOOLEAN NOT NULL DEFAULT FALSE,
            streak_days INT NOT NULL DEFAULT 0,
            last_message_at TIMESTAMPTZ,
            version BIGINT NOT NULL DEFAULT 1,
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            PRIMARY KEY (owner_id, friend_id)
        );`,
		`CREATE INDEX IF NOT EXISTS idx_friendship_sides_last_message
            ON friendship_sides (owner_id, last_message_at DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_friendship_sides_streak
            ON friendship_sides (owner_id, streak_days DESC) WHERE streak_active;`,
		`CREATE TABLE IF NOT EXISTS messages (
            message_id UUID PRIMARY KEY,
            conversation_key TEXT NOT NULL,
            from_user_id TEXT NOT NULL,
            to_user_id TEXT NOT NULL,
            content TEXT NOT NULL,
            sent_at TIMESTAMPTZ NOT NULL,
            delivered_at TIMESTAMPTZ,
            read_at TIMESTAMPTZ
        );`,
		`CREATE INDEX IF NOT EXISTS idx_messages_conversation
            ON messages (conversation_key, sent_at);`,
	}

	for _, m := range migrations {
		if _, err := database.Exec(m); err != nil {
			return err
		}
	}
	return nil
}

package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema. Users double as profiles: the
// session identity and the profile record share the same row.
// Calendar dates (lost_date, found_date) are stored as YYYY-MM-DD
// text; a DATE affinity would make the driver scan them as time.Time.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id            TEXT PRIMARY KEY,
    email         TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    full_name     TEXT NOT NULL DEFAULT '',
    phone         TEXT,
    avatar_url    TEXT,
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS lost_items (
    id           TEXT PRIMARY KEY,
    user_id      TEXT NOT NULL REFERENCES users(id),
    title        TEXT NOT NULL,
    description  TEXT NOT NULL,
    category     TEXT NOT NULL CHECK (category IN ('Electronics', 'Books', 'ID Cards', 'Clothing', 'Others')),
    lost_date    TEXT NOT NULL,
    location     TEXT NOT NULL,
    contact_info TEXT NOT NULL,
    image_url    TEXT,
    status       TEXT NOT NULL DEFAULT 'lost' CHECK (status IN ('lost', 'found', 'closed')),
    created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_lost_items_user ON lost_items(user_id);
CREATE INDEX IF NOT EXISTS idx_lost_items_created ON lost_items(created_at);

CREATE TABLE IF NOT EXISTS found_items (
    id           TEXT PRIMARY KEY,
    user_id      TEXT NOT NULL REFERENCES users(id),
    title        TEXT NOT NULL,
    description  TEXT NOT NULL,
    category     TEXT NOT NULL CHECK (category IN ('Electronics', 'Books', 'ID Cards', 'Clothing', 'Others')),
    found_date   TEXT NOT NULL,
    location     TEXT NOT NULL,
    contact_info TEXT NOT NULL,
    image_url    TEXT,
    status       TEXT NOT NULL DEFAULT 'available' CHECK (status IN ('available', 'returned', 'closed')),
    created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_found_items_user ON found_items(user_id);
CREATE INDEX IF NOT EXISTS idx_found_items_created ON found_items(created_at);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS revoked_tokens (
    jti        TEXT PRIMARY KEY,
    expires_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS password_resets (
    token      TEXT PRIMARY KEY,
    user_id    TEXT NOT NULL REFERENCES users(id),
    expires_at DATETIME NOT NULL,
    used_at    DATETIME
);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

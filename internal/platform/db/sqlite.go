package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	telegram_id INTEGER PRIMARY KEY,
	username TEXT,
	full_name TEXT,
	phone TEXT,
	language TEXT DEFAULT 'uz',
	is_pro BOOLEAN DEFAULT 0,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS games (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	creator_id INTEGER,
	game_type TEXT,
	title TEXT,
	share_link TEXT UNIQUE,
	questions TEXT,
	is_pro BOOLEAN DEFAULT 0,
	plays INTEGER DEFAULT 0,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (creator_id) REFERENCES users(telegram_id)
);

CREATE TABLE IF NOT EXISTS pro_requests (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER,
	status TEXT DEFAULT 'pending',
	requested_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	approved_at TIMESTAMP,
	FOREIGN KEY (user_id) REFERENCES users(telegram_id)
);
`

// Open initializes a SQLite connection using database/sql and ensures the schema exists.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("empty sqlite path")
	}
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// The driver is pure Go but SQLite itself serializes writers; a single
	// connection avoids SQLITE_BUSY under concurrent handlers.
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	if _, err := sqlDB.ExecContext(ctx, schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return sqlDB, nil
}

package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Client wraps the local SQLite database backing the offline booking store
type Client struct {
	db *sql.DB
}

// NewClient opens (creating if missing) the store file at path
func NewClient(path string) (*Client, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open offline store: %w", err)
	}

	// The store is a single-writer local file; WAL keeps readers cheap and
	// NORMAL sync is durable enough with WAL.
	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA synchronous=NORMAL")
	db.Exec("PRAGMA foreign_keys=ON")

	// Serialize access through one connection; modernc sqlite handles
	// concurrent use, but the store's guarantees assume a single writer.
	db.SetMaxOpenConns(1)

	return &Client{db: db}, nil
}

// DB returns the underlying database connection
func (c *Client) DB() *sql.DB {
	return c.db
}

// Close closes the database connection
func (c *Client) Close() error {
	return c.db.Close()
}

// Ping verifies the store file is reachable
func (c *Client) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

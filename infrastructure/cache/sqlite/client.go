// ABOUTME: SQLite-backed cache used as the durable device state backend
// ABOUTME: Keeps the session, tracker cache and selection across restarts of the CLI or server

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"mowakeb-api/core/interfaces"
)

// ErrKeyNotFound is returned by Get for absent or expired keys
var ErrKeyNotFound = interfaces.ErrCacheMiss

// sweepInterval is how often expired rows are purged
const sweepInterval = 5 * time.Minute

const schema = `
	CREATE TABLE IF NOT EXISTS state (
		key        TEXT PRIMARY KEY,
		value      BLOB NOT NULL,
		expires_at INTEGER,
		updated_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_state_expires ON state(expires_at) WHERE expires_at IS NOT NULL;
`

// Client implements interfaces.Cache on a single SQLite file
type Client struct {
	db     *sql.DB
	logger interfaces.Logger
	now    func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

// NewSQLiteCache opens or creates the state database at filePath. logger
// may be nil.
func NewSQLiteCache(filePath string, logger interfaces.Logger) (*Client, error) {
	if filePath == "" {
		filePath = "mowakeb-state.db"
	}

	db, err := sql.Open("sqlite3", filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open state database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize state schema: %w", err)
	}

	c := &Client{
		db:     db,
		logger: logger,
		now:    time.Now,
		stop:   make(chan struct{}),
	}
	go c.sweepLoop()
	return c, nil
}

// Get returns the value stored under key
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := c.db.QueryRowContext(ctx,
		"SELECT value FROM state WHERE key = ? AND (expires_at IS NULL OR expires_at > ?)",
		key, c.now().UnixNano(),
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state %s: %w", key, err)
	}
	return value, nil
}

// Set upserts value under key. A ttl <= 0 keeps it until deleted.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}

	now := c.now()
	var expires interface{}
	if ttl > 0 {
		expires = now.Add(ttl).UnixNano()
	}

	_, err := c.db.ExecContext(ctx, `
		INSERT INTO state (key, value, expires_at, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			expires_at = excluded.expires_at,
			updated_at = excluded.updated_at`,
		key, value, expires, now.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to write state %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (c *Client) Delete(ctx context.Context, key string) error {
	if _, err := c.db.ExecContext(ctx, "DELETE FROM state WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete state %s: %w", key, err)
	}
	return nil
}

// Sweep purges expired rows and returns how many were removed
func (c *Client) Sweep(ctx context.Context) (int64, error) {
	res, err := c.db.ExecContext(ctx,
		"DELETE FROM state WHERE expires_at IS NOT NULL AND expires_at <= ?", c.now().UnixNano())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (c *Client) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			n, err := c.Sweep(context.Background())
			if c.logger == nil {
				continue
			}
			if err != nil {
				c.logger.Warn("State sweep failed", map[string]interface{}{
					"error": err.Error(),
				})
			} else if n > 0 {
				c.logger.Debug("Expired state removed", map[string]interface{}{
					"removed": n,
				})
			}
		case <-c.stop:
			return
		}
	}
}

// Close stops the sweeper and closes the database
func (c *Client) Close() error {
	c.stopOnce.Do(func() { close(c.stop) })
	return c.db.Close()
}

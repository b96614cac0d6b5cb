package geocode

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// cacheKey returns SHA-256 hex of the normalized query for cache lookup.
func cacheKey(query string) string {
	normalized := strings.ToLower(strings.Join(strings.Fields(query), " "))
	h := sha256.Sum256([]byte(normalized))
	return fmt.Sprintf("%x", h)
}

// SQLiteCache caches geocode results in a local SQLite database.
type SQLiteCache struct {
	db      *sql.DB
	ttlDays int
}

// NewSQLiteCache opens (or creates) the cache database at path. A ttlDays
// of zero disables expiry.
func NewSQLiteCache(path string, ttlDays int) (*SQLiteCache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, eris.Wrap(err, "geocode cache: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "geocode cache: exec %s", pragma)
		}
	}
	if _, err := db.Exec(cacheMigration); err != nil {
		db.Close()
		return nil, eris.Wrap(err, "geocode cache: migrate")
	}
	return &SQLiteCache{db: db, ttlDays: ttlDays}, nil
}

const cacheMigration = `
CREATE TABLE IF NOT EXISTS geocode_cache (
	query_hash   TEXT PRIMARY KEY,
	latitude     REAL NOT NULL,
	longitude    REAL NOT NULL,
	display_name TEXT NOT NULL DEFAULT '',
	matched      INTEGER NOT NULL,
	cached_at    DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_geocode_cache_cached_at ON geocode_cache(cached_at);
`

// Close closes the underlying database.
func (c *SQLiteCache) Close() error {
	return c.db.Close()
}

// Get implements Cache. Returns (nil, nil) on miss or expiry.
func (c *SQLiteCache) Get(ctx context.Context, key string) (*Result, error) {
	query := `SELECT latitude, longitude, display_name, matched FROM geocode_cache WHERE query_hash = ?`
	args := []any{key}
	if c.ttlDays > 0 {
		query += ` AND cached_at > datetime('now', ?)`
		args = append(args, fmt.Sprintf("-%d days", c.ttlDays))
	}

	var r Result
	var matched int
	err := c.db.QueryRowContext(ctx, query, args...).Scan(&r.Latitude, &r.Longitude, &r.DisplayName, &matched)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "geocode cache: get")
	}
	r.Matched = matched != 0

	zap.L().Debug("geocode cache hit", zap.String("key", key[:12]), zap.Bool("matched", r.Matched))
	return &r, nil
}

// Put implements Cache.
func (c *SQLiteCache) Put(ctx context.Context, key string, result *Result) error {
	matched := 0
	if result.Matched {
		matched = 1
	}
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO geocode_cache (query_hash, latitude, longitude, display_name, matched, cached_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (query_hash) DO UPDATE SET
			latitude = excluded.latitude,
			longitude = excluded.longitude,
			display_name = excluded.display_name,
			matched = excluded.matched,
			cached_at = excluded.cached_at`,
		key, result.Latitude, result.Longitude, result.DisplayName, matched, time.Now().UTC(),
	)
	return eris.Wrap(err, "geocode cache: put")
}

// DeleteExpired removes entries older than the TTL.
func (c *SQLiteCache) DeleteExpired(ctx context.Context) (int, error) {
	if c.ttlDays <= 0 {
		return 0, nil
	}
	res, err := c.db.ExecContext(ctx,
		`DELETE FROM geocode_cache WHERE cached_at <= datetime('now', ?)`,
		fmt.Sprintf("-%d days", c.ttlDays),
	)
	if err != nil {
		return 0, eris.Wrap(err, "geocode cache: delete expired")
	}
	n, err := res.RowsAffected()
	return int(n), eris.Wrap(err, "geocode cache: rows affected")
}

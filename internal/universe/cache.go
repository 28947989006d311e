package universe

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Cache persists the downloaded symbol list to SQLite so restarts and
// back-to-back scans do not re-download the NSE master list. Scan results are
// never stored here.
type Cache struct {
	db *sql.DB
	mu sync.Mutex
}

// NewCache opens (or creates) the SQLite database and runs migrations.
func NewCache(dbPath string) (*Cache, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	c := &Cache{db: db}
	if err := c.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] universe cache opened: %s", dbPath)
	return c, nil
}

func (c *Cache) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS universe_snapshots (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			fetched_at   INTEGER NOT NULL,
			symbol_count INTEGER NOT NULL,
			symbols      TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_universe_ts ON universe_snapshots(fetched_at)`,
	}
	for _, s := range stmts {
		if _, err := c.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// Store replaces the cached list with the given symbols.
func (c *Cache) Store(symbols []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.db.Exec(`INSERT INTO universe_snapshots (fetched_at, symbol_count, symbols) VALUES (?,?,?)`,
		time.Now().Unix(), len(symbols), strings.Join(symbols, "\n"),
	); err != nil {
		return err
	}
	// Keep only the latest snapshot.
	_, err := c.db.Exec(`DELETE FROM universe_snapshots WHERE id NOT IN (SELECT MAX(id) FROM universe_snapshots)`)
	return err
}

// Load returns the cached list if one exists and is no older than maxAge.
// A maxAge of zero or less accepts any age.
func (c *Cache) Load(maxAge time.Duration) ([]string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var (
		fetchedAt int64
		joined    string
	)
	err := c.db.QueryRow(`SELECT fetched_at, symbols FROM universe_snapshots ORDER BY id DESC LIMIT 1`).
		Scan(&fetchedAt, &joined)
	if err != nil {
		if err != sql.ErrNoRows {
			log.Printf("[WARN] load universe cache: %v", err)
		}
		return nil, false
	}
	if maxAge > 0 && time.Since(time.Unix(fetchedAt, 0)) > maxAge {
		return nil, false
	}
	symbols := strings.Split(joined, "\n")
	if len(symbols) == 0 || symbols[0] == "" {
		return nil, false
	}
	return symbols, true
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

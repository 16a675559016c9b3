package slot

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"
)

// SQLite driver names as registered by their packages.
const (
	DriverCgo  = "sqlite3" // github.com/mattn/go-sqlite3
	DriverPure = "sqlite"  // modernc.org/sqlite
)

// SQLiteSlot stores slots as rows of a single table.
type SQLiteSlot struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) a slot database at path using the
// named driver.
func OpenSQLite(driver, path string) (*SQLiteSlot, error) {
	dsn, err := sqliteDSN(driver, path)
	if err != nil {
		return nil, err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	s := &SQLiteSlot{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return s, nil
}

func sqliteDSN(driver, path string) (string, error) {
	switch driver {
	case DriverCgo:
		return path + "?_busy_timeout=5000&_journal_mode=WAL", nil
	case DriverPure:
		return "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", nil
	default:
		return "", fmt.Errorf("unknown sqlite driver %q", driver)
	}
}

func (s *SQLiteSlot) initSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS slots (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
`)
	return err
}

// Get returns the value stored under key.
func (s *SQLiteSlot) Get(key string) ([]byte, bool, error) {
	if err := ValidateKey(key); err != nil {
		return nil, false, err
	}
	var value string
	err := s.db.QueryRow(`SELECT value FROM slots WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("query slot %s: %w", key, err)
	}
	return []byte(value), true, nil
}

// Set replaces the value stored under key.
func (s *SQLiteSlot) Set(key string, value []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	_, err := s.db.Exec(`
		INSERT INTO slots (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, string(value), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("upsert slot %s: %w", key, err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteSlot) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Package storycache is the client-persisted story store, the "local" source
// of the story reconciler. It supports the same database backends as the
// rest of the tool; SQLite is the default for single-user installs.
package storycache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"   // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib"   // PostgreSQL driver
	_ "modernc.org/sqlite"               // SQLite driver

	"github.com/foredeck/foredeck/schema"
)

const storiesTable = "foredeck_stories"

// Store handles durable story storage using various database backends.
type Store struct {
	db         *sql.DB
	backend    schema.CacheBackend
	driverName string
	connStr    string
}

// Status summarizes the cache for the status command.
type Status struct {
	Backend schema.CacheBackend `json:"backend"`
	Stories int                 `json:"stories"`
}

// Open initializes a Store for the given backend. An empty connStr selects
// the default SQLite database path for the SQLite backend.
func Open(backend schema.CacheBackend, connStr string) (*Store, error) {
	var db *sql.DB
	var err error
	var driverName string

	switch backend {
	case schema.SQLiteBackend:
		driverName = "sqlite"
		dbPath := connStr
		if dbPath == "" {
			dbPath = DefaultDBPath()
		}
		db, err = sql.Open(driverName, dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite story cache at %q: %w. Check that the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		driverName = "mysql"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MySQL story cache: %w. Check connection format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		driverName = "pgx"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL story cache: %w. Check connection format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}

	case schema.NoneBackend:
		// No-op store for disabled caching
		return &Store{backend: backend}, nil

	default:
		return nil, fmt.Errorf("unsupported cache backend: %s. Must be sqlite, mysql, postgresql, or none", backend)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s story cache. Check that the server is running and connection parameters are valid: %w", backend, err)
	}

	if _, err := db.Exec(createTableQuery(backend)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", storiesTable, err)
	}

	return &Store{db: db, backend: backend, driverName: driverName, connStr: connStr}, nil
}

func createTableQuery(backend schema.CacheBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				signature    VARCHAR(512) PRIMARY KEY,
				story_id     TEXT NOT NULL,
				title        TEXT NOT NULL,
				author       TEXT NOT NULL,
				description  TEXT NOT NULL,
				categories   TEXT NOT NULL,
				published_at TEXT NOT NULL,
				created_at   TEXT NOT NULL,
				is_debug     TINYINT NOT NULL,
				cached_at    BIGINT NOT NULL
			);
		`, storiesTable)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				signature    TEXT PRIMARY KEY,
				story_id     TEXT NOT NULL,
				title        TEXT NOT NULL,
				author       TEXT NOT NULL,
				description  TEXT NOT NULL,
				categories   TEXT NOT NULL,
				published_at TEXT NOT NULL,
				created_at   TEXT NOT NULL,
				is_debug     BOOLEAN NOT NULL,
				cached_at    BIGINT NOT NULL
			);
		`, storiesTable)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				signature    TEXT PRIMARY KEY,
				story_id     TEXT NOT NULL,
				title        TEXT NOT NULL,
				author       TEXT NOT NULL,
				description  TEXT NOT NULL,
				categories   TEXT NOT NULL,
				published_at TEXT NOT NULL,
				created_at   TEXT NOT NULL,
				is_debug     INTEGER NOT NULL,
				cached_at    INTEGER NOT NULL
			);
		`, storiesTable)
	}
}

// rebind converts ?-style placeholders to $N for PostgreSQL.
func (s *Store) rebind(query string) string {
	if s.backend != schema.PostgreSQLBackend {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Upsert writes stories into the cache keyed by content signature, so
// re-publishing the same logical story stays idempotent.
func (s *Store) Upsert(stories ...schema.StoryRecord) error {
	if s.backend == schema.NoneBackend || s.db == nil {
		return nil
	}

	var query string
	switch s.backend {
	case schema.MySQLBackend:
		query = fmt.Sprintf(`
			INSERT INTO %s (signature, story_id, title, author, description, categories, published_at, created_at, is_debug, cached_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON DUPLICATE KEY UPDATE
				story_id = VALUES(story_id), title = VALUES(title), author = VALUES(author),
				description = VALUES(description), categories = VALUES(categories),
				published_at = VALUES(published_at), created_at = VALUES(created_at),
				is_debug = VALUES(is_debug), cached_at = VALUES(cached_at)
		`, storiesTable)
	default: // SQLite, PostgreSQL
		query = fmt.Sprintf(`
			INSERT INTO %s (signature, story_id, title, author, description, categories, published_at, created_at, is_debug, cached_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (signature) DO UPDATE SET
				story_id = excluded.story_id, title = excluded.title, author = excluded.author,
				description = excluded.description, categories = excluded.categories,
				published_at = excluded.published_at, created_at = excluded.created_at,
				is_debug = excluded.is_debug, cached_at = excluded.cached_at
		`, storiesTable)
	}
	query = s.rebind(query)

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin upsert transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	now := time.Now().UnixMilli()
	for _, story := range stories {
		categories, err := json.Marshal(story.Categories)
		if err != nil {
			return fmt.Errorf("failed to encode categories for %q: %w", story.Title, err)
		}
		if _, err := stmt.Exec(
			story.Signature(),
			story.StoryID, story.Title, story.Author, story.Description,
			string(categories), story.PublishedAt, story.CreatedAt, story.IsDebug, now,
		); err != nil {
			return fmt.Errorf("failed to upsert story %q: %w", story.Title, err)
		}
	}
	return tx.Commit()
}

// List returns every cached story tagged with the local source.
func (s *Store) List() ([]schema.StoryRecord, error) {
	if s.backend == schema.NoneBackend || s.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`
		SELECT story_id, title, author, description, categories, published_at, created_at, is_debug
		FROM %s ORDER BY published_at DESC
	`, storiesTable)

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query stories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var stories []schema.StoryRecord
	for rows.Next() {
		var story schema.StoryRecord
		var categories string
		if err := rows.Scan(
			&story.StoryID, &story.Title, &story.Author, &story.Description,
			&categories, &story.PublishedAt, &story.CreatedAt, &story.IsDebug,
		); err != nil {
			return nil, fmt.Errorf("failed to scan story: %w", err)
		}
		if err := json.Unmarshal([]byte(categories), &story.Categories); err != nil {
			// Tolerate legacy rows with malformed category payloads
			story.Categories = nil
		}
		story.Source = schema.LocalSource
		stories = append(stories, story)
	}
	return stories, rows.Err()
}

// Clear drops all cached stories.
func (s *Store) Clear() error {
	if s.backend == schema.NoneBackend || s.db == nil {
		return nil
	}
	_, err := s.db.Exec(fmt.Sprintf("DELETE FROM %s", storiesTable))
	if err != nil {
		return fmt.Errorf("failed to clear story cache: %w", err)
	}
	return nil
}

// GetStatus reports the backend and story count.
func (s *Store) GetStatus() (Status, error) {
	status := Status{Backend: s.backend}
	if s.backend == schema.NoneBackend || s.db == nil {
		return status, nil
	}
	row := s.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", storiesTable))
	if err := row.Scan(&status.Stories); err != nil {
		return status, fmt.Errorf("failed to count stories: %w", err)
	}
	return status, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

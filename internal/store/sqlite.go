// Package store is the storage collaborator: SQLite persistence for catalog
// items, identity assignment, and the embedding blobs the vector index is
// rebuilt from at startup. The core never touches this package directly; it
// only consumes the snapshots handed to it.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/manntalati/smart-wardrobe/internal/core/model"
)

var ErrItemNotFound = errors.New("item not found")

type Store struct {
	db *sql.DB
}

func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Initialize creates the catalog schema.
func (s *Store) Initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		category TEXT NOT NULL,
		color TEXT NOT NULL,
		pattern TEXT NOT NULL,
		season TEXT NOT NULL,
		fabric TEXT NOT NULL,
		occasion_tags JSON NOT NULL DEFAULT '[]',
		image_path TEXT,
		embedding BLOB,
		dimensions INTEGER NOT NULL DEFAULT 0,
		confidence REAL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Save persists a new item and assigns its identity.
func (s *Store) Save(item *model.Item) error {
	tags, err := json.Marshal(item.OccasionTags)
	if err != nil {
		return fmt.Errorf("failed to encode occasion tags: %w", err)
	}

	res, err := s.db.Exec(`
		INSERT INTO items (name, category, color, pattern, season, fabric, occasion_tags, image_path, embedding, dimensions, confidence)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.Name, item.Category, item.Color, item.Pattern, item.Season, item.Fabric,
		string(tags), item.ImagePath, vectorToBytes(item.Embedding), len(item.Embedding), item.Confidence,
	)
	if err != nil {
		return fmt.Errorf("failed to insert item: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read assigned identity: %w", err)
	}
	item.ID = id
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}
	return nil
}

func (s *Store) Get(id int64) (*model.Item, error) {
	row := s.db.QueryRow(`
		SELECT id, name, category, color, pattern, season, fabric, occasion_tags, image_path, embedding, dimensions, confidence, created_at
		FROM items WHERE id = ?`, id)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrItemNotFound, id)
	}
	return item, err
}

// List returns all items, newest first.
func (s *Store) List() ([]model.Item, error) {
	return s.query(`
		SELECT id, name, category, color, pattern, season, fabric, occasion_tags, image_path, embedding, dimensions, confidence, created_at
		FROM items ORDER BY created_at DESC, id DESC`)
}

// Snapshot returns all items ordered by identity. This is the consistent
// catalog view handed to the core for recommendations, gap analysis and
// index rebuild.
func (s *Store) Snapshot() ([]model.Item, error) {
	return s.query(`
		SELECT id, name, category, color, pattern, season, fabric, occasion_tags, image_path, embedding, dimensions, confidence, created_at
		FROM items ORDER BY id`)
}

func (s *Store) Delete(id int64) error {
	res, err := s.db.Exec(`DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %d", ErrItemNotFound, id)
	}
	return nil
}

func (s *Store) query(stmt string, args ...any) ([]model.Item, error) {
	rows, err := s.db.Query(stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*model.Item, error) {
	var (
		item       model.Item
		tags       string
		imagePath  sql.NullString
		blob       []byte
		dimensions int
		confidence sql.NullFloat64
		createdAt  string
	)
	err := row.Scan(&item.ID, &item.Name, &item.Category, &item.Color, &item.Pattern,
		&item.Season, &item.Fabric, &tags, &imagePath, &blob, &dimensions, &confidence, &createdAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(tags), &item.OccasionTags); err != nil {
		return nil, fmt.Errorf("failed to decode occasion tags for item %d: %w", item.ID, err)
	}
	item.ImagePath = imagePath.String
	item.Confidence = confidence.Float64

	item.Embedding, err = bytesToVector(blob, dimensions)
	if err != nil {
		return nil, fmt.Errorf("item %d: %w", item.ID, err)
	}

	if t, perr := time.Parse("2006-01-02 15:04:05", createdAt); perr == nil {
		item.CreatedAt = t
	} else if t, perr := time.Parse(time.RFC3339, createdAt); perr == nil {
		item.CreatedAt = t
	}
	return &item, nil
}

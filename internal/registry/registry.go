// Package registry keeps the uploaded guideline documents in SQLite,
// content-addressed so repeated uploads stay idempotent.
package registry

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

var (
	// ErrInvalidDocument is returned when a document is uploaded with a
	// blank title or blank content.
	ErrInvalidDocument = errors.New("document title and content are required")

	// ErrNotFound is returned when the referenced document id is unknown.
	ErrNotFound = errors.New("document not found")
)

// Document is a registered guideline document.
type Document struct {
	ID        string
	Title     string
	Topic     string
	Content   string
	CreatedAt time.Time
	IndexedAt *time.Time
}

// Indexed reports whether the document's chunks have been written to the
// vector index.
func (d *Document) Indexed() bool { return d.IndexedAt != nil }

// Registry is the SQLite-backed document store.
type Registry struct {
	db *sql.DB
}

// Open creates or opens the registry database at the given path.
func Open(path string) (*Registry, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating registry directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening registry: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging registry: %w", err)
	}

	r := &Registry{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return r, nil
}

// OpenMemory creates an in-memory registry (useful for testing).
func OpenMemory() (*Registry, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory registry: %w", err)
	}
	r := &Registry{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return r, nil
}

func (r *Registry) Close() error { return r.db.Close() }

func (r *Registry) migrate() error {
	_, err := r.db.Exec(schema)
	return err
}

const schema = `
CREATE TABLE IF NOT EXISTS documents (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    topic TEXT NOT NULL DEFAULT '',
    content TEXT NOT NULL,
    created_at DATETIME NOT NULL DEFAULT (datetime('now')),
    indexed_at DATETIME
);
`

// ContentID returns the stable content-addressed id for document content.
func ContentID(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// Upload registers a document and returns it. Uploading identical content
// again returns the existing document without duplicating it; the second
// return value reports whether the document already existed.
func (r *Registry) Upload(ctx context.Context, title, topic, content string) (*Document, bool, error) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		return nil, false, ErrInvalidDocument
	}

	id := ContentID(content)
	existing, err := r.Get(ctx, id)
	if err == nil {
		return existing, true, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, false, err
	}

	now := time.Now().UTC()
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO documents (id, title, topic, content, created_at) VALUES (?, ?, ?, ?, ?)`,
		id, title, topic, content, now,
	)
	if err != nil {
		return nil, false, fmt.Errorf("inserting document: %w", err)
	}

	return &Document{
		ID:        id,
		Title:     title,
		Topic:     topic,
		Content:   content,
		CreatedAt: now,
	}, false, nil
}

// Get returns the document with the given id, or ErrNotFound.
func (r *Registry) Get(ctx context.Context, id string) (*Document, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, title, topic, content, created_at, indexed_at FROM documents WHERE id = ?`, id)

	var doc Document
	var indexedAt sql.NullTime
	err := row.Scan(&doc.ID, &doc.Title, &doc.Topic, &doc.Content, &doc.CreatedAt, &indexedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading document %s: %w", id, err)
	}
	if indexedAt.Valid {
		doc.IndexedAt = &indexedAt.Time
	}
	return &doc, nil
}

// List returns all registered documents in upload order, without content.
func (r *Registry) List(ctx context.Context) ([]Document, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, topic, created_at, indexed_at FROM documents ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var doc Document
		var indexedAt sql.NullTime
		if err := rows.Scan(&doc.ID, &doc.Title, &doc.Topic, &doc.CreatedAt, &indexedAt); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		if indexedAt.Valid {
			doc.IndexedAt = &indexedAt.Time
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// MarkIndexed records that the document's chunks were written to the
// vector index.
func (r *Registry) MarkIndexed(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE documents SET indexed_at = ? WHERE id = ?`, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("marking document indexed: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

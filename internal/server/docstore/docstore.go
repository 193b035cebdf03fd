// Package docstore is the document database collaborator: collection-keyed
// JSON documents with store-assigned ids and creation-time ordering.
package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

var ErrNotFound = errors.New("document not found")

const schemaSQL = `
CREATE TABLE IF NOT EXISTS documents (
	collection TEXT NOT NULL,
	id TEXT NOT NULL,
	body TEXT NOT NULL,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL,
	PRIMARY KEY (collection, id)
);

CREATE INDEX IF NOT EXISTS idx_documents_created_at ON documents(collection, created_at);
`

// Store provides CRUD over collection-keyed JSON documents. The store is the
// sole id generator. Safe for concurrent use.
type Store struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) (*Store, error) {
	if _, err := db.Exec(schemaSQL); err != nil {
		return nil, fmt.Errorf("failed to initialize document store: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Create(ctx context.Context, collection string, body map[string]any) (*Document, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal document body: %w", err)
	}

	now := time.Now().UTC()
	doc := &Document{
		Collection: collection,
		ID:         uuid.New().String(),
		Body:       raw,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO documents (collection, id, body, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		doc.Collection, doc.ID, string(doc.Body), formatTime(doc.CreatedAt), formatTime(doc.UpdatedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("insert document: %w", err)
	}

	return doc, nil
}

func (s *Store) Get(ctx context.Context, collection, id string) (*Document, error) {
	var row docRow
	err := s.db.GetContext(ctx, &row,
		`SELECT collection, id, body, created_at, updated_at FROM documents WHERE collection = ? AND id = ?`,
		collection, id,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	return row.document()
}

// Update replaces the document body. The document must already exist.
func (s *Store) Update(ctx context.Context, collection, id string, body map[string]any) (*Document, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal document body: %w", err)
	}

	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`UPDATE documents SET body = ?, updated_at = ? WHERE collection = ? AND id = ?`,
		string(raw), formatTime(now), collection, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update document: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, ErrNotFound
	}

	return s.Get(ctx, collection, id)
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM documents WHERE collection = ? AND id = ?`,
		collection, id,
	)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns up to limit documents from a collection, newest first.
func (s *Store) List(ctx context.Context, collection string, limit int) ([]*Document, error) {
	if limit <= 0 {
		limit = 100
	}

	var rows []docRow
	err := s.db.SelectContext(ctx, &rows,
		`SELECT collection, id, body, created_at, updated_at FROM documents
		 WHERE collection = ? ORDER BY created_at DESC, id DESC LIMIT ?`,
		collection, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	docs := make([]*Document, 0, len(rows))
	for _, row := range rows {
		doc, err := row.document()
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// Count returns the number of documents in a collection.
func (s *Store) Count(ctx context.Context, collection string) (int64, error) {
	var n int64
	err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM documents WHERE collection = ?`, collection)
	if err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}
	return n, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

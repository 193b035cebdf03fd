package blob

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

const indexSchemaSQL = `
CREATE TABLE IF NOT EXISTS uploads (
	key TEXT PRIMARY KEY,
	etag TEXT NOT NULL,
	size INTEGER NOT NULL,
	last_modified TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_uploads_last_modified ON uploads(last_modified);
`

// UploadIndex is a local audit trail of objects pushed to the remote store.
// It is advisory only; the object store remains the source of truth.
type UploadIndex struct {
	db *sqlx.DB
}

func newUploadIndex(db *sqlx.DB) (*UploadIndex, error) {
	idx := &UploadIndex{db: db}
	if _, err := db.Exec(indexSchemaSQL); err != nil {
		return nil, fmt.Errorf("failed to initialize upload index: %w", err)
	}
	return idx, nil
}

// Get retrieves upload info by key
func (ui *UploadIndex) Get(key string) (*ObjectInfo, bool) {
	var obj ObjectInfo
	err := ui.db.Get(&obj, "SELECT key, etag, size, last_modified FROM uploads WHERE key = ?", key)
	if err != nil {
		return nil, false
	}
	return &obj, true
}

// Set adds or updates an upload record
func (ui *UploadIndex) Set(obj *ObjectInfo) error {
	_, err := ui.db.Exec(
		`INSERT OR REPLACE INTO uploads (key, etag, size, last_modified) VALUES (?, ?, ?, ?)`,
		obj.Key, obj.ETag, obj.Size, obj.LastModified,
	)
	return err
}

// Remove deletes an upload record
func (ui *UploadIndex) Remove(key string) error {
	_, err := ui.db.Exec("DELETE FROM uploads WHERE key = ?", key)
	return err
}

// List returns all recorded uploads, newest first
func (ui *UploadIndex) List() ([]*ObjectInfo, error) {
	var objects []*ObjectInfo
	err := ui.db.Select(&objects, "SELECT key, etag, size, last_modified FROM uploads ORDER BY last_modified DESC")
	if err != nil {
		return nil, err
	}
	return objects, nil
}

// Count returns the number of recorded uploads
func (ui *UploadIndex) Count() (int64, error) {
	var n int64
	if err := ui.db.Get(&n, "SELECT COUNT(*) FROM uploads"); err != nil {
		return 0, err
	}
	return n, nil
}

func formatIndexTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

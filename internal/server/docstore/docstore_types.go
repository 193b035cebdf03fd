package docstore

import (
	"encoding/json"
	"fmt"
	"time"
)

// Document is one stored record. Body holds the raw JSON payload; id and
// timestamps are owned by the store.
type Document struct {
	Collection string          `json:"collection"`
	ID         string          `json:"id"`
	Body       json.RawMessage `json:"body"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// Fields decodes the document body into a map.
func (d *Document) Fields() (map[string]any, error) {
	var fields map[string]any
	if err := json.Unmarshal(d.Body, &fields); err != nil {
		return nil, fmt.Errorf("decode document %s/%s: %w", d.Collection, d.ID, err)
	}
	return fields, nil
}

type docRow struct {
	Collection string `db:"collection"`
	ID         string `db:"id"`
	Body       string `db:"body"`
	CreatedAt  string `db:"created_at"`
	UpdatedAt  string `db:"updated_at"`
}

func (r docRow) document() (*Document, error) {
	createdAt, err := time.Parse(time.RFC3339Nano, r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at of %s/%s: %w", r.Collection, r.ID, err)
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, r.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse updated_at of %s/%s: %w", r.Collection, r.ID, err)
	}
	return &Document{
		Collection: r.Collection,
		ID:         r.ID,
		Body:       json.RawMessage(r.Body),
		CreatedAt:  createdAt,
		UpdatedAt:  updatedAt,
	}, nil
}

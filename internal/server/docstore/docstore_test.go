package docstore

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smlmotors/showroom/internal/db"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	sqlDB, err := db.NewSqliteDb(db.WithMaxOpenConns(1))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	store, err := New(sqlDB)
	require.NoError(t, err)
	return store
}

func TestStoreCreateGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	doc, err := store.Create(ctx, "cars", map[string]any{"brand": "Toyota", "year": 2020})
	require.NoError(t, err)
	assert.NotEmpty(t, doc.ID)
	assert.False(t, doc.CreatedAt.IsZero())

	got, err := store.Get(ctx, "cars", doc.ID)
	require.NoError(t, err)
	assert.Equal(t, doc.ID, got.ID)

	fields, err := got.Fields()
	require.NoError(t, err)
	assert.Equal(t, "Toyota", fields["brand"])
	assert.Equal(t, float64(2020), fields["year"])
}

func TestStoreGetNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(context.Background(), "cars", "doesnotexist")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreCollectionsAreIsolated(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	doc, err := store.Create(ctx, "cars", map[string]any{"brand": "Honda"})
	require.NoError(t, err)

	_, err = store.Get(ctx, "users", doc.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreUpdate(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	doc, err := store.Create(ctx, "cars", map[string]any{"brand": "Ford", "price": 10000.0})
	require.NoError(t, err)

	updated, err := store.Update(ctx, "cars", doc.ID, map[string]any{"brand": "Ford", "price": 9000.0})
	require.NoError(t, err)
	assert.Equal(t, doc.ID, updated.ID)
	assert.Equal(t, doc.CreatedAt, updated.CreatedAt)

	fields, err := updated.Fields()
	require.NoError(t, err)
	assert.Equal(t, 9000.0, fields["price"])

	_, err = store.Update(ctx, "cars", "doesnotexist", map[string]any{"brand": "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	doc, err := store.Create(ctx, "cars", map[string]any{"brand": "Kia"})
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, "cars", doc.ID))

	_, err = store.Get(ctx, "cars", doc.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, store.Delete(ctx, "cars", doc.ID), ErrNotFound)
}

func TestStoreListNewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	var ids []string
	for i := range 5 {
		doc, err := store.Create(ctx, "cars", map[string]any{"n": i})
		require.NoError(t, err)
		ids = append(ids, doc.ID)
		time.Sleep(2 * time.Millisecond) // distinct created_at
	}

	docs, err := store.List(ctx, "cars", 100)
	require.NoError(t, err)
	require.Len(t, docs, 5)

	// newest first
	for i, doc := range docs {
		assert.Equal(t, ids[len(ids)-1-i], doc.ID)
	}
}

func TestStoreListLimit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i := range 10 {
		_, err := store.Create(ctx, "cars", map[string]any{"n": fmt.Sprint(i)})
		require.NoError(t, err)
	}

	docs, err := store.List(ctx, "cars", 3)
	require.NoError(t, err)
	assert.Len(t, docs, 3)

	n, err := store.Count(ctx, "cars")
	require.NoError(t, err)
	assert.EqualValues(t, 10, n)
}

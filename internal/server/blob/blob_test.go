package blob

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smlmotors/showroom/internal/db"
)

func TestValidKey(t *testing.T) {
	valid := []string{
		"images/abc.jpg",
		"images/nested/deep/key.png",
		"a",
		"key with spaces",
		"ключ/фото.jpg",
		strings.Repeat("k", 1024),
	}
	for _, key := range valid {
		assert.True(t, ValidKey(key), "expected valid: %q", key)
	}

	invalid := []string{
		"",
		".",
		"..",
		"/leading/slash",
		"//double",
		`back\slash`,
		"dir/../escape",
		"trailing/..",
		strings.Repeat("k", 1025),
		string([]byte{0xff, 0xfe}),
	}
	for _, key := range invalid {
		assert.False(t, ValidKey(key), "expected invalid: %q", key)
	}
}

func newTestIndex(t *testing.T) *UploadIndex {
	t.Helper()
	sqlDB, err := db.NewSqliteDb(db.WithMaxOpenConns(1))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	idx, err := newUploadIndex(sqlDB)
	require.NoError(t, err)
	return idx
}

func TestUploadIndexSetGet(t *testing.T) {
	idx := newTestIndex(t)

	obj := &ObjectInfo{
		Key:          "images/one.jpg",
		ETag:         "etag-1",
		Size:         1234,
		LastModified: formatIndexTime(time.Now()),
	}
	require.NoError(t, idx.Set(obj))

	got, ok := idx.Get("images/one.jpg")
	require.True(t, ok)
	assert.Equal(t, obj, got)

	_, ok = idx.Get("images/missing.jpg")
	assert.False(t, ok)
}

func TestUploadIndexSetReplaces(t *testing.T) {
	idx := newTestIndex(t)

	require.NoError(t, idx.Set(&ObjectInfo{Key: "k", ETag: "a", Size: 1, LastModified: "2026-01-01T00:00:00Z"}))
	require.NoError(t, idx.Set(&ObjectInfo{Key: "k", ETag: "b", Size: 2, LastModified: "2026-01-02T00:00:00Z"}))

	got, ok := idx.Get("k")
	require.True(t, ok)
	assert.Equal(t, "b", got.ETag)
	assert.EqualValues(t, 2, got.Size)

	n, err := idx.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestUploadIndexRemove(t *testing.T) {
	idx := newTestIndex(t)

	require.NoError(t, idx.Set(&ObjectInfo{Key: "k", ETag: "a", Size: 1, LastModified: "2026-01-01T00:00:00Z"}))
	require.NoError(t, idx.Remove("k"))

	_, ok := idx.Get("k")
	assert.False(t, ok)

	// removing an absent key is not an error
	require.NoError(t, idx.Remove("k"))
}

func TestUploadIndexListNewestFirst(t *testing.T) {
	idx := newTestIndex(t)

	require.NoError(t, idx.Set(&ObjectInfo{Key: "old", ETag: "a", Size: 1, LastModified: "2026-01-01T00:00:00Z"}))
	require.NoError(t, idx.Set(&ObjectInfo{Key: "new", ETag: "b", Size: 2, LastModified: "2026-02-01T00:00:00Z"}))

	objects, err := idx.List()
	require.NoError(t, err)
	require.Len(t, objects, 2)
	assert.Equal(t, "new", objects[0].Key)
	assert.Equal(t, "old", objects[1].Key)
}

func TestPublicURL(t *testing.T) {
	cases := []struct {
		name string
		cfg  S3Config
		key  string
		want string
	}{
		{
			name: "public base url wins",
			cfg: S3Config{
				BucketName:    "cars",
				Region:        "us-east-1",
				PublicBaseURL: "https://cdn.example.com",
			},
			key:  "images/a.jpg",
			want: "https://cdn.example.com/images/a.jpg",
		},
		{
			name: "custom endpoint uses path style",
			cfg: S3Config{
				BucketName: "cars",
				Region:     "us-east-1",
				Endpoint:   "http://localhost:9000",
			},
			key:  "images/a.jpg",
			want: "http://localhost:9000/cars/images/a.jpg",
		},
		{
			name: "aws virtual hosted",
			cfg: S3Config{
				BucketName: "cars",
				Region:     "ap-south-1",
			},
			key:  "images/a.jpg",
			want: "https://cars.s3.ap-south-1.amazonaws.com/images/a.jpg",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			backend := &S3Backend{config: &tc.cfg}
			assert.Equal(t, tc.want, backend.PublicURL(tc.key))
		})
	}
}

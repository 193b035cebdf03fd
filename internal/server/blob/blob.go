package blob

import (
	"context"
	"log/slog"

	"github.com/jmoiron/sqlx"
)

// BlobService owns the remote object store backend and the local upload
// audit index.
type BlobService struct {
	backend Backend
	index   *UploadIndex
}

func NewBlobService(cfg *S3Config, db *sqlx.DB) (*BlobService, error) {
	backend, err := NewS3BackendWithConfig(cfg)
	if err != nil {
		return nil, err
	}

	index, err := newUploadIndex(db)
	if err != nil {
		return nil, err
	}

	svc := &BlobService{
		backend: backend,
		index:   index,
	}

	backend.setHooks(&backendHooks{
		AfterPutObject:    svc.afterPutObject,
		AfterDeleteObject: svc.afterDeleteObject,
	})

	return svc, nil
}

// NewBlobServiceWithBackend wires an existing backend. Used by tests.
func NewBlobServiceWithBackend(backend Backend, db *sqlx.DB) (*BlobService, error) {
	index, err := newUploadIndex(db)
	if err != nil {
		return nil, err
	}
	return &BlobService{backend: backend, index: index}, nil
}

func (b *BlobService) Backend() Backend {
	return b.backend
}

func (b *BlobService) Index() *UploadIndex {
	return b.index
}

func (b *BlobService) Ping(ctx context.Context) error {
	return b.backend.Ping(ctx)
}

func (b *BlobService) afterPutObject(params *PutObjectParams, result *PutObjectResponse) {
	err := b.index.Set(&ObjectInfo{
		Key:          result.Key,
		ETag:         result.ETag,
		Size:         result.Size,
		LastModified: formatIndexTime(result.LastModified),
	})
	if err != nil {
		slog.Warn("upload index set failed", "key", result.Key, "error", err)
	}
}

func (b *BlobService) afterDeleteObject(key string, deleted bool) {
	if !deleted {
		return
	}
	if err := b.index.Remove(key); err != nil {
		slog.Warn("upload index remove failed", "key", key, "error", err)
	}
}

package blob

import (
	"context"
	"io"
	"time"
)

type PutObjectParams struct {
	Key         string
	Body        io.Reader
	Size        int64
	ContentType string
}

type PutObjectResponse struct {
	Key          string
	ETag         string
	Size         int64
	URL          string
	LastModified time.Time
}

type ObjectInfo struct {
	Key          string `json:"key" db:"key"`
	ETag         string `json:"etag" db:"etag"`
	Size         int64  `json:"size" db:"size"`
	LastModified string `json:"lastModified" db:"last_modified"`
}

// Backend is the remote object store collaborator. Implementations must be
// safe for concurrent use.
type Backend interface {
	PutObject(ctx context.Context, params *PutObjectParams) (*PutObjectResponse, error)
	DeleteObject(ctx context.Context, key string) (bool, error)
	ListObjects(ctx context.Context) ([]*ObjectInfo, error)
	Ping(ctx context.Context) error
}

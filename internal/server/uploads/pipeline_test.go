package uploads

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smlmotors/showroom/internal/server/blob"
)

// fakeBackend records PutObject calls and fails on demand.
type fakeBackend struct {
	mu    sync.Mutex
	calls []*blob.PutObjectParams
	// failOn returns an error for params that should fail
	failOn func(*blob.PutObjectParams) error
}

func (f *fakeBackend) PutObject(ctx context.Context, params *blob.PutObjectParams) (*blob.PutObjectResponse, error) {
	f.mu.Lock()
	f.calls = append(f.calls, params)
	f.mu.Unlock()

	if f.failOn != nil {
		if err := f.failOn(params); err != nil {
			return nil, err
		}
	}

	return &blob.PutObjectResponse{
		Key:  params.Key,
		Size: params.Size,
		ETag: "etag",
		URL:  "https://bucket.example.com/" + params.Key,
	}, nil
}

func (f *fakeBackend) DeleteObject(ctx context.Context, key string) (bool, error) {
	return true, nil
}

func (f *fakeBackend) ListObjects(ctx context.Context) ([]*blob.ObjectInfo, error) {
	return nil, nil
}

func (f *fakeBackend) Ping(ctx context.Context) error {
	return nil
}

func (f *fakeBackend) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

var _ blob.Backend = (*fakeBackend)(nil)

func stageArtifact(t *testing.T, dir, name, content string) *Artifact {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return &Artifact{
		Name:        name,
		Path:        path,
		Size:        int64(len(content)),
		ContentType: "image/jpeg",
	}
}

func TestPipelineAllSucceed(t *testing.T) {
	dir := t.TempDir()
	backend := &fakeBackend{}
	pipeline := NewPipeline(backend)

	artifacts := []*Artifact{
		stageArtifact(t, dir, "a.jpg", "aaa"),
		stageArtifact(t, dir, "b.png", "bbb"),
		stageArtifact(t, dir, "c.webp", "ccc"),
	}

	result := pipeline.Process(context.Background(), artifacts)

	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 3, result.Successful)
	assert.Equal(t, 0, result.Failed)
	assert.Len(t, result.Files, 3)
	assert.Equal(t, 3, backend.callCount())

	for _, outcome := range result.Files {
		assert.True(t, outcome.Success)
		assert.NotEmpty(t, outcome.ID)
		assert.True(t, strings.HasPrefix(outcome.URL, "https://bucket.example.com/"))
	}
	assert.Len(t, result.URLs(), 3)
}

func TestPipelinePartialFailure(t *testing.T) {
	dir := t.TempDir()
	backend := &fakeBackend{
		failOn: func(params *blob.PutObjectParams) error {
			if params.ContentType == "image/gif" {
				return errors.New("quota exceeded")
			}
			return nil
		},
	}
	pipeline := NewPipeline(backend)

	failing := stageArtifact(t, dir, "c.gif", "ggg")
	failing.ContentType = "image/gif"

	artifacts := []*Artifact{
		stageArtifact(t, dir, "a.jpg", "aaa"),
		stageArtifact(t, dir, "b.png", "bbb"),
		failing,
	}

	result := pipeline.Process(context.Background(), artifacts)

	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 2, result.Successful)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, result.Total, result.Successful+result.Failed)

	var failure *Outcome
	for i := range result.Files {
		if !result.Files[i].Success {
			failure = &result.Files[i]
		}
	}
	require.NotNil(t, failure)
	assert.Equal(t, "c.gif", failure.Name)
	assert.Contains(t, failure.Error, "quota exceeded")
	assert.Len(t, result.URLs(), 2)
}

func TestPipelineTotalFailure(t *testing.T) {
	dir := t.TempDir()
	backend := &fakeBackend{
		failOn: func(*blob.PutObjectParams) error {
			return errors.New("store unreachable")
		},
	}
	pipeline := NewPipeline(backend)

	artifacts := []*Artifact{
		stageArtifact(t, dir, "a.jpg", "aaa"),
		stageArtifact(t, dir, "b.jpg", "bbb"),
	}

	// total failure is reported, not thrown
	result := pipeline.Process(context.Background(), artifacts)

	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 0, result.Successful)
	assert.Equal(t, 2, result.Failed)
	for _, outcome := range result.Files {
		assert.False(t, outcome.Success)
		assert.NotEmpty(t, outcome.Name)
	}
}

func TestPipelineCleansUpTempFiles(t *testing.T) {
	tests := []struct {
		name   string
		failOn func(*blob.PutObjectParams) error
	}{
		{name: "all succeed", failOn: nil},
		{name: "all fail", failOn: func(*blob.PutObjectParams) error { return errors.New("boom") }},
		{
			name: "partial",
			failOn: func(params *blob.PutObjectParams) error {
				if params.Size == 3 {
					return errors.New("boom")
				}
				return nil
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			pipeline := NewPipeline(&fakeBackend{failOn: tt.failOn})

			artifacts := []*Artifact{
				stageArtifact(t, dir, "a.jpg", "aaa"),
				stageArtifact(t, dir, "b.jpg", "bbbb"),
			}

			pipeline.Process(context.Background(), artifacts)

			for _, artifact := range artifacts {
				_, err := os.Stat(artifact.Path)
				assert.True(t, os.IsNotExist(err), "temp file %s should be gone", artifact.Path)
			}
		})
	}
}

func TestPipelineMissingTempFile(t *testing.T) {
	backend := &fakeBackend{}
	pipeline := NewPipeline(backend)

	artifacts := []*Artifact{{
		Name: "gone.jpg",
		Path: filepath.Join(t.TempDir(), "does-not-exist"),
		Size: 3,
	}}

	result := pipeline.Process(context.Background(), artifacts)

	assert.Equal(t, 1, result.Total)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 0, backend.callCount())
}

func TestPipelineOutcomeSlots(t *testing.T) {
	// outcomes land in input order even with concurrent dispatch
	dir := t.TempDir()
	backend := &fakeBackend{}
	pipeline := NewPipeline(backend)

	var artifacts []*Artifact
	for i := range 8 {
		artifacts = append(artifacts, stageArtifact(t, dir, fmt.Sprintf("img-%d.jpg", i), strings.Repeat("x", i+1)))
	}

	result := pipeline.Process(context.Background(), artifacts)

	require.Len(t, result.Files, 8)
	for i, outcome := range result.Files {
		assert.Equal(t, fmt.Sprintf("img-%d.jpg", i), outcome.Name)
	}
}

func TestObjectKey(t *testing.T) {
	key := objectKey("photo.JPG")
	assert.True(t, strings.HasPrefix(key, "images/"))
	assert.True(t, strings.HasSuffix(key, ".jpg"))
	assert.True(t, blob.ValidKey(key))

	// two keys for the same name never collide
	assert.NotEqual(t, objectKey("a.png"), objectKey("a.png"))

	// oversized extensions are dropped
	assert.False(t, strings.Contains(objectKey("weird.somethingverylong"), "somethingverylong"))
}

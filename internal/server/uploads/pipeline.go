// Package uploads implements the image upload pipeline: a batch of local
// temp files is pushed to the object store one call per file, per-file
// outcomes are aggregated, and the temp files are removed regardless of
// outcome.
package uploads

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/smlmotors/showroom/internal/server/blob"
)

const (
	// MaxBatchSize caps one multi-file request.
	MaxBatchSize = 10

	// keyPrefix namespaces uploaded images inside the bucket.
	keyPrefix = "images"

	// maxConcurrentUploads bounds in-flight object store calls per request.
	maxConcurrentUploads = 4
)

type Pipeline struct {
	backend blob.Backend
}

func NewPipeline(backend blob.Backend) *Pipeline {
	return &Pipeline{backend: backend}
}

// Process uploads every artifact to the object store and aggregates per-file
// outcomes. One failure never aborts the siblings and already-stored objects
// are not rolled back. Each store call is attempted exactly once. All temp
// files are removed before Process returns.
func (p *Pipeline) Process(ctx context.Context, artifacts []*Artifact) *BatchResult {
	defer p.cleanup(artifacts)

	outcomes := make([]Outcome, len(artifacts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentUploads)
	for i, artifact := range artifacts {
		g.Go(func() error {
			// each artifact writes only its own slot
			outcomes[i] = p.uploadOne(gctx, artifact)
			return nil
		})
	}
	g.Wait()

	result := &BatchResult{
		Total: len(artifacts),
		Files: outcomes,
	}
	for _, o := range outcomes {
		if o.Success {
			result.Successful++
		} else {
			result.Failed++
		}
	}

	slog.Info("upload batch done",
		"total", result.Total,
		"successful", result.Successful,
		"failed", result.Failed)

	return result
}

func (p *Pipeline) uploadOne(ctx context.Context, artifact *Artifact) Outcome {
	fd, err := os.Open(artifact.Path)
	if err != nil {
		return Outcome{
			Success: false,
			Name:    artifact.Name,
			Error:   fmt.Sprintf("open temp file: %s", err),
		}
	}
	defer fd.Close()

	key := objectKey(artifact.Name)
	result, err := p.backend.PutObject(ctx, &blob.PutObjectParams{
		Key:         key,
		Body:        fd,
		Size:        artifact.Size,
		ContentType: artifact.ContentType,
	})
	if err != nil {
		slog.Warn("upload failed", "name", artifact.Name, "key", key, "error", err)
		return Outcome{
			Success: false,
			Name:    artifact.Name,
			Error:   err.Error(),
		}
	}

	return Outcome{
		Success: true,
		ID:      result.Key,
		URL:     result.URL,
		Name:    artifact.Name,
	}
}

// cleanup removes every temp file of the request. Failures are logged and
// swallowed so they never mask the upload result.
func (p *Pipeline) cleanup(artifacts []*Artifact) {
	for _, artifact := range artifacts {
		if artifact.Path == "" {
			continue
		}
		if err := os.Remove(artifact.Path); err != nil && !os.IsNotExist(err) {
			slog.Warn("temp file cleanup failed", "path", artifact.Path, "error", err)
		}
	}
}

// objectKey builds a unique store key keeping the original file extension.
func objectKey(name string) string {
	ext := strings.ToLower(path.Ext(name))
	if len(ext) > 8 {
		ext = ""
	}
	return fmt.Sprintf("%s/%s%s", keyPrefix, uuid.New().String(), ext)
}

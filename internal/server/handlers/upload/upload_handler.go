package upload

import (
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/smlmotors/showroom/internal/server/handlers/api"
	"github.com/smlmotors/showroom/internal/server/uploads"
)

const (
	singleFileField = "image"
	multiFileField  = "images"
)

type UploadHandler struct {
	pipeline *uploads.Pipeline
}

func New(pipeline *uploads.Pipeline) *UploadHandler {
	return &UploadHandler{pipeline: pipeline}
}

// Single uploads one image (form field "image") and returns its public URL.
func (h *UploadHandler) Single(ctx *gin.Context) {
	file, err := ctx.FormFile(singleFileField)
	if err != nil {
		api.AbortWithError(ctx, http.StatusBadRequest, api.CodeInvalidRequest,
			errors.New("No file uploaded"))
		return
	}

	artifacts, cleanupDir, err := h.stageArtifacts(ctx, []*multipart.FileHeader{file})
	defer cleanupDir()
	if err != nil {
		api.AbortWithError(ctx, http.StatusBadRequest, api.CodeUploadInvalidFile, err)
		return
	}

	result := h.pipeline.Process(ctx.Request.Context(), artifacts)
	outcome := result.Files[0]
	if !outcome.Success {
		api.AbortWithError(ctx, http.StatusInternalServerError, api.CodeUploadFailed,
			errors.New(outcome.Error))
		return
	}

	api.OK(ctx, http.StatusOK, gin.H{
		"imageUrl": outcome.URL,
		"id":       outcome.ID,
	})
}

// Multiple uploads up to ten images (form field "images") and reports
// per-file outcomes. One failed file never aborts the others.
func (h *UploadHandler) Multiple(ctx *gin.Context) {
	form, err := ctx.MultipartForm()
	if err != nil {
		api.AbortWithError(ctx, http.StatusBadRequest, api.CodeInvalidRequest,
			fmt.Errorf("failed to read multipart form: %w", err))
		return
	}

	files := form.File[multiFileField]
	if err := uploads.ValidateBatchSize(len(files)); err != nil {
		api.AbortWithError(ctx, http.StatusBadRequest, api.CodeInvalidRequest, err)
		return
	}

	artifacts, cleanupDir, err := h.stageArtifacts(ctx, files)
	defer cleanupDir()
	if err != nil {
		api.AbortWithError(ctx, http.StatusBadRequest, api.CodeUploadInvalidFile, err)
		return
	}

	result := h.pipeline.Process(ctx.Request.Context(), artifacts)

	api.OK(ctx, http.StatusOK, gin.H{
		"total":      result.Total,
		"successful": result.Successful,
		"failed":     result.Failed,
		"files":      result.Files,
		"urls":       result.URLs(),
		"message":    fmt.Sprintf("Uploaded %d files successfully", result.Successful),
	})
}

// stageArtifacts persists the multipart parts into a per-request temp dir and
// validates each one server-side before any object store call. Any invalid
// file rejects the whole request. The returned cleanup func removes the temp
// dir; it is safe to call even when staging failed.
func (h *UploadHandler) stageArtifacts(ctx *gin.Context, files []*multipart.FileHeader) ([]*uploads.Artifact, func(), error) {
	tmpDir, err := os.MkdirTemp("", "showroom-upload-")
	if err != nil {
		return nil, func() {}, fmt.Errorf("create temp dir: %w", err)
	}

	cleanupDir := func() {
		if err := os.RemoveAll(tmpDir); err != nil {
			slog.Warn("temp dir cleanup failed", "dir", tmpDir, "error", err)
		}
	}

	artifacts := make([]*uploads.Artifact, 0, len(files))
	for i, file := range files {
		tmpPath := filepath.Join(tmpDir, fmt.Sprintf("part-%d", i))
		if err := ctx.SaveUploadedFile(file, tmpPath); err != nil {
			return nil, cleanupDir, fmt.Errorf("save %s: %w", file.Filename, err)
		}

		mime, err := validateStaged(tmpPath, file.Size)
		if err != nil {
			return nil, cleanupDir, fmt.Errorf("%s: %w", file.Filename, err)
		}

		artifacts = append(artifacts, &uploads.Artifact{
			Name:        file.Filename,
			Path:        tmpPath,
			Size:        file.Size,
			ContentType: mime,
		})
	}

	return artifacts, cleanupDir, nil
}

func validateStaged(path string, size int64) (string, error) {
	fd, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open staged file: %w", err)
	}
	defer fd.Close()
	return uploads.ValidateImage(fd, size)
}

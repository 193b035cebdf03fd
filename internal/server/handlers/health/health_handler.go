package health

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/smlmotors/showroom/internal/server/blob"
	"github.com/smlmotors/showroom/internal/server/cars"
	"github.com/smlmotors/showroom/internal/server/docstore"
	"github.com/smlmotors/showroom/internal/server/handlers/api"
)

type HealthHandler struct {
	docs *docstore.Store
	blob *blob.BlobService
}

func New(docs *docstore.Store, blob *blob.BlobService) *HealthHandler {
	return &HealthHandler{docs: docs, blob: blob}
}

// Check reports liveness plus collaborator reachability.
func (h *HealthHandler) Check(ctx *gin.Context) {
	reqCtx := ctx.Request.Context()

	dbStatus := gin.H{"connected": false}
	if err := h.docs.Ping(reqCtx); err != nil {
		dbStatus["error"] = err.Error()
	} else {
		dbStatus["connected"] = true
		if n, err := h.docs.Count(reqCtx, cars.Collection); err == nil {
			dbStatus["documents"] = n
		}
	}

	storageStatus := gin.H{"connected": false}
	if err := h.blob.Ping(reqCtx); err != nil {
		storageStatus["error"] = err.Error()
	} else {
		storageStatus["connected"] = true
		if n, err := h.blob.Index().Count(); err == nil {
			storageStatus["files"] = n
		}
	}

	if dbStatus["connected"] == false || storageStatus["connected"] == false {
		ctx.PureJSON(http.StatusInternalServerError, gin.H{
			"success":   false,
			"error":     "one or more collaborators unreachable",
			"database":  dbStatus,
			"storage":   storageStatus,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}

	api.OK(ctx, http.StatusOK, gin.H{
		"message":   "API is healthy",
		"database":  dbStatus,
		"storage":   storageStatus,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

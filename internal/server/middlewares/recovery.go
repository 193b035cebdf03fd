package middlewares

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Recovery converts panics into the generic server error envelope so nothing
// unexpected reaches the transport layer uncaught.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(ctx *gin.Context, recovered any) {
		slog.Error("panic recovered", "error", fmt.Sprint(recovered), "path", ctx.Request.URL.Path)
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Internal server error",
		})
	})
}

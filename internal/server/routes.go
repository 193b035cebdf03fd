package server

import (
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	authH "github.com/smlmotors/showroom/internal/server/handlers/auth"
	carsH "github.com/smlmotors/showroom/internal/server/handlers/cars"
	healthH "github.com/smlmotors/showroom/internal/server/handlers/health"
	uploadH "github.com/smlmotors/showroom/internal/server/handlers/upload"
	"github.com/smlmotors/showroom/internal/server/middlewares"
	"github.com/smlmotors/showroom/internal/server/uploads"
	"github.com/smlmotors/showroom/internal/version"
)

func SetupRoutes(svc *Services) http.Handler {
	r := gin.New()
	r.MaxMultipartMemory = uploads.MaxFileSize

	health := healthH.New(svc.Docs, svc.Blob)
	login := authH.New(svc.Auth)
	catalog := carsH.New(svc.Cars)
	upload := uploadH.New(svc.Uploads)

	r.Use(middlewares.Logger())
	r.Use(middlewares.Recovery())
	r.Use(gzip.Gzip(gzip.BestSpeed))
	r.Use(middlewares.CORS())

	r.GET("/", IndexHandler)

	public := r.Group("/api")
	{
		public.GET("/health", health.Check)
		public.POST("/login", login.Login)
		public.GET("/cars", catalog.List)
		public.GET("/cars/:id", catalog.Get)
	}

	protected := r.Group("/api")
	protected.Use(middlewares.JWTAuth(svc.Auth))
	{
		protected.POST("/cars", catalog.Create)
		protected.PUT("/cars/:id", catalog.Update)
		protected.DELETE("/cars/:id", catalog.Delete)
		protected.POST("/upload", upload.Single)
		protected.POST("/upload-multiple", upload.Multiple)
	}

	r.NoRoute(func(c *gin.Context) {
		c.PureJSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   "Route not found",
		})
	})

	r.NoMethod(func(c *gin.Context) {
		c.PureJSON(http.StatusMethodNotAllowed, gin.H{
			"success": false,
			"error":   "Method not allowed",
		})
	})

	return r.Handler()
}

func IndexHandler(ctx *gin.Context) {
	ctx.String(http.StatusOK, version.DetailedWithApp())
}

func init() {
	gin.SetMode(gin.ReleaseMode)
}

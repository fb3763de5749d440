package server

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ebaylistings/internal/handlers"
)

// Routes is implemented by every handler that owns a set of routes.
type Routes interface {
	RegisterRoutes(r *gin.Engine)
}

// NewRouter builds the gin engine: API routes, health check and the static listings page.
func NewRouter(webDir string, log *zap.SugaredLogger, routes ...Routes) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), handlers.RequestLogger(log))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	for _, rt := range routes {
		rt.RegisterRoutes(router)
	}

	router.Static("/static", webDir)
	router.GET("/", func(c *gin.Context) {
		c.File(filepath.Join(webDir, "index.html"))
	})

	return router
}

package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/paymesh/apidocs/internal/spec"
)

// Router handles HTTP routing for the documentation server
type Router struct {
	engine  *gin.Engine
	handler *Handler
}

// NewRouter creates a router serving one built document under basePath
func NewRouter(doc *spec.Document, basePath string) *Router {
	gin.SetMode(gin.ReleaseMode)

	r := &Router{
		engine: gin.New(),
	}

	base := normalizeBasePath(basePath)
	r.handler = NewHandler(doc, base)

	// Setup middleware
	r.engine.Use(gin.Recovery())
	r.engine.Use(corsMiddleware())
	r.engine.Use(requestIDMiddleware())
	r.engine.Use(gin.Logger())

	r.setupRoutes(base)

	return r
}

// setupRoutes configures the documentation routes
func (r *Router) setupRoutes(base string) {
	docs := r.engine.Group(base)
	{
		docs.GET("/", r.handler.SwaggerUI)
		docs.GET("/openapi.json", r.handler.SpecJSON)
		docs.GET("/openapi.yaml", r.handler.SpecYAML)
		docs.GET("/health", r.handler.HealthCheck)
	}

	// Everything else, wrong methods included, gets the structured 404
	r.engine.NoRoute(r.handler.NotFound)
}

// Handler returns the http.Handler
func (r *Router) Handler() http.Handler {
	return r.engine
}

// corsMiddleware adds CORS headers. The documentation surface is read
// only, so only GET and OPTIONS are offered.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// requestIDMiddleware tags every response with a request identifier,
// minting one when the edge proxy did not.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// normalizeBasePath ensures the base path starts with / and doesn't end with /
func normalizeBasePath(basePath string) string {
	if basePath == "" || basePath == "/" {
		return ""
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	return strings.TrimSuffix(basePath, "/")
}

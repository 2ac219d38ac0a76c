package api

import (
	"bytes"
	"html/template"
	"net/http"

	_ "embed"

	"github.com/gin-gonic/gin"
	"github.com/paymesh/apidocs/internal/models"
	"github.com/paymesh/apidocs/internal/spec"
	"github.com/tidwall/gjson"
)

//go:embed swagger.html
var swaggerPage string

var swaggerTemplate = template.Must(template.New("swagger").Parse(swaggerPage))

// Handler serves the documentation endpoints for one built document
type Handler struct {
	doc        *spec.Document
	version    string
	uiPath     string
	jsonPath   string
	yamlPath   string
	healthPath string
}

// NewHandler creates a handler for the given document mounted at basePath
func NewHandler(doc *spec.Document, basePath string) *Handler {
	return &Handler{
		doc: doc,
		// Read the version off the served bytes so health reports what
		// clients actually receive.
		version:    gjson.GetBytes(doc.JSON, "info.version").String(),
		uiPath:     basePath + "/",
		jsonPath:   basePath + "/openapi.json",
		yamlPath:   basePath + "/openapi.yaml",
		healthPath: basePath + "/health",
	}
}

// SwaggerUI renders the UI shell pointing at the JSON document
func (h *Handler) SwaggerUI(c *gin.Context) {
	specURL := requestScheme(c.Request) + "://" + c.Request.Host + h.jsonPath

	var page bytes.Buffer
	err := swaggerTemplate.Execute(&page, map[string]string{
		"Title":   h.doc.Title(),
		"SpecURL": specURL,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render documentation page"})
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", page.Bytes())
}

// SpecJSON serves the rendered document
func (h *Handler) SpecJSON(c *gin.Context) {
	c.Data(http.StatusOK, "application/json", h.doc.JSON)
}

// SpecYAML serves the same JSON bytes under a YAML content type. Several
// downstream tools pick the fetch URL by content type and then sniff the
// body, which parses either way because JSON is a YAML subset. Real YAML
// encoding lives in the export command, not on the HTTP surface.
func (h *Handler) SpecYAML(c *gin.Context) {
	c.Data(http.StatusOK, "application/x-yaml", h.doc.JSON)
}

// HealthCheck reports serving status and advertises the documentation endpoints
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthStatus{
		Success: true,
		Message: "API documentation is available",
		Endpoints: models.DocEndpoints{
			SwaggerUI:   h.uiPath,
			OpenAPIJSON: h.jsonPath,
			OpenAPIYAML: h.yamlPath,
		},
		Version: h.version,
	})
}

// NotFound answers every unmatched route with the documentation surface
func (h *Handler) NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, models.NotFoundResponse{
		Success:            false,
		Error:              "Endpoint not found: " + c.Request.URL.Path,
		AvailableEndpoints: []string{h.uiPath, h.jsonPath, h.yamlPath, h.healthPath},
	})
}

// requestScheme resolves the externally visible scheme for UI links.
// Deployments behind the edge proxy set X-Forwarded-Proto.
func requestScheme(r *http.Request) string {
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		return proto
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}

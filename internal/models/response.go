package models

// DocEndpoints lists the documentation URLs advertised by the health check
type DocEndpoints struct {
	SwaggerUI   string `json:"swagger_ui"`
	OpenAPIJSON string `json:"openapi_json"`
	OpenAPIYAML string `json:"openapi_yaml"`
}

// HealthStatus is the health check payload
type HealthStatus struct {
	Success   bool         `json:"success"`
	Message   string       `json:"message"`
	Endpoints DocEndpoints `json:"endpoints"`
	Version   string       `json:"version"` // Matches info.version of the served document
}

// NotFoundResponse is returned for any route outside the documentation surface
type NotFoundResponse struct {
	Success            bool     `json:"success"`
	Error              string   `json:"error"`
	AvailableEndpoints []string `json:"available_endpoints"`
}

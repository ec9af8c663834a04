// Package routes defines HTTP route constants for the application.
package routes

const (
	// Root
	RootPath = "/"

	// Static and assets
	RobotsPath = "/robots.txt"
	SyntaxCSS  = "/syntax.css"

	// Editor
	APICommand      = "/api/command"
	APIImport       = "/api/import"
	APIExport       = "/api/export"
	PartialsPreview = "/partials/preview"
	PartialsPosts   = "/partials/posts"

	// SSE
	SSEPath = "/sse"
)

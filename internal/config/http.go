package config

const (
	HCType              = "Content-Type"
	HETag               = "ETag"
	HCacheControl       = "Cache-Control"
	HContentDisposition = "Content-Disposition"

	CTypeCSS  = "text/css"
	CTypeHTML = "text/html"
	CTypeJSON = "application/json"
	CTypeSSE  = "text/event-stream"
)

const (
	HTTPErrMethodNotAllowed = "Method not allowed"
	HTTPErrBadCommand       = "Malformed command"
	HTTPErrMissingFile      = "A markdown file is required"
)

// Maximum accepted upload for markdown import.
const MaxImportBytes = 4 << 20

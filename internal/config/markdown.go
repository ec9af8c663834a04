package config

import "regexp"

// Fragments substituted for parser output.
const (
	PreviewPlaceholder = `<div class="text-muted text-center py-5">` +
		`<i class="bi bi-eye-slash fs-1"></i>` +
		`<p class="mt-2">Start typing to see the preview...</p></div>`

	PreviewParseError = `<div class="alert alert-danger">` +
		`<i class="bi bi-exclamation-triangle me-2"></i>` +
		`Error parsing markdown. Please check your syntax.</div>`
)

const DefaultExcerptLength = 150

var (
	// RegexFirstHeading finds the first top-level heading of an imported file.
	RegexFirstHeading = regexp.MustCompile(`(?m)^#\s+(.+)$`)

	// RegexFileExt strips the trailing extension of an imported file name.
	RegexFileExt = regexp.MustCompile(`\.[^/.]+$`)

	// RegexExportUnsafe matches characters replaced in export file names.
	RegexExportUnsafe = regexp.MustCompile(`[^a-zA-Z0-9]`)

	// RegexClassName restricts class attributes let through the sanitizer.
	RegexClassName = regexp.MustCompile(`^[a-zA-Z0-9 _-]+$`)
)

package config

const (
	// Validation notices
	MsgTitleRequired   = "Please enter a post title"
	MsgContentRequired = "Please write some content"

	// Persistence notices
	MsgSaveFailed      = "Error saving posts. Storage might be full."
	MsgLoadFailed      = "Error loading saved posts"
	MsgThemeSaveFailed = "Error saving theme preference"

	// Editor notices
	MsgPostSavedFmt     = "Post %s successfully!"
	MsgPostDeleted      = "Post deleted successfully"
	MsgEditorCleared    = "Editor cleared"
	MsgImported         = "Markdown imported successfully"
	MsgExported         = "Markdown exported successfully"
	MsgNothingToExport  = "No content to export"
	MsgThemeSwitchedFmt = "Switched to %s theme"

	// Confirmation prompts
	PromptClear     = "Are you sure you want to clear the editor? Unsaved changes will be lost."
	PromptImport    = "This will replace current content. Continue?"
	PromptDeleteFmt = "Are you sure you want to delete \"%s\"?"

	// Startup errors
	ErrOpenStorageFmt = "Failed to open storage: %v"
	ErrLoadConfigFmt  = "Failed to load config: %v"
)

package config

const (
	//? These paths must match the paths in the embed directive

	StaticLocalDir = "static"
	StaticUrlPath  = "/" + StaticLocalDir + "/"

	TemplatesLocalDir = "templates"

	TemplateLayout = "layout.html"
	TemplateEditor = "editor.html"
	TemplatePosts  = "posts.html"

	DefaultConfigPath = "config.yaml"
)

// Fixed keys of the persistence collaborator.
const (
	StorageKeyPosts = "blog-posts"
	StorageKeyTheme = "blog-theme"
)

const (
	MarkdownExt    = ".md"
	UntitledExport = "untitled"
	MarkdownCType  = "text/markdown"
)

const (
	EnvConfigPath        = "MDBLOG_CONFIG"
	EnvStorageBackend    = "MDBLOG_STORAGE_BACKEND"
	EnvStoragePath       = "MDBLOG_STORAGE_PATH"
	EnvRedisAddr         = "MDBLOG_REDIS_ADDR"
	EnvRedisPassword     = "MDBLOG_REDIS_PASSWORD"
	EnvS3Bucket          = "MDBLOG_S3_BUCKET"
	EnvS3Endpoint        = "MDBLOG_S3_ENDPOINT"
	EnvS3AccessKeyID     = "MDBLOG_S3_ACCESS_KEY_ID"
	EnvS3SecretAccessKey = "MDBLOG_S3_SECRET_ACCESS_KEY"
	EnvLogLevel          = "MDBLOG_LOG_LEVEL"
)

package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

var configLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	configLogger = l
}

// Config represents the complete configuration structure
type Config struct {
	Site    SiteConfig    `yaml:"site"`
	Server  ServerConfig  `yaml:"server"`
	Theme   ThemeConfig   `yaml:"theme"`
	Editor  EditorConfig  `yaml:"editor"`
	Storage StorageConfig `yaml:"storage"`
	Logging LoggingConfig `yaml:"logging"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" default:"info"`
	Format string `yaml:"format" default:"console"`
}

type SiteConfig struct {
	Name    string `yaml:"name" default:"Markdown Blog"`
	Tagline string `yaml:"tagline" default:"Write, preview, publish"`
}

type ServerConfig struct {
	Host string `yaml:"host" default:"127.0.0.1"`
	Port string `yaml:"port" default:"12600"`
}

type ThemeConfig struct {
	Default            string       `yaml:"default" default:"primary"`
	SyntaxHighlighting SyntaxConfig `yaml:"syntax_highlighting"`
}

type SyntaxConfig struct {
	Primary   string `yaml:"primary" default:"github"`
	Secondary string `yaml:"secondary" default:"gruvbox"`
}

type EditorConfig struct {
	ExcerptLength int  `yaml:"excerpt_length" default:"150"`
	NoticeSeconds int  `yaml:"notice_seconds" default:"5"`
	SeedSamples   bool `yaml:"seed_samples" default:"true"`
	LivePreview   bool `yaml:"live_preview" default:"true"`
	WarmCache     bool `yaml:"warm_cache" default:"true"`
}

// StorageConfig selects the key-value backend that holds the post
// collection and the theme blob.
type StorageConfig struct {
	Backend    string      `yaml:"backend" default:"sqlite"`
	Path       string      `yaml:"path" default:"./mdblog.db"`
	QuotaBytes int         `yaml:"quota_bytes" default:"5242880"`
	Codec      string      `yaml:"codec" default:"zstd"`
	Redis      RedisConfig `yaml:"redis"`
	S3         S3Config    `yaml:"s3"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" default:"localhost:6379"`
	Password string `yaml:"password" default:""`
	DB       int    `yaml:"db" default:"0"`
	Prefix   string `yaml:"prefix" default:"mdblog:"`
}

type S3Config struct {
	Bucket          string `yaml:"bucket" default:""`
	Endpoint        string `yaml:"endpoint" default:""`
	Region          string `yaml:"region" default:"auto"`
	Prefix          string `yaml:"prefix" default:"mdblog/"`
	AccessKeyID     string `yaml:"access_key_id" default:""`
	SecretAccessKey string `yaml:"secret_access_key" default:""`
}

var AppConfig *Config

// Default returns a Config with every default tag applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func LoadConfig(path string) error {
	config := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		// If file doesn't exist, just use defaults
		configLogger.Info().Str("path", path).Msg("Config file not found, using defaults")
		applyEnv(config)
		AppConfig = config
		return nil
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	applyEnv(config)
	AppConfig = config
	return nil
}

// applyEnv lets secrets and deployment-specific values come from the
// environment (or a .env file) instead of config.yaml.
func applyEnv(c *Config) {
	overrides := map[string]*string{
		EnvStorageBackend:    &c.Storage.Backend,
		EnvStoragePath:       &c.Storage.Path,
		EnvRedisAddr:         &c.Storage.Redis.Addr,
		EnvRedisPassword:     &c.Storage.Redis.Password,
		EnvS3Bucket:          &c.Storage.S3.Bucket,
		EnvS3Endpoint:        &c.Storage.S3.Endpoint,
		EnvS3AccessKeyID:     &c.Storage.S3.AccessKeyID,
		EnvS3SecretAccessKey: &c.Storage.S3.SecretAccessKey,
		EnvLogLevel:          &c.Logging.Level,
	}
	for env, field := range overrides {
		if v, ok := os.LookupEnv(env); ok && v != "" {
			*field = v
		}
	}
}

func ApplyDefaults(config interface{}) {
	applyDefaults(config)
}

func applyDefaults(config interface{}) {
	v := reflect.ValueOf(config)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		return
	}

	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)

		if !field.IsValid() || !field.CanSet() {
			continue
		}

		if field.Kind() == reflect.Struct {
			applyDefaults(field.Addr().Interface())
			continue
		}

		defaultValue := fieldType.Tag.Get("default")
		if defaultValue == "" {
			continue
		}

		switch field.Kind() {
		case reflect.String:
			field.SetString(defaultValue)
		case reflect.Bool:
			if val, err := strconv.ParseBool(defaultValue); err == nil {
				field.SetBool(val)
			}
		case reflect.Int, reflect.Int64:
			if val, err := strconv.ParseInt(defaultValue, 10, 64); err == nil {
				field.SetInt(val)
			}
		case reflect.Float64:
			if val, err := strconv.ParseFloat(defaultValue, 64); err == nil {
				field.SetFloat(val)
			}
		case reflect.Slice:
			if field.Len() == 0 && field.Type().Elem().Kind() == reflect.String {
				parts := strings.Split(defaultValue, ",")
				slice := reflect.MakeSlice(field.Type(), len(parts), len(parts))
				for j, part := range parts {
					slice.Index(j).SetString(strings.TrimSpace(part))
				}
				field.Set(slice)
			}
		default:
			configLogger.Warn().
				Str("field_name", fieldType.Name).
				Str("field_type", field.Kind().String()).
				Msg("Unsupported field type for default value")
		}
	}
}

package config

import (
	"errors"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration for the mindhaven backend service.
type Config struct {
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	OpenAI    OpenAIConfig
	Storage   StorageConfig
	Worker    WorkerConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host      string `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port      string `envconfig:"SERVER_PORT" default:"8080"`
	JWTSecret string `envconfig:"JWT_SECRET" required:"true"`
}

// DatabaseConfig holds PostgreSQL configuration.
type DatabaseConfig struct {
	DSN string `envconfig:"DATABASE_DSN" required:"true"`
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	URI string `envconfig:"REDIS_URI" required:"true"`
}

// OpenAIConfig holds chat-completion API configuration.
type OpenAIConfig struct {
	APIKey  string `envconfig:"OPENAI_API_KEY" required:"true"`
	Model   string `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`
	BaseURL string `envconfig:"OPENAI_BASE_URL" default:"https://api.openai.com/v1"`
}

// StorageConfig holds object storage configuration for voice recordings.
type StorageConfig struct {
	Endpoint       string        `envconfig:"STORAGE_ENDPOINT" required:"true"`
	AccessKey      string        `envconfig:"STORAGE_ACCESS_KEY" required:"true"`
	SecretKey      string        `envconfig:"STORAGE_SECRET_KEY" required:"true"`
	Bucket         string        `envconfig:"STORAGE_BUCKET" default:"mindhaven-audio"`
	UseSSL         bool          `envconfig:"STORAGE_USE_SSL" default:"false"`
	UploadExpiry   time.Duration `envconfig:"STORAGE_UPLOAD_EXPIRY" default:"15m"`
	DownloadExpiry time.Duration `envconfig:"STORAGE_DOWNLOAD_EXPIRY" default:"1h"`
}

// WorkerConfig holds reply worker configuration.
type WorkerConfig struct {
	JobTimeout time.Duration `envconfig:"WORKER_JOB_TIMEOUT" default:"90s"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks configuration for logical errors beyond required fields.
func (c *Config) Validate() error {
	if c.Worker.JobTimeout <= 0 {
		return errors.New("worker job timeout must be positive")
	}
	if c.Storage.UploadExpiry <= 0 {
		return errors.New("storage upload expiry must be positive")
	}
	if c.Storage.DownloadExpiry <= 0 {
		return errors.New("storage download expiry must be positive")
	}
	return nil
}

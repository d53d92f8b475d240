// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Config holds every setting the binary reads. Callers are expected to have
// run godotenv.Load() before Load so that a local .env file is honoured.
type Config struct {
	Port        int    `validate:"min=1,max=65535"`
	LogLevel    string `validate:"oneof=debug info warn error"`
	SkillsFile  string `validate:"omitempty,file"`
	DBURL       string
	MaxUploadMB int `validate:"min=1,max=100"`

	Worker WorkerConfig
}

// WorkerConfig is only required by the broker worker.
type WorkerConfig struct {
	RabbitMQURL string `validate:"required,url"`
	R2          R2Config
	S3Endpoint  string `validate:"omitempty,url"`
	Count       int    `validate:"min=1,max=64"`
}

// R2Config locates the bucket holding uploaded resumes. AccountID may be
// left empty when S3_ENDPOINT points somewhere else.
type R2Config struct {
	AccountID string
	Bucket    string `validate:"required"`
	AccessKey string `validate:"required"`
	SecretKey string `validate:"required"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads the environment and applies defaults. It does not validate the
// worker section; see ValidateWorker.
func Load() (*Config, error) {
	port, err := intEnv("PORT", 8080)
	if err != nil {
		return nil, err
	}
	maxUpload, err := intEnv("MAX_UPLOAD_MB", 10)
	if err != nil {
		return nil, err
	}
	workers, err := intEnv("WORKER_COUNT", 3)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:        port,
		LogLevel:    strings.ToLower(stringEnv("LOG_LEVEL", "info")),
		SkillsFile:  os.Getenv("SKILLS_FILE"),
		DBURL:       os.Getenv("DB_URL"),
		MaxUploadMB: maxUpload,
		Worker: WorkerConfig{
			RabbitMQURL: os.Getenv("RABBITMQ_URL"),
			R2: R2Config{
				AccountID: os.Getenv("R2_ACCOUNT_ID"),
				Bucket:    os.Getenv("R2_BUCKET"),
				AccessKey: os.Getenv("R2_ACCESS_KEY"),
				SecretKey: os.Getenv("R2_SECRET_KEY"),
			},
			S3Endpoint: os.Getenv("S3_ENDPOINT"),
			Count:      workers,
		},
	}
	return cfg, nil
}

// Validate checks the settings shared by every command.
func (c *Config) Validate() error {
	if err := validate.StructExcept(c, "Worker"); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// ValidateWorker checks the broker and object storage settings.
func (c *Config) ValidateWorker() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := validate.Struct(c.Worker); err != nil {
		return fmt.Errorf("worker config error: %w", err)
	}
	if c.Worker.R2.AccountID == "" && c.Worker.S3Endpoint == "" {
		return fmt.Errorf("worker config error: R2_ACCOUNT_ID or S3_ENDPOINT is required")
	}
	return nil
}

// MaxUploadBytes is the upload cap in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

// R2Endpoint is the S3-compatible endpoint the worker downloads from.
func (c *Config) R2Endpoint() string {
	if c.Worker.S3Endpoint != "" {
		return c.Worker.S3Endpoint
	}
	return fmt.Sprintf("https://%s.r2.cloudflarestorage.com", c.Worker.R2.AccountID)
}

func stringEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("config error: %s must be an integer, got %q", key, raw)
	}
	return v, nil
}

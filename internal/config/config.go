package config

import (
	"fmt"

	"github.com/caarlos0/env/v6"
)

// Config holds service configuration, loaded from the environment.
type Config struct {
	// Port is the HTTP listen port.
	Port string `env:"PORT" envDefault:"8080"`

	// LogLevel is a zerolog level name (debug, info, warn, error).
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// MaxUploadBytes caps the in-memory size of one multipart upload.
	MaxUploadBytes int64 `env:"MAX_UPLOAD_BYTES" envDefault:"33554432"`

	// WorkerCount is the number of concurrent batch-processing workers.
	WorkerCount int `env:"WORKER_COUNT" envDefault:"4"`

	// QueueSize is the batch job queue buffer size.
	QueueSize int `env:"QUEUE_SIZE" envDefault:"100"`
}

// Load reads configuration from the environment, applying defaults for
// anything unset.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	return cfg, nil
}

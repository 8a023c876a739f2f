package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Auth
	APIKey string

	// Formatter
	MaxInputBytes  int64
	MaxRenderDepth int
	HighlightStyle string

	// Batch pipeline
	WorkerCount   int
	MaxQueueSize  int
	MaxBatchItems int
	JobTTL        time.Duration
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8091"),

		APIKey: os.Getenv("REPLYFMT_API_KEY"),

		MaxInputBytes:  envInt64("MAX_INPUT_BYTES", 1048576), // 1MB
		MaxRenderDepth: envInt("MAX_RENDER_DEPTH", 8),
		HighlightStyle: envOr("HIGHLIGHT_STYLE", "github"),

		WorkerCount:   envInt("WORKER_COUNT", 4),
		MaxQueueSize:  envInt("MAX_QUEUE_SIZE", 100),
		MaxBatchItems: envInt("MAX_BATCH_ITEMS", 50),
		JobTTL:        envDuration("JOB_TTL", 1*time.Hour),
	}

	if cfg.MaxInputBytes <= 0 {
		cfg.MaxInputBytes = 1048576
	}
	if cfg.MaxRenderDepth <= 0 {
		cfg.MaxRenderDepth = 8
	}
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxBatchItems <= 0 {
		cfg.MaxBatchItems = 50
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("REPLYFMT_API_KEY is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

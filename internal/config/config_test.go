package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()
	if cfg.Port != "8091" {
		t.Errorf("expected default port 8091, got %q", cfg.Port)
	}
	if cfg.MaxInputBytes != 1048576 {
		t.Errorf("expected 1MB input cap, got %d", cfg.MaxInputBytes)
	}
	if cfg.MaxRenderDepth != 8 {
		t.Errorf("expected default depth 8, got %d", cfg.MaxRenderDepth)
	}
	if cfg.HighlightStyle != "github" {
		t.Errorf("expected github style, got %q", cfg.HighlightStyle)
	}
	if cfg.JobTTL != time.Hour {
		t.Errorf("expected 1h job TTL, got %v", cfg.JobTTL)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("MAX_RENDER_DEPTH", "3")
	t.Setenv("JOB_TTL", "30m")
	t.Setenv("WORKER_COUNT", "junk")

	cfg := Load()
	if cfg.Port != "9000" {
		t.Errorf("expected port override, got %q", cfg.Port)
	}
	if cfg.MaxRenderDepth != 3 {
		t.Errorf("expected depth override, got %d", cfg.MaxRenderDepth)
	}
	if cfg.JobTTL != 30*time.Minute {
		t.Errorf("expected TTL override, got %v", cfg.JobTTL)
	}
	if cfg.WorkerCount != 4 {
		t.Errorf("expected unparseable worker count to fall back, got %d", cfg.WorkerCount)
	}
}

func TestLoad_NonPositiveValuesFallBack(t *testing.T) {
	t.Setenv("MAX_RENDER_DEPTH", "-1")
	t.Setenv("MAX_QUEUE_SIZE", "0")

	cfg := Load()
	if cfg.MaxRenderDepth != 8 {
		t.Errorf("expected negative depth replaced, got %d", cfg.MaxRenderDepth)
	}
	if cfg.MaxQueueSize != 100 {
		t.Errorf("expected zero queue size replaced, got %d", cfg.MaxQueueSize)
	}
}

func TestValidate(t *testing.T) {
	cfg := Config{}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error without api key")
	}
	cfg.APIKey = "k"
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

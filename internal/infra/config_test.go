package infra

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("GEMINI_MODEL", "")
	t.Setenv("GEMINI_BASE_URL", "")
	t.Setenv("OUTPUT_DIR", "")
	t.Setenv("JPEG_QUALITY", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Port != "7860" {
		t.Fatalf("Port = %q, want 7860", cfg.Port)
	}
	if cfg.GeminiModel != "gemini-2.5-flash-image-preview" {
		t.Fatalf("GeminiModel = %q", cfg.GeminiModel)
	}
	if cfg.GeminiBaseURL != "https://generativelanguage.googleapis.com/v1beta" {
		t.Fatalf("GeminiBaseURL = %q", cfg.GeminiBaseURL)
	}
	if cfg.OutputDir != "generated" {
		t.Fatalf("OutputDir = %q", cfg.OutputDir)
	}
	if cfg.JPEGQuality != 90 {
		t.Fatalf("JPEGQuality = %d, want 90", cfg.JPEGQuality)
	}
	if cfg.GeminiTimeout != 120*time.Second {
		t.Fatalf("GeminiTimeout = %s", cfg.GeminiTimeout)
	}
}

func TestLoadConfigOverridesAndClamps(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("GEMINI_MODEL", "custom-model")
	t.Setenv("JPEG_QUALITY", "250")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "5")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Port != "9000" {
		t.Fatalf("Port = %q", cfg.Port)
	}
	if cfg.GeminiModel != "custom-model" {
		t.Fatalf("GeminiModel = %q", cfg.GeminiModel)
	}
	if cfg.JPEGQuality != 90 {
		t.Fatalf("out-of-range quality should clamp to 90, got %d", cfg.JPEGQuality)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Fatalf("AllowedOrigins = %#v", cfg.AllowedOrigins)
	}
	if cfg.RateLimitPerMin != 5 {
		t.Fatalf("RateLimitPerMin = %d", cfg.RateLimitPerMin)
	}
}

package config

import (
	"testing"
)

// TestLoadDefaults tests that nothing is required
func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Expected default host 127.0.0.1, got %s", cfg.Server.Host)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("Expected default port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Upload.MaxFileSize != defaultMaxUpload {
		t.Errorf("Expected default upload limit %d, got %d", int64(defaultMaxUpload), cfg.Upload.MaxFileSize)
	}
}

// TestLoadOverrides tests environment overrides
func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("RACI_FILE", "/data/matrix.xlsx")
	t.Setenv("MAX_UPLOAD_BYTES", "1024")

	cfg := Load()
	if cfg.Server.Port != "9090" {
		t.Errorf("Expected port 9090, got %s", cfg.Server.Port)
	}
	if cfg.Data.File != "/data/matrix.xlsx" {
		t.Errorf("Expected RACI_FILE override, got %s", cfg.Data.File)
	}
	if cfg.Upload.MaxFileSize != 1024 {
		t.Errorf("Expected upload limit 1024, got %d", cfg.Upload.MaxFileSize)
	}
}

// TestLoadBadInt tests that unparseable numbers fall back to the default
func TestLoadBadInt(t *testing.T) {
	t.Setenv("MAX_UPLOAD_BYTES", "lots")

	cfg := Load()
	if cfg.Upload.MaxFileSize != defaultMaxUpload {
		t.Errorf("Expected default for bad int, got %d", cfg.Upload.MaxFileSize)
	}
}

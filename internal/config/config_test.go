package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("missing file should fall back to defaults: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Series.A.Code != "V39079" || cfg.Series.B.Code != "FXUSDCAD" {
		t.Errorf("series = %q/%q, want V39079/FXUSDCAD", cfg.Series.A.Code, cfg.Series.B.Code)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("server:\n  port: \"9090\"\nseries:\n  a:\n    code: AAA\n    label: First\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SERIES_A", "BBB")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("port = %q, want 9090 from file", cfg.Server.Port)
	}
	if cfg.Series.A.Code != "BBB" {
		t.Errorf("series.a = %q, env should override the file", cfg.Series.A.Code)
	}
}

func TestValidate_SameSeries(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	cfg.Series.B.Code = cfg.Series.A.Code
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for identical series codes")
	}
}

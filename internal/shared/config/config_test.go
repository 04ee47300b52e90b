package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("USE_S3", "")
	t.Setenv("WORKER_CONCURRENCY", "")

	cfg := Load()

	if cfg.Port != "8080" {
		t.Fatalf("unexpected port: %q", cfg.Port)
	}
	if cfg.UseS3 {
		t.Fatalf("expected local dataset source by default")
	}
	if cfg.WorkerConcurrency != 4 {
		t.Fatalf("unexpected concurrency: %d", cfg.WorkerConcurrency)
	}
	if cfg.PublicBaseURL != "http://localhost:8080" {
		t.Fatalf("unexpected base url: %q", cfg.PublicBaseURL)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("USE_S3", "True")
	t.Setenv("S3_BUCKET", "daas-data")
	t.Setenv("WORKER_CONCURRENCY", "8")
	t.Setenv("PUBLIC_BASE_URL", "https://api.example.com/")

	cfg := Load()

	if !cfg.UseS3 {
		t.Fatalf("expected USE_S3=True to enable the remote source")
	}
	if cfg.S3Bucket != "daas-data" {
		t.Fatalf("unexpected bucket: %q", cfg.S3Bucket)
	}
	if cfg.WorkerConcurrency != 8 {
		t.Fatalf("unexpected concurrency: %d", cfg.WorkerConcurrency)
	}
	if cfg.PublicBaseURL != "https://api.example.com" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.PublicBaseURL)
	}
}

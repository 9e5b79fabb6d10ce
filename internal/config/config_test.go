package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	content := `
app:
  work_dir: /tmp/vec
  log_level: debug
corpus:
  path: /data/corpus
  language: jap
  left_ctx_size: 3
  right_ctx_size: 1
vocab:
  min_frequency: 5
server:
  port: 9000
qdrant:
  host: localhost
  collection: words
`
	path := filepath.Join(t.TempDir(), "app.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Corpus.Path != "/data/corpus" {
		t.Errorf("expected corpus path '/data/corpus', got %q", cfg.Corpus.Path)
	}
	if cfg.Corpus.Language != "jap" {
		t.Errorf("expected language 'jap', got %q", cfg.Corpus.Language)
	}
	if cfg.Corpus.LeftCtxSize != 3 || cfg.Corpus.RightCtxSize != 1 {
		t.Errorf("unexpected window sizes: %d/%d", cfg.Corpus.LeftCtxSize, cfg.Corpus.RightCtxSize)
	}
	if cfg.Vocab.MinFrequency != 5 {
		t.Errorf("expected min frequency 5, got %d", cfg.Vocab.MinFrequency)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Server.Port)
	}
	if cfg.Qdrant.Collection != "words" {
		t.Errorf("expected collection 'words', got %q", cfg.Qdrant.Collection)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.yaml")
	if err := os.WriteFile(path, []byte("corpus:\n  path: /data\n"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Corpus.Language != "eng" {
		t.Errorf("expected default language 'eng', got %q", cfg.Corpus.Language)
	}
	if cfg.Corpus.LeftCtxSize != 2 || cfg.Corpus.RightCtxSize != 2 {
		t.Errorf("expected default window 2/2, got %d/%d", cfg.Corpus.LeftCtxSize, cfg.Corpus.RightCtxSize)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Qdrant.Port != 6334 {
		t.Errorf("expected default qdrant port 6334, got %d", cfg.Qdrant.Port)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig("/nonexistent/app.yaml"); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoadConfig_NegativeWindow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.yaml")
	if err := os.WriteFile(path, []byte("corpus:\n  left_ctx_size: -1\n"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for negative window size")
	}
}

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Config is the application configuration, loaded from a single yaml file.
type Config struct {
	App        AppConfig        `yaml:"app"`
	Corpus     CorpusConfig     `yaml:"corpus"`
	Vocab      VocabConfig      `yaml:"vocab"`
	Embeddings EmbeddingsConfig `yaml:"embeddings"`
	Server     ServerConfig     `yaml:"server"`
	Qdrant     QdrantConfig     `yaml:"qdrant"`
}

type AppConfig struct {
	WorkDir  string `yaml:"work_dir"`
	LogLevel string `yaml:"log_level"`
}

type CorpusConfig struct {
	Path         string `yaml:"path"`
	Language     string `yaml:"language"`
	LeftCtxSize  int    `yaml:"left_ctx_size"`
	RightCtxSize int    `yaml:"right_ctx_size"`
}

type VocabConfig struct {
	MinFrequency int64  `yaml:"min_frequency"`
	Dir          string `yaml:"dir"`
}

type EmbeddingsConfig struct {
	Dir       string `yaml:"dir"`
	Normalize bool   `yaml:"normalize"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type QdrantConfig struct {
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	APIKey     string `yaml:"api_key"`
	Collection string `yaml:"collection"`
}

// LoadConfig reads and validates the yaml configuration at path, filling in
// defaults for optional fields.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.applyDefaults()
	if cfg.Corpus.LeftCtxSize < 0 || cfg.Corpus.RightCtxSize < 0 {
		return nil, fmt.Errorf("context window sizes must be non-negative")
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.App.WorkDir == "" {
		c.App.WorkDir = "."
	}
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.Corpus.Language == "" {
		c.Corpus.Language = "eng"
	}
	if c.Corpus.LeftCtxSize == 0 && c.Corpus.RightCtxSize == 0 {
		c.Corpus.LeftCtxSize = 2
		c.Corpus.RightCtxSize = 2
	}
	if c.Vocab.MinFrequency == 0 {
		c.Vocab.MinFrequency = 1
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Qdrant.Port == 0 {
		c.Qdrant.Port = 6334
	}
	if c.Qdrant.Collection == "" {
		c.Qdrant.Collection = "word_embeddings"
	}
}

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultPromptTemplate wraps the retrieved context and the question for
// the generation service.
const DefaultPromptTemplate = "Use the following context to answer the question:\n\n{{.Context}}\n\nQuestion: {{.Query}}"

// Config holds all configuration for the pdfqa tool.
type Config struct {
	Chunk      ChunkConfig      `yaml:"chunk"`
	Retrieve   RetrieveConfig   `yaml:"retrieve"`
	Generation GenerationConfig `yaml:"generation"`
	Storage    StorageConfig    `yaml:"storage"`
	Ingest     IngestConfig     `yaml:"ingest"`
	Server     ServerConfig     `yaml:"server"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// ChunkConfig holds chunking configuration.
type ChunkConfig struct {
	MaxSize int `yaml:"max_size"` // soft upper bound on chunk length in bytes
}

// RetrieveConfig holds ranking configuration.
type RetrieveConfig struct {
	TopK          int     `yaml:"top_k"`
	MinScore      float64 `yaml:"min_score"`
	SurfaceWeight float64 `yaml:"surface_weight"` // dampening applied to bigram similarity
	Stemming      bool    `yaml:"stemming"`
}

// GenerationConfig holds configuration for the hosted text-generation service.
type GenerationConfig struct {
	Provider            string  `yaml:"provider"` // "gemini", "openai", "ollama", "none"
	Model               string  `yaml:"model"`
	BaseURL             string  `yaml:"base_url"` // empty selects the provider's public endpoint
	APIKeyEnv           string  `yaml:"api_key_env"`
	Temperature         float64 `yaml:"temperature"`
	MaxOutputTokens     int     `yaml:"max_output_tokens"`
	TimeoutSecs         int     `yaml:"timeout_secs"`
	MaxRetries          int     `yaml:"max_retries"`
	PromptTemplate      string  `yaml:"prompt_template"`
	BreakerFailures     int     `yaml:"breaker_failures"`
	BreakerCooldownSecs int     `yaml:"breaker_cooldown_secs"`
}

// StorageConfig selects where corpora are kept.
type StorageConfig struct {
	Backend  string `yaml:"backend"` // "json", "bolt", "memory"
	Dir      string `yaml:"dir"`
	BoltPath string `yaml:"bolt_path"`
}

// IngestConfig holds the patterns used when ingesting a directory.
type IngestConfig struct {
	Includes []string `yaml:"includes"`
	Excludes []string `yaml:"excludes"`
}

// ServerConfig holds HTTP API configuration.
type ServerConfig struct {
	Addr         string `yaml:"addr"`
	MaxUploadMB  int    `yaml:"max_upload_mb"`
	CacheSize    int    `yaml:"cache_size"` // loaded corpora kept in memory; 0 disables
	CacheTTLSecs int    `yaml:"cache_ttl_secs"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Chunk: ChunkConfig{
			MaxSize: 800,
		},
		Retrieve: RetrieveConfig{
			TopK:          5,
			MinScore:      0.01,
			SurfaceWeight: 0.6,
			Stemming:      true,
		},
		Generation: GenerationConfig{
			Provider:            "gemini",
			Model:               "gemini-1.5-flash",
			BaseURL:             "",
			APIKeyEnv:           "GEMINI_API_KEY",
			Temperature:         0.2,
			MaxOutputTokens:     500,
			TimeoutSecs:         10,
			MaxRetries:          2,
			PromptTemplate:      DefaultPromptTemplate,
			BreakerFailures:     5,
			BreakerCooldownSecs: 30,
		},
		Storage: StorageConfig{
			Backend:  "json",
			Dir:      "chunks",
			BoltPath: filepath.Join(".pdfqa", "corpora.db"),
		},
		Ingest: IngestConfig{
			Includes: []string{"**/*.pdf", "**/*.PDF"},
			Excludes: []string{"**/.git/**", "**/node_modules/**", "**/.pdfqa/**"},
		},
		Server: ServerConfig{
			Addr:         ":8080",
			MaxUploadMB:  32,
			CacheSize:    64,
			CacheTTLSecs: 60,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for pdfqa.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "pdfqa.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".pdfqa", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects settings the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.Chunk.MaxSize <= 0 {
		return fmt.Errorf("chunk.max_size must be positive, got %d", c.Chunk.MaxSize)
	}
	if c.Retrieve.TopK <= 0 {
		return fmt.Errorf("retrieve.top_k must be positive, got %d", c.Retrieve.TopK)
	}
	switch c.Storage.Backend {
	case "json", "bolt", "memory":
	default:
		return fmt.Errorf("unknown storage backend: %s", c.Storage.Backend)
	}
	switch c.Generation.Provider {
	case "gemini", "openai", "ollama", "none":
	default:
		return fmt.Errorf("unknown generation provider: %s", c.Generation.Provider)
	}
	return nil
}

// Resolve makes relative storage paths relative to dir.
func (c *Config) Resolve(dir string) {
	if !filepath.IsAbs(c.Storage.Dir) {
		c.Storage.Dir = filepath.Join(dir, c.Storage.Dir)
	}
	if !filepath.IsAbs(c.Storage.BoltPath) {
		c.Storage.BoltPath = filepath.Join(dir, c.Storage.BoltPath)
	}
}

// EnsureDataDir ensures the directory holding the bolt database exists.
func (c *Config) EnsureDataDir() error {
	return os.MkdirAll(filepath.Dir(c.Storage.BoltPath), 0755)
}

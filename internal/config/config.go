package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type ServerConfig struct {
	Port      string `toml:"port"`
	UploadDir string `toml:"upload_dir"`
}

type LLMConfig struct {
	Provider       string `toml:"provider"`
	Model          string `toml:"model"`
	EmbeddingModel string `toml:"embedding_model"`
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
}

type WeatherConfig struct {
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url"`
}

type IndexConfig struct {
	Dimension int `toml:"dimension"`
}

type PathsConfig struct {
	Taxonomy  string `toml:"taxonomy"`
	Capsule   string `toml:"capsule"`
	Knowledge string `toml:"knowledge"`
	Database  string `toml:"database"`
}

type Config struct {
	Server  ServerConfig  `toml:"server"`
	LLM     LLMConfig     `toml:"llm"`
	Weather WeatherConfig `toml:"weather"`
	Index   IndexConfig   `toml:"index"`
	Paths   PathsConfig   `toml:"paths"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// ApplyEnv overrides config values with environment variables when present.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		c.LLM.Provider = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv("LLM_EMBEDDING_MODEL"); v != "" {
		c.LLM.EmbeddingModel = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		c.LLM.BaseURL = v
	}
	if v := os.Getenv("OPENWEATHER_API_KEY"); v != "" {
		c.Weather.APIKey = v
	}
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Port = v
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Server.UploadDir == "" {
		c.Server.UploadDir = "uploads"
	}
	if c.Index.Dimension == 0 {
		c.Index.Dimension = 512
	}
	if c.Paths.Taxonomy == "" {
		c.Paths.Taxonomy = "config/taxonomy.toml"
	}
	if c.Paths.Capsule == "" {
		c.Paths.Capsule = "config/capsule.toml"
	}
	if c.Paths.Knowledge == "" {
		c.Paths.Knowledge = "config/fashion_guide.md"
	}
	if c.Paths.Database == "" {
		c.Paths.Database = "wardrobe.db"
	}
}

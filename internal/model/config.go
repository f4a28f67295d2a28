package model

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds the full insightsgpt configuration.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Cache      CacheConfig      `yaml:"cache"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit"`
	Output     OutputConfig     `yaml:"output"`
	Keys       KeyConfig        `yaml:"keys"`
	Similarity SimilarityConfig `yaml:"similarity"`
}

// HTTPConfig controls the shared HTTP client.
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	UserAgent    string        `yaml:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
	MaxRetries   int           `yaml:"max_retries"`
	HTTPProxy    string        `yaml:"http_proxy,omitempty"`
	HTTPSProxy   string        `yaml:"https_proxy,omitempty"`
}

// CacheConfig controls GET response caching.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Dir     string        `yaml:"dir"`
	TTL     time.Duration `yaml:"ttl"`
}

// RateLimitConfig controls per-host request pacing.
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// OutputConfig controls where fetched JSON lands.
type OutputConfig struct {
	DataDir string `yaml:"data_dir"`
	Verbose bool   `yaml:"verbose"`
}

// KeyConfig carries per-API credentials. Keys are normally supplied via
// environment variables, never written to the config file.
type KeyConfig struct {
	Congress    string `yaml:"-"`
	Regulations string `yaml:"-"`
	GovInfo     string `yaml:"-"`
	FEC         string `yaml:"-"`
	LDA         string `yaml:"-"`
	News        string `yaml:"-"`
	OpenAI      string `yaml:"-"`
}

// SimilarityConfig controls the bill similarity detector.
type SimilarityConfig struct {
	Provider    string  `yaml:"provider"`
	Model       string  `yaml:"model"`
	BaseURL     string  `yaml:"base_url,omitempty"`
	SegmentSize int     `yaml:"segment_size"`
	Overlap     int     `yaml:"overlap"`
	Threshold   float64 `yaml:"threshold"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	return &Config{
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "insightsgpt/1.1 (+https://github.com/insightsgpt/insightsgpt)",
			MaxBodyBytes: 10_000_000,
			MaxRetries:   3,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     filepath.Join(home, ".insightsgpt", "cache"),
			TTL:     time.Hour,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 1,
			Burst:             3,
		},
		Output: OutputConfig{
			DataDir: "data",
		},
		Keys: KeysFromEnv(),
		Similarity: SimilarityConfig{
			Provider:    "openai",
			Model:       "text-embedding-3-small",
			SegmentSize: 100,
			Overlap:     20,
			Threshold:   0.8,
		},
	}
}

// KeysFromEnv loads all API keys from the environment.
func KeysFromEnv() KeyConfig {
	return KeyConfig{
		Congress:    os.Getenv("CONGRESS_API_KEY"),
		Regulations: os.Getenv("REGULATIONS_API_KEY"),
		GovInfo:     os.Getenv("GOVINFO_API_KEY"),
		FEC:         os.Getenv("FEC_API_KEY"),
		LDA:         os.Getenv("LDA_API_KEY"),
		News:        os.Getenv("NEWS_API_KEY"),
		OpenAI:      os.Getenv("OPENAI_API_KEY"),
	}
}

// Package config provides configuration for the SmartMatch analysis service.
// Configuration is read once at startup from the environment (prefix
// SMARTMATCH_) with an optional config file, producing an immutable value
// that is passed into each component's constructor.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Limits preserved as external-interface contracts. The config struct
// carries them so components never reach for package-level state, but the
// default values are fixed by the analysis protocol.
const (
	// DefaultMaxLLMKeywords caps the keyword list from the completion path.
	DefaultMaxLLMKeywords = 30
	// DefaultMaxHeuristicKeywords caps the keyword list from the local fallback.
	DefaultMaxHeuristicKeywords = 50
	// DefaultChunkSize is the chunk length (runes) for semantic comparison.
	DefaultChunkSize = 1000
	// DefaultChunkOverlap is the overlap (runes) between adjacent chunks.
	DefaultChunkOverlap = 200
	// DefaultMatchTextLimit is the hard truncation applied to each document
	// before the match-analysis completion call.
	DefaultMatchTextLimit = 3000
	// DefaultBulletTextLimit is the hard truncation applied to the job text
	// before the bullet-rewrite completion call.
	DefaultBulletTextLimit = 2000
	// DefaultMaxBulletsForRewrite caps the bullets sent for rewriting.
	DefaultMaxBulletsForRewrite = 5
	// DefaultMaxMissingForRewrite caps the missing keywords sent for rewriting.
	DefaultMaxMissingForRewrite = 10
	// DefaultMaxBullets caps the bullets extracted from a resume.
	DefaultMaxBullets = 10
	// DefaultMinBulletLength drops bullet lines shorter than this after
	// marker stripping.
	DefaultMinBulletLength = 10
	// MinInputLength is the minimum trimmed length of each input document.
	MinInputLength = 50
)

// Config holds all service settings. Construct via Load (or use Default in
// tests) and treat the value as read-only afterwards.
type Config struct {
	// Server
	Port        int    `mapstructure:"port"`
	FrontendURL string `mapstructure:"frontend_url"`
	JWTSecret   string `mapstructure:"jwt_secret"`
	DatabaseURL string `mapstructure:"database_url"`

	// Gemini
	GeminiAPIKey   string  `mapstructure:"gemini_api_key"`
	Model          string  `mapstructure:"model"`
	EmbeddingModel string  `mapstructure:"embedding_model"`
	Temperature    float32 `mapstructure:"temperature"`

	// Analysis limits
	MaxLLMKeywords       int `mapstructure:"max_llm_keywords"`
	MaxHeuristicKeywords int `mapstructure:"max_heuristic_keywords"`
	ChunkSize            int `mapstructure:"chunk_size"`
	ChunkOverlap         int `mapstructure:"chunk_overlap"`
	MatchTextLimit       int `mapstructure:"match_text_limit"`
	BulletTextLimit      int `mapstructure:"bullet_text_limit"`
	MaxBulletsForRewrite int `mapstructure:"max_bullets_for_rewrite"`
	MaxMissingForRewrite int `mapstructure:"max_missing_for_rewrite"`
	MaxBullets           int `mapstructure:"max_bullets"`
	MinBulletLength      int `mapstructure:"min_bullet_length"`

	// Behavior
	HeuristicFallback bool `mapstructure:"heuristic_fallback"`
	Verbose           bool `mapstructure:"verbose"`
}

// Default returns a Config populated with default values and no API key.
func Default() *Config {
	return &Config{
		Port:                 8080,
		FrontendURL:          "http://localhost:3000",
		Model:                "gemini-2.5-flash",
		EmbeddingModel:       "text-embedding-004",
		Temperature:          0.3,
		MaxLLMKeywords:       DefaultMaxLLMKeywords,
		MaxHeuristicKeywords: DefaultMaxHeuristicKeywords,
		ChunkSize:            DefaultChunkSize,
		ChunkOverlap:         DefaultChunkOverlap,
		MatchTextLimit:       DefaultMatchTextLimit,
		BulletTextLimit:      DefaultBulletTextLimit,
		MaxBulletsForRewrite: DefaultMaxBulletsForRewrite,
		MaxMissingForRewrite: DefaultMaxMissingForRewrite,
		MaxBullets:           DefaultMaxBullets,
		MinBulletLength:      DefaultMinBulletLength,
		HeuristicFallback:    true,
	}
}

// Load builds a Config from the environment and an optional config file.
// Environment variables use the SMARTMATCH_ prefix (e.g. SMARTMATCH_PORT).
// An empty configFile means env-only configuration.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SMARTMATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := Default()
	v.SetDefault("port", defaults.Port)
	v.SetDefault("frontend_url", defaults.FrontendURL)
	v.SetDefault("jwt_secret", "")
	v.SetDefault("database_url", "")
	v.SetDefault("gemini_api_key", "")
	v.SetDefault("model", defaults.Model)
	v.SetDefault("embedding_model", defaults.EmbeddingModel)
	v.SetDefault("temperature", defaults.Temperature)
	v.SetDefault("max_llm_keywords", defaults.MaxLLMKeywords)
	v.SetDefault("max_heuristic_keywords", defaults.MaxHeuristicKeywords)
	v.SetDefault("chunk_size", defaults.ChunkSize)
	v.SetDefault("chunk_overlap", defaults.ChunkOverlap)
	v.SetDefault("match_text_limit", defaults.MatchTextLimit)
	v.SetDefault("bullet_text_limit", defaults.BulletTextLimit)
	v.SetDefault("max_bullets_for_rewrite", defaults.MaxBulletsForRewrite)
	v.SetDefault("max_missing_for_rewrite", defaults.MaxMissingForRewrite)
	v.SetDefault("max_bullets", defaults.MaxBullets)
	v.SetDefault("min_bullet_length", defaults.MinBulletLength)
	v.SetDefault("heuristic_fallback", defaults.HeuristicFallback)
	v.SetDefault("verbose", false)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks numeric ranges. An absent API key is valid: the service
// then runs in degraded mode on heuristics alone.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be in (0, 65535]")
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("config error: 'chunk_size' must be positive")
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("config error: 'chunk_overlap' must be in [0, chunk_size)")
	}
	if c.MaxLLMKeywords <= 0 || c.MaxHeuristicKeywords <= 0 {
		return fmt.Errorf("config error: keyword limits must be positive")
	}
	if c.MatchTextLimit <= 0 || c.BulletTextLimit <= 0 {
		return fmt.Errorf("config error: text limits must be positive")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("config error: 'temperature' must be in [0, 2]")
	}
	return nil
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the code analyzer server.
type Config struct {
	Server        ServerConfig
	Database      DatabaseConfig
	Redis         RedisConfig
	Auth          AuthConfig
	CloudFunction CloudFunctionConfig
	Vertex        VertexConfig
	OpenAI        OpenAIConfig
	Analysis      AnalysisConfig
}

type ServerConfig struct {
	Port int
	Env  string
}

// DatabaseConfig is optional: an empty URL disables analysis-run history.
type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig is optional: an empty URL disables rate limiting and the
// provider-status cache.
type RedisConfig struct {
	URL string
}

// AuthConfig is optional: with neither field set the API runs unauthenticated
// (demo dashboard mode). KeyHash takes precedence when both are set.
type AuthConfig struct {
	Key     string
	KeyHash string
}

type CloudFunctionConfig struct {
	URL       string
	Preferred bool
}

// VertexConfig describes the Python bridge that talks to Vertex AI.
// An empty Script means the bridge is not deployed alongside the server.
type VertexConfig struct {
	CredentialsPath string
	ProjectID       string
	Region          string
	EndpointID      string
	Bin             string
	Script          string
}

// OpenAIConfig points at an OpenAI-compatible chat-completions endpoint.
// An empty BaseURL disables this backend.
type OpenAIConfig struct {
	BaseURL string
	APIKey  string
	Model   string
}

type AnalysisConfig struct {
	BackendTimeout  time.Duration
	RateLimitPerMin int
}

// Load reads configuration from environment variables and returns a validated
// Config. Absence of any backend configuration is not an error: the server
// degrades to the deterministic fallback rather than refusing to start.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: envInt("ANALYZER_PORT", 8080),
			Env:  envString("ANALYZER_ENV", "development"),
		},
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			MaxOpenConns:    envInt("DATABASE_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    envInt("DATABASE_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: envDuration("DATABASE_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Redis: RedisConfig{
			URL: os.Getenv("REDIS_URL"),
		},
		Auth: AuthConfig{
			Key:     os.Getenv("DASHBOARD_API_KEY"),
			KeyHash: os.Getenv("DASHBOARD_API_KEY_HASH"),
		},
		CloudFunction: CloudFunctionConfig{
			URL:       os.Getenv("CLOUD_FUNCTION_URL"),
			Preferred: envBool("USE_CLOUD_FUNCTION", false),
		},
		Vertex: VertexConfig{
			CredentialsPath: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
			ProjectID:       envString("GOOGLE_CLOUD_PROJECT", "code-analyzer-service-account"),
			Region:          envString("VERTEX_AI_REGION", "us-central1"),
			EndpointID:      os.Getenv("VERTEX_ENDPOINT_ID"),
			Bin:             envString("VERTEX_BRIDGE_BIN", "python3"),
			Script:          os.Getenv("VERTEX_BRIDGE_SCRIPT"),
		},
		OpenAI: OpenAIConfig{
			BaseURL: os.Getenv("OPENAI_BASE_URL"),
			APIKey:  os.Getenv("OPENAI_API_KEY"),
			Model:   envString("OPENAI_MODEL", "gpt-4o-mini"),
		},
		Analysis: AnalysisConfig{
			BackendTimeout:  envDurationSecs("BACKEND_TIMEOUT_SECS", 30*time.Second),
			RateLimitPerMin: envInt("RATE_LIMIT_PER_MINUTE", 60),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("ANALYZER_PORT must be in 1..65535, got %d", c.Server.Port)
	}

	if u := c.CloudFunction.URL; u != "" {
		if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
			return fmt.Errorf("CLOUD_FUNCTION_URL must start with http:// or https://, got %q", u)
		}
	}

	if u := c.OpenAI.BaseURL; u != "" {
		if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
			return fmt.Errorf("OPENAI_BASE_URL must start with http:// or https://, got %q", u)
		}
	}

	if c.Analysis.BackendTimeout <= 0 {
		return fmt.Errorf("BACKEND_TIMEOUT_SECS must be positive")
	}

	return nil
}

func envString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func envBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultVal
	}
	return b
}

func envDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}

func envDurationSecs(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	secs, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return time.Duration(secs) * time.Second
}

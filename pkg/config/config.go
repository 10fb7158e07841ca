package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	// Load environment variables from a .env file when present.
	_ "github.com/joho/godotenv/autoload"
)

// Config holds all application configuration
type Config struct {
	Server        ServerConfig
	Parser        ParserConfig
	Observability ObservabilityConfig
}

type ServerConfig struct {
	Host               string
	Port               int
	FrontendOrigin     string // comma-separated list of allowed CORS origins
	MaxUploadBytes     int64
	RateLimitPerSecond int
	RateLimitBurst     int
}

// ParserConfig configures the external document parser collaborator used for
// non-tabular statement formats.
type ParserConfig struct {
	APIURL         string
	APIKey         string
	Bank           string // provider template hint forwarded to the parser
	TimeoutSeconds int
	LocalCommand   string // optional local fallback command; empty disables it
}

type ObservabilityConfig struct {
	MetricsEnabled bool
	MetricsPort    int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:               getEnv("SERVER_HOST", "localhost"),
			Port:               getEnvAsInt("SERVER_PORT", 8080),
			FrontendOrigin:     getEnv("FRONTEND_ORIGIN", "http://localhost:5173"),
			MaxUploadBytes:     int64(getEnvAsInt("SERVER_MAX_UPLOAD_BYTES", 10*1024*1024)),
			RateLimitPerSecond: getEnvAsInt("SERVER_RATE_LIMIT_PER_SECOND", 100),
			RateLimitBurst:     getEnvAsInt("SERVER_RATE_LIMIT_BURST", 200),
		},
		Parser: ParserConfig{
			APIURL:         getEnv("PARSER_API_URL", "http://localhost:8000"),
			APIKey:         getEnv("PARSER_API_KEY", ""),
			Bank:           getEnv("PARSER_BANK", "generic"),
			TimeoutSeconds: getEnvAsInt("PARSER_TIMEOUT_SECONDS", 30),
			LocalCommand:   getEnv("PARSER_LOCAL_CMD", ""),
		},
		Observability: ObservabilityConfig{
			MetricsEnabled: getEnvAsBool("METRICS_ENABLED", true),
			MetricsPort:    getEnvAsInt("METRICS_PORT", 9090),
		},
	}

	if cfg.Parser.TimeoutSeconds <= 0 {
		return nil, fmt.Errorf("PARSER_TIMEOUT_SECONDS must be positive, got %d", cfg.Parser.TimeoutSeconds)
	}

	return cfg, nil
}

// Addr returns the listen address for the API server.
func (s *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// AllowedOrigins splits the configured frontend origin list.
func (s *ServerConfig) AllowedOrigins() []string {
	parts := strings.Split(s.FrontendOrigin, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}

// Timeout returns the parser call timeout as a duration.
func (p *ParserConfig) Timeout() time.Duration {
	return time.Duration(p.TimeoutSeconds) * time.Second
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

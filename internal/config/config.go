// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	Geocoding   GeocodingConfig
	Location    LocationConfig
	Summary     SummaryConfig
	Scoring     ScoringConfig
	RateLimit   RateLimitConfig
	CORS        CORSConfig
	Log         LogConfig
	I18n        I18nConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
}

type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Database     string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  int
	LogLevel     string
}

type GeocodingConfig struct {
	BaseURL           string
	UserAgent         string
	TimeoutSeconds    int
	RequestsPerSecond float64
	CacheSize         int
}

// LocationConfig is the destination used when a request carries no
// coordinates.
type LocationConfig struct {
	DefaultLatitude  float64
	DefaultLongitude float64
}

type SummaryConfig struct {
	Enabled        bool
	BaseURL        string
	APIKey         string
	Model          string
	MaxTokens      int
	TimeoutSeconds int
}

type ScoringConfig struct {
	PolicyFile        string
	ReferenceCacheTTL int // in seconds
	RecommendLimit    int
	SimilarLimit      int
	ScoreTimeout      int // in seconds
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

type I18nConfig struct {
	DefaultLocale string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	environment := getEnv("ENVIRONMENT", "development")
	defaultLogFormat := "text"
	if environment == "production" {
		defaultLogFormat = "json"
	}

	config := &Config{
		Environment: environment,
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Host:         getEnv("SERVER_HOST", "localhost"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 30),
			IdleTimeout:  getEnvAsInt("SERVER_IDLE_TIMEOUT", 60),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", ""),
			Database:     getEnv("DB_NAME", "ecoscore"),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 25),
			MaxLifetime:  getEnvAsInt("DB_MAX_LIFETIME", 300),
			LogLevel:     getEnv("DB_LOG_LEVEL", "silent"),
		},
		Geocoding: GeocodingConfig{
			BaseURL:           getEnv("GEOCODING_BASE_URL", "https://nominatim.openstreetmap.org"),
			UserAgent:         getEnv("GEOCODING_USER_AGENT", "EcoScore/1.0 (Sustainability Tracking)"),
			TimeoutSeconds:    getEnvAsInt("GEOCODING_TIMEOUT", 5),
			RequestsPerSecond: getEnvAsFloat("GEOCODING_RPS", 1),
			CacheSize:         getEnvAsInt("GEOCODING_CACHE_SIZE", 500),
		},
		Location: LocationConfig{
			// Halifax, Nova Scotia
			DefaultLatitude:  getEnvAsFloat("DEFAULT_LATITUDE", 44.6488),
			DefaultLongitude: getEnvAsFloat("DEFAULT_LONGITUDE", -63.5752),
		},
		Summary: SummaryConfig{
			Enabled:        getEnvAsBool("SUMMARY_ENABLED", true),
			BaseURL:        getEnv("SUMMARY_BASE_URL", ""),
			APIKey:         getEnv("SUMMARY_API_KEY", ""),
			Model:          getEnv("SUMMARY_MODEL", "gpt-4o-mini"),
			MaxTokens:      getEnvAsInt("SUMMARY_MAX_TOKENS", 400),
			TimeoutSeconds: getEnvAsInt("SUMMARY_TIMEOUT", 20),
		},
		Scoring: ScoringConfig{
			PolicyFile:        getEnv("SCORING_POLICY_FILE", ""),
			ReferenceCacheTTL: getEnvAsInt("REFERENCE_CACHE_TTL", 300),
			RecommendLimit:    getEnvAsInt("RECOMMENDATION_LIMIT", 3),
			SimilarLimit:      getEnvAsInt("SIMILAR_PRODUCTS_LIMIT", 10),
			ScoreTimeout:      getEnvAsInt("SCORE_TIMEOUT", 10),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: getEnvAsFloat("RATE_LIMIT_RPS", 10),
			Burst:             getEnvAsInt("RATE_LIMIT_BURST", 20),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", defaultLogFormat),
		},
		I18n: I18nConfig{
			DefaultLocale: getEnv("DEFAULT_LOCALE", "en"),
		},
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	if c.Database.Password == "" && c.Environment == "production" {
		return fmt.Errorf("database password is required in production")
	}

	if c.Geocoding.TimeoutSeconds <= 0 || c.Summary.TimeoutSeconds <= 0 || c.Scoring.ScoreTimeout <= 0 {
		return fmt.Errorf("timeouts must be positive")
	}

	if c.Geocoding.RequestsPerSecond <= 0 {
		return fmt.Errorf("geocoding requests per second must be positive")
	}

	if c.Location.DefaultLatitude < -90 || c.Location.DefaultLatitude > 90 ||
		c.Location.DefaultLongitude < -180 || c.Location.DefaultLongitude > 180 {
		return fmt.Errorf("default location is out of range")
	}

	return nil
}

// SummaryAvailable reports whether a summary backend is configured.
func (c *Config) SummaryAvailable() bool {
	return c.Summary.Enabled && c.Summary.APIKey != ""
}

func (s ScoringConfig) ReferenceTTL() time.Duration {
	return time.Duration(s.ReferenceCacheTTL) * time.Second
}

func (s ScoringConfig) Timeout() time.Duration {
	return time.Duration(s.ScoreTimeout) * time.Second
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(strings.ToLower(value)); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

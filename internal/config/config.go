package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application configuration
type Config struct {
	// Server
	HTTPAddr string
	LogLevel string

	// Database
	DatabaseURL string

	// Cohere LLM
	CohereAPIKey  string
	CohereModel   string
	CohereBaseURL string // optional override, e.g. a local proxy

	// Image generation API
	ImageGenEndpoint string
	ImageGenModel    string
	MaxImagePrompts  int

	// LinkedIn
	LinkedInAPIBaseURL   string
	LinkedInOAuthBaseURL string
	LinkedInClientID     string
	LinkedInClientSecret string
	LinkedInRedirectURI  string
	MaxCarouselImages    int

	// Profile ingestion
	ProfileCSVPath  string
	ProfileCacheTTL time.Duration

	// S3 archive (optional; enabled when access key is set)
	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3PublicURL string

	// External call timeouts. The LLM call intentionally has none.
	ExternalTimeout time.Duration
	ScrapeTimeout   time.Duration
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		CohereAPIKey:  getEnv("COHERE_API_KEY", ""),
		CohereModel:   getEnv("COHERE_MODEL", "command-r"),
		CohereBaseURL: getEnv("COHERE_BASE_URL", ""),

		ImageGenEndpoint: getEnv("IMAGE_GEN_ENDPOINT", "https://subnp.com/api/free/generate"),
		ImageGenModel:    getEnv("IMAGE_GEN_MODEL", "turbo"),
		MaxImagePrompts:  getEnvInt("MAX_IMAGE_PROMPTS", 3),

		LinkedInAPIBaseURL:   getEnv("LINKEDIN_API_BASE_URL", "https://api.linkedin.com"),
		LinkedInOAuthBaseURL: getEnv("LINKEDIN_OAUTH_BASE_URL", "https://www.linkedin.com"),
		LinkedInClientID:     getEnv("LINKEDIN_CLIENT_ID", ""),
		LinkedInClientSecret: getEnv("LINKEDIN_CLIENT_SECRET", ""),
		LinkedInRedirectURI:  getEnv("LINKEDIN_REDIRECT_URI", "http://localhost:8080/oauth/callback"),
		MaxCarouselImages:    getEnvInt("MAX_CAROUSEL_IMAGES", 6),

		ProfileCSVPath:  getEnv("PROFILE_CSV_PATH", "Profile.csv"),
		ProfileCacheTTL: getEnvDuration("PROFILE_CACHE_TTL", 10*time.Minute),

		S3Endpoint:  getEnv("S3_ENDPOINT", ""),
		S3Region:    getEnv("S3_REGION", "us-east-1"),
		S3Bucket:    getEnv("S3_BUCKET", "influence-assets"),
		S3AccessKey: getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey: getEnv("S3_SECRET_KEY", ""),
		S3PublicURL: getEnv("S3_PUBLIC_URL", ""),

		ExternalTimeout: getEnvDuration("EXTERNAL_TIMEOUT", 30*time.Second),
		ScrapeTimeout:   getEnvDuration("SCRAPE_TIMEOUT", 10*time.Second),
	}
}

// ArchiveEnabled reports whether the optional S3 image archive is configured.
func (c *Config) ArchiveEnabled() bool {
	return c.S3AccessKey != "" && c.S3SecretKey != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

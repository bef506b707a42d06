package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"alfredoptarigan/resume-analyzer/internal/models"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"

	DefaultAPIEndpoint = "https://api.groq.com/openai/v1/chat/completions"
	DefaultModel       = "llama3-70b-8192"
	DefaultGeminiModel = "gemini-2.5-flash"
)

type Config struct {
	Server    ServerConfig
	AI        AIConfig
	Storage   StorageConfig
	Analysis  AnalysisConfig
	Database  DatabaseConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port        string
	Env         string
	MaxBodySize int
}

type AIConfig struct {
	Provider    string
	APIKey      string
	Endpoint    string
	Model       string
	Temperature float64
	Timeout     time.Duration
}

type StorageConfig struct {
	UploadPath  string
	MaxFileSize int64
}

type AnalysisConfig struct {
	Mode               models.ResponseMode
	ExtractConcurrency int
}

type DatabaseConfig struct {
	Enabled  bool
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type RateLimitConfig struct {
	RedisAddr     string
	RedisPassword string
	Requests      int
	Window        time.Duration
}

// Enabled reports whether a Redis address was configured.
func (r RateLimitConfig) Enabled() bool {
	return strings.TrimSpace(r.RedisAddr) != ""
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	provider := strings.ToLower(getEnv("AI_PROVIDER", ProviderOpenAI))
	defaultModel := DefaultModel
	if provider == ProviderGemini {
		defaultModel = DefaultGeminiModel
	}

	return &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "8000"),
			Env:         getEnv("ENV", "development"),
			MaxBodySize: getEnvAsInt("MAX_BODY_SIZE", 100*1024*1024),
		},
		AI: AIConfig{
			Provider:    provider,
			APIKey:      getEnv("AI_API_KEY", ""),
			Endpoint:    getEnv("API_ENDPOINT", DefaultAPIEndpoint),
			Model:       getEnv("AI_MODEL", defaultModel),
			Temperature: getEnvAsFloat("AI_TEMPERATURE", 0.7),
			Timeout:     getEnvAsDuration("AI_TIMEOUT", "30s"),
		},
		Storage: StorageConfig{
			UploadPath:  getEnv("UPLOAD_PATH", "./uploads"),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10*1024*1024),
		},
		Analysis: AnalysisConfig{
			Mode:               models.ResponseMode(strings.ToLower(strings.TrimSpace(getEnv("RESPONSE_MODE", string(models.ModeStructured))))),
			ExtractConcurrency: getEnvAsInt("EXTRACT_CONCURRENCY", 1),
		},
		Database: DatabaseConfig{
			Enabled:  getEnvAsBool("DB_ENABLED", false),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "resume_analyzer"),
		},
		RateLimit: RateLimitConfig{
			RedisAddr:     getEnv("RATE_LIMIT_REDIS_ADDR", ""),
			RedisPassword: getEnv("RATE_LIMIT_REDIS_PASSWORD", ""),
			Requests:      getEnvAsInt("RATE_LIMIT_REQUESTS", 20),
			Window:        getEnvAsDuration("RATE_LIMIT_WINDOW", "1m"),
		},
	}
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.AI.APIKey) == "" {
		return errors.New("AI_API_KEY environment variable is required")
	}

	switch c.AI.Provider {
	case ProviderOpenAI, ProviderGemini:
	default:
		return fmt.Errorf("unsupported AI_PROVIDER %q", c.AI.Provider)
	}

	if _, err := models.ParseResponseMode(string(c.Analysis.Mode)); err != nil {
		return fmt.Errorf("unsupported RESPONSE_MODE %q", c.Analysis.Mode)
	}

	if c.Storage.MaxFileSize <= 0 {
		return errors.New("MAX_FILE_SIZE must be positive")
	}

	if c.AI.Timeout <= 0 {
		return errors.New("AI_TIMEOUT must be positive")
	}

	if c.RateLimit.Enabled() {
		if c.RateLimit.Requests <= 0 {
			return errors.New("RATE_LIMIT_REQUESTS must be positive")
		}
		if c.RateLimit.Window < time.Millisecond {
			return errors.New("RATE_LIMIT_WINDOW must be at least 1ms")
		}
	}

	return nil
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}

package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// Intent classifier settings
	ClassifierProvider string // "http" or "gemini"
	ClassifierURL      string
	ClassifierTimeout  time.Duration
	GeminiAPIKey       string
	GeminiModel        string
	LabelMappingPath   string

	// Query execution
	QueryTimeout time.Duration

	// HTTP surface
	RateLimit          string
	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("CLASSIFIER_PROVIDER", "http")
	viper.SetDefault("CLASSIFIER_URL", "")
	viper.SetDefault("CLASSIFIER_TIMEOUT", "10s")
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("GEMINI_MODEL", "gemini-2.0-flash")
	viper.SetDefault("LABEL_MAPPING_PATH", "configs/label_mapping.json")
	viper.SetDefault("QUERY_TIMEOUT", "15s")
	viper.SetDefault("RATE_LIMIT", "60-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.ClassifierProvider = strings.ToLower(viper.GetString("CLASSIFIER_PROVIDER"))
	if cfg.ClassifierProvider != "http" && cfg.ClassifierProvider != "gemini" {
		log.Printf("Warning: Unknown CLASSIFIER_PROVIDER ('%s'). Defaulting to http.\n", cfg.ClassifierProvider)
		cfg.ClassifierProvider = "http"
	}

	cfg.ClassifierURL = viper.GetString("CLASSIFIER_URL")
	if cfg.ClassifierProvider == "http" && cfg.ClassifierURL == "" {
		log.Println("Warning: CLASSIFIER_URL not set. Intent classification will fail.")
	}

	classifierTimeoutStr := viper.GetString("CLASSIFIER_TIMEOUT")
	classifierTimeout, err := time.ParseDuration(classifierTimeoutStr)
	if err != nil {
		classifierTimeout = 10 * time.Second
		if classifierTimeoutStr != "" {
			log.Printf("Warning: Invalid value for CLASSIFIER_TIMEOUT ('%s'). Defaulting to %s.\n", classifierTimeoutStr, classifierTimeout.String())
		}
	}
	cfg.ClassifierTimeout = classifierTimeout

	cfg.GeminiAPIKey = viper.GetString("GEMINI_API_KEY")
	if cfg.ClassifierProvider == "gemini" && cfg.GeminiAPIKey == "" {
		log.Println("Warning: GEMINI_API_KEY not set. Gemini classification will fail.")
	}
	cfg.GeminiModel = viper.GetString("GEMINI_MODEL")

	cfg.LabelMappingPath = viper.GetString("LABEL_MAPPING_PATH")

	queryTimeoutStr := viper.GetString("QUERY_TIMEOUT")
	queryTimeout, err := time.ParseDuration(queryTimeoutStr)
	if err != nil {
		queryTimeout = 15 * time.Second
		if queryTimeoutStr != "" {
			log.Printf("Warning: Invalid value for QUERY_TIMEOUT ('%s'). Defaulting to %s.\n", queryTimeoutStr, queryTimeout.String())
		}
	}
	cfg.QueryTimeout = queryTimeout

	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	origins := viper.GetString("CORS_ALLOWED_ORIGINS")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
		}
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		cfg.CORSAllowedOrigins = []string{"*"}
	}

	return cfg, nil
}

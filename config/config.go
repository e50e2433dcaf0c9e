package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisGeoDB    int    `mapstructure:"REDIS_GEO_DB"`

	// AI provider API keys.
	OpenAIAPIKey    string `mapstructure:"OPENAI_API_KEY"`
	AnthropicAPIKey string `mapstructure:"ANTHROPIC_API_KEY"`
	GeminiAPIKey    string `mapstructure:"GEMINI_API_KEY"`

	// AI provider selection and sampling settings.
	DefaultAIProvider  string  `mapstructure:"DEFAULT_AI_PROVIDER"`
	FallbackAIProvider string  `mapstructure:"FALLBACK_AI_PROVIDER"`
	AITemperature      float64 `mapstructure:"AI_TEMPERATURE"`
	AIMaxTokens        int     `mapstructure:"AI_MAX_TOKENS"`
	AITimeoutSeconds   int     `mapstructure:"AI_TIMEOUT_SECONDS"`

	// Google Maps API key.
	GoogleMapsAPIKey   string `mapstructure:"GOOGLE_MAPS_API_KEY"`
	MapsTimeoutSeconds int    `mapstructure:"MAPS_TIMEOUT_SECONDS"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_GEO_DB", 1)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DEFAULT_AI_PROVIDER", "anthropic")
	viper.SetDefault("FALLBACK_AI_PROVIDER", "gemini")
	viper.SetDefault("AI_TEMPERATURE", 0.7)
	viper.SetDefault("AI_MAX_TOKENS", 2000)
	viper.SetDefault("AI_TIMEOUT_SECONDS", 30)
	viper.SetDefault("GOOGLE_MAPS_API_KEY", "")
	viper.SetDefault("MAPS_TIMEOUT_SECONDS", 5)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// Package configs provides application configuration loaded from environment variables.
// All configuration is externalized via environment variables for 12-factor app compliance.
package configs

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// AppConfig holds all application configuration.
// Load it once at startup using AppLoad().
type AppConfig struct {
	// Dexscreener contains settings for the DexScreener API client.
	Dexscreener DexscreenerConfig

	// Server contains settings for the HTTP surface.
	Server ServerConfig

	// Telegram contains settings for the Telegram bot surface.
	Telegram TelegramConfig

	// Kafka contains settings for the optional query-event stream.
	Kafka KafkaConfig

	// LogLevel is the logrus level name (debug, info, warn, error).
	LogLevel string
}

// DexscreenerConfig holds DexScreener API client settings.
type DexscreenerConfig struct {
	// BaseURL overrides the API root. Empty uses the public production
	// endpoint.
	BaseURL string

	// MinRequestIntervalMS is the minimum gap between any two outbound
	// requests, in milliseconds.
	MinRequestIntervalMS int
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Addr is the listen address (e.g. ":8080").
	Addr string
}

// TelegramConfig holds Telegram bot settings.
type TelegramConfig struct {
	// Token is the bot token. The bot subcommand refuses to start without it.
	Token string
}

// KafkaConfig holds Kafka settings for the query-event emitter.
type KafkaConfig struct {
	// Broker is the Kafka broker address. Empty disables event emission.
	Broker string

	// Topic is the topic query events are written to.
	Topic string
}

// AppLoad loads all application configuration from environment variables.
// It attempts to load a .env file first (for local development).
// Call this once at application startup.
func AppLoad() *AppConfig {
	_ = godotenv.Load() // Ignore error - .env is optional

	return &AppConfig{
		Dexscreener: DexscreenerConfig{
			BaseURL:              getEnv("DEXSCREENER_BASE_URL", ""),
			MinRequestIntervalMS: getEnvInt("DEXSCREENER_MIN_INTERVAL_MS", 100),
		},
		Server: ServerConfig{
			Addr: getEnv("HTTP_ADDR", ":8080"),
		},
		Telegram: TelegramConfig{
			Token: getEnv("TELEGRAM_TOKEN", ""),
		},
		Kafka: KafkaConfig{
			Broker: getEnv("KAFKA_BROKER", ""),
			Topic:  getEnv("KAFKA_QUERY_TOPIC", "dexscout_queries"),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// getEnv returns the environment variable value or a default.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt returns the environment variable as int or a default.
func getEnvInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

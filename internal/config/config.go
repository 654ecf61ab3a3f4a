package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv             string
	LogLevel           slog.Level
	ApiServicePort     string
	PostgreSQLHost     string
	PostgreSQLPort     int64
	PostgreSQLUser     string
	PostgreSQLPassword string
	PostgreSQLDatabase string
	JWTSecret          string
	TokenExpiration    int64
	RedisHost          string
	RedisPort          int64
	RedisPassword      string
	RedisDatabase      int64
	AuthRateLimit      int64
	AuthRateWindow     int64
}

func LoadConfig() *Config {
	// A missing .env just means everything comes from the environment
	_ = godotenv.Load()

	return &Config{
		AppEnv:             getEnv("APP_ENV", "development"),                 // Default development
		LogLevel:           getLogLevel(),                                    // Default INFO
		ApiServicePort:     getEnv("API_SERVICE_PORT", "8080"),               // Default 8080
		PostgreSQLHost:     getEnv("POSTGRESQL_HOST", "db"),                  // Default db
		PostgreSQLPort:     getEnvAsInt64("POSTGRESQL_PORT", 5432),           // Default 5432
		PostgreSQLUser:     getEnv("POSTGRESQL_USER", "turnos_user"),         // Default user
		PostgreSQLPassword: getEnv("POSTGRESQL_PASSWORD", "turnos_password"), // Default password
		PostgreSQLDatabase: getEnv("POSTGRESQL_DATABASE", "turnos_db"),       // Default database name
		JWTSecret:          getEnv("JWT_SECRET", "turnos_secret"),            // Default secret key
		TokenExpiration:    getEnvAsInt64("TOKEN_EXPIRATION", 28800),         // Default 8 hours
		RedisHost:          getEnv("REDIS_HOST", "redis"),                    // Default redis
		RedisPort:          getEnvAsInt64("REDIS_PORT", 6379),                // Default 6379
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),                     // Default empty
		RedisDatabase:      getEnvAsInt64("REDIS_DATABASE", 0),               // Default 0
		AuthRateLimit:      getEnvAsInt64("AUTH_RATE_LIMIT", 10),             // Attempts per window
		AuthRateWindow:     getEnvAsInt64("AUTH_RATE_WINDOW", 60),            // Window in seconds
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt64(key string, fallback int64) int64 {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
			return value
		}
	}
	return fallback
}

func getLogLevel() slog.Level {
	levelStr := getEnv("LOG_LEVEL", "INFO")

	switch strings.ToUpper(levelStr) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

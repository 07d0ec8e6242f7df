package config

import (
	"log/slog"
	"os"
	"strings"
)

type Config struct {
	LogLevel  slog.Level
	LogFormat string // "text" or "json"
	WorldDir  string // extra Lua world definitions, "" for built-ins only
}

func Load() *Config {
	return &Config{
		LogLevel:  parseLogLevel(getEnv("APWORLD_LOG_LEVEL", "warn")),
		LogFormat: strings.ToLower(getEnv("APWORLD_LOG_FORMAT", "text")),
		WorldDir:  getEnv("APWORLD_WORLD_DIR", ""),
	}
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

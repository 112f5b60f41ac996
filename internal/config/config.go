package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	OpenAI   OpenAIConfig
	Pipeline PipelineConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type DatabaseConfig struct {
	Connection string
}

type OpenAIConfig struct {
	ChatModel  string
	EmbedModel string
}

type PipelineConfig struct {
	BookingBase           string // fallback when clinic_info has no booking link
	RetrievalTopK         int
	SQLRowLimit           int
	SessionTTLHours       int // 0 keeps sessions for the process lifetime
	RequestTimeoutSeconds int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		OpenAI: OpenAIConfig{
			ChatModel:  getEnv("LLM_MODEL", "gpt-4.1-nano-2025-04-14"),
			EmbedModel: getEnv("OPENAI_EMBED_MODEL", "text-embedding-3-small"),
		},
		Pipeline: PipelineConfig{
			BookingBase:           getEnv("BOOKING_BASE", ""),
			RetrievalTopK:         getEnvAsInt("RETRIEVAL_TOP_K", 4),
			SQLRowLimit:           getEnvAsInt("SQL_ROW_LIMIT", 5),
			SessionTTLHours:       getEnvAsInt("SESSION_TTL_HOURS", 12),
			RequestTimeoutSeconds: getEnvAsInt("REQUEST_TIMEOUT_SECONDS", 60),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

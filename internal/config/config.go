package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Service configuration
	ServiceName string
	Environment string
	LogFilePath string

	// HTTP configuration
	HTTPPort           string
	CorsAllowedOrigins string

	// NATS configuration
	NatsURL            string
	NatsRequestSubject string
	NatsTimeout        time.Duration

	// Redis session store
	RedisURL   string
	SessionTTL time.Duration

	// Vector store (Postgres + pgvector); empty DatabaseURL disables the
	// similarity index and the resolver runs on the static catalog only.
	// EmbedDim sizes the vector column and must match the embedding
	// provider's output (placeholder: any, nomic-embed-text: 768).
	DatabaseURL       string
	EmbedDim          int
	EmbeddingProvider string
	OllamaBaseURL     string
	OllamaModel       string

	// Google Cloud clients
	GoogleCredentials string
	SpeechLanguage    string

	// Per-request processing deadline applied at the transports
	ProcessTimeout time.Duration
}

func Load() *Config {
	return &Config{
		// Service settings
		ServiceName: getEnv("SERVICE_NAME", "troubleshooter"),
		Environment: getEnv("GO_ENV", "development"),
		LogFilePath: getEnv("LOG_FILE_PATH", "troubleshooter.log"),

		// HTTP settings
		HTTPPort:           getEnv("APP_PORT", "5001"),
		CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),

		// NATS settings
		NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
		NatsRequestSubject: getEnv("NATS_REQUEST_SUBJECT", "support.process"),
		NatsTimeout:        getDurationEnv("NATS_TIMEOUT", 30*time.Second),

		// Redis settings
		RedisURL:   getEnv("REDIS_URL", "redis://localhost:6379/0"),
		SessionTTL: getDurationEnv("SESSION_TTL", 30*time.Minute),

		// Vector store settings
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		EmbedDim:          getIntEnv("EMBED_DIM", 1536),
		EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "placeholder"),
		OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
		OllamaModel:       getEnv("OLLAMA_MODEL", "nomic-embed-text"),

		// Google Cloud settings
		GoogleCredentials: getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
		SpeechLanguage:    getEnv("SPEECH_LANGUAGE_CODE", "en-US"),

		// Processing settings
		ProcessTimeout: getDurationEnv("PROCESS_TIMEOUT", 30*time.Second),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

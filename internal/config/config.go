package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App        AppConfig
	Recognizer RecognizerConfig
	Ai         AIConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type RecognizerConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

type AIConfig struct {
	LLMProvider    string // "groq" or "ollama"
	LLMModel       string
	GroqAPIKey     string
	GroqBaseURL    string
	OllamaBaseURL  string
	TimeoutSeconds int
	MaxTokens      int
	Temperature    float64
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8002"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:8002"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", ""),
		},
		Recognizer: RecognizerConfig{
			BaseURL:        getEnv("RECOGNIZER_BASE_URL", "http://localhost:9000"),
			TimeoutSeconds: getEnvAsInt("RECOGNIZER_TIMEOUT_SECONDS", 30),
		},
		Ai: AIConfig{
			LLMProvider:    getEnv("LLM_PROVIDER", "groq"),
			LLMModel:       getEnv("LLM_MODEL", "llama3-8b-8192"),
			GroqAPIKey:     getEnv("GROQ_API_KEY", ""),
			GroqBaseURL:    getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
			OllamaBaseURL:  getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			TimeoutSeconds: getEnvAsInt("LLM_TIMEOUT_SECONDS", 45),
			MaxTokens:      getEnvAsInt("LLM_MAX_TOKENS", 800),
			Temperature:    getEnvAsFloat("LLM_TEMPERATURE", 0.3),
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

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}
